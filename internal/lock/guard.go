package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/metrics"
	"github.com/jobward/jobward/internal/repository"
)

const keyPrefix = "jobward:lock:"

// Key returns the fleet-wide lock key for a job name. Keys must be stable:
// every replica derives the same key for the same logical job.
func Key(jobName string) string {
	return keyPrefix + jobName
}

// Guard wraps a unit of work with a cluster-wide lock so that at most one
// replica executes it at a time. It is a best-effort mutex bounded by the
// consistency of the underlying store, not a consensus protocol.
type Guard struct {
	store  repository.LockStore
	logger *zap.Logger
}

// NewGuard creates a Guard over the given lock store.
func NewGuard(store repository.LockStore, logger *zap.Logger) *Guard {
	return &Guard{store: store, logger: logger}
}

// Run makes a single non-blocking attempt to acquire key and, on success,
// executes fn and releases the lock afterwards. skipped is true when fn was
// not invoked: either another instance holds the lock, or the store could
// not be reached. A store failure never lets fn run unguarded. There is no
// retry or queueing for contended keys; a scheduled job simply runs again on
// its next tick. err is whatever fn returned.
//
// ttl must exceed the worst-case runtime of fn. If the lock expires mid-run
// a second instance can acquire it and execute concurrently; the Guard does
// not renew held locks.
func (g *Guard) Run(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) (skipped bool, err error) {
	holder := uuid.NewString()

	acquired, err := g.store.Acquire(ctx, key, holder, ttl)
	if err != nil {
		g.logger.Error("Lock store unreachable, skipping run",
			zap.String("key", key),
			zap.Error(err),
		)
		metrics.LockStoreErrors.Inc()
		return true, nil
	}
	if !acquired {
		g.logger.Warn("Lock held by another instance, skipping run",
			zap.String("key", key),
		)
		metrics.LockSkipsTotal.WithLabelValues(key).Inc()
		return true, nil
	}

	defer func() {
		// Release promptly so the next tick is not blocked for the full TTL.
		// If the process crashes before this runs, the TTL frees the key.
		if rerr := g.store.Release(ctx, key, holder); rerr != nil {
			g.logger.Warn("Lock release failed, key will expire via TTL",
				zap.String("key", key),
				zap.Error(rerr),
			)
		}
	}()

	return false, fn(ctx)
}
