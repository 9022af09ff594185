package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/repository"
)

var _ job.Runnable = (*RetentionJob)(nil)

// RetentionJob prunes finished execution records older than the retention
// window. It runs under the framework like any other job.
type RetentionJob struct {
	ledger    repository.ExecutionLedger
	retention time.Duration
	logger    *zap.Logger
}

// NewRetentionJob creates a RetentionJob keeping records for the given window.
func NewRetentionJob(ledger repository.ExecutionLedger, retention time.Duration, logger *zap.Logger) *RetentionJob {
	return &RetentionJob{
		ledger:    ledger,
		retention: retention,
		logger:    logger,
	}
}

func (j *RetentionJob) Run(ctx context.Context) (any, error) {
	cutoff := time.Now().UTC().Add(-j.retention)

	pruned, err := j.ledger.PruneBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("prune executions: %w", err)
	}

	j.logger.Info("Pruned old execution records",
		zap.Int64("pruned", pruned),
		zap.Time("cutoff", cutoff),
	)
	return map[string]any{"pruned": pruned}, nil
}
