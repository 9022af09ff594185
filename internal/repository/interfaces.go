package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobward/jobward/internal/domain"
)

// LockStore provides cluster-wide mutual exclusion with expiry. It is the
// single piece of shared mutable state between replicas; nothing outside the
// lock guard touches it.
type LockStore interface {
	// Acquire atomically claims key for holder if no unexpired entry exists.
	// Returns true only when this call created the entry (check-and-set).
	Acquire(ctx context.Context, key, holder string, ttl time.Duration) (bool, error)

	// Release frees key if it is still held by holder. Releasing a key held
	// by someone else, or not held at all, is a no-op.
	Release(ctx context.Context, key, holder string) error
}

// ExecutionLedger is the durable, append-only history of job executions.
// A row is created PENDING at trigger time, moves to RUNNING when execution
// begins, and is frozen once it reaches a terminal status.
type ExecutionLedger interface {
	// Create inserts a new PENDING execution record.
	Create(ctx context.Context, ex *domain.Execution) error

	// MarkRunning transitions a record to RUNNING. Returns
	// domain.ErrExecutionFinished if the record is already terminal.
	MarkRunning(ctx context.Context, id uuid.UUID, startedAt time.Time) error

	// Complete writes the terminal status, timing, output, and error of a
	// finished run. Returns domain.ErrExecutionFinished if the record is
	// already terminal.
	Complete(ctx context.Context, id uuid.UUID, result *domain.Result) error

	// GetByID fetches a single execution record.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Execution, error)

	// ListByJob returns the most recent execution records for a job.
	ListByJob(ctx context.Context, jobName string, limit int) ([]*domain.Execution, error)

	// PruneBefore deletes terminal records created before cutoff and returns
	// the number of rows removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
