package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/publisher"
	"github.com/jobward/jobward/internal/repository"
	"github.com/jobward/jobward/internal/runner"
)

// RunJobUsecase is the consumer boundary around the job runner: it records
// the execution in the ledger, runs the job, and converts a failed result
// back into an error. The runner swallows failures into a value; returning a
// non-nil error here is what makes them visible to callers, error trackers,
// and alerting. Every caller of this usecase relies on that contract.
type RunJobUsecase struct {
	registry *job.Registry
	ledger   repository.ExecutionLedger
	exec     runner.Executor
	events   publisher.Publisher
	logger   *zap.Logger
}

// NewRunJobUsecase creates a new RunJobUsecase.
func NewRunJobUsecase(
	registry *job.Registry,
	ledger repository.ExecutionLedger,
	exec runner.Executor,
	events publisher.Publisher,
	logger *zap.Logger,
) *RunJobUsecase {
	return &RunJobUsecase{
		registry: registry,
		ledger:   ledger,
		exec:     exec,
		events:   events,
		logger:   logger,
	}
}

// Execute runs the named job synchronously and blocks until it finishes.
// On success the returned error is nil. When the job itself failed, the
// returned Execution carries the terminal record and the error wraps the
// captured failure. Ledger and event writes are advisory: their failures are
// logged but never mask the job outcome.
func (uc *RunJobUsecase) Execute(ctx context.Context, jobName, triggeredBy string) (*domain.Execution, error) {
	def, ok := uc.registry.Get(jobName)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate execution id: %w", err)
	}

	now := time.Now().UTC()
	ex := &domain.Execution{
		ID:          id,
		JobName:     jobName,
		Status:      domain.StatusPending,
		TriggeredBy: triggeredBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ledger.Create(ctx, ex); err != nil {
		uc.logger.Error("Failed to create execution record",
			zap.String("job", jobName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create execution: %w", err)
	}

	startedAt := time.Now().UTC()
	if err := uc.ledger.MarkRunning(ctx, id, startedAt); err != nil {
		uc.logger.Error("Failed to mark execution running",
			zap.String("job", jobName),
			zap.String("execution_id", id.String()),
			zap.Error(err),
		)
	}
	ex.Status = domain.StatusRunning
	ex.StartedAt = &startedAt

	result := uc.exec.Run(ctx, jobName, def.Runnable)

	if err := uc.ledger.Complete(ctx, id, result); err != nil {
		uc.logger.Error("Failed to record execution result",
			zap.String("job", jobName),
			zap.String("execution_id", id.String()),
			zap.Error(err),
		)
	}

	ex.Status = result.Status
	ex.StartedAt = &result.StartedAt
	ex.CompletedAt = &result.CompletedAt
	ex.UpdatedAt = result.CompletedAt
	ex.Output = domain.EncodeOutput(result.Output)
	if result.Err != nil {
		ex.Error = result.Err.Error()
	}

	if err := uc.events.Publish(ctx, ex); err != nil {
		uc.logger.Error("Failed to publish execution event",
			zap.String("execution_id", id.String()),
			zap.Error(err),
		)
	}

	if result.Failed() {
		return ex, fmt.Errorf("job %s failed: %w", jobName, result.Err)
	}
	return ex, nil
}
