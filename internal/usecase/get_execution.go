package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GetExecutionUsecase fetches a single execution record for polling callers.
type GetExecutionUsecase struct {
	ledger repository.ExecutionLedger
	logger *zap.Logger
}

// NewGetExecutionUsecase creates a new GetExecutionUsecase.
func NewGetExecutionUsecase(ledger repository.ExecutionLedger, logger *zap.Logger) *GetExecutionUsecase {
	return &GetExecutionUsecase{ledger: ledger, logger: logger}
}

// Execute retrieves an execution record by its ID.
func (uc *GetExecutionUsecase) Execute(ctx context.Context, id uuid.UUID) (*domain.Execution, error) {
	ex, err := uc.ledger.GetByID(ctx, id)
	if err != nil {
		uc.logger.Debug("Execution not found", zap.String("execution_id", id.String()), zap.Error(err))
		return nil, err
	}
	return ex, nil
}

// ListExecutionsUsecase returns the recent execution history of a job.
type ListExecutionsUsecase struct {
	ledger repository.ExecutionLedger
	logger *zap.Logger
}

// NewListExecutionsUsecase creates a new ListExecutionsUsecase.
func NewListExecutionsUsecase(ledger repository.ExecutionLedger, logger *zap.Logger) *ListExecutionsUsecase {
	return &ListExecutionsUsecase{ledger: ledger, logger: logger}
}

// Execute lists the most recent executions of jobName, newest first.
// A non-positive limit selects the default; limits are capped.
func (uc *ListExecutionsUsecase) Execute(ctx context.Context, jobName string, limit int) ([]*domain.Execution, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return uc.ledger.ListByJob(ctx, jobName, limit)
}
