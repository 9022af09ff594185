package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/repository"
)

var _ repository.ExecutionLedger = (*pgExecutionLedger)(nil)

type pgExecutionLedger struct {
	pool *pgxpool.Pool
}

// NewPostgresExecutionLedger creates a PostgreSQL-backed execution ledger
// over the job_executions table.
func NewPostgresExecutionLedger(pool *pgxpool.Pool) repository.ExecutionLedger {
	return &pgExecutionLedger{pool: pool}
}

func (r *pgExecutionLedger) Create(ctx context.Context, ex *domain.Execution) error {
	query := `
		INSERT INTO job_executions (id, job_name, status, triggered_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		ex.ID, ex.JobName, ex.Status, ex.TriggeredBy, ex.CreatedAt, ex.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: create execution: %w", err)
	}
	return nil
}

func (r *pgExecutionLedger) MarkRunning(ctx context.Context, id uuid.UUID, startedAt time.Time) error {
	query := `
		UPDATE job_executions
		SET status = $1, started_at = $2, updated_at = $3
		WHERE id = $4 AND status NOT IN ('SUCCESS', 'FAILED')`

	tag, err := r.pool.Exec(ctx, query, domain.StatusRunning, startedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("postgres: mark running: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExecutionFinished
	}
	return nil
}

func (r *pgExecutionLedger) Complete(ctx context.Context, id uuid.UUID, result *domain.Result) error {
	errMsg := ""
	if result.Err != nil {
		errMsg = result.Err.Error()
	}

	query := `
		UPDATE job_executions
		SET status = $1, started_at = $2, completed_at = $3, output = $4, error = $5, updated_at = $6
		WHERE id = $7 AND status NOT IN ('SUCCESS', 'FAILED')`

	tag, err := r.pool.Exec(ctx, query,
		result.Status, result.StartedAt, result.CompletedAt,
		domain.EncodeOutput(result.Output), errMsg, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("postgres: complete execution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExecutionFinished
	}
	return nil
}

func (r *pgExecutionLedger) GetByID(ctx context.Context, id uuid.UUID) (*domain.Execution, error) {
	query := `
		SELECT id, job_name, status, started_at, completed_at,
		       COALESCE(output, ''), COALESCE(error, ''), triggered_by, created_at, updated_at
		FROM job_executions
		WHERE id = $1`

	ex := &domain.Execution{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ex.ID, &ex.JobName, &ex.Status, &ex.StartedAt, &ex.CompletedAt,
		&ex.Output, &ex.Error, &ex.TriggeredBy, &ex.CreatedAt, &ex.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExecutionNotFound
		}
		return nil, fmt.Errorf("postgres: get execution: %w", err)
	}
	return ex, nil
}

func (r *pgExecutionLedger) ListByJob(ctx context.Context, jobName string, limit int) ([]*domain.Execution, error) {
	query := `
		SELECT id, job_name, status, started_at, completed_at,
		       COALESCE(output, ''), COALESCE(error, ''), triggered_by, created_at, updated_at
		FROM job_executions
		WHERE job_name = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list executions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Execution
	for rows.Next() {
		ex := &domain.Execution{}
		if err := rows.Scan(
			&ex.ID, &ex.JobName, &ex.Status, &ex.StartedAt, &ex.CompletedAt,
			&ex.Output, &ex.Error, &ex.TriggeredBy, &ex.CreatedAt, &ex.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan execution: %w", err)
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list executions: %w", err)
	}
	return out, nil
}

func (r *pgExecutionLedger) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM job_executions WHERE created_at < $1 AND status IN ('SUCCESS', 'FAILED')`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("postgres: prune executions: %w", err)
	}
	return tag.RowsAffected(), nil
}
