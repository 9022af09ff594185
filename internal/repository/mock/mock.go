package mock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/repository"
)

// ---- ExecutionLedger mock ----

var _ repository.ExecutionLedger = (*ExecutionLedger)(nil)

// CompletedCall records one Complete invocation.
type CompletedCall struct {
	ID     uuid.UUID
	Result *domain.Result
}

// ExecutionLedger is a test double for repository.ExecutionLedger. It keeps
// an in-memory record of every call for assertions; function fields override
// individual behaviors.
type ExecutionLedger struct {
	mu sync.Mutex

	CreateFn      func(ctx context.Context, ex *domain.Execution) error
	MarkRunningFn func(ctx context.Context, id uuid.UUID, startedAt time.Time) error
	CompleteFn    func(ctx context.Context, id uuid.UUID, result *domain.Result) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Execution, error)
	PruneBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)

	Created    []*domain.Execution
	Running    []uuid.UUID
	Completed  []CompletedCall
	PruneCalls []time.Time

	executions map[uuid.UUID]*domain.Execution
}

func (m *ExecutionLedger) Create(ctx context.Context, ex *domain.Execution) error {
	m.mu.Lock()
	m.Created = append(m.Created, ex)
	if m.executions == nil {
		m.executions = make(map[uuid.UUID]*domain.Execution)
	}
	m.executions[ex.ID] = ex
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ex)
	}
	return nil
}

func (m *ExecutionLedger) MarkRunning(ctx context.Context, id uuid.UUID, startedAt time.Time) error {
	m.mu.Lock()
	m.Running = append(m.Running, id)
	m.mu.Unlock()
	if m.MarkRunningFn != nil {
		return m.MarkRunningFn(ctx, id, startedAt)
	}
	return nil
}

func (m *ExecutionLedger) Complete(ctx context.Context, id uuid.UUID, result *domain.Result) error {
	m.mu.Lock()
	m.Completed = append(m.Completed, CompletedCall{ID: id, Result: result})
	m.mu.Unlock()
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, id, result)
	}
	return nil
}

func (m *ExecutionLedger) GetByID(ctx context.Context, id uuid.UUID) (*domain.Execution, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, ok := m.executions[id]
	if !ok {
		return nil, domain.ErrExecutionNotFound
	}
	return ex, nil
}

func (m *ExecutionLedger) ListByJob(ctx context.Context, jobName string, limit int) ([]*domain.Execution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Execution
	for _, ex := range m.Created {
		if ex.JobName == jobName && len(out) < limit {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (m *ExecutionLedger) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	m.PruneCalls = append(m.PruneCalls, cutoff)
	m.mu.Unlock()
	if m.PruneBeforeFn != nil {
		return m.PruneBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

// ---- LockStore mock ----

var _ repository.LockStore = (*LockStore)(nil)

// AcquireCall records one Acquire invocation.
type AcquireCall struct {
	Key    string
	Holder string
	TTL    time.Duration
}

// LockStore is a test double for repository.LockStore.
type LockStore struct {
	mu sync.Mutex

	AcquireFn func(ctx context.Context, key, holder string, ttl time.Duration) (bool, error)
	ReleaseFn func(ctx context.Context, key, holder string) error

	AcquireCalls []AcquireCall
	ReleaseCalls []string
}

func (m *LockStore) Acquire(ctx context.Context, key, holder string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	m.AcquireCalls = append(m.AcquireCalls, AcquireCall{Key: key, Holder: holder, TTL: ttl})
	m.mu.Unlock()
	if m.AcquireFn != nil {
		return m.AcquireFn(ctx, key, holder, ttl)
	}
	return true, nil // default: lock acquired
}

func (m *LockStore) Release(ctx context.Context, key, holder string) error {
	m.mu.Lock()
	m.ReleaseCalls = append(m.ReleaseCalls, key)
	m.mu.Unlock()
	if m.ReleaseFn != nil {
		return m.ReleaseFn(ctx, key, holder)
	}
	return nil
}
