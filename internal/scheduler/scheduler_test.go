package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/lock"
	mockpub "github.com/jobward/jobward/internal/publisher/mock"
	"github.com/jobward/jobward/internal/repository/memory"
	"github.com/jobward/jobward/internal/repository/mock"
	"github.com/jobward/jobward/internal/runner"
	"github.com/jobward/jobward/internal/usecase"
)

func newTestScheduler(t *testing.T, store *memory.LockStore, defs ...*job.Definition) (*Scheduler, *mock.ExecutionLedger) {
	t.Helper()

	logger := zap.NewNop()
	registry := job.NewRegistry()
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			t.Fatalf("register job: %v", err)
		}
	}
	ledger := &mock.ExecutionLedger{}
	runUC := usecase.NewRunJobUsecase(registry, ledger, runner.New(logger), &mockpub.Publisher{}, logger)
	guard := lock.NewGuard(store, logger)

	return New(guard, runUC, time.Minute, logger), ledger
}

// Test: a tick runs the job behind the lock and records it as system-triggered.
func TestTick_RunsJob(t *testing.T) {
	var runs atomic.Int32
	def := &job.Definition{
		Name:     "heartbeat",
		Schedule: "@every 1m",
		Runnable: job.RunFunc(func(ctx context.Context) (any, error) {
			runs.Add(1)
			return nil, nil
		}),
	}

	store := memory.NewLockStore()
	s, ledger := newTestScheduler(t, store, def)

	s.tick(def)

	if runs.Load() != 1 {
		t.Fatalf("expected 1 run, got %d", runs.Load())
	}
	if len(ledger.Created) != 1 {
		t.Fatalf("expected 1 execution record, got %d", len(ledger.Created))
	}
	if ledger.Created[0].TriggeredBy != domain.TriggeredBySystem {
		t.Errorf("expected system trigger, got %s", ledger.Created[0].TriggeredBy)
	}

	// The lock is released after the tick.
	if store.Len() != 0 {
		t.Errorf("expected released lock, got %d entries", store.Len())
	}
}

// Test: a tick is skipped (not queued) while another instance holds the lock.
func TestTick_SkipsWhileLockHeld(t *testing.T) {
	var runs atomic.Int32
	def := &job.Definition{
		Name:     "nightly-sync",
		Schedule: "@every 1m",
		Runnable: job.RunFunc(func(ctx context.Context) (any, error) {
			runs.Add(1)
			return nil, nil
		}),
	}

	store := memory.NewLockStore()
	if ok, _ := store.Acquire(context.Background(), lock.Key("nightly-sync"), "other-instance", time.Hour); !ok {
		t.Fatal("failed to pre-acquire lock")
	}

	s, ledger := newTestScheduler(t, store, def)
	s.tick(def)

	if runs.Load() != 0 {
		t.Errorf("expected 0 runs while lock held elsewhere, got %d", runs.Load())
	}
	if len(ledger.Created) != 0 {
		t.Errorf("skipped ticks must not create execution records, got %d", len(ledger.Created))
	}
}

// Test: a failing job is contained in its tick and later ticks still fire.
func TestTick_FailureIsContained(t *testing.T) {
	var runs atomic.Int32
	def := &job.Definition{
		Name:     "flaky",
		Schedule: "@every 1m",
		Runnable: job.RunFunc(func(ctx context.Context) (any, error) {
			runs.Add(1)
			return nil, errors.New("disk full")
		}),
	}

	s, ledger := newTestScheduler(t, memory.NewLockStore(), def)

	s.tick(def)
	s.tick(def)

	if runs.Load() != 2 {
		t.Fatalf("expected 2 runs, got %d", runs.Load())
	}
	if len(ledger.Completed) != 2 {
		t.Fatalf("expected 2 completed records, got %d", len(ledger.Completed))
	}
	if ledger.Completed[0].Result.Status != domain.StatusFailed {
		t.Errorf("expected FAILED record, got %s", ledger.Completed[0].Result.Status)
	}
}

// Test: manual-only definitions are not added to the cron table.
func TestAdd_ManualOnlyIsIgnored(t *testing.T) {
	def := &job.Definition{
		Name:     "manual",
		Runnable: job.RunFunc(func(ctx context.Context) (any, error) { return nil, nil }),
	}

	s, _ := newTestScheduler(t, memory.NewLockStore(), def)

	if err := s.Add(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.cron.Entries()) != 0 {
		t.Errorf("expected no cron entries, got %d", len(s.cron.Entries()))
	}
}

// Test: an invalid cron expression is rejected at registration.
func TestAdd_RejectsInvalidSchedule(t *testing.T) {
	def := &job.Definition{
		Name:     "broken",
		Schedule: "not a cron expression",
		Runnable: job.RunFunc(func(ctx context.Context) (any, error) { return nil, nil }),
	}

	s, _ := newTestScheduler(t, memory.NewLockStore(), def)

	if err := s.Add(def); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

// Test: end-to-end cron wiring — a 1s schedule fires after Start.
func TestScheduler_FiresOnSchedule(t *testing.T) {
	var runs atomic.Int32
	def := &job.Definition{
		Name:     "ticker",
		Schedule: "@every 1s",
		Runnable: job.RunFunc(func(ctx context.Context) (any, error) {
			runs.Add(1)
			return nil, nil
		}),
	}

	s, _ := newTestScheduler(t, memory.NewLockStore(), def)
	if err := s.Add(def); err != nil {
		t.Fatalf("add schedule: %v", err)
	}

	s.Start()
	time.Sleep(1100 * time.Millisecond)
	s.Stop()

	if runs.Load() < 1 {
		t.Fatal("expected at least one scheduled run")
	}
}
