package runner_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/runner"
)

// Test: normal return produces a SUCCESS result carrying the output.
func TestRun_Success(t *testing.T) {
	rn := runner.New(zap.NewNop())

	res := rn.Run(context.Background(), "report", job.RunFunc(func(ctx context.Context) (any, error) {
		return 42, nil
	}))

	if res.Status != domain.StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", res.Status)
	}
	if res.Output != 42 {
		t.Errorf("expected output 42, got %v", res.Output)
	}
	if res.Err != nil {
		t.Errorf("expected no error, got %v", res.Err)
	}
	if res.Duration < 0 {
		t.Errorf("expected non-negative duration, got %s", res.Duration)
	}
}

// Test: an error from the unit of work is captured into the result and
// never escapes the runner.
func TestRun_FailureCaptured(t *testing.T) {
	rn := runner.New(zap.NewNop())

	res := rn.Run(context.Background(), "cleanup", job.RunFunc(func(ctx context.Context) (any, error) {
		return nil, errors.New("disk full")
	}))

	if res.Status != domain.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}
	if res.Err == nil || res.Err.Error() != "disk full" {
		t.Errorf("expected captured error 'disk full', got %v", res.Err)
	}
	if res.Output != nil {
		t.Errorf("expected no output on failure, got %v", res.Output)
	}
}

// Test: a panic in the unit of work is recovered into a FAILED result.
func TestRun_PanicRecovered(t *testing.T) {
	rn := runner.New(zap.NewNop())

	res := rn.Run(context.Background(), "flaky", job.RunFunc(func(ctx context.Context) (any, error) {
		panic("boom")
	}))

	if res.Status != domain.StatusFailed {
		t.Fatalf("expected FAILED, got %s", res.Status)
	}
	if res.Err == nil {
		t.Fatal("expected captured error")
	}
}

// Test: the returned result is always terminal with consistent timing.
func TestRun_ResultIsTerminalWithTiming(t *testing.T) {
	rn := runner.New(zap.NewNop())

	outcomes := []job.RunFunc{
		func(ctx context.Context) (any, error) { return "ok", nil },
		func(ctx context.Context) (any, error) { return nil, errors.New("nope") },
	}

	for _, fn := range outcomes {
		res := rn.Run(context.Background(), "probe", fn)

		if !res.Status.IsTerminal() {
			t.Errorf("expected terminal status, got %s", res.Status)
		}
		if res.CompletedAt.Before(res.StartedAt) {
			t.Errorf("completedAt %s before startedAt %s", res.CompletedAt, res.StartedAt)
		}
		if res.Duration != res.CompletedAt.Sub(res.StartedAt) {
			t.Errorf("duration %s does not match timestamps", res.Duration)
		}
	}
}

// Test: the job receives the caller's context.
func TestRun_ContextPropagated(t *testing.T) {
	rn := runner.New(zap.NewNop())

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	res := rn.Run(ctx, "ctx-probe", job.RunFunc(func(ctx context.Context) (any, error) {
		if ctx.Value(ctxKey{}) != "marker" {
			return nil, errors.New("context not propagated")
		}
		return nil, nil
	}))

	if res.Status != domain.StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s (%v)", res.Status, res.Err)
	}
}
