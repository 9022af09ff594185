package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/jobs"
	"github.com/jobward/jobward/internal/repository/mock"
)

func TestRetentionJob_PrunesWithCutoff(t *testing.T) {
	ledger := &mock.ExecutionLedger{
		PruneBeforeFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 7, nil
		},
	}
	j := jobs.NewRetentionJob(ledger, 30*24*time.Hour, zap.NewNop())

	out, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ledger.PruneCalls) != 1 {
		t.Fatalf("expected 1 prune call, got %d", len(ledger.PruneCalls))
	}
	wantCutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)
	got := ledger.PruneCalls[0]
	if got.Before(wantCutoff.Add(-time.Minute)) || got.After(wantCutoff.Add(time.Minute)) {
		t.Errorf("cutoff %s not within a minute of %s", got, wantCutoff)
	}

	payload, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if payload["pruned"] != int64(7) {
		t.Errorf("expected pruned count 7, got %v", payload["pruned"])
	}
}

func TestRetentionJob_PropagatesLedgerError(t *testing.T) {
	ledger := &mock.ExecutionLedger{
		PruneBeforeFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}
	j := jobs.NewRetentionJob(ledger, time.Hour, zap.NewNop())

	if _, err := j.Run(context.Background()); err == nil {
		t.Fatal("expected error from ledger failure")
	}
}
