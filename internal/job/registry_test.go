package job_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
)

func noop(ctx context.Context) (any, error) { return nil, nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := job.NewRegistry()

	if err := r.Register(&job.Definition{Name: "report", Runnable: job.RunFunc(noop)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def, ok := r.Get("report")
	if !ok {
		t.Fatal("expected job to be registered")
	}
	if def.Name != "report" {
		t.Errorf("unexpected name: %s", def.Name)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing job to be absent")
	}
}

func TestRegistry_RejectsEmptyName(t *testing.T) {
	r := job.NewRegistry()

	err := r.Register(&job.Definition{Runnable: job.RunFunc(noop)})
	if !errors.Is(err, domain.ErrEmptyJobName) {
		t.Fatalf("expected ErrEmptyJobName, got %v", err)
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := job.NewRegistry()

	if err := r.Register(&job.Definition{Name: "report", Runnable: job.RunFunc(noop)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.Register(&job.Definition{Name: "report", Runnable: job.RunFunc(noop)})
	if !errors.Is(err, domain.ErrDuplicateJob) {
		t.Fatalf("expected ErrDuplicateJob, got %v", err)
	}
}

func TestRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	r := job.NewRegistry()

	names := []string{"cleanup", "report", "sync"}
	for _, name := range names {
		if err := r.Register(&job.Definition{Name: name, Runnable: job.RunFunc(noop)}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	defs := r.List()
	if len(defs) != len(names) {
		t.Fatalf("expected %d definitions, got %d", len(names), len(defs))
	}
	for i, name := range names {
		if defs[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, defs[i].Name)
		}
	}
}
