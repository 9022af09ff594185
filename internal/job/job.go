package job

import (
	"context"
	"time"
)

// Runnable is the capability every job implementation must satisfy. It is an
// interface rather than a base type so that arbitrary business logic can be
// plugged in with its own injected dependencies.
type Runnable interface {
	// Run executes the unit of work and returns its output payload, or an
	// error when the work failed.
	Run(ctx context.Context) (any, error)
}

// RunFunc adapts a plain function to the Runnable interface.
type RunFunc func(ctx context.Context) (any, error)

func (f RunFunc) Run(ctx context.Context) (any, error) {
	return f(ctx)
}

// Definition binds a job name to its implementation and scheduling metadata.
type Definition struct {
	// Name uniquely identifies the job across the entire fleet. It is also
	// the basis of the distributed lock key for scheduled triggers.
	Name string

	// Runnable is the unit of work executed under the framework's supervision.
	Runnable Runnable

	// Schedule is an optional cron expression (standard 5-field or a
	// descriptor such as "@every 30s"). Empty means manual-only.
	Schedule string

	// LockTTL bounds how long the distributed lock for a scheduled run is
	// held if the process crashes before releasing it. It must exceed the
	// worst-case runtime of the job: if the lock expires mid-run, another
	// replica may start a second concurrent execution. Zero selects the
	// configured default.
	LockTTL time.Duration
}
