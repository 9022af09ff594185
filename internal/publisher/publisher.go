package publisher

import (
	"context"

	"github.com/jobward/jobward/internal/domain"
)

// Publisher emits terminal execution events to external consumers such as
// alerting pipelines. Publishing is best-effort: a failed publish never
// changes the outcome of the job run itself.
type Publisher interface {
	Publish(ctx context.Context, ex *domain.Execution) error
	Close() error
}

// Nop discards all events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, *domain.Execution) error { return nil }
func (Nop) Close() error                                     { return nil }
