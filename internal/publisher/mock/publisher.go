package mock

import (
	"context"
	"sync"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/publisher"
)

var _ publisher.Publisher = (*Publisher)(nil)

// Publisher is a test double for publisher.Publisher.
type Publisher struct {
	mu sync.Mutex

	PublishFn func(ctx context.Context, ex *domain.Execution) error

	Events []*domain.Execution
}

func (m *Publisher) Publish(ctx context.Context, ex *domain.Execution) error {
	m.mu.Lock()
	m.Events = append(m.Events, ex)
	m.mu.Unlock()
	if m.PublishFn != nil {
		return m.PublishFn(ctx, ex)
	}
	return nil
}

func (m *Publisher) Close() error { return nil }
