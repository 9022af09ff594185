package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jobward/jobward/internal/repository"
)

var _ repository.LockStore = (*LockStore)(nil)

type entry struct {
	holder    string
	expiresAt time.Time
}

// LockStore is an in-process lock store with the same check-and-set and TTL
// semantics as the Redis implementation. It backs tests and single-instance
// development setups.
type LockStore struct {
	mu      sync.Mutex
	entries map[string]entry

	// Now supplies the current time; tests override it to step the clock.
	Now func() time.Time
}

// NewLockStore creates an empty in-memory lock store.
func NewLockStore() *LockStore {
	return &LockStore{
		entries: make(map[string]entry),
		Now:     time.Now,
	}
}

func (s *LockStore) Acquire(_ context.Context, key, holder string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	if e, ok := s.entries[key]; ok && e.expiresAt.After(now) {
		return false, nil
	}
	s.entries[key] = entry{holder: holder, expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *LockStore) Release(_ context.Context, key, holder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.holder == holder {
		delete(s.entries, key)
	}
	return nil
}

// Len returns the number of lock entries currently stored, expired or not.
func (s *LockStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
