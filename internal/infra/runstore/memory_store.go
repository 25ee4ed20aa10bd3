package runstore

import (
	"context"
	"sync"
	"time"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

// MemoryStore is an in-memory forecast.RunStore for tests/dev.
type MemoryStore struct {
	mu        sync.RWMutex
	summary   forecast.RunSummary
	hasRecord bool
	expiresAt time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveLatest implements forecast.RunStore.
func (s *MemoryStore) SaveLatest(_ context.Context, summary forecast.RunSummary, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	s.hasRecord = true
	if ttl > 0 {
		s.expiresAt = time.Now().Add(ttl)
	} else {
		s.expiresAt = time.Time{}
	}
	return nil
}

// Latest implements forecast.RunStore.
func (s *MemoryStore) Latest(_ context.Context) (forecast.RunSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasRecord {
		return forecast.RunSummary{}, false, nil
	}
	if !s.expiresAt.IsZero() && s.expiresAt.Before(time.Now()) {
		return forecast.RunSummary{}, false, nil
	}
	return s.summary, true, nil
}

var _ forecast.RunStore = (*MemoryStore)(nil)
