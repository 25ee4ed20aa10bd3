package obsrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jpalima/habagat/internal/domain/observation"
)

// MemoryRepository is an in-memory observation.Repository for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []observation.Observation
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert implements observation.Repository.
func (r *MemoryRepository) Insert(_ context.Context, records []observation.Observation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	return nil
}

// ListAll implements observation.Repository.
func (r *MemoryRepository) ListAll(_ context.Context) ([]observation.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]observation.Observation, len(r.records))
	copy(out, r.records)
	sortByTime(out)
	return out, nil
}

// ListByCity implements observation.Repository.
func (r *MemoryRepository) ListByCity(_ context.Context, city string) ([]observation.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []observation.Observation
	for _, record := range r.records {
		if strings.EqualFold(record.City, city) {
			out = append(out, record)
		}
	}
	sortByTime(out)
	return out, nil
}

// Cities implements observation.Repository.
func (r *MemoryRepository) Cities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, record := range r.records {
		if _, ok := seen[record.City]; ok {
			continue
		}
		seen[record.City] = struct{}{}
		out = append(out, record.City)
	}
	sort.Strings(out)
	return out, nil
}

// Count implements observation.Repository.
func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func sortByTime(records []observation.Observation) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

var _ observation.Repository = (*MemoryRepository)(nil)
