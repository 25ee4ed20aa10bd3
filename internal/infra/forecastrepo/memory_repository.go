package forecastrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

// MemoryRepository is an in-memory forecast.Repository for tests/dev.
// Batches append, in keeping with the generation contract.
type MemoryRepository struct {
	mu      sync.RWMutex
	batches []forecast.Batch
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// InsertBatch implements forecast.Repository.
func (r *MemoryRepository) InsertBatch(_ context.Context, batch forecast.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
	return nil
}

// LatestBatch implements forecast.Repository.
func (r *MemoryRepository) LatestBatch(_ context.Context) (forecast.Batch, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.batches) == 0 {
		return forecast.Batch{}, false, nil
	}
	latest := r.batches[len(r.batches)-1]
	out := forecast.Batch{ID: latest.ID, CreatedAt: latest.CreatedAt}
	out.Forecasts = append(out.Forecasts, latest.Forecasts...)
	return out, true, nil
}

// LatestBatchByCity implements forecast.Repository.
func (r *MemoryRepository) LatestBatchByCity(_ context.Context, city string) ([]forecast.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.batches) == 0 {
		return nil, nil
	}
	latest := r.batches[len(r.batches)-1]
	var out []forecast.Forecast
	for _, f := range latest.Forecasts {
		if strings.EqualFold(f.City, city) {
			out = append(out, f)
		}
	}
	return out, nil
}

var _ forecast.Repository = (*MemoryRepository)(nil)
