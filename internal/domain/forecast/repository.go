package forecast

import (
	"context"
	"time"
)

// Repository persists forecast batches. Batches append; nothing overwrites a
// prior run.
type Repository interface {
	InsertBatch(ctx context.Context, batch Batch) error
	LatestBatch(ctx context.Context) (Batch, bool, error)
	LatestBatchByCity(ctx context.Context, city string) ([]Forecast, error)
}

// RunStore keeps the most recent run summary for the dashboard. Backed by
// valkey in production with a memory fallback; the store replaces what used
// to be an unguarded module-level cache.
type RunStore interface {
	SaveLatest(ctx context.Context, summary RunSummary, ttl time.Duration) error
	Latest(ctx context.Context) (RunSummary, bool, error)
}
