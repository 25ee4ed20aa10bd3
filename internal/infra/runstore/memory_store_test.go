package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

func TestMemoryStoreLatest(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	summary := forecast.RunSummary{ModelID: "m-1", BatchID: "b-1", Accuracy: 88}
	require.NoError(t, store.SaveLatest(ctx, summary, 0))

	got, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, summary, got)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveLatest(ctx, forecast.RunSummary{ModelID: "m-1"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
