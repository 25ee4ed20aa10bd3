package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnnotateKnownCity(t *testing.T) {
	svc := NewService(nil)

	cities := svc.Annotate(context.Background(), []string{"Baguio"})
	require.Len(t, cities, 1)
	require.InDelta(t, 16.4164, cities[0].Lat, 1e-9)
	require.InDelta(t, 120.5931, cities[0].Lon, 1e-9)
}

func TestAnnotateUnknownCityFallsBackToOrigin(t *testing.T) {
	svc := NewService(nil)

	cities := svc.Annotate(context.Background(), []string{"Atlantis"})
	require.Len(t, cities, 1)
	require.Zero(t, cities[0].Lat)
	require.Zero(t, cities[0].Lon)
}

func TestAnnotateUsesResolverForUnknownCity(t *testing.T) {
	svc := NewService(resolverFunc(func(_ context.Context, name string) (Coordinates, bool) {
		require.Equal(t, "New Clark City", name)
		return Coordinates{Lat: 15.3, Lon: 120.5}, true
	}))

	cities := svc.Annotate(context.Background(), []string{"New Clark City"})
	require.InDelta(t, 15.3, cities[0].Lat, 1e-9)
}

type resolverFunc func(ctx context.Context, name string) (Coordinates, bool)

func (f resolverFunc) Resolve(ctx context.Context, name string) (Coordinates, bool) {
	return f(ctx, name)
}
