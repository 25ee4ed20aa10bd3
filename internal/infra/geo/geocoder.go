package geo

import (
	"context"
	"log/slog"

	"github.com/kelvins/geocoder"

	domaingeo "github.com/jpalima/habagat/internal/domain/geo"
)

// GeocoderResolver resolves coordinates for cities missing from the seed
// table through the Google geocoding API. It is optional; without an API
// key the geo domain falls back to (0,0).
type GeocoderResolver struct {
	logger *slog.Logger
}

// NewGeocoderResolver sets the package-level API key and returns the
// resolver.
func NewGeocoderResolver(apiKey string, logger *slog.Logger) *GeocoderResolver {
	geocoder.ApiKey = apiKey
	return &GeocoderResolver{logger: logger.With("component", "geo.geocoder")}
}

// Resolve implements geo.Resolver.
func (r *GeocoderResolver) Resolve(_ context.Context, name string) (domaingeo.Coordinates, bool) {
	location, err := geocoder.Geocoding(geocoder.Address{
		City:    name,
		Country: "Philippines",
	})
	if err != nil {
		r.logger.Warn("geocoding failed", "city", name, "error", err)
		return domaingeo.Coordinates{}, false
	}
	return domaingeo.Coordinates{Lat: location.Latitude, Lon: location.Longitude}, true
}

var _ domaingeo.Resolver = (*GeocoderResolver)(nil)
