package observation

import "context"

// Repository abstracts observation persistence. City lookups are
// case-insensitive so dashboard searches like "baguio" still resolve.
type Repository interface {
	Insert(ctx context.Context, records []Observation) error
	ListAll(ctx context.Context) ([]Observation, error)
	ListByCity(ctx context.Context, city string) ([]Observation, error)
	Cities(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}
