package obsrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpalima/habagat/internal/domain/observation"
)

// PostgresRepository implements observation.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert bulk-loads observations in a single round trip.
func (r *PostgresRepository) Insert(ctx context.Context, records []observation.Observation) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, []any{
			record.City,
			record.Timestamp,
			record.Temperature,
			record.Rainfall,
			record.WindSpeed,
			record.Humidity,
			record.Pressure,
			record.Visibility,
			record.CloudCoverage,
		})
	}
	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"observations"},
		[]string{"city", "observed_at", "temperature", "rainfall", "wind_speed", "humidity", "pressure", "visibility", "cloud_coverage"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// ListAll fetches every observation ordered by time.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]observation.Observation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT city, observed_at, temperature, rainfall, wind_speed, humidity, pressure, visibility, cloud_coverage
		FROM observations
		ORDER BY observed_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservations(rows)
}

// ListByCity fetches a single city's history, case-insensitively.
func (r *PostgresRepository) ListByCity(ctx context.Context, city string) ([]observation.Observation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT city, observed_at, temperature, rainfall, wind_speed, humidity, pressure, visibility, cloud_coverage
		FROM observations
		WHERE LOWER(city) = LOWER($1)
		ORDER BY observed_at
	`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservations(rows)
}

// Cities lists the distinct city names present in the store.
func (r *PostgresRepository) Cities(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT city FROM observations ORDER BY city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		out = append(out, city)
	}
	return out, rows.Err()
}

// Count reports the total number of stored observations.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM observations`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanObservations(rows pgx.Rows) ([]observation.Observation, error) {
	var out []observation.Observation
	for rows.Next() {
		var record observation.Observation
		if err := rows.Scan(
			&record.City,
			&record.Timestamp,
			&record.Temperature,
			&record.Rainfall,
			&record.WindSpeed,
			&record.Humidity,
			&record.Pressure,
			&record.Visibility,
			&record.CloudCoverage,
		); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

var _ observation.Repository = (*PostgresRepository)(nil)
