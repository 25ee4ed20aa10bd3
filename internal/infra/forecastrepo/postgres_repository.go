package forecastrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

// PostgresRepository implements forecast.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InsertBatch writes the batch header then bulk-loads its rows.
func (r *PostgresRepository) InsertBatch(ctx context.Context, batch forecast.Batch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO forecast_batches (id, created_at)
		VALUES ($1, $2)
	`, batch.ID, batch.CreatedAt); err != nil {
		return err
	}

	rows := make([][]any, 0, len(batch.Forecasts))
	for _, f := range batch.Forecasts {
		rows = append(rows, []any{batch.ID, f.City, f.Date, f.Temperature, f.Rainfall, f.Confidence, f.ModelVersion})
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"forecasts"},
			[]string{"batch_id", "city", "forecast_date", "temperature", "rainfall", "confidence", "model_version"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// LatestBatch returns the most recently created batch with its rows.
func (r *PostgresRepository) LatestBatch(ctx context.Context) (forecast.Batch, bool, error) {
	var batch forecast.Batch
	err := r.pool.QueryRow(ctx, `
		SELECT id, created_at
		FROM forecast_batches
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&batch.ID, &batch.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return forecast.Batch{}, false, nil
	}
	if err != nil {
		return forecast.Batch{}, false, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT city, forecast_date, temperature, rainfall, confidence, model_version
		FROM forecasts
		WHERE batch_id = $1
		ORDER BY city, forecast_date
	`, batch.ID)
	if err != nil {
		return forecast.Batch{}, false, err
	}
	defer rows.Close()
	batch.Forecasts, err = scanForecasts(rows)
	if err != nil {
		return forecast.Batch{}, false, err
	}
	return batch, true, nil
}

// LatestBatchByCity filters the newest batch down to one city.
func (r *PostgresRepository) LatestBatchByCity(ctx context.Context, city string) ([]forecast.Forecast, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.city, f.forecast_date, f.temperature, f.rainfall, f.confidence, f.model_version
		FROM forecasts f
		JOIN (
			SELECT id FROM forecast_batches ORDER BY created_at DESC LIMIT 1
		) latest ON latest.id = f.batch_id
		WHERE LOWER(f.city) = LOWER($1)
		ORDER BY f.forecast_date
	`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForecasts(rows)
}

func scanForecasts(rows pgx.Rows) ([]forecast.Forecast, error) {
	var out []forecast.Forecast
	for rows.Next() {
		var f forecast.Forecast
		if err := rows.Scan(&f.City, &f.Date, &f.Temperature, &f.Rainfall, &f.Confidence, &f.ModelVersion); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

var _ forecast.Repository = (*PostgresRepository)(nil)
