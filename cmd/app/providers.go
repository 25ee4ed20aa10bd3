package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/jpalima/habagat/internal/domain/forecast"
	"github.com/jpalima/habagat/internal/domain/geo"
	"github.com/jpalima/habagat/internal/domain/observation"
	"github.com/jpalima/habagat/internal/infra/config"
	"github.com/jpalima/habagat/internal/infra/forecastrepo"
	infrageo "github.com/jpalima/habagat/internal/infra/geo"
	"github.com/jpalima/habagat/internal/infra/obsrepo"
	"github.com/jpalima/habagat/internal/infra/runstore"
	"github.com/jpalima/habagat/internal/scheduler"
)

func provideForecastConfig(cfg *config.Config) (forecast.Config, error) {
	anchor, err := cfg.AnchorTime()
	if err != nil {
		return forecast.Config{}, err
	}
	return forecast.Config{
		SequenceLength:    cfg.Forecast.SequenceLength,
		HorizonDays:       cfg.Forecast.HorizonDays,
		AnchorDate:        anchor,
		SeasonalAmplitude: cfg.Forecast.SeasonalAmplitude,
		MinTemperature:    cfg.Forecast.MinTemperature,
		MaxTemperature:    cfg.Forecast.MaxTemperature,
		MinConfidence:     cfg.Forecast.MinConfidence,
		MaxConfidence:     cfg.Forecast.MaxConfidence,
		TrainingEpochs:    cfg.Forecast.TrainingEpochs,
		ModelVersion:      cfg.Forecast.ModelVersion,
	}, nil
}

// providePool returns a ready postgres pool, or nil when the DSN is unset
// or the database is unreachable; repositories then fall back to memory.
func providePool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Store.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Store.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Store.Postgres.MaxConns
	}
	if cfg.Store.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Store.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideObservationRepository(pool *pgxpool.Pool) observation.Repository {
	if pool == nil {
		return obsrepo.NewMemoryRepository()
	}
	return obsrepo.NewPostgresRepository(pool)
}

func provideForecastRepository(pool *pgxpool.Pool) forecast.Repository {
	if pool == nil {
		return forecastrepo.NewMemoryRepository()
	}
	return forecastrepo.NewPostgresRepository(pool)
}

func provideRunStore(cfg *config.Config, logger *slog.Logger) forecast.RunStore {
	if cfg.Store.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return runstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return runstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey run store enabled", "addr", cfg.Store.Valkey.Addr)
			return runstore.NewValkeyStore(client, "habagat")
		}
	}
	return runstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Store.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Store.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Store.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideGeoService(cfg *config.Config, logger *slog.Logger) geo.Service {
	if key := strings.TrimSpace(cfg.Geo.GeocoderAPIKey); key != "" {
		return geo.NewService(infrageo.NewGeocoderResolver(key, logger))
	}
	return geo.NewService(nil)
}

func provideScheduler(cfg *config.Config, svc forecast.Service, logger *slog.Logger) *scheduler.Scheduler {
	return scheduler.New(svc, cfg.Forecast.RefreshInterval, logger)
}
