package forecast

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalima/habagat/internal/domain/observation"
	apperrors "github.com/jpalima/habagat/pkg/errors"
	"github.com/jpalima/habagat/pkg/util"
)

// Service runs forecast generation and serves generated batches.
type Service interface {
	Generate(ctx context.Context) (RunSummary, error)
	LatestBatch(ctx context.Context) (Batch, error)
	LatestByCity(ctx context.Context, city string) ([]Forecast, error)
	LatestRun(ctx context.Context) (RunSummary, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type service struct {
	cfg     Config
	obs     observation.Service
	repo    Repository
	runs    RunStore
	logger  *slog.Logger
	newRand func() RandSource
	now     func() time.Time

	// Serializes generation runs: a single designated writer instead of
	// the racy process-wide cache the dashboard used to keep.
	genMu sync.Mutex
}

// NewService wires up the forecast domain.
func NewService(cfg Config, obs observation.Service, repo Repository, runs RunStore, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		obs:    obs,
		repo:   repo,
		runs:   runs,
		logger: logger.With("component", "forecast.service"),
		newRand: func() RandSource {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now: util.NowUTC,
	}
}

// Generate produces a fresh batch over every known city with sufficient
// history, persists it, and records the run summary. Cities lacking history
// are skipped and surfaced on the summary rather than failing the run.
func (s *service) Generate(ctx context.Context) (RunSummary, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	cities, err := s.obs.Cities(ctx)
	if err != nil {
		return RunSummary{}, err
	}
	if len(cities) == 0 {
		return RunSummary{}, apperrors.Wrap("no_data", "no observations have been ingested", nil)
	}

	rng := s.newRand()
	generator := NewGenerator(s.cfg)

	var (
		forecasts []Forecast
		skipped   []string
		covered   int
	)
	for _, city := range cities {
		history, err := s.obs.DailySeries(ctx, city)
		if err != nil {
			return RunSummary{}, err
		}
		cityForecasts := generator.GenerateCity(city, history, rng)
		if cityForecasts == nil {
			skipped = append(skipped, city)
			s.logger.Warn("city skipped, insufficient history", "city", city, "days", len(history))
			continue
		}
		forecasts = append(forecasts, cityForecasts...)
		covered++
	}

	batch := Batch{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Forecasts: forecasts,
	}
	if err := s.repo.InsertBatch(ctx, batch); err != nil {
		return RunSummary{}, apperrors.Wrap("store_error", "failed to persist forecast batch", err)
	}

	reporter := NewReporter(s.cfg)
	stats := reporter.Summarize(forecasts)
	curve := reporter.TrainingCurve(rng)
	meanLoss, meanValLoss := MeanLosses(curve)

	observationCount, err := s.obs.Count(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	summary := RunSummary{
		ModelID:            uuid.NewString(),
		BatchID:            batch.ID,
		Accuracy:           stats.Accuracy,
		AvgTemperature:     stats.AvgTemperature,
		TotalRainfall:      stats.TotalRainfall,
		MeanLoss:           meanLoss,
		MeanValidationLoss: meanValLoss,
		TrainingCurve:      curve,
		CitiesCount:        covered,
		SkippedCities:      skipped,
		ObservationCount:   observationCount,
		CreatedAt:          batch.CreatedAt,
	}
	if err := s.runs.SaveLatest(ctx, summary, 0); err != nil {
		return RunSummary{}, apperrors.Wrap("store_error", "failed to record run summary", err)
	}

	s.logger.Info("forecast batch generated",
		"batch", batch.ID,
		"cities", covered,
		"skipped", len(skipped),
		"forecasts", len(forecasts))
	return summary, nil
}

func (s *service) LatestBatch(ctx context.Context) (Batch, error) {
	batch, ok, err := s.repo.LatestBatch(ctx)
	if err != nil {
		return Batch{}, apperrors.Wrap("store_error", "failed to load forecast batch", err)
	}
	if !ok {
		return Batch{}, apperrors.Wrap("not_found", "no forecast batch has been generated", nil)
	}
	return batch, nil
}

func (s *service) LatestByCity(ctx context.Context, city string) ([]Forecast, error) {
	if strings.TrimSpace(city) == "" {
		return nil, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	forecasts, err := s.repo.LatestBatchByCity(ctx, city)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "failed to load forecasts", err)
	}
	if len(forecasts) == 0 {
		return nil, apperrors.Wrap("not_found", "no forecast available for city", nil)
	}
	return forecasts, nil
}

func (s *service) LatestRun(ctx context.Context) (RunSummary, error) {
	summary, ok, err := s.runs.Latest(ctx)
	if err != nil {
		return RunSummary{}, apperrors.Wrap("store_error", "failed to load run summary", err)
	}
	if !ok {
		return RunSummary{}, apperrors.Wrap("not_found", "no generation run has completed", nil)
	}
	return summary, nil
}

// ExportCSV streams the latest batch with the dashboard's column layout.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	batch, err := s.LatestBatch(ctx)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"City", "Date", "Temperature", "Rainfall", "Confidence%"}); err != nil {
		return apperrors.Wrap("export_error", "failed to write csv", err)
	}
	for _, f := range batch.Forecasts {
		row := []string{
			f.City,
			f.Date.Format("2006-01-02"),
			strconv.FormatFloat(f.Temperature, 'f', 1, 64),
			strconv.FormatFloat(f.Rainfall, 'f', 1, 64),
			strconv.FormatFloat(f.Confidence*100, 'f', 1, 64),
		}
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap("export_error", "failed to write csv", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap("export_error", "failed to flush csv", err)
	}
	return nil
}
