package observation

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	apperrors "github.com/jpalima/habagat/pkg/errors"
	"github.com/jpalima/habagat/pkg/util"
)

// Service exposes observation ingestion and query capabilities.
type Service interface {
	Ingest(ctx context.Context, r io.Reader) (IngestResult, error)
	ListAll(ctx context.Context) ([]Observation, error)
	ListByCity(ctx context.Context, city string) ([]Observation, error)
	Cities(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	DailySeries(ctx context.Context, city string) ([]DailyObservation, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the observation domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "observation.service"),
	}
}

// Ingest parses CSV input and stores every valid row. Malformed rows are
// accumulated into the result, never failing the import as a whole.
func (s *service) Ingest(ctx context.Context, r io.Reader) (IngestResult, error) {
	records, rowErrors, err := parseCSV(r)
	if err != nil {
		return IngestResult{}, apperrors.Wrap("invalid_input", "csv parse failed", err)
	}
	if len(records) > 0 {
		if err := s.repo.Insert(ctx, records); err != nil {
			return IngestResult{}, apperrors.Wrap("store_error", "failed to persist observations", err)
		}
	}
	s.logger.Info("csv ingested", "inserted", len(records), "dropped", len(rowErrors))
	return IngestResult{
		Inserted: len(records),
		Dropped:  len(rowErrors),
		Errors:   rowErrors,
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]Observation, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "failed to list observations", err)
	}
	return records, nil
}

func (s *service) ListByCity(ctx context.Context, city string) ([]Observation, error) {
	if strings.TrimSpace(city) == "" {
		return nil, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	records, err := s.repo.ListByCity(ctx, city)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "failed to list observations", err)
	}
	return records, nil
}

func (s *service) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.repo.Cities(ctx)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "failed to list cities", err)
	}
	sort.Strings(cities)
	return cities, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.Wrap("store_error", "failed to count observations", err)
	}
	return count, nil
}

// DailySeries collapses a city's raw readings into one record per calendar
// day: mean temperature, summed rainfall. The forecast generator consumes
// this series rather than raw readings.
func (s *service) DailySeries(ctx context.Context, city string) ([]DailyObservation, error) {
	records, err := s.ListByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	return aggregateDaily(records), nil
}

func aggregateDaily(records []Observation) []DailyObservation {
	type bucket struct {
		tempSum float64
		rainSum float64
		count   int
		city    string
	}
	buckets := make(map[int64]*bucket)
	for _, record := range records {
		day := util.DayOf(record.Timestamp)
		key := day.Unix()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{city: record.City}
			buckets[key] = b
		}
		b.tempSum += record.Temperature
		b.rainSum += record.Rainfall
		b.count++
	}

	out := make([]DailyObservation, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, DailyObservation{
			City:        b.city,
			Date:        util.DayOf(time.Unix(key, 0)),
			Temperature: b.tempSum / float64(b.count),
			Rainfall:    b.rainSum,
			Records:     b.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
