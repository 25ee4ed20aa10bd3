package forecast

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jpalima/habagat/internal/domain/observation"
)

func newServiceUnderTest(t *testing.T, obs observation.Service) (*service, *stubRepo, *stubRunStore) {
	t.Helper()
	repo := &stubRepo{}
	runs := &stubRunStore{}
	svc, ok := NewService(testGeneratorConfig(), obs, repo, runs, newTestLogger()).(*service)
	require.True(t, ok)
	svc.newRand = func() RandSource { return fixedSource{0.5} }
	svc.now = func() time.Time { return time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC) }
	return svc, repo, runs
}

func TestGeneratePersistsBatchAndSummary(t *testing.T) {
	obs := &stubObsService{
		cities: []string{"Baguio", "Vigan"},
		series: map[string][]observation.DailyObservation{
			"Baguio": baguioHistory(),
			"Vigan":  baguioHistory()[:3],
		},
		count: 8,
	}
	svc, repo, runs := newServiceUnderTest(t, obs)

	summary, err := svc.Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.batches, 1)
	require.Len(t, repo.batches[0].Forecasts, 30)
	require.Equal(t, repo.batches[0].ID, summary.BatchID)

	require.Equal(t, 1, summary.CitiesCount)
	require.Equal(t, []string{"Vigan"}, summary.SkippedCities)
	require.Equal(t, 8, summary.ObservationCount)
	require.Len(t, summary.TrainingCurve, 35)
	require.NotEmpty(t, summary.ModelID)

	var confSum float64
	for _, f := range repo.batches[0].Forecasts {
		confSum += f.Confidence
	}
	require.InDelta(t, confSum/30*100, summary.Accuracy, 1e-9)

	require.True(t, runs.saved)
	require.Equal(t, summary.BatchID, runs.summary.BatchID)
}

func TestGenerateWithoutObservations(t *testing.T) {
	svc, _, _ := newServiceUnderTest(t, &stubObsService{})

	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no observations")
}

func TestGenerateAppendsBatches(t *testing.T) {
	obs := &stubObsService{
		cities: []string{"Baguio"},
		series: map[string][]observation.DailyObservation{"Baguio": baguioHistory()},
	}
	svc, repo, _ := newServiceUnderTest(t, obs)

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)
	_, err = svc.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.batches, 2)
}

func TestLatestBatchNotFound(t *testing.T) {
	svc, _, _ := newServiceUnderTest(t, &stubObsService{})

	_, err := svc.LatestBatch(context.Background())
	require.Error(t, err)
}

func TestExportCSVLayout(t *testing.T) {
	obs := &stubObsService{
		cities: []string{"Baguio"},
		series: map[string][]observation.DailyObservation{"Baguio": baguioHistory()},
	}
	svc, _, _ := newServiceUnderTest(t, obs)

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, svc.ExportCSV(context.Background(), &sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 31)
	require.Equal(t, "City,Date,Temperature,Rainfall,Confidence%", lines[0])
	require.Equal(t, "Baguio,2025-04-01,18.4,1.0,89.8", lines[1])
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubObsService struct {
	cities []string
	series map[string][]observation.DailyObservation
	count  int
}

func (s *stubObsService) Ingest(context.Context, io.Reader) (observation.IngestResult, error) {
	return observation.IngestResult{}, nil
}

func (s *stubObsService) ListAll(context.Context) ([]observation.Observation, error) {
	return nil, nil
}

func (s *stubObsService) ListByCity(context.Context, string) ([]observation.Observation, error) {
	return nil, nil
}

func (s *stubObsService) Cities(context.Context) ([]string, error) {
	return s.cities, nil
}

func (s *stubObsService) Count(context.Context) (int, error) {
	return s.count, nil
}

func (s *stubObsService) DailySeries(_ context.Context, city string) ([]observation.DailyObservation, error) {
	return s.series[city], nil
}

type stubRepo struct {
	batches []Batch
}

func (r *stubRepo) InsertBatch(_ context.Context, batch Batch) error {
	r.batches = append(r.batches, batch)
	return nil
}

func (r *stubRepo) LatestBatch(context.Context) (Batch, bool, error) {
	if len(r.batches) == 0 {
		return Batch{}, false, nil
	}
	return r.batches[len(r.batches)-1], true, nil
}

func (r *stubRepo) LatestBatchByCity(_ context.Context, city string) ([]Forecast, error) {
	if len(r.batches) == 0 {
		return nil, nil
	}
	var out []Forecast
	for _, f := range r.batches[len(r.batches)-1].Forecasts {
		if strings.EqualFold(f.City, city) {
			out = append(out, f)
		}
	}
	return out, nil
}

type stubRunStore struct {
	summary RunSummary
	saved   bool
}

func (s *stubRunStore) SaveLatest(_ context.Context, summary RunSummary, _ time.Duration) error {
	s.summary = summary
	s.saved = true
	return nil
}

func (s *stubRunStore) Latest(context.Context) (RunSummary, bool, error) {
	if !s.saved {
		return RunSummary{}, false, nil
	}
	return s.summary, true, nil
}
