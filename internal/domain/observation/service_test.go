package observation

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newObsServiceUnderTest() (Service, *fakeRepo) {
	repo := &fakeRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func TestIngestPartialSuccess(t *testing.T) {
	svc, repo := newObsServiceUnderTest()

	input := strings.Join([]string{
		"city,timestamp,temperature,rainfall",
		"Baguio,2025-03-01,18.2,0.4",
		",2025-03-02,19.0,0.0",
		"Baguio,bad-date,19.1,0.0",
		"Vigan,2025-03-03,27.1,1.2",
	}, "\n")

	result, err := svc.Ingest(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, result.Inserted)
	require.Equal(t, 2, result.Dropped)
	require.Len(t, result.Errors, 2)
	require.Equal(t, 2, result.Errors[0].Row)
	require.Equal(t, 3, result.Errors[1].Row)
	require.Len(t, repo.records, 2)
}

func TestIngestRejectsUnusableHeader(t *testing.T) {
	svc, _ := newObsServiceUnderTest()

	_, err := svc.Ingest(context.Background(), strings.NewReader("foo,bar\n1,2"))
	require.Error(t, err)
}

func TestListByCityRequiresName(t *testing.T) {
	svc, _ := newObsServiceUnderTest()

	_, err := svc.ListByCity(context.Background(), "  ")
	require.Error(t, err)
}

func TestDailySeriesAggregatesReadings(t *testing.T) {
	svc, repo := newObsServiceUnderTest()
	repo.records = []Observation{
		{City: "Baguio", Timestamp: time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC), Temperature: 18, Rainfall: 1},
		{City: "Baguio", Timestamp: time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), Temperature: 20, Rainfall: 0.5},
		{City: "Baguio", Timestamp: time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC), Temperature: 17, Rainfall: 0},
	}

	series, err := svc.DailySeries(context.Background(), "Baguio")
	require.NoError(t, err)
	require.Len(t, series, 2)

	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
	require.InDelta(t, 19.0, series[0].Temperature, 1e-9)
	require.InDelta(t, 1.5, series[0].Rainfall, 1e-9)
	require.Equal(t, 2, series[0].Records)

	require.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), series[1].Date)
	require.InDelta(t, 17.0, series[1].Temperature, 1e-9)
}

func TestCitiesSorted(t *testing.T) {
	svc, repo := newObsServiceUnderTest()
	repo.cities = []string{"Vigan", "Baguio"}

	cities, err := svc.Cities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Baguio", "Vigan"}, cities)
}

type fakeRepo struct {
	mu      sync.Mutex
	records []Observation
	cities  []string
}

func (r *fakeRepo) Insert(_ context.Context, records []Observation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeRepo) ListAll(context.Context) ([]Observation, error) {
	return r.records, nil
}

func (r *fakeRepo) ListByCity(_ context.Context, city string) ([]Observation, error) {
	var out []Observation
	for _, record := range r.records {
		if strings.EqualFold(record.City, city) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeRepo) Cities(context.Context) ([]string, error) {
	return r.cities, nil
}

func (r *fakeRepo) Count(context.Context) (int, error) {
	return len(r.records), nil
}
