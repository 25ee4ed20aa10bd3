package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jpalima/habagat/internal/domain/forecast"
	"github.com/jpalima/habagat/internal/domain/geo"
	"github.com/jpalima/habagat/internal/domain/observation"
	"github.com/jpalima/habagat/internal/infra/chart"
	"github.com/jpalima/habagat/internal/infra/config"
	apperrors "github.com/jpalima/habagat/pkg/errors"
)

func TestRouter_Health(t *testing.T) {
	server := newServerUnderTest(t, &stubObs{}, &stubForecast{}, nil)

	rec := performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_IngestReturnsRowErrors(t *testing.T) {
	obs := &stubObs{
		ingestFn: func(ctx context.Context, r io.Reader) (observation.IngestResult, error) {
			return observation.IngestResult{
				Inserted: 2,
				Dropped:  1,
				Errors:   []observation.RowError{{Row: 2, Reason: "missing city"}},
			}, nil
		},
	}
	server := newServerUnderTest(t, obs, &stubForecast{}, nil)

	rec := performRequest(server, http.MethodPost, "/api/v1/ingest", "city,timestamp,temperature\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var result observation.IngestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 2, result.Inserted)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 2, result.Errors[0].Row)
}

func TestRouter_ObservationsByCityNotFound(t *testing.T) {
	server := newServerUnderTest(t, &stubObs{}, &stubForecast{}, nil)

	rec := performRequest(server, http.MethodGet, "/api/v1/observations/Atlantis", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_GenerateReturnsSummary(t *testing.T) {
	fc := &stubForecast{
		generateFn: func(ctx context.Context) (forecast.RunSummary, error) {
			return forecast.RunSummary{BatchID: "batch-1", CitiesCount: 3, Accuracy: 87.5}, nil
		},
	}
	server := newServerUnderTest(t, &stubObs{}, fc, nil)

	rec := performRequest(server, http.MethodPost, "/api/v1/forecasts/generate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary forecast.RunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, "batch-1", summary.BatchID)
	require.Equal(t, 3, summary.CitiesCount)
}

func TestRouter_GenerateWithoutDataConflicts(t *testing.T) {
	fc := &stubForecast{
		generateFn: func(ctx context.Context) (forecast.RunSummary, error) {
			return forecast.RunSummary{}, apperrors.Wrap("no_data", "no observations have been ingested", nil)
		},
	}
	server := newServerUnderTest(t, &stubObs{}, fc, nil)

	rec := performRequest(server, http.MethodPost, "/api/v1/forecasts/generate", "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_ExportForecastsCSV(t *testing.T) {
	fc := &stubForecast{
		exportFn: func(ctx context.Context, w io.Writer) error {
			_, err := w.Write([]byte("City,Date,Temperature,Rainfall,Confidence%\n"))
			return err
		},
	}
	server := newServerUnderTest(t, &stubObs{}, fc, nil)

	rec := performRequest(server, http.MethodGet, "/api/v1/forecasts/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Body.String(), "City,Date,"))
}

func TestRouter_ProtectedEndpointsRequireToken(t *testing.T) {
	auth := &config.AuthConfig{Enabled: true, Secret: "test-secret", Issuer: "habagat"}
	server := newServerUnderTest(t, &stubObs{}, &stubForecast{}, auth)

	rec := performRequest(server, http.MethodPost, "/api/v1/forecasts/generate", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Read endpoints stay open.
	rec = performRequest(server, http.MethodGet, "/api/v1/forecasts", "")
	require.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func performRequest(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newServerUnderTest(t *testing.T, obs observation.Service, fc forecast.Service, auth *config.AuthConfig) *http.Server {
	t.Helper()
	handler := NewHandler(obs, fc, geo.NewService(nil), chart.NewRenderer(), newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	if auth != nil {
		cfg.Auth = *auth
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubObs struct {
	ingestFn func(ctx context.Context, r io.Reader) (observation.IngestResult, error)
}

func (s *stubObs) Ingest(ctx context.Context, r io.Reader) (observation.IngestResult, error) {
	if s.ingestFn != nil {
		return s.ingestFn(ctx, r)
	}
	return observation.IngestResult{}, nil
}

func (s *stubObs) ListAll(context.Context) ([]observation.Observation, error) {
	return nil, nil
}

func (s *stubObs) ListByCity(context.Context, string) ([]observation.Observation, error) {
	return nil, nil
}

func (s *stubObs) Cities(context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubObs) Count(context.Context) (int, error) {
	return 0, nil
}

func (s *stubObs) DailySeries(context.Context, string) ([]observation.DailyObservation, error) {
	return nil, nil
}

type stubForecast struct {
	generateFn func(ctx context.Context) (forecast.RunSummary, error)
	exportFn   func(ctx context.Context, w io.Writer) error
}

func (s *stubForecast) Generate(ctx context.Context) (forecast.RunSummary, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx)
	}
	return forecast.RunSummary{}, nil
}

func (s *stubForecast) LatestBatch(context.Context) (forecast.Batch, error) {
	return forecast.Batch{}, nil
}

func (s *stubForecast) LatestByCity(context.Context, string) ([]forecast.Forecast, error) {
	return nil, nil
}

func (s *stubForecast) LatestRun(context.Context) (forecast.RunSummary, error) {
	return forecast.RunSummary{}, nil
}

func (s *stubForecast) ExportCSV(ctx context.Context, w io.Writer) error {
	if s.exportFn != nil {
		return s.exportFn(ctx, w)
	}
	return nil
}
