package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jpalima/habagat/internal/domain/forecast"
	"github.com/jpalima/habagat/internal/domain/geo"
	"github.com/jpalima/habagat/internal/domain/observation"
	"github.com/jpalima/habagat/internal/infra/chart"
	apperrors "github.com/jpalima/habagat/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	obsSvc      observation.Service
	forecastSvc forecast.Service
	geoSvc      geo.Service
	charts      *chart.Renderer
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(obsSvc observation.Service, forecastSvc forecast.Service, geoSvc geo.Service, charts *chart.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		obsSvc:      obsSvc,
		forecastSvc: forecastSvc,
		geoSvc:      geoSvc,
		charts:      charts,
		logger:      logger.With("component", "http.handler"),
	}
}

// Ingest accepts a CSV payload and imports every parseable row. Row-level
// failures come back in the response body rather than failing the request.
func (h *Handler) Ingest(c *gin.Context) {
	result, err := h.obsSvc.Ingest(c.Request.Context(), c.Request.Body)
	if err != nil {
		abortWithError(c, mapDomainError(err, "ingest_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListObservations returns every stored observation.
func (h *Handler) ListObservations(c *gin.Context) {
	records, err := h.obsSvc.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, mapDomainError(err, "observations_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"observations": records})
}

// ListObservationsByCity returns one city's history.
func (h *Handler) ListObservationsByCity(c *gin.Context) {
	records, err := h.obsSvc.ListByCity(c.Request.Context(), c.Param("city"))
	if err != nil {
		abortWithError(c, mapDomainError(err, "observations_failed"))
		return
	}
	if len(records) == 0 {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "no observations for city", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"observations": records})
}

// ListCities returns known cities annotated with map coordinates.
func (h *Handler) ListCities(c *gin.Context) {
	names, err := h.obsSvc.Cities(c.Request.Context())
	if err != nil {
		abortWithError(c, mapDomainError(err, "cities_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": h.geoSvc.Annotate(c.Request.Context(), names)})
}

// Generate runs a forecast batch over all known cities.
func (h *Handler) Generate(c *gin.Context) {
	summary, err := h.forecastSvc.Generate(c.Request.Context())
	if err != nil {
		abortWithError(c, mapDomainError(err, "generate_failed"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// LatestForecasts returns the most recent batch.
func (h *Handler) LatestForecasts(c *gin.Context) {
	batch, err := h.forecastSvc.LatestBatch(c.Request.Context())
	if err != nil {
		abortWithError(c, mapDomainError(err, "forecasts_failed"))
		return
	}
	c.JSON(http.StatusOK, batch)
}

// LatestForecastsByCity returns the most recent batch filtered to a city.
func (h *Handler) LatestForecastsByCity(c *gin.Context) {
	forecasts, err := h.forecastSvc.LatestByCity(c.Request.Context(), c.Param("city"))
	if err != nil {
		abortWithError(c, mapDomainError(err, "forecasts_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}

// ExportForecasts streams the latest batch as CSV.
func (h *Handler) ExportForecasts(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="forecasts.csv"`)
	if err := h.forecastSvc.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		abortWithError(c, mapDomainError(err, "export_failed"))
		return
	}
	c.Status(http.StatusOK)
}

// LatestRun returns the summary of the most recent generation run.
func (h *Handler) LatestRun(c *gin.Context) {
	summary, err := h.forecastSvc.LatestRun(c.Request.Context())
	if err != nil {
		abortWithError(c, mapDomainError(err, "run_failed"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TrainingChart renders the latest run's loss curve as HTML.
func (h *Handler) TrainingChart(c *gin.Context) {
	summary, err := h.forecastSvc.LatestRun(c.Request.Context())
	if err != nil {
		abortWithError(c, mapDomainError(err, "chart_failed"))
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.charts.TrainingHistory(c.Writer, summary.TrainingCurve); err != nil {
		h.logger.Error("chart render failed", "error", err)
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chart_failed", "failed to render chart", err))
	}
}

// CityForecastChart renders one city's forecast horizon as HTML.
func (h *Handler) CityForecastChart(c *gin.Context) {
	city := c.Param("city")
	forecasts, err := h.forecastSvc.LatestByCity(c.Request.Context(), city)
	if err != nil {
		abortWithError(c, mapDomainError(err, "chart_failed"))
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.charts.CityForecast(c.Writer, city, forecasts); err != nil {
		h.logger.Error("chart render failed", "city", city, "error", err)
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chart_failed", "failed to render chart", err))
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func mapDomainError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "no_data"):
		status = http.StatusConflict
		code = "no_data"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
