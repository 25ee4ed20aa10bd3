package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jpalima/habagat/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/observations", handler.ListObservations)
		api.GET("/observations/:city", handler.ListObservationsByCity)
		api.GET("/cities", handler.ListCities)
		api.GET("/forecasts", handler.LatestForecasts)
		api.GET("/forecasts/export", handler.ExportForecasts)
		api.GET("/forecasts/:city", handler.LatestForecastsByCity)
		api.GET("/runs/latest", handler.LatestRun)
		api.GET("/charts/training", handler.TrainingChart)
		api.GET("/charts/forecast/:city", handler.CityForecastChart)

		protected := api.Group("", authMiddleware(cfg.Auth))
		{
			protected.POST("/ingest", handler.Ingest)
			protected.POST("/forecasts/generate", handler.Generate)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
