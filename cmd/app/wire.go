//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/jpalima/habagat/internal/bootstrap"
	"github.com/jpalima/habagat/internal/domain/forecast"
	"github.com/jpalima/habagat/internal/domain/observation"
	"github.com/jpalima/habagat/internal/infra/chart"
	"github.com/jpalima/habagat/internal/infra/config"
	httpiface "github.com/jpalima/habagat/internal/interface/http"
	"github.com/jpalima/habagat/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideForecastConfig,
		providePool,
		provideObservationRepository,
		provideForecastRepository,
		provideRunStore,
		provideGeoService,
		provideScheduler,
		observation.NewService,
		forecast.NewService,
		chart.NewRenderer,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
