//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/fred-insights/internal/bootstrap"
	"github.com/yanqian/fred-insights/internal/domain/catalog"
	"github.com/yanqian/fred-insights/internal/domain/series"
	"github.com/yanqian/fred-insights/internal/domain/summarizer"
	"github.com/yanqian/fred-insights/internal/infra/config"
	"github.com/yanqian/fred-insights/internal/infra/fred"
	httpiface "github.com/yanqian/fred-insights/internal/interface/http"
	"github.com/yanqian/fred-insights/pkg/logger"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewCollectors,
		provideSeriesConfig,
		provideCatalogConfig,
		provideFREDClient,
		provideGenerator,
		series.NewService,
		summarizer.NewService,
		catalog.NewDefault,
		wire.Bind(new(series.Provider), new(*fred.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
