package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fred-insights/internal/infra/config"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, collectors *metrics.Collectors) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()

	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(handler.logger),
		metricsMiddleware(collectors),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		gin.CustomRecovery(recoverPanic),
	)
	router.NoRoute(routeNotFound)

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(collectors.Handler()))

	api := router.Group("/api")
	{
		api.POST("/fred/fetch", handler.FetchSeries)
		api.POST("/summarize", handler.Summarize)
		api.GET("/categories", handler.ListCategories)
		api.GET("/categories/:id", handler.GetCategory)
		api.GET("/categories/:id/series", handler.CategorySeries)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
