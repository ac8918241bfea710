// Package http assembles the gin router and the HTTP server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/innovatlas/country-innovation/internal/application/dashboard"
	"github.com/innovatlas/country-innovation/internal/config"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
	"github.com/innovatlas/country-innovation/internal/interfaces/http/handlers"
	"github.com/innovatlas/country-innovation/internal/interfaces/http/middleware"
)

// NewRouter builds the full route table with the middleware chain applied.
func NewRouter(cfg config.ServerConfig, svc *dashboard.Service, logger logging.Logger, metrics *prometheus.Metrics) *gin.Engine {
	gin.SetMode(ginMode(cfg.Mode))

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Metrics(metrics),
		middleware.CORS(cfg.AllowedOrigins),
	)

	health := handlers.NewHealthHandler(svc)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	ph := handlers.NewProfileHandler(svc)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/countries", ph.Countries)
		v1.GET("/options", ph.Options)
		v1.GET("/profiles/:code", ph.Profile)
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
