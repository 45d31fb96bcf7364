package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/badge-service/internal/metrics"
	"github.com/guttosm/badge-service/internal/middleware"
)

const (
	metricsPath = "/metrics"
	swaggerPath = "/_swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	// PathBase prefixes every route, e.g. "/badges". Empty serves from the root.
	PathBase       string
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	// RateLimiter limits requests per client IP when set. The caller owns it.
	RateLimiter *middleware.RateLimiter
	// RequestLogs receives a copy of every request log when set.
	RequestLogs middleware.RequestLogSink
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: middleware.DefaultTimeout,
	}
}

// NewRouter creates and configures the Gin router for the badge service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)

	base := router.Group(cfg.PathBase)
	NewInfrastructureRoutes(healthHandler, cfg.SwaggerUser, cfg.SwaggerPass).RegisterRoutes(base)
	if handler != nil {
		NewBadgeRoutes(handler).RegisterRoutes(base)
	}

	router.NoRoute(middleware.NotFound())

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.CORSOrigins),
		metrics.PrometheusMiddleware(),
		middleware.Compression(cfg.PathBase+metricsPath),
		middleware.RequestLogger(cfg.RequestLogs),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimit())
	}

	router.Use(middleware.Timeout(cfg.RequestTimeout))
}
