package app

import (
	"github.com/guttosm/badge-service/config"
	"github.com/guttosm/badge-service/internal/http"
	"github.com/guttosm/badge-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
// dbComponents, limiter and requestLogs may be nil.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	limiter *middleware.RateLimiter,
	requestLogs *middleware.AsyncLogger,
	cfg *config.Config,
) *RouterComponents {
	handler := http.NewHandler(services.Badges)

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("metadata", services.MetadataBreaker)
	healthHandler.RegisterCache(services.Cache)
	if dbComponents != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		PathBase:       cfg.Server.PathBase,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		RateLimiter:    limiter,
	}
	if requestLogs != nil {
		routerCfg.RequestLogs = requestLogs
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
