// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/badge-service/config"
	"github.com/guttosm/badge-service/docs"
	"github.com/guttosm/badge-service/internal/http"
	"github.com/guttosm/badge-service/internal/middleware"
)

// App is the wired badge service together with the background resources
// released by Close.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents

	limiter     *middleware.RateLimiter
	requestLogs *middleware.AsyncLogger
}

// InitializeApp creates and wires all application dependencies. It fails
// if the appearance or the request template cannot be used.
func InitializeApp(cfg *config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	services, err := InitializeServices(cfg)
	if err != nil {
		return nil, err
	}

	dbComponents := InitializeDatabase(cfg.Database, cfg.Resilience)

	var requestLogs *middleware.AsyncLogger
	if dbComponents != nil {
		requestLogs = middleware.NewAsyncLogger(dbComponents.RequestLogs, middleware.DefaultAsyncLoggerConfig())
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	routerComponents := InitializeRouter(services, dbComponents, limiter, requestLogs, cfg)
	docs.SwaggerInfo.BasePath = path.Join("/", cfg.Server.PathBase)

	return &App{
		Router:      http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services:    services,
		Database:    dbComponents,
		limiter:     limiter,
		requestLogs: requestLogs,
	}, nil
}

// Close stops background workers, flushes pending request logs and
// disconnects from the database. Call it after the server has stopped.
func (a *App) Close(ctx context.Context) error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.requestLogs != nil {
		a.requestLogs.Stop()
	}
	if a.Services != nil && a.Services.Cache != nil {
		a.Services.Cache.Stop()
	}
	return a.Database.Close(ctx)
}
