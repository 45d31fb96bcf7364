//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/internal/circuitbreaker"
	"github.com/guttosm/badge-service/internal/middleware"
)

func TestInitializeRouter(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Server.PathBase = "/badges"
	cfg.Server.RequestTimeout = 3 * time.Second
	cfg.Server.SwaggerUser = "docs"
	cfg.Server.SwaggerPass = "secret"

	services, err := InitializeServices(cfg)
	require.NoError(t, err)
	t.Cleanup(services.Cache.Stop)

	t.Run("without database", func(t *testing.T) {
		components := InitializeRouter(services, nil, nil, nil, cfg)

		assert.NotNil(t, components.Handler)
		assert.NotNil(t, components.HealthHandler)
		assert.Equal(t, "/badges", components.Config.PathBase)
		assert.Equal(t, 3*time.Second, components.Config.RequestTimeout)
		assert.Equal(t, "docs", components.Config.SwaggerUser)
		assert.Nil(t, components.Config.RateLimiter)
		assert.Nil(t, components.Config.RequestLogs, "no request log sink without a database")
	})

	t.Run("with limiter and database", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(10, time.Minute)
		t.Cleanup(limiter.Stop)
		db := &DatabaseComponents{LogsCircuitBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig())}

		components := InitializeRouter(services, db, limiter, nil, cfg)

		assert.Same(t, limiter, components.Config.RateLimiter)
		assert.Nil(t, components.Config.RequestLogs)
	})
}
