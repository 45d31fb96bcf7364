package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/badge-service/config"
	"github.com/guttosm/badge-service/internal/circuitbreaker"
	"github.com/guttosm/badge-service/internal/repository"
	"github.com/guttosm/badge-service/internal/service"
)

const setupTimeout = 10 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	RequestLogs        service.RequestLogService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the request log store.
// It returns nil if the database is disabled or unreachable; badges are
// served either way.
func InitializeDatabase(cfg config.DatabaseConfig, resilience config.ResilienceConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without request log store")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.LogsTTL > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
		defer cancel()
		if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
			log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set request log TTL index")
		}
	}

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: resilience.FailureThreshold,
		SuccessThreshold: resilience.SuccessThreshold,
		Timeout:          resilience.Timeout,
		Name:             "mongodb-logs",
	})

	repo := repository.NewRequestLogRepositoryWithCircuitBreaker(repository.NewRequestLogRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                 db,
		RequestLogs:        service.NewRequestLogService(repo),
		LogsCircuitBreaker: logsCB,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
