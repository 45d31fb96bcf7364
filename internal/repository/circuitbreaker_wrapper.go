package repository

import (
	"context"
	"errors"

	"github.com/guttosm/badge-service/internal/circuitbreaker"
	"github.com/guttosm/badge-service/internal/domain/model"
)

// RequestLogRepositoryWithCircuitBreaker guards a request log store with a circuit breaker.
type RequestLogRepositoryWithCircuitBreaker struct {
	repo           RequestLogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRequestLogRepositoryWithCircuitBreaker wraps repo with cb.
func NewRequestLogRepositoryWithCircuitBreaker(repo RequestLogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *RequestLogRepositoryWithCircuitBreaker {
	return &RequestLogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores one request log. Writes rejected by an open circuit are
// dropped without error.
func (r *RequestLogRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.RequestLog) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores request logs in bulk. Writes rejected by an open
// circuit are dropped without error.
func (r *RequestLogRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.RequestLog) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves request logs with circuit breaker protection.
func (r *RequestLogRepositoryWithCircuitBreaker) Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error) {
	var result []*model.RequestLog
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, q)
		return cbErr
	})
	return result, err
}

// Count counts request logs with circuit breaker protection.
func (r *RequestLogRepositoryWithCircuitBreaker) Count(ctx context.Context, q model.RequestLogQuery) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, q)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *RequestLogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
