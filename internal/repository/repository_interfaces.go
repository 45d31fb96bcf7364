package repository

import (
	"context"

	"github.com/guttosm/badge-service/internal/domain/model"
)

// RequestLogRepositoryInterface defines the request log store operations.
type RequestLogRepositoryInterface interface {
	Create(ctx context.Context, entry *model.RequestLog) error
	CreateMany(ctx context.Context, entries []*model.RequestLog) error
	Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error)
	Count(ctx context.Context, q model.RequestLogQuery) (int64, error)
}

var (
	_ RequestLogRepositoryInterface = (*RequestLogRepository)(nil)
	_ RequestLogRepositoryInterface = (*RequestLogRepositoryWithCircuitBreaker)(nil)
)
