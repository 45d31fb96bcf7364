package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/repository"
)

const (
	defaultLogMessage = "HTTP request"
	// maxUserAgentLen bounds the stored User-Agent header.
	maxUserAgentLen = 512
)

// ErrNilRequestLog is returned when a nil entry is submitted.
var ErrNilRequestLog = errors.New("request log entry is nil")

// RequestLogService stores and queries served-request logs.
type RequestLogService interface {
	// CreateLog stores a single request log.
	CreateLog(ctx context.Context, entry *model.RequestLog) error

	// CreateLogs stores request logs in bulk. Nil entries are skipped.
	CreateLogs(ctx context.Context, entries []*model.RequestLog) error

	// QueryLogs returns request logs matching q, newest first.
	QueryLogs(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error)

	// CountLogs returns the number of request logs matching q.
	CountLogs(ctx context.Context, q model.RequestLogQuery) (int64, error)
}

// RequestLogServiceImpl implements RequestLogService over a repository.
type RequestLogServiceImpl struct {
	repo repository.RequestLogRepositoryInterface
	now  func() time.Time
}

// NewRequestLogService creates a request log service backed by repo.
func NewRequestLogService(repo repository.RequestLogRepositoryInterface) RequestLogService {
	return &RequestLogServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// CreateLog stores a single request log.
func (s *RequestLogServiceImpl) CreateLog(ctx context.Context, entry *model.RequestLog) error {
	if entry == nil {
		return ErrNilRequestLog
	}
	s.normalize(entry)
	return s.repo.Create(ctx, entry)
}

// CreateLogs stores request logs in bulk.
func (s *RequestLogServiceImpl) CreateLogs(ctx context.Context, entries []*model.RequestLog) error {
	batch := make([]*model.RequestLog, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		s.normalize(entry)
		batch = append(batch, entry)
	}
	if len(batch) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, batch)
}

// QueryLogs returns request logs matching q, newest first.
func (s *RequestLogServiceImpl) QueryLogs(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error) {
	if q.Skip < 0 {
		q.Skip = 0
	}
	return s.repo.Query(ctx, q)
}

// CountLogs returns the number of request logs matching q.
func (s *RequestLogServiceImpl) CountLogs(ctx context.Context, q model.RequestLogQuery) (int64, error) {
	return s.repo.Count(ctx, q)
}

func (s *RequestLogServiceImpl) normalize(entry *model.RequestLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
	if entry.Level == "" {
		entry.Level = LogLevelForStatus(entry.StatusCode)
	}
	if entry.Message == "" {
		entry.Message = defaultLogMessage
	}
	if len(entry.UserAgent) > maxUserAgentLen {
		entry.UserAgent = entry.UserAgent[:maxUserAgentLen]
	}
}

// LogLevelForStatus returns the log level for an HTTP status code.
func LogLevelForStatus(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
