//go:build !integration

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/mocks"
)

func newTestRequestLogService(repo *mocks.MockRequestLogRepository, now time.Time) *RequestLogServiceImpl {
	return &RequestLogServiceImpl{repo: repo, now: func() time.Time { return now }}
}

func TestNewRequestLogService(t *testing.T) {
	svc := NewRequestLogService(new(mocks.MockRequestLogRepository))

	assert.NotNil(t, svc)
	assert.IsType(t, &RequestLogServiceImpl{}, svc)
}

func TestRequestLogService_CreateLog(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	existing := now.Add(-time.Hour)

	tests := []struct {
		name      string
		entry     *model.RequestLog
		repoErr   error
		wantErr   error
		validate  func(*testing.T, *model.RequestLog)
		expectHit bool
	}{
		{
			name:      "fills defaults",
			entry:     &model.RequestLog{StatusCode: 200, Package: "fmt", Cache: model.CacheMiss},
			expectHit: true,
			validate: func(t *testing.T, e *model.RequestLog) {
				assert.Equal(t, now, e.Timestamp)
				assert.Equal(t, "info", e.Level)
				assert.Equal(t, "HTTP request", e.Message)
			},
		},
		{
			name:      "level follows status",
			entry:     &model.RequestLog{StatusCode: 400},
			expectHit: true,
			validate: func(t *testing.T, e *model.RequestLog) {
				assert.Equal(t, "warn", e.Level)
			},
		},
		{
			name:      "keeps provided values",
			entry:     &model.RequestLog{Timestamp: existing, Level: "debug", Message: "custom"},
			expectHit: true,
			validate: func(t *testing.T, e *model.RequestLog) {
				assert.Equal(t, existing, e.Timestamp)
				assert.Equal(t, "debug", e.Level)
				assert.Equal(t, "custom", e.Message)
			},
		},
		{
			name:      "truncates long user agent",
			entry:     &model.RequestLog{UserAgent: strings.Repeat("a", 2000)},
			expectHit: true,
			validate: func(t *testing.T, e *model.RequestLog) {
				assert.Len(t, e.UserAgent, maxUserAgentLen)
			},
		},
		{
			name:      "repository error",
			entry:     &model.RequestLog{},
			repoErr:   errors.New("database error"),
			wantErr:   errors.New("database error"),
			expectHit: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrNilRequestLog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockRequestLogRepository)
			if tt.expectHit {
				repo.On("Create", mock.Anything, tt.entry).Return(tt.repoErr)
			}
			svc := newTestRequestLogService(repo, now)

			err := svc.CreateLog(context.Background(), tt.entry)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				require.NoError(t, err)
			}
			if tt.validate != nil {
				tt.validate(t, tt.entry)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestRequestLogService_CreateLogs(t *testing.T) {
	t.Run("skips nil entries", func(t *testing.T) {
		repo := new(mocks.MockRequestLogRepository)
		repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(entries []*model.RequestLog) bool {
			return len(entries) == 2 && entries[0].Level == "info" && entries[1].Level == "error"
		})).Return(nil)
		svc := newTestRequestLogService(repo, time.Now())

		err := svc.CreateLogs(context.Background(), []*model.RequestLog{
			{StatusCode: 200},
			nil,
			{StatusCode: 503},
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty batch does not touch the repository", func(t *testing.T) {
		repo := new(mocks.MockRequestLogRepository)
		svc := newTestRequestLogService(repo, time.Now())

		assert.NoError(t, svc.CreateLogs(context.Background(), nil))
		assert.NoError(t, svc.CreateLogs(context.Background(), []*model.RequestLog{nil}))
		repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mocks.MockRequestLogRepository)
		repo.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("database error"))
		svc := newTestRequestLogService(repo, time.Now())

		assert.Error(t, svc.CreateLogs(context.Background(), []*model.RequestLog{{}}))
	})
}

func TestRequestLogService_QueryLogs(t *testing.T) {
	logs := []*model.RequestLog{{RequestID: "req-1", Package: "fmt"}}

	t.Run("passes the query through", func(t *testing.T) {
		q := model.RequestLogQuery{Package: "fmt", Limit: 10}
		repo := new(mocks.MockRequestLogRepository)
		repo.On("Query", mock.Anything, q).Return(logs, nil)
		svc := NewRequestLogService(repo)

		got, err := svc.QueryLogs(context.Background(), q)

		require.NoError(t, err)
		assert.Equal(t, logs, got)
	})

	t.Run("clamps negative skip", func(t *testing.T) {
		repo := new(mocks.MockRequestLogRepository)
		repo.On("Query", mock.Anything, model.RequestLogQuery{Skip: 0}).Return(logs, nil)
		svc := NewRequestLogService(repo)

		_, err := svc.QueryLogs(context.Background(), model.RequestLogQuery{Skip: -5})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mocks.MockRequestLogRepository)
		repo.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))
		svc := NewRequestLogService(repo)

		got, err := svc.QueryLogs(context.Background(), model.RequestLogQuery{})

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestRequestLogService_CountLogs(t *testing.T) {
	q := model.RequestLogQuery{Cache: model.CacheHit}
	repo := new(mocks.MockRequestLogRepository)
	repo.On("Count", mock.Anything, q).Return(int64(42), nil)
	svc := NewRequestLogService(repo)

	count, err := svc.CountLogs(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestLogLevelForStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{200, "info"},
		{304, "info"},
		{400, "warn"},
		{429, "warn"},
		{500, "error"},
		{504, "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LogLevelForStatus(tt.status))
	}
}
