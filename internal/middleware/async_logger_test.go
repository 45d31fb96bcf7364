package middleware

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/internal/domain/model"
)

// recordingLogService records stored entries; it can block or fail on demand.
type recordingLogService struct {
	mu      sync.Mutex
	entries []*model.RequestLog
	calls   atomic.Int64
	block   chan struct{}
	err     error
}

func (s *recordingLogService) CreateLog(_ context.Context, entry *model.RequestLog) error {
	s.calls.Add(1)
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingLogService) CreateLogs(ctx context.Context, entries []*model.RequestLog) error {
	for _, e := range entries {
		if err := s.CreateLog(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *recordingLogService) QueryLogs(context.Context, model.RequestLogQuery) ([]*model.RequestLog, error) {
	return nil, nil
}

func (s *recordingLogService) CountLogs(context.Context, model.RequestLogQuery) (int64, error) {
	return 0, nil
}

func (s *recordingLogService) stored() []*model.RequestLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.RequestLog(nil), s.entries...)
}

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger(t *testing.T) {
	t.Run("nil service returns nil", func(t *testing.T) {
		assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
	})

	t.Run("zero config uses defaults", func(t *testing.T) {
		al := NewAsyncLogger(&recordingLogService{}, AsyncLoggerConfig{})
		require.NotNil(t, al)
		defer al.Stop()

		assert.Equal(t, 1000, cap(al.entryCh))
		assert.Equal(t, 5*time.Second, al.writeTimeout)
	})
}

func TestAsyncLogger_Log(t *testing.T) {
	svc := &recordingLogService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 2, WriteTimeout: time.Second})

	for i := 0; i < 5; i++ {
		assert.True(t, al.Log(&model.RequestLog{Package: "fmt"}))
	}
	al.Stop()

	assert.Len(t, svc.stored(), 5)
	enqueued, dropped, written, errs := al.Stats()
	assert.Equal(t, int64(5), enqueued)
	assert.Zero(t, dropped)
	assert.Equal(t, int64(5), written)
	assert.Zero(t, errs)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	svc := &recordingLogService{block: make(chan struct{})}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1, WriteTimeout: time.Second})

	require.True(t, al.Log(&model.RequestLog{RequestID: "1"}))
	require.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	assert.True(t, al.Log(&model.RequestLog{RequestID: "2"}))
	assert.False(t, al.Log(&model.RequestLog{RequestID: "3"}))

	close(svc.block)
	al.Stop()

	enqueued, dropped, written, _ := al.Stats()
	assert.Equal(t, int64(2), enqueued)
	assert.Equal(t, int64(1), dropped)
	assert.Equal(t, int64(2), written)
}

func TestAsyncLogger_ErrorHandling(t *testing.T) {
	svc := &recordingLogService{err: errors.New("database error")}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, WriteTimeout: time.Second})

	al.Log(&model.RequestLog{})
	al.Log(&model.RequestLog{})
	al.Stop()

	_, _, written, errs := al.Stats()
	assert.Zero(t, written)
	assert.Equal(t, int64(2), errs)
}

func TestAsyncLogger_Stop(t *testing.T) {
	al := NewAsyncLogger(&recordingLogService{}, DefaultAsyncLoggerConfig())

	al.Stop()

	assert.NotPanics(t, al.Stop)
	assert.False(t, al.Log(&model.RequestLog{}), "stopped logger rejects entries")
	assert.False(t, al.Log(nil))
}
