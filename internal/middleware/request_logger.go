package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/logger"
	"github.com/guttosm/badge-service/internal/service"
)

const (
	// CacheStatusHeader reports whether a badge came from cache.
	CacheStatusHeader = "X-Cache"

	// PackageKey is the gin context key holding the requested package name.
	PackageKey = "package"
	// CacheKey is the gin context key holding the cache outcome (model.CacheHit or model.CacheMiss).
	CacheKey = "cache"
)

// RequestLogSink accepts request logs for storage.
type RequestLogSink interface {
	Log(entry *model.RequestLog) bool
}

// RequestLogger returns a middleware that logs every request once, in JSON,
// and hands a copy to sink when one is given.
func RequestLogger(sink RequestLogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		entry := &model.RequestLog{
			Timestamp:  start.UTC(),
			Level:      service.LogLevelForStatus(statusCode),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Package:    c.GetString(PackageKey),
			Cache:      c.GetString(CacheKey),
		}
		if err := c.Errors.Last(); err != nil {
			entry.Error = err.Error()
		}

		log := logger.Logger().With().
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", statusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Logger()

		event := log.Info()
		switch entry.Level {
		case "error":
			event = log.Error()
		case "warn":
			event = log.Warn()
		}
		if entry.Package != "" {
			event = event.Str("package", entry.Package)
		}
		if entry.Cache != "" {
			event = event.Str("cache", entry.Cache)
		}
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg(entry.Message)

		if sink != nil {
			sink.Log(entry)
		}
	}
}
