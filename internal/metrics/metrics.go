// Package metrics provides Prometheus metrics collection for the badge service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// BadgeRendersTotal tracks rendered badges by the measurement branch used.
	BadgeRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badge_renders_total",
			Help: "Total number of rendered badges",
		},
		[]string{"measurement"},
	)

	// BadgeRenderDuration tracks badge render duration.
	BadgeRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "badge_render_duration_seconds",
			Help:    "Badge render duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	// BadgeRequestsTotal tracks badge lookups by outcome.
	BadgeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badge_requests_total",
			Help: "Total number of badge lookups by result",
		},
		[]string{"result"},
	)

	// MetadataFetchesTotal tracks upstream metadata fetches by outcome.
	MetadataFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_fetches_total",
			Help: "Total number of package metadata fetches",
		},
		[]string{"result"},
	)

	// MetadataFetchDuration tracks upstream metadata fetch duration, retries included.
	MetadataFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metadata_fetch_duration_seconds",
			Help:    "Package metadata fetch duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CircuitBreakerState tracks breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
		},
		[]string{"name"},
	)

	// RequestLogsDroppedTotal tracks request logs discarded because the queue was full.
	RequestLogsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "request_logs_dropped_total",
			Help: "Total number of request logs dropped",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordBadgeRender records metrics for one rendered badge.
func RecordBadgeRender(duration time.Duration, measurement string) {
	BadgeRenderDuration.Observe(duration.Seconds())
	BadgeRendersTotal.WithLabelValues(measurement).Inc()
}

// RecordBadgeRequest records the outcome of a badge lookup.
func RecordBadgeRequest(result string) {
	BadgeRequestsTotal.WithLabelValues(result).Inc()
}

// RecordMetadataFetch records metrics for an upstream metadata fetch.
func RecordMetadataFetch(duration time.Duration, result string) {
	MetadataFetchDuration.Observe(duration.Seconds())
	MetadataFetchesTotal.WithLabelValues(result).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates the cache size metric.
func UpdateCacheMetrics(size int) {
	CacheSize.Set(float64(size))
}

// RecordCircuitBreakerState records the current state of a named breaker.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRequestLogDropped counts a request log that could not be queued.
func RecordRequestLogDropped() {
	RequestLogsDroppedTotal.Inc()
}
