// Package cache defines the contract for the rendered badge cache.
package cache

import "time"

// Cache maps package names to rendered SVG documents with a time-to-live.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value, or false if the key was never stored or has expired.
	Get(key string) (string, bool)
	// Put stores value under key, replacing any existing entry and resetting its expiry.
	Put(key, value string, ttl time.Duration)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Expirations int64 `json:"expirations"`
	Size        int   `json:"size"`
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
