// Package service contains the business logic for the badge service.
package service

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/badge-service/internal/metrics"
	"github.com/guttosm/badge-service/internal/service/cache"
)

const (
	defaultShards        = 16
	defaultSweepInterval = time.Minute
)

// BadgeCache is a sharded TTL cache of rendered badges keyed by package name.
// Entries expire purely by time; there is no size bound or LRU eviction.
// Expired entries are dropped lazily on Get and by an optional background sweep.
type BadgeCache struct {
	shards    []*ttlShard
	shardMask uint32
	clock     func() time.Time
	sweep     time.Duration
	size      atomic.Int64
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

var _ cache.CacheWithMetrics = (*BadgeCache)(nil)

// CacheOption configures a BadgeCache.
type CacheOption func(*BadgeCache)

// WithClock sets the time source used for expiry. Tests use it to step time.
func WithClock(clock func() time.Time) CacheOption {
	return func(c *BadgeCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithShards sets the shard count, rounded up to a power of two.
func WithShards(n int) CacheOption {
	return func(c *BadgeCache) {
		if n > 0 {
			c.shards = make([]*ttlShard, nextPowerOfTwo(n))
		}
	}
}

// WithSweepInterval sets how often expired entries are reclaimed in the
// background. Zero or negative disables the sweeper.
func WithSweepInterval(d time.Duration) CacheOption {
	return func(c *BadgeCache) {
		c.sweep = d
	}
}

// NewBadgeCache creates a BadgeCache and starts its sweeper, if enabled.
// Call Stop to release the sweeper.
func NewBadgeCache(opts ...CacheOption) *BadgeCache {
	c := &BadgeCache{
		shards: make([]*ttlShard, defaultShards),
		clock:  time.Now,
		sweep:  defaultSweepInterval,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	for i := range c.shards {
		c.shards[i] = &ttlShard{items: make(map[string]cacheEntry)}
	}
	c.shardMask = uint32(len(c.shards) - 1)

	if c.sweep > 0 {
		c.wg.Add(1)
		go c.sweepLoop()
	}
	return c
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func (c *BadgeCache) shard(key string) *ttlShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()&c.shardMask]
}

// Get returns the badge stored under key if it has not expired.
func (c *BadgeCache) Get(key string) (string, bool) {
	s := c.shard(key)
	now := c.clock()

	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		s.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return "", false
	}

	if entry.expired(now) {
		s.mu.Lock()
		// A concurrent Put may have refreshed the entry.
		if current, ok := s.items[key]; ok && current.expired(now) {
			delete(s.items, key)
			c.updateSize(-1)
		}
		s.mu.Unlock()
		s.misses.Add(1)
		s.expirations.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return "", false
	}

	s.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

// Put stores value under key for ttl, overwriting any previous entry.
// A non-positive ttl removes the key.
func (c *BadgeCache) Put(key, value string, ttl time.Duration) {
	if ttl <= 0 {
		c.Invalidate(key)
		return
	}

	s := c.shard(key)
	entry := cacheEntry{value: value, expiresAt: c.clock().Add(ttl)}

	s.mu.Lock()
	_, existed := s.items[key]
	s.items[key] = entry
	s.mu.Unlock()

	if !existed {
		c.updateSize(1)
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes key from the cache.
func (c *BadgeCache) Invalidate(key string) {
	s := c.shard(key)

	s.mu.Lock()
	_, ok := s.items[key]
	delete(s.items, key)
	s.mu.Unlock()

	if ok {
		c.updateSize(-1)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear removes all entries and resets the counters.
func (c *BadgeCache) Clear() {
	var removed int64
	for _, s := range c.shards {
		s.mu.Lock()
		removed += int64(len(s.items))
		s.items = make(map[string]cacheEntry)
		s.mu.Unlock()
		s.hits.Store(0)
		s.misses.Store(0)
		s.expirations.Store(0)
	}
	c.updateSize(-removed)
	metrics.RecordCacheOperation("clear", "success")
}

// Stop halts the background sweeper. It is safe to call more than once.
func (c *BadgeCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	c.wg.Wait()
}

// Len returns the number of stored entries, expired ones included until reclaimed.
func (c *BadgeCache) Len() int {
	return int(c.size.Load())
}

// Metrics returns aggregated metrics from all shards.
func (c *BadgeCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range c.shards {
		total.Hits += s.hits.Load()
		total.Misses += s.misses.Load()
		total.Expirations += s.expirations.Load()
	}
	total.Size = c.Len()
	return total
}

// Sweep removes every expired entry and returns how many were removed.
func (c *BadgeCache) Sweep() int {
	now := c.clock()
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for key, entry := range s.items {
			if entry.expired(now) {
				delete(s.items, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	if removed > 0 {
		c.updateSize(-int64(removed))
		metrics.RecordCacheOperation("sweep", "expired")
	}
	return removed
}

func (c *BadgeCache) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stopCh:
			return
		}
	}
}

func (c *BadgeCache) updateSize(delta int64) {
	metrics.UpdateCacheMetrics(int(c.size.Add(delta)))
}

type ttlShard struct {
	mu          sync.RWMutex
	items       map[string]cacheEntry
	hits        atomic.Int64
	misses      atomic.Int64
	expirations atomic.Int64
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// expired reports whether the entry is no longer visible at now.
// An entry stored with ttl d is visible strictly before storedAt+d.
func (e cacheEntry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}
