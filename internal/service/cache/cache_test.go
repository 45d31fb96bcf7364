//go:build !integration

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mapCache struct {
	items map[string]string
	stops int
}

func (m *mapCache) Get(key string) (string, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *mapCache) Put(key, value string, _ time.Duration) { m.items[key] = value }
func (m *mapCache) Invalidate(key string)                  { delete(m.items, key) }
func (m *mapCache) Clear()                                 { m.items = map[string]string{} }
func (m *mapCache) Stop()                                  { m.stops++ }
func (m *mapCache) Metrics() Metrics                       { return Metrics{Size: len(m.items)} }

func TestCacheWithMetricsInterface(t *testing.T) {
	m := &mapCache{items: map[string]string{}}
	var c CacheWithMetrics = m

	_, found := c.Get("fmt")
	assert.False(t, found)

	c.Put("fmt", "<svg/>", time.Minute)
	value, found := c.Get("fmt")
	assert.True(t, found)
	assert.Equal(t, "<svg/>", value)
	assert.Equal(t, 1, c.Metrics().Size)

	c.Invalidate("fmt")
	assert.Equal(t, 0, c.Metrics().Size)

	c.Stop()
	assert.Equal(t, 1, m.stops)
}
