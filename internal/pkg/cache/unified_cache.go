package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// UnifiedCache is a typed wrapper around go-cache
type UnifiedCache[T any] struct {
	items  *gocache.Cache
	ttl    time.Duration
	name   string
	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	logger *zap.Logger
}

// NewUnifiedCache creates a cache whose entries expire after ttl. Expired
// entries are purged every two TTLs.
func NewUnifiedCache[T any](ttl time.Duration, name string, logger *zap.Logger) *UnifiedCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnifiedCache[T]{
		items:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
}

// Set stores an item in the cache with the given key
func (c *UnifiedCache[T]) Set(key string, value T) {
	c.items.SetDefault(key, value)
	c.sets.Add(1)

	c.logger.Debug("Cache set",
		zap.String("cache", c.name),
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}

// Get retrieves an item from the cache
func (c *UnifiedCache[T]) Get(key string) (T, bool) {
	item, found := c.items.Get(key)
	if !found {
		c.misses.Add(1)
		c.logger.Debug("Cache miss",
			zap.String("cache", c.name),
			zap.String("key", key),
		)
		var zero T
		return zero, false
	}

	value, ok := item.(T)
	if !ok {
		c.misses.Add(1)
		var zero T
		return zero, false
	}

	c.hits.Add(1)
	c.logger.Debug("Cache hit",
		zap.String("cache", c.name),
		zap.String("key", key),
	)
	return value, true
}

// GetMetrics returns a snapshot of the hit/miss counters
func (c *UnifiedCache[T]) GetMetrics() CacheMetrics {
	return CacheMetrics{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
	}
}
