package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type entry struct {
	value     string
	createdAt time.Time
}

// MemoryCache is the process-wide in-memory cache. Stale entries are dropped on
// read, and a put that takes the size over the threshold sweeps every expired
// entry. Fresh entries are never evicted, so the size may exceed the threshold.
type MemoryCache struct {
	mu        sync.Mutex
	entries   map[string]entry
	ttl       time.Duration
	threshold int
	now       func() time.Time
}

type Option func(*MemoryCache)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) { c.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(c *MemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithThreshold sets the entry count above which a put sweeps expired entries
func WithThreshold(n int) Option {
	return func(c *MemoryCache) {
		if n > 0 {
			c.threshold = n
		}
	}
}

func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries:   make(map[string]entry),
		ttl:       DefaultTTL,
		threshold: DefaultThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		log.Debug().Str("key", key).Msg("cache miss")
		return "", false
	}
	if c.expired(e, c.now()) {
		delete(c.entries, key)
		log.Debug().Str("key", key).Msg("cache entry expired")
		return "", false
	}
	log.Debug().Str("key", key).Msg("cache hit")
	return e.value, true
}

func (c *MemoryCache) Put(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = entry{value: value, createdAt: now}
	log.Debug().Str("key", key).Int("size", len(c.entries)).Msg("cache put")

	if len(c.entries) > c.threshold {
		c.sweep(now)
	}
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	log.Debug().Msg("cache cleared")
}

// Len is the number of stored entries, stale or not
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep must be called with mu held
func (c *MemoryCache) sweep(now time.Time) {
	before := len(c.entries)
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
		}
	}
	log.Debug().Int("removed", before-len(c.entries)).Int("size", len(c.entries)).Msg("cache sweep")
}

func (c *MemoryCache) expired(e entry, now time.Time) bool {
	return now.Sub(e.createdAt) > c.ttl
}
