// Package cache memoizes generated enrichment payloads per track so repeated
// polls of the same song do not call the collaborators again.
package cache

import (
	"context"
	"time"
)

const (
	DefaultTTL       = 30 * time.Minute
	DefaultThreshold = 100
)

// Cache is a string key/value store whose entries expire after a TTL.
// Backend failures are logged and reported as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Put(ctx context.Context, key, value string)
	Clear(ctx context.Context)
}

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*RedisCache)(nil)
)
