package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "now-playing:"

// RedisCache shares entries between processes. Expiry is delegated to Redis key
// TTLs, so stale entries are never returned and need no sweep.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisCache(opts RedisOptions) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisCacheFromClient(rdb, opts.TTL)
}

func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Ping checks the connection at startup
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		log.Debug().Str("key", key).Msg("cache miss")
		return "", false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache get failed")
		return "", false
	}
	log.Debug().Str("key", key).Msg("cache hit")
	return val, true
}

func (r *RedisCache) Put(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache put failed")
		return
	}
	log.Debug().Str("key", key).Msg("cache put")
}

// Clear removes only this service's keys
func (r *RedisCache) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache clear failed")
		return
	}
	log.Debug().Int("removed", len(keys)).Msg("cache cleared")
}
