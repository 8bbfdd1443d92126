package config

import "time"

type Cache struct{}

var _ CacheConfig = Cache{}

func (Cache) GetCacheTTL() time.Duration {
	return GetEnvDuration("CACHE_TTL", 30*time.Minute)
}

func (Cache) GetCacheMaxEntries() int {
	return GetEnvInt("CACHE_MAX_ENTRIES", 100)
}

// GetRedisAddr is empty by default, which selects the in-process cache
func (Cache) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

func (Cache) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Cache) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}

type Polling struct{}

var _ PollingConfig = Polling{}

func (Polling) GetPlayingPollInterval() time.Duration {
	return 5 * time.Second
}

func (Polling) GetPausedPollInterval() time.Duration {
	return 15 * time.Second
}

func (Polling) GetIdlePollInterval() time.Duration {
	return 60 * time.Second
}
