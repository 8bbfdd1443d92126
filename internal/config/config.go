package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	SpotifyConfig
	SessionConfig
	EnrichmentConfig
	CacheConfig
	PollingConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type SpotifyConfig interface {
	GetSpotifyClientID() string
	GetSpotifyRedirectURI() string
	GetSpotifyAccountsURL() string
	GetSpotifyAPIURL() string
	GetSpotifyScopes() []string
}

type SessionConfig interface {
	GetPKCEVerifierTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetTokenExpirySkew() time.Duration
}

type EnrichmentConfig interface {
	GetOpenAIAPIKey() string
	GetOpenAIModel() string
	GetOpenAIBaseURL() string
	GetClaudeAPIKey() string
	GetClaudeModel() string
	GetAnthropicBaseURL() string
	GetWikipediaAPIURL() string
	GetCollaboratorTimeout() time.Duration
}

type CacheConfig interface {
	GetCacheTTL() time.Duration
	GetCacheMaxEntries() int
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type PollingConfig interface {
	GetPlayingPollInterval() time.Duration
	GetPausedPollInterval() time.Duration
	GetIdlePollInterval() time.Duration
}

type mainConfig struct {
	EnvVars
	Cors
	Spotify
	Session
	Enrichment
	Cache
	Polling
}

func New() Config {
	return mainConfig{}
}
