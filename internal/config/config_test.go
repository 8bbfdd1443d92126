package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/now-playing/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, v := range []string{"PORT", "ENV", "ALLOWED_ORIGINS", "CACHE_TTL", "CACHE_MAX_ENTRIES", "REDIS_ADDR", "SPOTIFY_REDIRECT_URI", "NEXT_PUBLIC_REDIRECT_URI"} {
		t.Setenv(v, "")
	}
	c := config.New()

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:3000"))
	require.Equal(t, 30*time.Minute, c.GetCacheTTL())
	require.Equal(t, 100, c.GetCacheMaxEntries())
	require.Empty(t, c.GetRedisAddr())
	require.Empty(t, c.GetSpotifyRedirectURI())
	require.Equal(t, 60*time.Second, c.GetTokenExpirySkew())
	require.Equal(t, 5*time.Second, c.GetPlayingPollInterval())
	require.Equal(t, 15*time.Second, c.GetPausedPollInterval())
	require.Equal(t, 60*time.Second, c.GetIdlePollInterval())
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example,")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("CACHE_MAX_ENTRIES", "250")
	t.Setenv("SPOTIFY_REDIRECT_URI", "")
	t.Setenv("NEXT_PUBLIC_REDIRECT_URI", "http://localhost:3000/callback")
	c := config.New()

	require.Equal(t, ":9000", c.GetPort())
	origins := c.GetAllowedOrigins()
	require.Len(t, origins, 2)
	require.True(t, origins.IsAllowedOrigin("https://b.example"))
	require.Equal(t, 10*time.Minute, c.GetCacheTTL())
	require.Equal(t, 250, c.GetCacheMaxEntries())
	require.Equal(t, "http://localhost:3000/callback", c.GetSpotifyRedirectURI())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("CACHE_MAX_ENTRIES", "lots")

	require.Equal(t, time.Minute, config.GetEnvDuration("CACHE_TTL", time.Minute))
	require.Equal(t, 7, config.GetEnvInt("CACHE_MAX_ENTRIES", 7))
}
