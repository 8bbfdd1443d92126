package config

import "time"

type Spotify struct{}

var _ SpotifyConfig = Spotify{}

func (Spotify) GetSpotifyClientID() string {
	return GetEnv("SPOTIFY_CLIENT_ID", "")
}

// GetSpotifyRedirectURI falls back to the variable name used by older deployments
func (Spotify) GetSpotifyRedirectURI() string {
	return GetEnv("SPOTIFY_REDIRECT_URI", GetEnv("NEXT_PUBLIC_REDIRECT_URI", ""))
}

func (Spotify) GetSpotifyAccountsURL() string {
	return GetEnv("SPOTIFY_ACCOUNTS_URL", "https://accounts.spotify.com")
}

func (Spotify) GetSpotifyAPIURL() string {
	return GetEnv("SPOTIFY_API_URL", "https://api.spotify.com/v1")
}

func (Spotify) GetSpotifyScopes() []string {
	return []string{
		"user-read-currently-playing",
		"user-read-recently-played",
		"user-read-playback-state",
	}
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetPKCEVerifierTTL() time.Duration {
	return 15 * time.Minute
}

func (Session) GetRefreshTokenTTL() time.Duration {
	return 30 * 24 * time.Hour // 30 days
}

func (Session) GetTokenExpirySkew() time.Duration {
	return 60 * time.Second
}
