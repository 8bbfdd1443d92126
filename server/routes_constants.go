package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Music service session routes
	RouteSpotifyLogin    = "/api/spotify/login"
	RouteSpotifyCallback = "/api/spotify/callback"
	RouteSpotifyCurrent  = "/api/spotify/current"

	// Enrichment routes
	RouteSongPanel = "/api/song-panel"
	RouteSongFacts = "/api/song-facts"

	// DEV only
	RouteCache = "/api/cache"
)

const (
	headerPollInterval = "X-Poll-Interval-Ms"
	headerRequestID    = "X-Request-ID"
	headerCache        = "X-Cache"
)
