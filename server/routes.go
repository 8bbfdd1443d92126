package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// Session
	s.RegisterRouteHandler("GET "+RouteSpotifyLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteSpotifyCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare()...))

	// Track data (require a session, refreshed if about to expire)
	s.RegisterRouteHandler("GET "+RouteSpotifyCurrent, ChainMiddleware(s.CurrentTrackHandler(), s.APIMiddleware(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteSongPanel, ChainMiddleware(s.SongPanelHandler(), s.APIMiddleware(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteSongFacts, ChainMiddleware(s.SongFactsHandler(), s.APIMiddleware()...))

	// Preflight for cross-origin dashboards
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	if s.env == "DEV" {
		s.RegisterRouteHandler("DELETE "+RouteCache, ChainMiddleware(s.ClearCacheHandler(), s.APIMiddleware()...))
	}
}
