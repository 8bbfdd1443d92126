package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// IndexHandler renders the dashboard shell; all track data is polled from the API
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"AppName":    s.config.GetAppName(),
			"LoginURL":   RouteSpotifyLogin,
			"CurrentURL": RouteSpotifyCurrent,
			"PanelURL":   RouteSongPanel,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("failed to render index")
		}
	}
}
