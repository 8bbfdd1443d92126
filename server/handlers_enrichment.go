package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/now-playing/enrichment"
	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/rs/zerolog/log"
)

const maxRequestBody = 1 << 20

// SongPanelHandler returns the enrichment panel for the posted current-track payload
func (s *Server) SongPanelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap enrichment.Snapshot
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&snap); err != nil {
			writeJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		panel, hit, err := s.panels.Panel(r.Context(), snap)
		if err != nil {
			if errors.Is(err, errors.ErrInvalidRequest) {
				writeJSONError(w, "track_core with spotify_track_id is required", http.StatusBadRequest)
				return
			}
			log.Ctx(r.Context()).Err(err).Msg("failed to generate panel data")
			writeJSONError(w, "failed to generate panel data", http.StatusInternalServerError)
			return
		}

		if hit {
			w.Header().Set(headerCache, "HIT")
		} else {
			w.Header().Set(headerCache, "MISS")
		}
		writeJSON(w, panel, http.StatusOK)
	}
}

// SongFactsHandler answers studio, producer and sales from the static table
func (s *Server) SongFactsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enrichment.SongFactsRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			writeJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		facts, err := enrichment.SongFactsFor(req)
		if err != nil {
			writeJSONError(w, "title and artist are required", http.StatusBadRequest)
			return
		}
		writeJSON(w, facts, http.StatusOK)
	}
}

// ClearCacheHandler empties the response cache (DEV only)
func (s *Server) ClearCacheHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.cache.Clear(r.Context())
		log.Ctx(r.Context()).Info().Msg("response cache cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
