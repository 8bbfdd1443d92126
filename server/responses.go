package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const stateUnauthenticated = "unauthenticated"

func writeJSON(w http.ResponseWriter, payload interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

// writeJSONError writes {"error": message}
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, map[string]string{"error": message}, statusCode)
}

// writeUnauthenticated tells the dashboard to show the login prompt and poll slowly
func (s *Server) writeUnauthenticated(w http.ResponseWriter, message string) {
	s.setPollInterval(w, s.config.GetIdlePollInterval())
	writeJSON(w, map[string]string{"error": message, "state": stateUnauthenticated}, http.StatusUnauthorized)
}

func (s *Server) setPollInterval(w http.ResponseWriter, d time.Duration) {
	w.Header().Set(headerPollInterval, strconv.FormatInt(d.Milliseconds(), 10))
}
