package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/sessions"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the validated session
const ContextKeySession ContextKey = "session"

// SessionMiddleware parses the session cookies once per request and makes sure
// the access token is not known to be expired before any upstream call. A
// refreshed session is written back to the cookies.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies := sessions.ReadCookies(r)

		result, err := s.lifecycle.Ensure(r.Context(), cookies.Session)
		if err != nil {
			logger := log.Ctx(r.Context())
			if errors.Is(err, errors.ErrRefreshFailed) {
				logger.Debug().Err(err).Msg("session refresh failed")
				s.writeUnauthenticated(w, "failed to refresh token")
				return
			}
			logger.Debug().Str("state", result.State.String()).Msg("no session")
			s.writeUnauthenticated(w, "user not authenticated")
			return
		}

		if result.Refreshed {
			sessions.WriteSession(w, result.Session, NowTimeFunc(), s.config.GetRefreshTokenTTL(), cookieOptions(r))
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, result.Session)
		next(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the session stored by SessionMiddleware
func SessionFromContext(ctx context.Context) (sessions.Session, bool) {
	s, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return s, ok
}
