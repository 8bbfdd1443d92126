package server

import (
	"net/http"

	"github.com/jrsteele09/now-playing/oauth2"
	"github.com/jrsteele09/now-playing/pkce"
	"github.com/jrsteele09/now-playing/sessions"
	"github.com/rs/zerolog/log"
)

// LoginHandler starts the authorization code flow: it stores a fresh PKCE
// verifier in a short-lived cookie and redirects to the accounts service.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetSpotifyClientID() == "" || s.config.GetSpotifyRedirectURI() == "" {
			log.Ctx(r.Context()).Error().Msg("spotify client id or redirect uri is not configured")
			writeJSONError(w, "login is not configured", http.StatusInternalServerError)
			return
		}

		pair, err := pkce.New()
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("failed to generate PKCE verifier")
			writeJSONError(w, "failed to start login", http.StatusInternalServerError)
			return
		}

		sessions.SetPKCEVerifier(w, pair.Verifier, s.config.GetPKCEVerifierTTL(), cookieOptions(r))
		http.Redirect(w, r, s.auth.AuthCodeURL(pair.Challenge), http.StatusFound)
	}
}

// CallbackHandler completes the flow: the authorization code and the stored
// verifier are exchanged for tokens, which are written to the session cookies.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if errorParam := query.Get(oauth2.ParamError); errorParam != "" {
			log.Ctx(r.Context()).Warn().Str("error", errorParam).Str("description", query.Get(oauth2.ParamErrorDescription)).Msg("authorization denied")
			writeJSONError(w, "authorization failed: "+errorParam, http.StatusBadRequest)
			return
		}

		code := query.Get(oauth2.ParamCode)
		if code == "" {
			writeJSONError(w, "missing code parameter", http.StatusBadRequest)
			return
		}

		verifier := sessions.ReadCookies(r).PKCEVerifier
		if verifier == "" {
			writeJSONError(w, "missing PKCE code verifier", http.StatusBadRequest)
			return
		}

		opts := cookieOptions(r)
		// single use, whatever the exchange outcome
		sessions.ClearPKCEVerifier(w, opts)

		if err := pkce.ValidateVerifier(verifier); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("malformed PKCE verifier cookie")
			writeJSONError(w, "invalid PKCE code verifier", http.StatusBadRequest)
			return
		}

		grant, err := s.auth.Exchange(r.Context(), code, verifier)
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("token exchange failed")
			writeJSONError(w, "failed to exchange authorization code", http.StatusInternalServerError)
			return
		}

		now := NowTimeFunc()
		session := sessions.New(grant.AccessToken, grant.RefreshToken, now, grant.ExpiresIn)
		sessions.WriteSession(w, session, now, s.config.GetRefreshTokenTTL(), opts)

		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}
