package sessions

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Cookie names. pkce_verifier and refresh_token are HttpOnly; access_token and
// token_expiry_epoch_ms stay readable by the dashboard for proactive refresh scheduling.
const (
	PKCEVerifierCookie = "pkce_verifier"
	RefreshTokenCookie = "refresh_token"
	AccessTokenCookie  = "access_token"
	TokenExpiryCookie  = "token_expiry_epoch_ms"
)

// Cookies is the typed record decoded once per request from the Cookie header
type Cookies struct {
	Session      Session
	PKCEVerifier string
}

// CookieOptions defines how cookies are issued.
type CookieOptions struct {
	Path   string
	Secure bool
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	return o
}

// ReadCookies decodes the session cookies. Malformed values are treated as absent.
func ReadCookies(r *http.Request) Cookies {
	var c Cookies
	c.PKCEVerifier = cookieValue(r, PKCEVerifierCookie)
	c.Session.AccessToken = cookieValue(r, AccessTokenCookie)
	c.Session.RefreshToken = cookieValue(r, RefreshTokenCookie)
	if ms, err := strconv.ParseInt(cookieValue(r, TokenExpiryCookie), 10, 64); err == nil && ms > 0 {
		c.Session.ExpiresAt = time.UnixMilli(ms)
	}
	return c
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}

// SetPKCEVerifier stores the verifier for the redirect round trip
func SetPKCEVerifier(w http.ResponseWriter, verifier string, ttl time.Duration, opts CookieOptions) {
	opts = opts.normalize()
	http.SetCookie(w, &http.Cookie{
		Name:     PKCEVerifierCookie,
		Value:    url.QueryEscape(verifier),
		Path:     opts.Path,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearPKCEVerifier removes the verifier once it has been consumed
func ClearPKCEVerifier(w http.ResponseWriter, opts CookieOptions) {
	clearCookie(w, PKCEVerifierCookie, true, opts)
}

// WriteSession sets the access token and expiry cookies for the remaining
// lifetime of the token, and the refresh token cookie for refreshTTL when one is present.
func WriteSession(w http.ResponseWriter, s Session, now time.Time, refreshTTL time.Duration, opts CookieOptions) {
	opts = opts.normalize()
	maxAge := int(s.ExpiresIn(now).Seconds())

	if s.RefreshToken != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     RefreshTokenCookie,
			Value:    url.QueryEscape(s.RefreshToken),
			Path:     opts.Path,
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(refreshTTL.Seconds()),
		})
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    url.QueryEscape(s.AccessToken),
		Path:     opts.Path,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     TokenExpiryCookie,
		Value:    strconv.FormatInt(s.ExpiresAt.UnixMilli(), 10),
		Path:     opts.Path,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// ClearSession removes every session cookie
func ClearSession(w http.ResponseWriter, opts CookieOptions) {
	clearCookie(w, RefreshTokenCookie, true, opts)
	clearCookie(w, AccessTokenCookie, false, opts)
	clearCookie(w, TokenExpiryCookie, false, opts)
}

func clearCookie(w http.ResponseWriter, name string, httpOnly bool, opts CookieOptions) {
	opts = opts.normalize()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     opts.Path,
		HttpOnly: httpOnly,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
