package sessions

import (
	"time"
)

// Session is one user's credentials for the music API.
// ExpiresAt is always issued_at + expires_in. Without a RefreshToken there is
// no session and the user must log in again.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// New builds a Session from a token grant issued at issuedAt
func New(accessToken, refreshToken string, issuedAt time.Time, expiresIn time.Duration) Session {
	return Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    issuedAt.Add(expiresIn),
	}
}

// State is the per-request lifecycle state of a Session
type State int

const (
	// StateNoSession means there is no refresh token; the user must log in
	StateNoSession State = iota
	// StateValid means the access token can be used as is
	StateValid
	// StateExpiring means the access token must be refreshed before use
	StateExpiring
	// StateRefreshFailed means a refresh was attempted for this request and failed
	StateRefreshFailed
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StateValid:
		return "valid"
	case StateExpiring:
		return "expiring"
	case StateRefreshFailed:
		return "refresh_failed"
	default:
		return "unknown"
	}
}

// Classify reports whether the access token is usable at now. Without a
// refresh token there is no session, whatever the access token. A token is
// treated as expiring skew before ExpiresAt. A missing access token or an
// unknown expiry is treated as expiring so the refresh token is used instead.
func (s Session) Classify(now time.Time, skew time.Duration) State {
	if s.RefreshToken == "" {
		return StateNoSession
	}
	if s.AccessToken == "" || s.ExpiresAt.IsZero() {
		return StateExpiring
	}
	if !now.Before(s.ExpiresAt.Add(-skew)) {
		return StateExpiring
	}
	return StateValid
}

// ExpiresIn returns the remaining lifetime at now, never negative
func (s Session) ExpiresIn(now time.Time) time.Duration {
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
