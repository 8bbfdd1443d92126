package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/now-playing/internal/config"
	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/sessions"
	"github.com/jrsteele09/now-playing/token"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Refresher obtains a new access token from a refresh token
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*token.Grant, error)
}

var _ Refresher = (*token.Client)(nil)

// Result is the outcome of a lifecycle check for one request
type Result struct {
	Session   sessions.Session
	State     sessions.State
	Refreshed bool // the caller must write Session back to the token store
}

// Manager decides, before every upstream call, whether the stored access token
// can be used or must be refreshed first.
type Manager struct {
	refresher Refresher
	skew      time.Duration
}

// NewManager creates a new token lifecycle manager
func NewManager(refresher Refresher, cfg config.SessionConfig) *Manager {
	return &Manager{
		refresher: refresher,
		skew:      cfg.GetTokenExpirySkew(),
	}
}

// Skew is how long before expiry a token is treated as expiring
func (m *Manager) Skew() time.Duration {
	return m.skew
}

// Ensure returns a session whose access token is valid now, refreshing it when
// it is expiring. A failed refresh is not retried; the request is unauthenticated.
func (m *Manager) Ensure(ctx context.Context, s sessions.Session) (Result, error) {
	state := s.Classify(NowTimeFunc(), m.skew)
	switch state {
	case sessions.StateValid:
		return Result{Session: s, State: state}, nil
	case sessions.StateNoSession:
		return Result{Session: s, State: state}, errors.ErrUnauthenticated
	}

	grant, err := m.refresher.Refresh(ctx, s.RefreshToken)
	if err == nil && grant.AccessToken == "" {
		err = fmt.Errorf("token response has no access token")
	}
	if err != nil {
		log.Warn().Err(err).Msg("access token refresh failed")
		return Result{Session: s, State: sessions.StateRefreshFailed},
			fmt.Errorf("%w: %w: %w", errors.ErrUnauthenticated, errors.ErrRefreshFailed, err)
	}

	refreshToken := grant.RefreshToken
	if refreshToken == "" {
		refreshToken = s.RefreshToken
	}
	refreshed := sessions.New(grant.AccessToken, refreshToken, NowTimeFunc(), grant.ExpiresIn)
	log.Debug().Time("expires_at", refreshed.ExpiresAt).Bool("rotated", grant.RefreshToken != "").Msg("access token refreshed")

	return Result{Session: refreshed, State: sessions.StateValid, Refreshed: true}, nil
}
