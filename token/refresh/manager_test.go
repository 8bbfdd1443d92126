package refresh_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrsteele09/now-playing/internal/config"
	apperrors "github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/sessions"
	"github.com/jrsteele09/now-playing/token"
	"github.com/jrsteele09/now-playing/token/refresh"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls     int
	lastToken string
	grant     *token.Grant
	err       error
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (*token.Grant, error) {
	f.calls++
	f.lastToken = refreshToken
	return f.grant, f.err
}

func fixedClock(t *testing.T, now time.Time) {
	t.Helper()
	refresh.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { refresh.NowTimeFunc = time.Now })
}

func TestManager_Ensure(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(t, now)

	t.Run("valid token is used without refresh", func(t *testing.T) {
		f := &fakeRefresher{}
		m := refresh.NewManager(f, config.Session{})
		s := sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(10 * time.Minute)}

		res, err := m.Ensure(context.Background(), s)
		require.NoError(t, err)
		require.Equal(t, sessions.StateValid, res.State)
		require.False(t, res.Refreshed)
		require.Equal(t, s, res.Session)
		require.Zero(t, f.calls)
	})

	t.Run("token expiring in 30s is refreshed first", func(t *testing.T) {
		f := &fakeRefresher{grant: &token.Grant{AccessToken: "a2", ExpiresIn: time.Hour}}
		m := refresh.NewManager(f, config.Session{})
		s := sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(30 * time.Second)}
		require.Equal(t, sessions.StateExpiring, s.Classify(now, m.Skew()))

		res, err := m.Ensure(context.Background(), s)
		require.NoError(t, err)
		require.Equal(t, 1, f.calls)
		require.Equal(t, "r", f.lastToken)
		require.True(t, res.Refreshed)
		require.Equal(t, "a2", res.Session.AccessToken)
		require.Equal(t, "r", res.Session.RefreshToken, "refresh token is preserved when not rotated")
		require.Equal(t, now.Add(time.Hour), res.Session.ExpiresAt)
	})

	t.Run("rotated refresh token replaces the stored one", func(t *testing.T) {
		f := &fakeRefresher{grant: &token.Grant{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: time.Hour}}
		m := refresh.NewManager(f, config.Session{})

		res, err := m.Ensure(context.Background(), sessions.Session{RefreshToken: "r"})
		require.NoError(t, err)
		require.Equal(t, "r2", res.Session.RefreshToken)
	})

	t.Run("no refresh token is unauthenticated", func(t *testing.T) {
		f := &fakeRefresher{}
		m := refresh.NewManager(f, config.Session{})

		res, err := m.Ensure(context.Background(), sessions.Session{AccessToken: "a", ExpiresAt: now.Add(-time.Minute)})
		require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		require.Equal(t, sessions.StateNoSession, res.State)
		require.Zero(t, f.calls)
	})

	t.Run("refresh failure is not retried", func(t *testing.T) {
		upstream := errors.New("invalid_grant")
		f := &fakeRefresher{err: upstream}
		m := refresh.NewManager(f, config.Session{})

		res, err := m.Ensure(context.Background(), sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now})
		require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
		require.ErrorIs(t, err, upstream)
		require.Equal(t, sessions.StateRefreshFailed, res.State)
		require.False(t, res.Refreshed)
		require.Equal(t, 1, f.calls)
	})

	t.Run("empty access token in grant is a failure", func(t *testing.T) {
		f := &fakeRefresher{grant: &token.Grant{}}
		m := refresh.NewManager(f, config.Session{})

		res, err := m.Ensure(context.Background(), sessions.Session{RefreshToken: "r"})
		require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
		require.Equal(t, sessions.StateRefreshFailed, res.State)
	})
}
