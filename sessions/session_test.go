package sessions_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/now-playing/sessions"
	"github.com/stretchr/testify/require"
)

const skew = 60 * time.Second

func TestSession_Classify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session sessions.Session
		want    sessions.State
	}{
		{
			name:    "no tokens",
			session: sessions.Session{},
			want:    sessions.StateNoSession,
		},
		{
			name:    "fresh token",
			session: sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(time.Hour)},
			want:    sessions.StateValid,
		},
		{
			name:    "inside skew window",
			session: sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(30 * time.Second)},
			want:    sessions.StateExpiring,
		},
		{
			name:    "exactly at skew boundary",
			session: sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(skew)},
			want:    sessions.StateExpiring,
		},
		{
			name:    "expired",
			session: sessions.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(-time.Minute)},
			want:    sessions.StateExpiring,
		},
		{
			name:    "access cookie gone but refresh token present",
			session: sessions.Session{RefreshToken: "r"},
			want:    sessions.StateExpiring,
		},
		{
			name:    "unknown expiry",
			session: sessions.Session{AccessToken: "a", RefreshToken: "r"},
			want:    sessions.StateExpiring,
		},
		{
			name:    "expired without refresh token is terminal",
			session: sessions.Session{AccessToken: "a", ExpiresAt: now.Add(-time.Minute)},
			want:    sessions.StateNoSession,
		},
		{
			name:    "unexpired access token without refresh token requires login",
			session: sessions.Session{AccessToken: "a", ExpiresAt: now.Add(time.Hour)},
			want:    sessions.StateNoSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.session.Classify(now, skew))
		})
	}
}

func TestNew(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := sessions.New("a", "r", issued, 3600*time.Second)
	require.Equal(t, issued.Add(time.Hour), s.ExpiresAt)
	require.Equal(t, 30*time.Minute, s.ExpiresIn(issued.Add(30*time.Minute)))
	require.Equal(t, time.Duration(0), s.ExpiresIn(issued.Add(2*time.Hour)))
}
