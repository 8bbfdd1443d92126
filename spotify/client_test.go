package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/spotify"
	"github.com/stretchr/testify/require"
)

const trackJSON = `{
	"id": "4uLU6hMCjMI75M1A2tKUQC",
	"name": "Never Gonna Give You Up",
	"duration_ms": 213573,
	"popularity": 78,
	"external_ids": {"isrc": "GBARL9300135"},
	"available_markets": ["GB", "US", "DE"],
	"artists": [{"id": "0gxyHStUsqpMadRV0Di1Qt", "name": "Rick Astley"}],
	"album": {
		"name": "Whenever You Need Somebody",
		"album_type": "album",
		"release_date": "1987-11-12",
		"images": [{"url": "https://i.scdn.co/image/large"}, {"url": "https://i.scdn.co/image/small"}]
	}
}`

func newAPI(t *testing.T, routes map[string]http.HandlerFunc) *spotify.Client {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer access-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			h(w, r)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return spotify.NewClient(srv.URL+"/v1", srv.Client())
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) }
}

func TestNowPlaying(t *testing.T) {
	t.Run("playing", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{
			"/v1/me/player/currently-playing": jsonBody(`{"is_playing": true, "progress_ms": 42000, "item": ` + trackJSON + `}`),
		})
		p, err := c.NowPlaying(context.Background(), "access-1")
		require.NoError(t, err)
		require.NotNil(t, p)
		require.True(t, p.IsPlaying)
		require.False(t, p.Recent)
		require.Equal(t, 42000, p.ProgressMs)
		require.Equal(t, "4uLU6hMCjMI75M1A2tKUQC", p.Track.ID)
		require.Equal(t, "Never Gonna Give You Up", p.Track.Title)
		require.Equal(t, []string{"Rick Astley"}, p.Track.ArtistNames())
		require.Equal(t, "Whenever You Need Somebody", p.Track.Album)
		require.Equal(t, "album", p.Track.AlbumType)
		require.Equal(t, "1987-11-12", p.Track.ReleaseDate)
		require.Equal(t, "https://i.scdn.co/image/large", p.Track.CoverURL)
		require.Equal(t, 3, p.Track.MarketsAvailable)
		require.NotNil(t, p.Track.ISRC)
		require.Equal(t, "GBARL9300135", *p.Track.ISRC)
	})

	t.Run("nothing playing", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{
			"/v1/me/player/currently-playing": status(http.StatusNoContent),
		})
		p, err := c.NowPlaying(context.Background(), "access-1")
		require.NoError(t, err)
		require.Nil(t, p)
	})

	t.Run("null item", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{
			"/v1/me/player/currently-playing": jsonBody(`{"is_playing": false, "item": null}`),
		})
		p, err := c.NowPlaying(context.Background(), "access-1")
		require.NoError(t, err)
		require.Nil(t, p)
	})

	t.Run("rejected token", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{
			"/v1/me/player/currently-playing": jsonBody(`{}`),
		})
		_, err := c.NowPlaying(context.Background(), "stale")
		require.ErrorIs(t, err, spotify.ErrUnauthorized)
		require.ErrorIs(t, err, errors.ErrUnauthenticated)
	})

	t.Run("server error", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{
			"/v1/me/player/currently-playing": status(http.StatusBadGateway),
		})
		_, err := c.NowPlaying(context.Background(), "access-1")
		require.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
		var upstream *spotify.UpstreamError
		require.ErrorAs(t, err, &upstream)
		require.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	})
}

func TestCurrentFallsBackToRecentlyPlayed(t *testing.T) {
	var limit string
	c := newAPI(t, map[string]http.HandlerFunc{
		"/v1/me/player/currently-playing": status(http.StatusNoContent),
		"/v1/me/player/recently-played": func(w http.ResponseWriter, r *http.Request) {
			limit = r.URL.Query().Get("limit")
			jsonBody(`{"items": [{"played_at": "2024-05-01T10:00:00Z", "track": ` + trackJSON + `}]}`)(w, r)
		},
	})

	p, err := c.Current(context.Background(), "access-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "1", limit)
	require.True(t, p.Recent)
	require.False(t, p.IsPlaying)
	require.Equal(t, "4uLU6hMCjMI75M1A2tKUQC", p.Track.ID)
	require.Equal(t, 2024, p.PlayedAt.Year())
}

func TestCurrentEmptyHistory(t *testing.T) {
	c := newAPI(t, map[string]http.HandlerFunc{
		"/v1/me/player/currently-playing": status(http.StatusNoContent),
		"/v1/me/player/recently-played":   jsonBody(`{"items": []}`),
	})
	p, err := c.Current(context.Background(), "access-1")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestAudioFeatures(t *testing.T) {
	t.Run("analysis available", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{
			"/v1/audio-features/abc": jsonBody(`{"tempo": 113.5, "key": 8, "mode": 1, "energy": 0.94, "danceability": 0.73, "valence": 0.91}`),
		})
		f, err := c.AudioFeatures(context.Background(), "access-1", "abc")
		require.NoError(t, err)
		require.Equal(t, spotify.AudioFeatures{
			TempoBPM: 113.5, Key: "G#", Mode: "major", Energy: 0.94, Danceability: 0.73, Valence: 0.91,
		}, *f)
	})

	for name, code := range map[string]int{"not found": http.StatusNotFound, "forbidden": http.StatusForbidden} {
		t.Run(name, func(t *testing.T) {
			c := newAPI(t, map[string]http.HandlerFunc{"/v1/audio-features/abc": status(code)})
			_, err := c.AudioFeatures(context.Background(), "access-1", "abc")
			require.Error(t, err)
			require.True(t, spotify.IsFeatureUnavailable(err))
		})
	}

	t.Run("server error is not a missing feature", func(t *testing.T) {
		c := newAPI(t, map[string]http.HandlerFunc{"/v1/audio-features/abc": status(http.StatusInternalServerError)})
		_, err := c.AudioFeatures(context.Background(), "access-1", "abc")
		require.False(t, spotify.IsFeatureUnavailable(err))
		require.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
	})
}

func TestArtist(t *testing.T) {
	c := newAPI(t, map[string]http.HandlerFunc{
		"/v1/artists/0gxy": jsonBody(`{"name": "Rick Astley", "genres": ["dance pop", "new wave pop"], "followers": {"total": 2500000}}`),
	})
	a, err := c.Artist(context.Background(), "access-1", "0gxy")
	require.NoError(t, err)
	require.Equal(t, &spotify.ArtistInfo{Name: "Rick Astley", Genres: []string{"dance pop", "new wave pop"}, Followers: 2500000}, a)
}
