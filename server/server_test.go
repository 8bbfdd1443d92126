package server_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/now-playing/enrichment"
	"github.com/jrsteele09/now-playing/internal/config"
	"github.com/jrsteele09/now-playing/server"
	"github.com/jrsteele09/now-playing/sessions"
	"github.com/jrsteele09/now-playing/spotify"
	"github.com/jrsteele09/now-playing/token"
	"github.com/jrsteele09/now-playing/token/refresh"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeAuth struct {
	mu           sync.Mutex
	challenge    string
	code         string
	verifier     string
	exchange     *token.Grant
	exchangeErr  error
	refresh      *token.Grant
	refreshErr   error
	refreshCalls int
}

func (f *fakeAuth) AuthCodeURL(challenge string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenge = challenge
	return "https://accounts.example/authorize?code_challenge=" + challenge
}

func (f *fakeAuth) Exchange(_ context.Context, code, verifier string) (*token.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code, f.verifier = code, verifier
	return f.exchange, f.exchangeErr
}

func (f *fakeAuth) Refresh(_ context.Context, _ string) (*token.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	return f.refresh, f.refreshErr
}

type fakeMusic struct {
	mu          sync.Mutex
	token       string
	playback    *spotify.Playback
	err         error
	features    *spotify.AudioFeatures
	featuresErr error
	artist      *spotify.ArtistInfo
	artistErr   error
}

func (f *fakeMusic) Current(_ context.Context, accessToken string) (*spotify.Playback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = accessToken
	return f.playback, f.err
}

func (f *fakeMusic) AudioFeatures(context.Context, string, string) (*spotify.AudioFeatures, error) {
	return f.features, f.featuresErr
}

func (f *fakeMusic) Artist(context.Context, string, string) (*spotify.ArtistInfo, error) {
	return f.artist, f.artistErr
}

func (f *fakeMusic) usedToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type fakePanels struct {
	panel *enrichment.Panel
	hit   bool
	err   error
	got   enrichment.Snapshot
}

func (f *fakePanels) Panel(_ context.Context, snap enrichment.Snapshot) (*enrichment.Panel, bool, error) {
	f.got = snap
	return f.panel, f.hit, f.err
}

type fakeCache struct {
	cleared int
}

func (f *fakeCache) Get(context.Context, string) (string, bool) { return "", false }
func (f *fakeCache) Put(context.Context, string, string)        {}
func (f *fakeCache) Clear(context.Context)                      { f.cleared++ }

type testServer struct {
	*server.Server
	auth   *fakeAuth
	music  *fakeMusic
	panels *fakePanels
	cache  *fakeCache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("ENV", "DEV")
	t.Setenv("SPOTIFY_CLIENT_ID", "client-1")
	t.Setenv("SPOTIFY_REDIRECT_URI", "http://localhost:8080/api/spotify/callback")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	originalServer, originalRefresh := server.NowTimeFunc, refresh.NowTimeFunc
	server.NowTimeFunc = func() time.Time { return testNow }
	refresh.NowTimeFunc = func() time.Time { return testNow }
	t.Cleanup(func() {
		server.NowTimeFunc, refresh.NowTimeFunc = originalServer, originalRefresh
	})

	ts := &testServer{
		auth:   &fakeAuth{},
		music:  &fakeMusic{},
		panels: &fakePanels{},
		cache:  &fakeCache{},
	}
	ts.Server = server.New(config.New(), ts.auth, ts.music, ts.panels, ts.cache)
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

// withSession attaches the cookies WriteSession would have issued for s
func withSession(req *http.Request, s sessions.Session) *http.Request {
	rec := httptest.NewRecorder()
	sessions.WriteSession(rec, s, testNow, 30*24*time.Hour, sessions.CookieOptions{})
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func validSession() sessions.Session {
	return sessions.New("access-1", "refresh-1", testNow, time.Hour)
}

func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func playingTrack() *spotify.Playback {
	return &spotify.Playback{
		Track: spotify.Track{
			ID:          "track-1",
			Title:       "Paranoid Android",
			Artists:     []spotify.Artist{{ID: "artist-1", Name: "Radiohead"}},
			Album:       "OK Computer",
			ReleaseDate: "1997-05-21",
			DurationMs:  383000,
			Popularity:  78,
		},
		IsPlaying:  true,
		ProgressMs: 1000,
	}
}

func TestRoutes_Registered(t *testing.T) {
	ts := newTestServer(t)
	routes := ts.Routes()
	require.Contains(t, routes, "GET "+server.RouteSpotifyCurrent)
	require.Contains(t, routes, "POST "+server.RouteSongPanel)
	require.Contains(t, routes, "DELETE "+server.RouteCache)
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t)
	t.Setenv("APP_NAME", "Test Dashboard")

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Test Dashboard")
	require.Contains(t, rec.Body.String(), `href="`+server.RouteSpotifyLogin+`"`)
	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(httptest.NewRequest(http.MethodGet, server.RouteSongPanel, nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestClearCache(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(httptest.NewRequest(http.MethodDelete, server.RouteCache, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 1, ts.cache.cleared)
}

func TestClearCache_NotRegisteredOutsideDev(t *testing.T) {
	ts := newTestServer(t)
	t.Setenv("ENV", "PROD")
	prod := server.New(config.New(), ts.auth, ts.music, ts.panels, ts.cache)

	rec := httptest.NewRecorder()
	prod.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, server.RouteCache, nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Zero(t, ts.cache.cleared)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, server.RouteSongFacts, strings.NewReader(`{"title":"x","artist":"y"}`))
	req.Header.Set("X-Request-ID", "req-42")
	rec := ts.do(req)
	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	rec = ts.do(httptest.NewRequest(http.MethodPost, server.RouteSongFacts, strings.NewReader(`{"title":"x","artist":"y"}`)))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSongFacts(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		status   int
		contains string
	}{
		{"known artist", `{"title":"Kashmir","artist":"Led Zeppelin"}`, http.StatusOK, `"producer":"Jimmy Page"`},
		{"era fallback", `{"title":"Song","artist":"Somebody","release_date":"1975-01-01"}`, http.StatusOK, `"studio":"Analog studio"`},
		{"missing artist", `{"title":"Song"}`, http.StatusBadRequest, `"error"`},
		{"bad json", `{`, http.StatusBadRequest, `invalid request body`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(httptest.NewRequest(http.MethodPost, server.RouteSongFacts, strings.NewReader(tt.body)))
			require.Equal(t, tt.status, rec.Code)
			require.Contains(t, rec.Body.String(), tt.contains)
			require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	ts := newTestServer(t)
	h := server.ChainMiddleware(func(http.ResponseWriter, *http.Request) {
		panic(fmt.Sprintf("boom %d", 1))
	}, ts.APIMiddleware()...)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/anything", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
