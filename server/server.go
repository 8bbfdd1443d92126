package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/now-playing/cache"
	"github.com/jrsteele09/now-playing/enrichment"
	"github.com/jrsteele09/now-playing/internal/config"
	"github.com/jrsteele09/now-playing/sessions"
	"github.com/jrsteele09/now-playing/spotify"
	"github.com/jrsteele09/now-playing/token"
	"github.com/jrsteele09/now-playing/token/refresh"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc is the clock used for cookie expiry timestamps
var NowTimeFunc = time.Now

// Authenticator is the accounts service: authorization URL, code exchange and refresh
type Authenticator interface {
	refresh.Refresher
	AuthCodeURL(challenge string) string
	Exchange(ctx context.Context, code, verifier string) (*token.Grant, error)
}

// MusicAPI is the read side of the music service used by the current-track route
type MusicAPI interface {
	Current(ctx context.Context, accessToken string) (*spotify.Playback, error)
	AudioFeatures(ctx context.Context, accessToken, trackID string) (*spotify.AudioFeatures, error)
	Artist(ctx context.Context, accessToken, artistID string) (*spotify.ArtistInfo, error)
}

// PanelBuilder produces the enrichment panel for a track
type PanelBuilder interface {
	Panel(ctx context.Context, snap enrichment.Snapshot) (*enrichment.Panel, bool, error)
}

var (
	_ Authenticator = (*token.Client)(nil)
	_ MusicAPI      = (*spotify.Client)(nil)
	_ PanelBuilder  = (*enrichment.Service)(nil)
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	auth      Authenticator
	lifecycle *refresh.Manager
	music     MusicAPI
	panels    PanelBuilder
	cache     cache.Cache
}

func New(config config.Config, auth Authenticator, music MusicAPI, panels PanelBuilder, c cache.Cache) *Server {
	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		auth:      auth,
		lifecycle: refresh.NewManager(auth, config),
		music:     music,
		panels:    panels,
		cache:     c,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

func cookieOptions(r *http.Request) sessions.CookieOptions {
	return sessions.CookieOptions{Path: "/", Secure: getScheme(r) == "https"}
}
