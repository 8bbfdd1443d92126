package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/now-playing/cache"
	"github.com/jrsteele09/now-playing/enrichment"
	"github.com/jrsteele09/now-playing/internal/config"
	"github.com/jrsteele09/now-playing/llm"
	"github.com/jrsteele09/now-playing/server"
	"github.com/jrsteele09/now-playing/spotify"
	"github.com/jrsteele09/now-playing/token"
	"github.com/jrsteele09/now-playing/wikipedia"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	runUntilStopped(run, 1*time.Second)
	log.Info().Msg("Server stopped")
}

// runUntilStopped restarts run after each failure until it returns cleanly
func runUntilStopped(run func() error, backoff time.Duration) {
	for {
		err := run()
		if err == nil {
			return
		}
		log.Error().Err(err).Msg("Error running server, restarting")
		time.Sleep(backoff)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	responseCache, closeCache, err := newCache(c)
	if err != nil {
		return err
	}
	defer closeCache()

	httpClient := &http.Client{Timeout: 15 * time.Second}
	auth := token.NewClient(c.GetSpotifyClientID(), c.GetSpotifyRedirectURI(), c.GetSpotifyAccountsURL(), c.GetSpotifyScopes(), httpClient)
	music := spotify.NewClient(c.GetSpotifyAPIURL(), httpClient)

	completer := llm.NewChain(
		llm.NewOpenAI(c.GetOpenAIAPIKey(), c.GetOpenAIModel(), c.GetOpenAIBaseURL(), httpClient),
		llm.NewAnthropic(c.GetClaudeAPIKey(), c.GetClaudeModel(), c.GetAnthropicBaseURL(), httpClient),
	)
	if !completer.Configured() {
		log.Warn().Msg("no LLM API key configured, panels will use placeholder content")
	}
	panels := enrichment.NewService(
		responseCache,
		completer,
		wikipedia.NewClient(c.GetWikipediaAPIURL(), httpClient),
		enrichment.WithCollaboratorTimeout(c.GetCollaboratorTimeout()),
	)

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           server.New(c, auth, music, panels, responseCache),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(srv) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	returnError = shutdown(srv)
	return returnError
}

// newCache picks Redis when an address is configured and the in-process cache otherwise
func newCache(c config.Config) (cache.Cache, func(), error) {
	if addr := c.GetRedisAddr(); addr != "" {
		rc := cache.NewRedisCache(cache.RedisOptions{
			Addr:     addr,
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
			TTL:      c.GetCacheTTL(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", addr, err)
		}
		log.Info().Str("addr", addr).Msg("using redis response cache")
		return rc, func() { _ = rc.Close() }, nil
	}
	log.Info().Dur("ttl", c.GetCacheTTL()).Int("threshold", c.GetCacheMaxEntries()).Msg("using in-memory response cache")
	return cache.NewMemoryCache(cache.WithTTL(c.GetCacheTTL()), cache.WithThreshold(c.GetCacheMaxEntries())), func() {}, nil
}

func setupLogging(c config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if name := c.GetLogLevel(); name != "" {
		if parsed, err := zerolog.ParseLevel(name); err == nil {
			level = parsed
		} else {
			log.Warn().Str("level", name).Msg("unknown log level, keeping default")
		}
	}
	zerolog.SetGlobalLevel(level)
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
