// Package spotify is a read-only client for the music service Web API: the
// user's playback, recently played tracks, audio analysis and artist profiles.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

const (
	currentlyPlayingPath = "/me/player/currently-playing"
	recentlyPlayedPath   = "/me/player/recently-played"
	audioFeaturesPath    = "/audio-features/"
	artistsPath          = "/artists/"
)

// Client calls the Web API at a base URL such as "https://api.spotify.com/v1"
type Client struct {
	baseURL string
	base    *http.Client
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), base: httpClient}
}

// NowPlaying returns the user's current playback, or nil when nothing is playing
func (c *Client) NowPlaying(ctx context.Context, accessToken string) (*Playback, error) {
	var resp currentlyPlayingResponse
	status, err := c.get(ctx, accessToken, currentlyPlayingPath, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || status == http.StatusResetContent || resp.Item == nil {
		return nil, nil
	}
	return &Playback{
		Track:      resp.Item.toTrack(),
		IsPlaying:  resp.IsPlaying,
		ProgressMs: resp.ProgressMs,
	}, nil
}

// RecentlyPlayed returns the most recently played track, or nil when the history is empty
func (c *Client) RecentlyPlayed(ctx context.Context, accessToken string) (*Playback, error) {
	var resp recentlyPlayedResponse
	status, err := c.get(ctx, accessToken, recentlyPlayedPath+"?limit=1", &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(resp.Items) == 0 {
		return nil, nil
	}
	item := resp.Items[0]
	return &Playback{
		Track:    item.Track.toTrack(),
		Recent:   true,
		PlayedAt: item.PlayedAt,
	}, nil
}

// Current returns the live playback, falling back to the last played track
func (c *Client) Current(ctx context.Context, accessToken string) (*Playback, error) {
	p, err := c.NowPlaying(ctx, accessToken)
	if err != nil || p != nil {
		return p, err
	}
	return c.RecentlyPlayed(ctx, accessToken)
}

// AudioFeatures returns the analysis for a track. ErrNotFound and ErrForbidden
// are expected for tracks without analysis or sessions without access.
func (c *Client) AudioFeatures(ctx context.Context, accessToken, trackID string) (*AudioFeatures, error) {
	var resp audioFeaturesResponse
	if _, err := c.get(ctx, accessToken, audioFeaturesPath+url.PathEscape(trackID), &resp); err != nil {
		return nil, err
	}
	return &AudioFeatures{
		TempoBPM:     resp.Tempo,
		Key:          KeyName(resp.Key),
		Mode:         ModeName(resp.Mode),
		Energy:       resp.Energy,
		Danceability: resp.Danceability,
		Valence:      resp.Valence,
	}, nil
}

// Artist returns an artist profile
func (c *Client) Artist(ctx context.Context, accessToken, artistID string) (*ArtistInfo, error) {
	var resp artistResponse
	if _, err := c.get(ctx, accessToken, artistsPath+url.PathEscape(artistID), &resp); err != nil {
		return nil, err
	}
	return &ArtistInfo{Name: resp.Name, Genres: resp.Genres, Followers: resp.Followers.Total}, nil
}

// httpFor returns a client that attaches accessToken as a bearer token
func (c *Client) httpFor(accessToken string) *http.Client {
	return &http.Client{
		Transport: &xoauth2.Transport{
			Source: xoauth2.StaticTokenSource(&xoauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
			Base:   c.base.Transport,
		},
		Timeout: c.base.Timeout,
	}
}

func (c *Client) get(ctx context.Context, accessToken, path string, out interface{}) (int, error) {
	endpoint := strings.SplitN(path, "?", 2)[0]
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, &UpstreamError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpFor(accessToken).Do(req)
	if err != nil {
		return 0, &UpstreamError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("spotify request")

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent:
		return resp.StatusCode, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return resp.StatusCode, statusError(endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return resp.StatusCode, nil
}
