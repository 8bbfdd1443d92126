// Package wikipedia looks up encyclopedia articles for a track, its album or its artist.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAPIURL = "https://en.wikipedia.org/w/api.php"
	userAgent     = "now-playing/1.0 (https://github.com/jrsteele09/now-playing)"

	minSongExtract   = 200
	minAlbumExtract  = 200
	minArtistExtract = 100
)

// Source is which kind of article the content came from
type Source string

const (
	SourceSong   Source = "song"
	SourceAlbum  Source = "album"
	SourceArtist Source = "artist"
)

type SearchResult struct {
	Title  string
	PageID int
}

type Page struct {
	Title   string
	Extract string
}

// Content is the plain-text extract chosen for a track
type Content struct {
	Text   string
	Source Source
	Title  string
}

type Client struct {
	apiURL string
	client *http.Client
}

func NewClient(apiURL string, httpClient *http.Client) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{apiURL: apiURL, client: httpClient}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type pageResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Search returns the best match for query, or nil when there is none
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"1"},
		"format":   {"json"},
	}
	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Query.Search) == 0 {
		return nil, nil
	}
	hit := resp.Query.Search[0]
	return &SearchResult{Title: hit.Title, PageID: hit.PageID}, nil
}

// Page returns the plain-text extract of an article, or nil when it has none
func (c *Client) Page(ctx context.Context, title string) (*Page, error) {
	params := url.Values{
		"action":          {"query"},
		"titles":          {title},
		"prop":            {"extracts"},
		"explaintext":     {"1"},
		"exsectionformat": {"plain"},
		"format":          {"json"},
	}
	var resp pageResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	for _, p := range resp.Query.Pages {
		if p.Extract == "" {
			continue
		}
		return &Page{Title: p.Title, Extract: p.Extract}, nil
	}
	return nil, nil
}

// ContentForSong tries the song article, then the album, then the artist. It
// returns nil without error when no article has a long enough extract.
func (c *Client) ContentForSong(ctx context.Context, title, artist, album string) (*Content, error) {
	type attempt struct {
		query  string
		source Source
		minLen int
	}
	attempts := []attempt{{fmt.Sprintf("%q song %q", title, artist), SourceSong, minSongExtract}}
	if album != "" {
		attempts = append(attempts, attempt{fmt.Sprintf("%q album %q", album, artist), SourceAlbum, minAlbumExtract})
	}
	attempts = append(attempts, attempt{fmt.Sprintf("%q band OR %q musician", artist, artist), SourceArtist, minArtistExtract})

	var errs []error
	for _, a := range attempts {
		page, err := c.lookup(ctx, a.query)
		if err != nil {
			log.Warn().Err(err).Str("source", string(a.source)).Msg("wikipedia lookup failed")
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if page != nil && utf8.RuneCountInString(page.Extract) > a.minLen {
			return &Content{Text: page.Extract, Source: a.source, Title: page.Title}, nil
		}
	}
	if len(errs) == len(attempts) {
		return nil, fmt.Errorf("%w: %w", errors.ErrCollaboratorFailure, errors.Join(errs...))
	}
	return nil, nil
}

func (c *Client) lookup(ctx context.Context, query string) (*Page, error) {
	hit, err := c.Search(ctx, query)
	if err != nil || hit == nil {
		return nil, err
	}
	return c.Page(ctx, hit.Title)
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse wikipedia response: %w", err)
	}
	return nil
}
