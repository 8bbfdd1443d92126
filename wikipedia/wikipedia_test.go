package wikipedia_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/wikipedia"
	"github.com/stretchr/testify/require"
)

// fakeWiki answers searches from hits (query -> page title) and page fetches from extracts (title -> text)
type fakeWiki struct {
	hits     map[string]string
	extracts map[string]string
	searches []string
	status   int
}

func (f *fakeWiki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")
	if q.Get("list") == "search" {
		f.searches = append(f.searches, q.Get("srsearch"))
		search := []map[string]any{}
		if title, ok := f.hits[q.Get("srsearch")]; ok {
			search = append(search, map[string]any{"title": title, "pageid": 7})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"query": map[string]any{"search": search}})
		return
	}
	title := q.Get("titles")
	_ = json.NewEncoder(w).Encode(map[string]any{"query": map[string]any{"pages": map[string]any{
		"7": map[string]any{"title": title, "extract": f.extracts[title]},
	}}})
}

func newWiki(t *testing.T, f *fakeWiki) *wikipedia.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return wikipedia.NewClient(srv.URL+"/w/api.php", srv.Client())
}

func TestContentForSongPrefersSongArticle(t *testing.T) {
	f := &fakeWiki{
		hits:     map[string]string{`"Karma Police" song "Radiohead"`: "Karma Police"},
		extracts: map[string]string{"Karma Police": strings.Repeat("a", 201)},
	}
	c := newWiki(t, f)

	content, err := c.ContentForSong(context.Background(), "Karma Police", "Radiohead", "OK Computer")
	require.NoError(t, err)
	require.Equal(t, wikipedia.SourceSong, content.Source)
	require.Equal(t, "Karma Police", content.Title)
	require.Len(t, f.searches, 1)
}

func TestContentForSongFallsBackToAlbumThenArtist(t *testing.T) {
	t.Run("album", func(t *testing.T) {
		f := &fakeWiki{
			hits: map[string]string{
				`"Karma Police" song "Radiohead"`: "Karma Police",
				`"OK Computer" album "Radiohead"`: "OK Computer",
			},
			extracts: map[string]string{
				"Karma Police": "too short",
				"OK Computer":  strings.Repeat("b", 300),
			},
		}
		content, err := newWiki(t, f).ContentForSong(context.Background(), "Karma Police", "Radiohead", "OK Computer")
		require.NoError(t, err)
		require.Equal(t, wikipedia.SourceAlbum, content.Source)
		require.Equal(t, "OK Computer", content.Title)
	})

	t.Run("artist with shorter threshold", func(t *testing.T) {
		f := &fakeWiki{
			hits:     map[string]string{`"Radiohead" band OR "Radiohead" musician`: "Radiohead"},
			extracts: map[string]string{"Radiohead": strings.Repeat("c", 150)},
		}
		content, err := newWiki(t, f).ContentForSong(context.Background(), "Karma Police", "Radiohead", "")
		require.NoError(t, err)
		require.Equal(t, wikipedia.SourceArtist, content.Source)
		require.Len(t, f.searches, 2, "album search is skipped without an album")
	})
}

func TestContentForSongNothingFound(t *testing.T) {
	c := newWiki(t, &fakeWiki{})
	content, err := c.ContentForSong(context.Background(), "Unknown", "Nobody", "Nothing")
	require.NoError(t, err)
	require.Nil(t, content)
}

func TestContentForSongUnavailable(t *testing.T) {
	c := newWiki(t, &fakeWiki{status: http.StatusServiceUnavailable})
	_, err := c.ContentForSong(context.Background(), "Karma Police", "Radiohead", "OK Computer")
	require.ErrorIs(t, err, errors.ErrCollaboratorFailure)
}

func TestPageWithoutExtract(t *testing.T) {
	c := newWiki(t, &fakeWiki{})
	page, err := c.Page(context.Background(), "Missing")
	require.NoError(t, err)
	require.Nil(t, page)
}
