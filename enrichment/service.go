// Package enrichment assembles the panel of supplementary facts shown next to
// the current track, calling the text-generation and encyclopedia collaborators
// on a cache miss.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/now-playing/cache"
	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/internal/utils"
	"github.com/jrsteele09/now-playing/llm"
	"github.com/jrsteele09/now-playing/wikipedia"
	"github.com/rs/zerolog/log"
)

const (
	panelKeyPrefix   = "panel_"
	maxArticleFacts  = 6
	maxFallbackLines = 5
	minFallbackLine  = 20
	minThemeReply    = 10
)

// Encyclopedia finds an article for a track
type Encyclopedia interface {
	ContentForSong(ctx context.Context, title, artist, album string) (*wikipedia.Content, error)
}

var _ Encyclopedia = (*wikipedia.Client)(nil)

type Service struct {
	cache        cache.Cache
	llm          llm.Completer
	encyclopedia Encyclopedia
	timeout      time.Duration
}

type Option func(*Service)

// WithCollaboratorTimeout bounds each collaborator call; zero leaves only the request context
func WithCollaboratorTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(c cache.Cache, completer llm.Completer, encyclopedia Encyclopedia, opts ...Option) *Service {
	s := &Service{cache: c, llm: completer, encyclopedia: encyclopedia}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PanelKey is the cache key of a track's panel
func PanelKey(trackID string) string {
	return panelKeyPrefix + trackID
}

// Panel returns the cached panel for the snapshot's track, or builds and caches
// a new one. hit reports whether the cache answered.
func (s *Service) Panel(ctx context.Context, snap Snapshot) (panel *Panel, hit bool, err error) {
	if snap.TrackCore == nil || snap.TrackCore.SpotifyTrackID == "" {
		return nil, false, errors.Wrapf(errors.ErrInvalidRequest, "track_core.spotify_track_id is required")
	}
	trackID := snap.TrackCore.SpotifyTrackID
	key := PanelKey(trackID)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var p Panel
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			log.Debug().Str("track_id", trackID).Msg("using cached panel")
			return &p, true, nil
		}
		log.Warn().Str("track_id", trackID).Msg("discarding unreadable cached panel")
	}

	log.Info().Str("track_id", trackID).Msg("generating panel")
	p := s.build(ctx, snap)

	if encoded, err := json.Marshal(p); err == nil {
		s.cache.Put(ctx, key, string(encoded))
	} else {
		log.Err(err).Str("track_id", trackID).Msg("failed to encode panel for cache")
	}
	return p, false, nil
}

// review is the combined songwriter, story and critique reply
type review struct {
	Writers          []string `json:"writers"`
	Producer         string   `json:"producer"`
	WriterBackground string   `json:"writer_background"`
	WriterSource     string   `json:"writer_source"`
	Themes           []string `json:"themes"`
	Meaning          string   `json:"meaning"`
	CulturalContext  string   `json:"cultural_context"`
	Verdict          string   `json:"verdict"`
	Rating           float64  `json:"rating"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	SourcesNote      string   `json:"sources_note"`
}

func (s *Service) build(ctx context.Context, snap Snapshot) *Panel {
	var (
		wg       sync.WaitGroup
		rev      *review
		theme    ThemeSummary
		band     BandInfo
		articles EncyclopediaFacts
		wikiPage string
	)

	s.facet(ctx, &wg, "review", func(ctx context.Context) error {
		var err error
		rev, err = s.review(ctx, snap)
		return err
	})
	s.facet(ctx, &wg, "theme_summary", func(ctx context.Context) error {
		var err error
		theme, err = s.themeSummary(ctx, snap)
		return err
	})
	s.facet(ctx, &wg, "band_info", func(ctx context.Context) error {
		band = s.bandInfo(ctx, snap)
		return nil
	})
	s.facet(ctx, &wg, "encyclopedia_facts", func(ctx context.Context) error {
		var err error
		articles, err = s.encyclopediaFacts(ctx, snap)
		wikiPage = articles.PageTitle
		return err
	})
	wg.Wait()

	core := snap.TrackCore
	if theme.Text == "" {
		theme = ThemeSummary{Text: fmt.Sprintf("Theme summary for %s unavailable", core.Title), Source: SourceLLM, Confidence: ConfidenceLow}
	}
	if band.Source == "" {
		band = s.fallbackBandInfo(snap)
	}
	if len(articles.Facts) == 0 {
		articles = EncyclopediaFacts{Facts: []string{"Encyclopedia facts unavailable"}, Confidence: ConfidenceLow}
	}

	writers, story, critique := fromReview(rev, core)

	artistHeader := core.LeadArtist()
	if artistHeader == "" {
		artistHeader = "Unknown Artist"
	}
	return &Panel{
		ArtistHeader:       artistHeader,
		TrackFacts:         trackFacts(snap, writers),
		SongwriterInfo:     writers,
		SongStory:          story,
		CriticalReview:     critique,
		ThemeSummary:       theme,
		BandInfo:           band,
		EncyclopediaFacts:  articles,
		InterestingFacts:   interestingFacts(snap),
		SourcesAttribution: attribution(rev, wikiPage, band.Source),
	}
}

// facet runs fn in its own goroutine. Errors and panics are logged and leave
// the facet's result at its zero value for the caller to replace.
func (s *Service) facet(ctx context.Context, wg *sync.WaitGroup, name string, fn func(context.Context) error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("facet", name).Interface("panic", r).Msg("facet panicked")
			}
		}()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		if err := fn(ctx); err != nil {
			ev := log.Warn()
			if errors.Is(err, errors.ErrNotConfigured) {
				ev = log.Debug()
			}
			ev.Err(err).Str("facet", name).Msg("facet unavailable")
		}
	}()
}

func (s *Service) review(ctx context.Context, snap Snapshot) (*review, error) {
	out, err := s.llm.Complete(ctx, llm.Request{Prompt: reviewPrompt(snap), MaxTokens: 800, Temperature: 0.3})
	if err != nil {
		return nil, err
	}
	var r review
	if err := json.Unmarshal([]byte(llm.StripFence(out.Text)), &r); err != nil {
		return nil, fmt.Errorf("%w: review reply is not JSON: %w", errors.ErrCollaboratorFailure, err)
	}
	if r.Meaning == "" && r.Verdict == "" && len(r.Writers) == 0 {
		return nil, fmt.Errorf("%w: review reply is empty", errors.ErrCollaboratorFailure)
	}
	return &r, nil
}

func fromReview(r *review, core *TrackCore) (SongwriterInfo, SongStory, CriticalReview) {
	if r == nil {
		writers := SongwriterInfo{Writers: []string{}, Background: "Songwriter information unavailable", Source: WritersUnknown}
		if known, ok := staticSongFacts(core.LeadArtist()); ok {
			writers.Producer = known.Producer
			writers.Source = WritersKnown
		}
		return writers,
			SongStory{Text: "Song story unavailable", Themes: []string{}, Source: SourceLLM, Confidence: ConfidenceLow},
			CriticalReview{Verdict: "Critical review unavailable", Strengths: []string{}, Weaknesses: []string{}, Source: "critical_analysis"}
	}

	source := WriterSource(strings.ToLower(r.WriterSource))
	switch source {
	case WritersKnown, WritersInferred:
	default:
		source = WritersUnknown
	}
	writers := SongwriterInfo{
		Writers:    nonNil(r.Writers),
		Producer:   strings.TrimSpace(r.Producer),
		Background: r.WriterBackground,
		Source:     source,
	}
	story := SongStory{
		Text:            r.Meaning,
		Themes:          utils.Limit(nonNil(r.Themes), 3),
		Meaning:         r.Meaning,
		CulturalContext: r.CulturalContext,
		Source:          SourceAnalysis,
		Confidence:      ConfidenceMedium,
	}
	critique := CriticalReview{
		Verdict:    r.Verdict,
		Rating:     r.Rating,
		Strengths:  utils.Limit(nonNil(r.Strengths), 3),
		Weaknesses: utils.Limit(nonNil(r.Weaknesses), 3),
		Source:     "critical_analysis",
	}
	return writers, story, critique
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *Service) themeSummary(ctx context.Context, snap Snapshot) (ThemeSummary, error) {
	out, err := s.llm.Complete(ctx, llm.Request{Prompt: themePrompt(snap), MaxTokens: 200, Temperature: 0.3})
	if err != nil {
		return ThemeSummary{}, err
	}
	if len(out.Text) <= minThemeReply {
		return ThemeSummary{}, fmt.Errorf("%w: theme summary too short", errors.ErrCollaboratorFailure)
	}
	return ThemeSummary{Text: out.Text, Source: SourceLLM, Confidence: ConfidenceMedium}, nil
}

// bandInfo never fails: an unusable reply falls back to the static table, then to Spotify data
func (s *Service) bandInfo(ctx context.Context, snap Snapshot) BandInfo {
	artist := snap.TrackCore.LeadArtist()
	if artist != "" {
		out, err := s.llm.Complete(ctx, llm.Request{Prompt: bandPrompt(artist), MaxTokens: 300, Temperature: 0.3})
		if err == nil {
			if info, ok := parseBandInfo(out.Text, artist); ok {
				return info
			}
			log.Debug().Str("artist", artist).Msg("band info reply not parseable")
		} else if !errors.Is(err, errors.ErrNotConfigured) {
			log.Warn().Err(err).Str("artist", artist).Msg("band info generation failed")
		}
	}
	return s.fallbackBandInfo(snap)
}

func (s *Service) fallbackBandInfo(snap Snapshot) BandInfo {
	if info, ok := staticBandInfo(snap.TrackCore.LeadArtist()); ok {
		return info
	}
	return genericBandInfo(snap)
}

func (s *Service) encyclopediaFacts(ctx context.Context, snap Snapshot) (EncyclopediaFacts, error) {
	core := snap.TrackCore
	content, err := s.encyclopedia.ContentForSong(ctx, core.Title, core.LeadArtist(), core.Album)
	if err != nil {
		return EncyclopediaFacts{}, err
	}
	if content == nil {
		return EncyclopediaFacts{}, nil
	}
	facts := EncyclopediaFacts{PageTitle: content.Title, Source: string(content.Source)}

	out, err := s.llm.Complete(ctx, llm.Request{
		Prompt:    articlePrompt(snap, string(content.Source), content.Title, content.Text),
		MaxTokens: 800,
	})
	switch {
	case err == nil:
		if items, ok := llm.ParseList(out.Text, maxArticleFacts); ok {
			facts.Facts, facts.Confidence = items, ConfidenceHigh
			return facts, nil
		}
		facts.Facts, facts.Confidence = llm.ParseLines(out.Text, minFallbackLine, maxFallbackLines), ConfidenceMedium
		if len(facts.Facts) > 0 {
			return facts, nil
		}
	case !errors.Is(err, errors.ErrNotConfigured):
		log.Warn().Err(err).Str("page", content.Title).Msg("article fact extraction failed, using extract")
	}

	facts.Facts, facts.Confidence = leadingSentences(content.Text, maxFallbackLines), ConfidenceMedium
	return facts, nil
}

// leadingSentences returns up to n sentences longer than minFallbackLine characters
func leadingSentences(text string, n int) []string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		for _, sentence := range strings.SplitAfter(paragraph, ". ") {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= minFallbackLine {
				continue
			}
			out = append(out, sentence)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}

func attribution(r *review, wikiPage string, bandSource Source) string {
	parts := []string{"Spotify API (track data, popularity)"}
	if r != nil {
		parts = append(parts, "AI analysis (songwriters, themes, critique)")
	}
	if wikiPage != "" {
		parts = append(parts, fmt.Sprintf("Wikipedia (%s)", wikiPage))
	}
	if bandSource == SourceDatabase {
		parts = append(parts, "Music database (band details)")
	}
	text := "Sources: " + strings.Join(parts, ", ") + "."
	if r != nil && r.SourcesNote != "" {
		text += " " + r.SourcesNote
	}
	return text
}
