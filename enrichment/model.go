package enrichment

import (
	"strconv"

	"github.com/jrsteele09/now-playing/spotify"
)

// Source is where a fact came from
type Source string

const (
	SourceSpotify  Source = "spotify"
	SourceLLM      Source = "llm"
	SourceDatabase Source = "database"
	SourceAnalysis Source = "analysis"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// WriterSource says how songwriter credits were obtained
type WriterSource string

const (
	WritersKnown    WriterSource = "known"
	WritersInferred WriterSource = "inferred"
	WritersUnknown  WriterSource = "unknown"
)

// TrackCore is the identity and catalogue data of the track being shown
type TrackCore struct {
	Title          string   `json:"title"`
	Artists        []string `json:"artists"`
	Album          string   `json:"album"`
	ReleaseDate    string   `json:"release_date"`
	DurationMs     int      `json:"duration_ms"`
	ISRC           *string  `json:"isrc"`
	SpotifyTrackID string   `json:"spotify_track_id"`
	CoverURL       string   `json:"cover_url"`
}

// LeadArtist is the first credited artist, or empty
func (t TrackCore) LeadArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// ReleaseYear parses the leading year of dates like "1987", "1987-11" or "1987-11-12"
func (t TrackCore) ReleaseYear() (int, bool) {
	if len(t.ReleaseDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(t.ReleaseDate[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

type Stats struct {
	Popularity       int                  `json:"popularity"`
	AlbumType        string               `json:"album_type"`
	MarketsAvailable int                  `json:"markets_available"`
	ArtistInfo       []spotify.ArtistInfo `json:"artist_info"`
}

func (s *Stats) leadArtist() *spotify.ArtistInfo {
	if s == nil || len(s.ArtistInfo) == 0 {
		return nil
	}
	return &s.ArtistInfo[0]
}

// Snapshot is the payload of the current-track route and the input of the panel route
type Snapshot struct {
	TrackCore       *TrackCore             `json:"track_core"`
	AudioFeatures   *spotify.AudioFeatures `json:"audio_features"`
	Stats           *Stats                 `json:"stats"`
	IsPlaying       bool                   `json:"is_playing"`
	Recent          bool                   `json:"recent"`
	ProgressMs      int                    `json:"progress_ms"`
	SidebarMarkdown string                 `json:"sidebar_markdown"`
	PollIntervalMs  int64                  `json:"poll_interval_ms"`
}

type TrackFact struct {
	Text       string     `json:"text"`
	Source     Source     `json:"source"`
	Confidence Confidence `json:"confidence"`
}

type SongwriterInfo struct {
	Writers    []string     `json:"writers"`
	Producer   string       `json:"producer,omitempty"`
	Background string       `json:"background"`
	Source     WriterSource `json:"source"`
}

type SongStory struct {
	Text            string     `json:"text"`
	Themes          []string   `json:"themes"`
	Meaning         string     `json:"meaning"`
	CulturalContext string     `json:"cultural_context"`
	Source          Source     `json:"source"`
	Confidence      Confidence `json:"confidence"`
}

type CriticalReview struct {
	Verdict    string   `json:"verdict"`
	Rating     float64  `json:"rating"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Source     string   `json:"source"`
}

// ThemeSummary describes the emotional themes of a song without quoting lyrics
type ThemeSummary struct {
	Text       string     `json:"text"`
	Source     Source     `json:"source"`
	Confidence Confidence `json:"confidence"`
}

type BandInfo struct {
	Members       []string `json:"members"`
	FormationYear string   `json:"formation_year,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	NotableFacts  []string `json:"notable_facts"`
	Source        Source   `json:"source"`
}

type EncyclopediaFacts struct {
	Facts      []string   `json:"facts"`
	PageTitle  string     `json:"page_title,omitempty"`
	Source     string     `json:"source,omitempty"`
	Confidence Confidence `json:"confidence"`
}

type InterestingFacts struct {
	Facts []string `json:"facts"`
}

// Panel is the enrichment shown next to the track
type Panel struct {
	ArtistHeader       string            `json:"artist_header"`
	TrackFacts         []TrackFact       `json:"track_facts"`
	SongwriterInfo     SongwriterInfo    `json:"songwriter_info"`
	SongStory          SongStory         `json:"song_story"`
	CriticalReview     CriticalReview    `json:"critical_review"`
	ThemeSummary       ThemeSummary      `json:"theme_summary"`
	BandInfo           BandInfo          `json:"band_info"`
	EncyclopediaFacts  EncyclopediaFacts `json:"encyclopedia_facts"`
	InterestingFacts   InterestingFacts  `json:"interesting_facts"`
	SourcesAttribution string            `json:"sources_attribution"`
}

// SongFactsRequest is the body of the song facts route
type SongFactsRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ReleaseDate string `json:"release_date"`
}

type SongFacts struct {
	Studio     string `json:"studio"`
	Producer   string `json:"producer"`
	AlbumSales string `json:"album_sales"`
}
