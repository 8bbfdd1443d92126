package enrichment

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/internal/utils"
)

const (
	maxTrackFacts       = 6
	maxInterestingFacts = 5
	minInterestingFacts = 3
	wideRelease         = 100
	popularTrack        = 70
	bigFollowing        = 1_000_000
)

func formatDuration(ms int) string {
	return fmt.Sprintf("%d:%02d", ms/60000, (ms%60000)/1000)
}

func trackFacts(s Snapshot, writers SongwriterInfo) []TrackFact {
	var facts []TrackFact
	core := s.TrackCore

	spotifyFact := func(text string) {
		facts = append(facts, TrackFact{Text: text, Source: SourceSpotify, Confidence: ConfidenceHigh})
	}

	if core.DurationMs > 0 {
		spotifyFact("Duration: " + formatDuration(core.DurationMs))
	}
	if year, ok := core.ReleaseYear(); ok {
		spotifyFact(fmt.Sprintf("Released: %d", year))
	}
	if s.Stats != nil {
		spotifyFact(fmt.Sprintf("Top ~%d%% on Spotify", s.Stats.Popularity))
		if s.Stats.AlbumType != "" {
			spotifyFact("Album type: " + s.Stats.AlbumType)
		}
	}
	if writers.Producer != "" {
		fact := TrackFact{Text: "Producer: " + writers.Producer, Source: SourceLLM}
		switch writers.Source {
		case WritersKnown:
			fact.Source, fact.Confidence = SourceDatabase, ConfidenceHigh
		case WritersInferred:
			fact.Confidence = ConfidenceMedium
		default:
			fact.Confidence = ConfidenceLow
		}
		facts = append(facts, fact)
	}
	if s.Stats != nil && s.Stats.MarketsAvailable > wideRelease {
		spotifyFact(fmt.Sprintf("Available in %d markets", s.Stats.MarketsAvailable))
	}
	return utils.Limit(facts, maxTrackFacts)
}

func interestingFacts(s Snapshot) InterestingFacts {
	facts := []string{}
	core := s.TrackCore
	lead := s.Stats.leadArtist()

	if s.Stats != nil && s.Stats.Popularity > popularTrack {
		facts = append(facts, fmt.Sprintf("This track has high popularity (%d/100) on Spotify", s.Stats.Popularity))
	}
	if year, ok := core.ReleaseYear(); ok && core.Album != "" {
		facts = append(facts, fmt.Sprintf("Featured on \"%s\" (%d)", core.Album, year))
	}
	if lead != nil && len(lead.Genres) > 0 {
		facts = append(facts, fmt.Sprintf("Classified as %s music", strings.Join(utils.Limit(lead.Genres, 2), " and ")))
	}
	if lead != nil && lead.Followers > bigFollowing {
		facts = append(facts, fmt.Sprintf("Artist has %dM+ followers on Spotify", int(math.Round(float64(lead.Followers)/1e6))))
	}
	if s.Stats != nil && s.Stats.MarketsAvailable > wideRelease {
		facts = append(facts, fmt.Sprintf("Available in %d countries worldwide", s.Stats.MarketsAvailable))
	}

	if len(facts) < minInterestingFacts {
		if core.DurationMs > 0 {
			minutes := math.Round(float64(core.DurationMs)/60000*100) / 100
			facts = append(facts, fmt.Sprintf("Duration: %s minutes", strconv.FormatFloat(minutes, 'f', -1, 64)))
		}
		if s.Stats != nil && s.Stats.AlbumType != "" {
			facts = append(facts, fmt.Sprintf("Part of a %s release", s.Stats.AlbumType))
		}
	}
	return InterestingFacts{Facts: utils.Limit(facts, maxInterestingFacts)}
}

// genericBandInfo is built from Spotify data alone
func genericBandInfo(s Snapshot) BandInfo {
	info := BandInfo{
		Members:      utils.Limit(append([]string{}, s.TrackCore.Artists...), 4),
		NotableFacts: []string{},
		Source:       SourceSpotify,
	}
	if lead := s.Stats.leadArtist(); lead != nil && len(lead.Genres) > 0 {
		info.NotableFacts = append(info.NotableFacts, fmt.Sprintf("Known for their %s style", lead.Genres[0]))
	}
	if s.TrackCore.Album != "" && s.Stats != nil && s.Stats.AlbumType != "" {
		info.NotableFacts = append(info.NotableFacts, fmt.Sprintf("\"%s\" is a %s", s.TrackCore.Album, s.Stats.AlbumType))
	}
	return info
}

// SongFactsFor answers from the static table: known artists first, then a guess by release era
func SongFactsFor(req SongFactsRequest) (SongFacts, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Artist) == "" {
		return SongFacts{}, errors.Wrapf(errors.ErrInvalidRequest, "title and artist are required")
	}
	if facts, ok := staticSongFacts(req.Artist); ok {
		return facts, nil
	}
	year, _ := TrackCore{ReleaseDate: req.ReleaseDate}.ReleaseYear()
	return eraSongFacts(year), nil
}
