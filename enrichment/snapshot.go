package enrichment

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/now-playing/spotify"
)

// NewSnapshot builds the current-track payload. A nil features value means the
// analysis was unavailable and neutral defaults are reported.
func NewSnapshot(p *spotify.Playback, features *spotify.AudioFeatures, artists []spotify.ArtistInfo) Snapshot {
	af := spotify.DefaultAudioFeatures()
	if features != nil {
		af = *features
	}
	if artists == nil {
		artists = []spotify.ArtistInfo{}
	}
	core := &TrackCore{
		Title:          p.Track.Title,
		Artists:        p.Track.ArtistNames(),
		Album:          p.Track.Album,
		ReleaseDate:    p.Track.ReleaseDate,
		DurationMs:     p.Track.DurationMs,
		ISRC:           p.Track.ISRC,
		SpotifyTrackID: p.Track.ID,
		CoverURL:       p.Track.CoverURL,
	}
	return Snapshot{
		TrackCore:     core,
		AudioFeatures: &af,
		Stats: &Stats{
			Popularity:       p.Track.Popularity,
			AlbumType:        p.Track.AlbumType,
			MarketsAvailable: p.Track.MarketsAvailable,
			ArtistInfo:       artists,
		},
		IsPlaying:       p.IsPlaying,
		Recent:          p.Recent,
		ProgressMs:      p.ProgressMs,
		SidebarMarkdown: sidebarMarkdown(core, p.Recent),
	}
}

func sidebarMarkdown(core *TrackCore, recent bool) string {
	prefix := "Currently playing"
	if recent {
		prefix = "Last played track"
	}
	return fmt.Sprintf("%s **%s** by **%s**.", prefix, core.Title, strings.Join(core.Artists, ", "))
}
