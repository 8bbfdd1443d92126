package spotify

import (
	"time"

	"github.com/jrsteele09/now-playing/internal/utils"
)

// Artist is a credited artist on a track
type Artist struct {
	ID   string
	Name string
}

// Track is the upstream track identity plus catalogue metadata. ID is the
// join key shared by the now-playing and recently-played representations.
type Track struct {
	ID               string
	Title            string
	Artists          []Artist
	Album            string
	AlbumType        string
	ReleaseDate      string
	DurationMs       int
	ISRC             *string
	CoverURL         string
	Popularity       int
	MarketsAvailable int
}

// ArtistNames returns the credited artist names in order
func (t Track) ArtistNames() []string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return names
}

// Playback is what the user is listening to, or last listened to when Recent is set
type Playback struct {
	Track      Track
	IsPlaying  bool
	ProgressMs int
	Recent     bool
	PlayedAt   time.Time
}

// AudioFeatures is the musical analysis of a track
type AudioFeatures struct {
	TempoBPM     float64 `json:"tempo_bpm"`
	Key          string  `json:"key"`
	Mode         string  `json:"mode"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
}

// DefaultAudioFeatures are the neutral values used when no analysis is available
func DefaultAudioFeatures() AudioFeatures {
	return AudioFeatures{Key: KeyName(0), Mode: ModeName(0)}
}

// ArtistInfo is the artist profile used for genre and follower facts
type ArtistInfo struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Followers int      `json:"followers"`
}

// wire formats

type imageObject struct {
	URL string `json:"url"`
}

type trackObject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMs  int    `json:"duration_ms"`
	Popularity  int    `json:"popularity"`
	ExternalIDs struct {
		ISRC string `json:"isrc"`
	} `json:"external_ids"`
	AvailableMarkets []string `json:"available_markets"`
	Artists          []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name             string        `json:"name"`
		AlbumType        string        `json:"album_type"`
		ReleaseDate      string        `json:"release_date"`
		Images           []imageObject `json:"images"`
		AvailableMarkets []string      `json:"available_markets"`
	} `json:"album"`
}

type currentlyPlayingResponse struct {
	IsPlaying  bool         `json:"is_playing"`
	ProgressMs int          `json:"progress_ms"`
	Item       *trackObject `json:"item"`
}

type recentlyPlayedResponse struct {
	Items []struct {
		Track    trackObject `json:"track"`
		PlayedAt time.Time   `json:"played_at"`
	} `json:"items"`
}

type audioFeaturesResponse struct {
	Tempo        float64 `json:"tempo"`
	Key          int     `json:"key"`
	Mode         int     `json:"mode"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
}

type artistResponse struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
}

func (o trackObject) toTrack() Track {
	t := Track{
		ID:          o.ID,
		Title:       o.Name,
		Album:       o.Album.Name,
		AlbumType:   o.Album.AlbumType,
		ReleaseDate: o.Album.ReleaseDate,
		DurationMs:  o.DurationMs,
		Popularity:  o.Popularity,
	}
	for _, a := range o.Artists {
		t.Artists = append(t.Artists, Artist{ID: a.ID, Name: a.Name})
	}
	t.ISRC = utils.NonZeroPtr(o.ExternalIDs.ISRC)
	if len(o.Album.Images) > 0 {
		t.CoverURL = o.Album.Images[0].URL
	}
	t.MarketsAvailable = len(o.AvailableMarkets)
	if t.MarketsAvailable == 0 {
		t.MarketsAvailable = len(o.Album.AvailableMarkets)
	}
	return t
}
