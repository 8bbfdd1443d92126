package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/now-playing/enrichment"
	"github.com/jrsteele09/now-playing/internal/errors"
	"github.com/jrsteele09/now-playing/spotify"
	"github.com/rs/zerolog/log"
)

// CurrentTrackHandler returns the playing track, or the last played one, with
// its audio features and stats. 204 means there is nothing to show.
func (s *Server) CurrentTrackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			s.writeUnauthenticated(w, "user not authenticated")
			return
		}
		ctx := r.Context()
		logger := log.Ctx(ctx)

		playback, err := s.music.Current(ctx, session.AccessToken)
		if err != nil {
			s.writeUpstreamError(w, r, err, "failed to fetch track information")
			return
		}
		if playback == nil {
			s.setPollInterval(w, s.config.GetIdlePollInterval())
			w.WriteHeader(http.StatusNoContent)
			return
		}

		features, artists, err := s.trackDetails(ctx, session.AccessToken, playback.Track)
		if err != nil {
			s.writeUpstreamError(w, r, err, "failed to fetch audio features")
			return
		}

		snap := enrichment.NewSnapshot(playback, features, artists)
		interval := s.pollInterval(playback)
		snap.PollIntervalMs = interval.Milliseconds()
		s.setPollInterval(w, interval)

		logger.Debug().Str("track_id", playback.Track.ID).Bool("playing", playback.IsPlaying).Bool("recent", playback.Recent).Msg("current track")
		writeJSON(w, snap, http.StatusOK)
	}
}

// trackDetails fetches audio features and the lead artist concurrently. Missing
// analysis yields nil features; a failed artist lookup yields no artist info.
func (s *Server) trackDetails(ctx context.Context, accessToken string, track spotify.Track) (*spotify.AudioFeatures, []spotify.ArtistInfo, error) {
	var (
		wg          sync.WaitGroup
		features    *spotify.AudioFeatures
		featuresErr error
		artist      *spotify.ArtistInfo
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		features, featuresErr = s.music.AudioFeatures(ctx, accessToken, track.ID)
	}()

	if len(track.Artists) > 0 && track.Artists[0].ID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.music.Artist(ctx, accessToken, track.Artists[0].ID)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("artist_id", track.Artists[0].ID).Msg("artist lookup failed")
				return
			}
			artist = a
		}()
	}
	wg.Wait()

	if featuresErr != nil {
		if !spotify.IsFeatureUnavailable(featuresErr) {
			return nil, nil, featuresErr
		}
		log.Ctx(ctx).Debug().Err(featuresErr).Str("track_id", track.ID).Msg("audio features unavailable, using defaults")
		features = nil
	}

	var artists []spotify.ArtistInfo
	if artist != nil {
		artists = append(artists, *artist)
	}
	return features, artists, nil
}

func (s *Server) pollInterval(p *spotify.Playback) time.Duration {
	switch {
	case p == nil:
		return s.config.GetIdlePollInterval()
	case p.IsPlaying && !p.Recent:
		return s.config.GetPlayingPollInterval()
	default:
		return s.config.GetPausedPollInterval()
	}
}

// writeUpstreamError maps music API failures: a rejected token is an
// unauthenticated session, anything else a failed poll
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, errors.ErrUnauthenticated) {
		log.Ctx(r.Context()).Debug().Err(err).Msg("music API rejected the access token")
		s.writeUnauthenticated(w, "user not authenticated")
		return
	}
	log.Ctx(r.Context()).Err(err).Msg(message)
	writeJSONError(w, message, http.StatusBadGateway)
}
