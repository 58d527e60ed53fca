package services

import (
	"context"
	"math/rand"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	"github.com/tunecord/tunecord/internal/services/youtube"
	"github.com/tunecord/tunecord/pkg/logger"
)

// AutoplayResult tells callers why a replenishment did or did not
// happen, instead of collapsing every failure into one boolean.
type AutoplayResult int

const (
	// AutoplayAdded means a related track was appended to the queue
	AutoplayAdded AutoplayResult = iota
	// AutoplayNoCandidate means the search ran but produced nothing new
	AutoplayNoCandidate
	// AutoplayUnsupportedSource means the sampled track's source has
	// no related-track capability
	AutoplayUnsupportedSource
	// AutoplayUnconfigured means the needed API credentials are missing
	AutoplayUnconfigured
	// AutoplayUnavailable means the external service failed
	AutoplayUnavailable
)

// Added reports whether the queue grew
func (r AutoplayResult) Added() bool {
	return r == AutoplayAdded
}

func (r AutoplayResult) String() string {
	switch r {
	case AutoplayAdded:
		return "added"
	case AutoplayNoCandidate:
		return "no candidate"
	case AutoplayUnsupportedSource:
		return "unsupported source"
	case AutoplayUnconfigured:
		return "unconfigured"
	case AutoplayUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Queue is the capability a playback queue exposes to autoplay
type Queue interface {
	// History returns played tracks in order, most recent last,
	// optionally closed by the currently playing track
	History(includeCurrent bool) []*entities.Track

	// Add appends tracks to the queue
	Add(tracks ...*entities.Track) error
}

// TrackResolver resolves an external id or URL to playable tracks
type TrackResolver interface {
	GetTracks(ctx context.Context, query, requester string) ([]*entities.Track, error)
}

// RelatedTrackProvider supplies curated-catalog related tracks from
// artist and track seeds
type RelatedTrackProvider interface {
	RelatedTracks(ctx context.Context, seedArtistID, seedTrackID string) ([]*entities.Track, error)
}

// AutoplayService extends playback queues with tracks related to
// their recent history
type AutoplayService struct {
	yt         *youtube.Service
	catalog    RelatedTrackProvider // nil when Spotify is not configured
	resolver   TrackResolver
	requester  string
	historyLen int
	logger     *logger.Logger
}

// NewAutoplayService creates an autoplay service. requester is the
// identity attributed to auto-added tracks, typically the bot user.
func NewAutoplayService(yt *youtube.Service, catalog RelatedTrackProvider, resolver TrackResolver, requester string, historyLen int, log *logger.Logger) *AutoplayService {
	if historyLen <= 0 {
		historyLen = 10
	}
	return &AutoplayService{
		yt:         yt,
		catalog:    catalog,
		resolver:   resolver,
		requester:  requester,
		historyLen: historyLen,
		logger:     log,
	}
}

// SimilarTrack samples the queue's recent history and appends one
// related track. The queue is only mutated when the result is
// AutoplayAdded; every external failure degrades to a result code.
func (s *AutoplayService) SimilarTrack(ctx context.Context, queue Queue) (AutoplayResult, error) {
	history := queue.History(true)
	if len(history) == 0 {
		return AutoplayNoCandidate, nil
	}

	// Everything the queue has already played from the search-indexed
	// source, for dedup
	seen := make(map[string]struct{})
	for _, track := range history {
		if track.Source == valueobjects.SourceTypeYouTube {
			seen[track.Identifier] = struct{}{}
		}
	}

	recent := history
	if len(recent) > s.historyLen {
		recent = recent[len(recent)-s.historyLen:]
	}
	sample := recent[rand.Intn(len(recent))]

	var picked []*entities.Track
	switch {
	case sample.IsSpotify():
		if s.catalog == nil {
			return AutoplayUnconfigured, nil
		}
		seedArtist := ""
		if len(sample.ArtistIDs) > 0 {
			seedArtist = sample.ArtistIDs[0]
		}
		tracks, err := s.catalog.RelatedTracks(ctx, seedArtist, sample.SpotifyID)
		if err != nil {
			s.logger.WithError(err).Debug("Catalog related-tracks lookup failed")
			return AutoplayUnavailable, err
		}
		picked = tracks

	case sample.Source != valueobjects.SourceTypeYouTube:
		return AutoplayUnsupportedSource, nil

	default:
		if !s.yt.Configured() {
			return AutoplayUnconfigured, nil
		}
		items, err := s.yt.Related(ctx, sample.Identifier)
		if err != nil {
			s.logger.WithError(err).Debug("Related videos lookup failed")
			return AutoplayUnavailable, err
		}
		for _, item := range items {
			if item.Snippet == nil {
				continue
			}
			if _, dup := seen[item.ID.VideoID]; dup {
				continue
			}
			tracks, err := s.resolver.GetTracks(ctx, youtube.WatchURL(item.ID.VideoID), s.requester)
			if err != nil {
				s.logger.WithError(err).Debug("Track resolution failed")
				return AutoplayUnavailable, err
			}
			picked = tracks
			break
		}
	}

	if len(picked) == 0 {
		return AutoplayNoCandidate, nil
	}
	if err := queue.Add(picked...); err != nil {
		return AutoplayNoCandidate, err
	}

	s.logger.WithField("count", len(picked)).Debug("Autoplay appended related tracks")
	return AutoplayAdded, nil
}
