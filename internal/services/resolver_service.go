package services

import (
	"context"
	"fmt"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	apperrors "github.com/tunecord/tunecord/internal/errors"
	"github.com/tunecord/tunecord/internal/services/youtube"
	"github.com/tunecord/tunecord/internal/validation"
	"github.com/tunecord/tunecord/pkg/logger"
)

// SearchResolver turns watch URLs and free-text queries into playable
// tracks through the YouTube Data API
type SearchResolver struct {
	yt     *youtube.Service
	logger *logger.Logger
}

// NewSearchResolver creates a resolver backed by the given client
func NewSearchResolver(yt *youtube.Service, log *logger.Logger) *SearchResolver {
	return &SearchResolver{yt: yt, logger: log}
}

// GetTracks resolves a watch URL or search query to tracks. URL inputs
// resolve to exactly one track.
func (r *SearchResolver) GetTracks(ctx context.Context, query, requester string) ([]*entities.Track, error) {
	query = validation.SanitizeInput(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", apperrors.ErrInvalidInput)
	}

	limit := 5
	if validation.IsYouTubeURL(query) {
		if id := youtube.ExtractVideoID(query); id != "" {
			query = id
		}
		limit = 1
	}

	items, err := r.yt.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	tracks := make([]*entities.Track, 0, len(items))
	for _, item := range items {
		if item.Snippet == nil || item.ID.VideoID == "" {
			continue
		}
		track := entities.NewTrack(item.ID.VideoID, valueobjects.SourceTypeYouTube, item.Snippet.Title)
		track.Artist = item.Snippet.ChannelTitle
		track.URI = youtube.WatchURL(item.ID.VideoID)
		track.Requester = requester
		tracks = append(tracks, track)
	}
	if len(tracks) == 0 {
		return nil, apperrors.ErrInvalidInput
	}
	if limit == 1 {
		tracks = tracks[:1]
	}
	return tracks, nil
}
