package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	"github.com/tunecord/tunecord/internal/utils"
)

// Track represents a resolved, playable track in a queue
type Track struct {
	// Identity
	ID         string                  `json:"id"`
	Identifier string                  `json:"identifier"` // external id, e.g. YouTube video id
	Source     valueobjects.SourceType `json:"source"`
	URI        string                  `json:"uri"`

	// Display
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Length int    `json:"length"` // milliseconds

	// Catalog seeds, set for Spotify-sourced tracks
	SpotifyID string   `json:"spotify_id,omitempty"`
	ArtistIDs []string `json:"artist_ids,omitempty"`

	// Requester info
	Requester string    `json:"requester,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// NewTrack creates a track with a fresh identity
func NewTrack(identifier string, source valueobjects.SourceType, title string) *Track {
	return &Track{
		ID:         uuid.New().String(),
		Identifier: identifier,
		Source:     source,
		Title:      title,
		AddedAt:    time.Now(),
	}
}

// IsSpotify reports whether the track came from the curated catalog
func (t *Track) IsSpotify() bool {
	return t.Source == valueobjects.SourceTypeSpotify
}

// DisplayName returns the best display name for the track
func (t *Track) DisplayName() string {
	if t.Artist != "" {
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	}
	return t.Title
}

// FormattedLength returns the track length as a clock string
func (t *Track) FormattedLength() string {
	return utils.FormatDuration(t.Length)
}

// Ref returns the persistent reference stored in playlist documents
func (t *Track) Ref() TrackRef {
	return TrackRef{
		ID:     t.Identifier,
		Source: t.Source,
		Title:  t.Title,
		URI:    t.URI,
	}
}
