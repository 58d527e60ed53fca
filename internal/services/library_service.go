package services

import (
	"context"
	"fmt"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/repositories"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	apperrors "github.com/tunecord/tunecord/internal/errors"
	"github.com/tunecord/tunecord/internal/validation"
	"github.com/tunecord/tunecord/pkg/logger"
)

// LibraryService manages per-user playlist documents and inboxes.
// There is no cache in front of it; every call hits the store.
type LibraryService struct {
	repo   repositories.LibraryRepository
	logger *logger.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(repo repositories.LibraryRepository, log *logger.Logger) *LibraryService {
	return &LibraryService{
		repo:   repo,
		logger: log,
	}
}

// GetLibrary returns a user's whole library document, nil when the
// user has no account
func (s *LibraryService) GetLibrary(ctx context.Context, userID string) (*entities.Library, error) {
	return s.repo.Get(ctx, userID)
}

// GetPlaylists returns the playlist map of a user's library, nil
// when the user has no account
func (s *LibraryService) GetPlaylists(ctx context.Context, userID string) (map[string]*entities.Playlist, error) {
	lib, err := s.repo.Get(ctx, userID)
	if err != nil || lib == nil {
		return nil, err
	}
	return lib.Playlists, nil
}

// GetPlaylist returns one playlist by id, nil when the user or the
// playlist is absent
func (s *LibraryService) GetPlaylist(ctx context.Context, userID, playlistID string) (*entities.Playlist, error) {
	lib, err := s.repo.Get(ctx, userID)
	if err != nil || lib == nil {
		return nil, err
	}
	return lib.Playlist(playlistID), nil
}

// GetInbox returns a user's inbox entries, nil when the user has no account
func (s *LibraryService) GetInbox(ctx context.Context, userID string) ([]entities.InboxEntry, error) {
	lib, err := s.repo.Get(ctx, userID)
	if err != nil || lib == nil {
		return nil, err
	}
	return lib.Inbox, nil
}

// Push appends values onto named array fields and surfaces the store result
func (s *LibraryService) Push(ctx context.Context, userID string, fields map[string]any) (repositories.UpdateResult, error) {
	return s.repo.Push(ctx, userID, fields)
}

// Set overwrites named fields; the store result is not surfaced
func (s *LibraryService) Set(ctx context.Context, userID string, fields map[string]any) error {
	return s.repo.Set(ctx, userID, fields)
}

// Pull removes matching elements from named array fields and surfaces
// the store result
func (s *LibraryService) Pull(ctx context.Context, userID string, fields map[string]any) (repositories.UpdateResult, error) {
	return s.repo.Pull(ctx, userID, fields)
}

// Unset removes named fields; the store result is not surfaced
func (s *LibraryService) Unset(ctx context.Context, userID string, fields ...string) error {
	return s.repo.Unset(ctx, userID, fields...)
}

// AddTrack appends a track reference to a playlist
func (s *LibraryService) AddTrack(ctx context.Context, userID, playlistID string, ref entities.TrackRef) (repositories.UpdateResult, error) {
	playlist, err := s.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return repositories.UpdateResult{}, err
	}
	if playlist == nil {
		return repositories.UpdateResult{}, apperrors.ErrPlaylistNotFound
	}
	if len(playlist.Tracks) >= MaxTracksPerPlaylist {
		return repositories.UpdateResult{}, apperrors.ErrPlaylistTrackLimit
	}

	result, err := s.repo.Push(ctx, userID, map[string]any{
		trackField(playlistID): ref,
	})
	if err == nil {
		s.logger.WithField("playlist", playlistID).Debug("Track added to playlist")
	}
	return result, err
}

// RemoveTrack removes every occurrence of a track reference from a playlist
func (s *LibraryService) RemoveTrack(ctx context.Context, userID, playlistID string, ref entities.TrackRef) (repositories.UpdateResult, error) {
	return s.repo.Pull(ctx, userID, map[string]any{
		trackField(playlistID): ref,
	})
}

// CreatePlaylist adds a new named playlist to a user's library
func (s *LibraryService) CreatePlaylist(ctx context.Context, userID, playlistID, name string) error {
	if err := validation.ValidatePlaylistName(name); err != nil {
		return err
	}

	lib, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if lib == nil {
		return apperrors.ErrAccountNotFound
	}
	if len(lib.Playlists) >= MaxPlaylistsPerUser {
		return apperrors.ErrPlaylistLimit
	}
	if lib.Playlist(playlistID) != nil {
		return fmt.Errorf("%w: playlist id %q taken", apperrors.ErrInvalidInput, playlistID)
	}

	playlist := &entities.Playlist{
		Tracks: []entities.TrackRef{},
		Perms:  entities.Perms{Read: []string{}, Write: []string{}, Remove: []string{}},
		Name:   name,
		Type:   valueobjects.PlaylistTypePlaylist,
	}
	return s.repo.Set(ctx, userID, map[string]any{
		"playlist." + playlistID: playlist,
	})
}

// DeletePlaylist removes a playlist from a user's library
func (s *LibraryService) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	return s.repo.Unset(ctx, userID, "playlist."+playlistID)
}

// Share delivers a playlist-share notification into another user's inbox
func (s *LibraryService) Share(ctx context.Context, fromUserID, toUserID, playlistID string) (repositories.UpdateResult, error) {
	playlist, err := s.GetPlaylist(ctx, fromUserID, playlistID)
	if err != nil {
		return repositories.UpdateResult{}, err
	}
	if playlist == nil {
		return repositories.UpdateResult{}, apperrors.ErrPlaylistNotFound
	}

	entry := entities.NewInboxEntry(fromUserID, playlist.Name, "shared a playlist with you")
	entry.Referer = playlistID
	return s.repo.PushInbox(ctx, toUserID, entry)
}

// PushInbox appends an entry onto a user's inbox
func (s *LibraryService) PushInbox(ctx context.Context, userID string, entry entities.InboxEntry) (repositories.UpdateResult, error) {
	return s.repo.PushInbox(ctx, userID, entry)
}

func trackField(playlistID string) string {
	return "playlist." + playlistID + ".tracks"
}
