package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	apperrors "github.com/tunecord/tunecord/internal/errors"
)

func provisionedLibraryService(t *testing.T) (*LibraryService, *fakeLibraryRepo, string) {
	t.Helper()
	repo := newFakeLibraryRepo()
	if _, err := repo.Insert(context.Background(), "u1", entities.NewDefaultLibrary()); err != nil {
		t.Fatalf("provision: %v", err)
	}
	return NewLibraryService(repo, testLogger()), repo, "u1"
}

func TestLibraryAbsentUserYieldsNil(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryRepo(), testLogger())
	ctx := context.Background()

	lib, err := svc.GetLibrary(ctx, "ghost")
	if err != nil || lib != nil {
		t.Errorf("GetLibrary(ghost) = %v, %v; want nil, nil", lib, err)
	}
	playlists, err := svc.GetPlaylists(ctx, "ghost")
	if err != nil || playlists != nil {
		t.Errorf("GetPlaylists(ghost) = %v, %v; want nil, nil", playlists, err)
	}
	inbox, err := svc.GetInbox(ctx, "ghost")
	if err != nil || inbox != nil {
		t.Errorf("GetInbox(ghost) = %v, %v; want nil, nil", inbox, err)
	}
}

func TestLibraryDefaultDocumentShape(t *testing.T) {
	svc, _, userID := provisionedLibraryService(t)
	ctx := context.Background()

	lib, err := svc.GetLibrary(ctx, userID)
	if err != nil {
		t.Fatalf("GetLibrary: %v", err)
	}
	if len(lib.Playlists) != 1 {
		t.Fatalf("new account should have exactly one playlist, got %d", len(lib.Playlists))
	}
	fav := lib.Playlist(entities.FavouritePlaylistID)
	if fav == nil {
		t.Fatal("the Favourite playlist should live under id 200")
	}
	if fav.Name != "Favourite" || fav.Type != valueobjects.PlaylistTypePlaylist {
		t.Errorf("Favourite = %q/%q; want Favourite/playlist", fav.Name, fav.Type)
	}
	if len(lib.Inbox) != 0 {
		t.Errorf("new inbox should be empty, got %d entries", len(lib.Inbox))
	}
}

func TestLibraryAddTrackReadAfterWrite(t *testing.T) {
	svc, _, userID := provisionedLibraryService(t)
	ctx := context.Background()

	ref := entities.TrackRef{ID: "dQw4w9WgXcQ", Source: valueobjects.SourceTypeYouTube, Title: "Song"}
	result, err := svc.AddTrack(ctx, userID, entities.FavouritePlaylistID, ref)
	if err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	if result.Matched != 1 || result.Modified != 1 {
		t.Errorf("result = %+v; want matched and modified", result)
	}

	playlist, err := svc.GetPlaylist(ctx, userID, entities.FavouritePlaylistID)
	if err != nil {
		t.Fatalf("GetPlaylist: %v", err)
	}
	if len(playlist.Tracks) != 1 || playlist.Tracks[0].ID != ref.ID {
		t.Errorf("tracks = %+v; want the pushed reference", playlist.Tracks)
	}
}

func TestLibraryAddTrackUnknownPlaylist(t *testing.T) {
	svc, _, userID := provisionedLibraryService(t)

	_, err := svc.AddTrack(context.Background(), userID, "nope", entities.TrackRef{ID: "x"})
	if !errors.Is(err, apperrors.ErrPlaylistNotFound) {
		t.Errorf("err = %v; want ErrPlaylistNotFound", err)
	}
}

func TestLibraryRemoveTrack(t *testing.T) {
	svc, _, userID := provisionedLibraryService(t)
	ctx := context.Background()

	ref := entities.TrackRef{ID: "a", Source: valueobjects.SourceTypeYouTube}
	svc.AddTrack(ctx, userID, entities.FavouritePlaylistID, ref)

	result, err := svc.RemoveTrack(ctx, userID, entities.FavouritePlaylistID, ref)
	if err != nil {
		t.Fatalf("RemoveTrack: %v", err)
	}
	if result.Modified != 1 {
		t.Errorf("Modified = %d; want 1", result.Modified)
	}

	// Removing again matches the document but changes nothing
	result, err = svc.RemoveTrack(ctx, userID, entities.FavouritePlaylistID, ref)
	if err != nil {
		t.Fatalf("RemoveTrack again: %v", err)
	}
	if result.Matched != 1 || result.Modified != 0 {
		t.Errorf("result = %+v; want matched without modification", result)
	}
}

func TestLibraryCreateAndDeletePlaylist(t *testing.T) {
	svc, _, userID := provisionedLibraryService(t)
	ctx := context.Background()

	if err := svc.CreatePlaylist(ctx, userID, "abc123", "Road Trip"); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	playlist, _ := svc.GetPlaylist(ctx, userID, "abc123")
	if playlist == nil || playlist.Name != "Road Trip" {
		t.Fatalf("playlist = %+v; want Road Trip", playlist)
	}

	// Duplicate id is rejected
	if err := svc.CreatePlaylist(ctx, userID, "abc123", "Other"); err == nil {
		t.Error("creating over a taken id should fail")
	}

	if err := svc.DeletePlaylist(ctx, userID, "abc123"); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if playlist, _ := svc.GetPlaylist(ctx, userID, "abc123"); playlist != nil {
		t.Error("deleted playlist should be gone")
	}
}

func TestLibraryCreatePlaylistLimits(t *testing.T) {
	svc, _, userID := provisionedLibraryService(t)
	ctx := context.Background()

	if err := svc.CreatePlaylist(ctx, "ghost", "p1", "Name"); !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("err = %v; want ErrAccountNotFound", err)
	}
	if err := svc.CreatePlaylist(ctx, userID, "p1", "bad/name!"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("err = %v; want ErrInvalidInput for bad name", err)
	}

	for n := 1; len(mustPlaylists(t, svc, userID)) < MaxPlaylistsPerUser; n++ {
		if err := svc.CreatePlaylist(ctx, userID, fmt.Sprintf("p%d", n), "Filler"); err != nil {
			t.Fatalf("CreatePlaylist p%d: %v", n, err)
		}
	}
	if err := svc.CreatePlaylist(ctx, userID, "overflow", "One Too Many"); !errors.Is(err, apperrors.ErrPlaylistLimit) {
		t.Errorf("err = %v; want ErrPlaylistLimit", err)
	}
}

func TestLibraryShare(t *testing.T) {
	repo := newFakeLibraryRepo()
	ctx := context.Background()
	repo.Insert(ctx, "alice", entities.NewDefaultLibrary())
	repo.Insert(ctx, "bob", entities.NewDefaultLibrary())
	svc := NewLibraryService(repo, testLogger())

	result, err := svc.Share(ctx, "alice", "bob", entities.FavouritePlaylistID)
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if result.Modified != 1 {
		t.Errorf("Modified = %d; want 1", result.Modified)
	}

	inbox, _ := svc.GetInbox(ctx, "bob")
	if len(inbox) != 1 {
		t.Fatalf("len(inbox) = %d; want 1", len(inbox))
	}
	entry := inbox[0]
	if entry.Sender != "alice" || entry.Referer != entities.FavouritePlaylistID {
		t.Errorf("entry = %+v; want sender alice refering playlist 200", entry)
	}

	// Sharing to an unprovisioned user matches nothing
	result, err = svc.Share(ctx, "alice", "ghost", entities.FavouritePlaylistID)
	if err != nil {
		t.Fatalf("Share to ghost: %v", err)
	}
	if result.Matched != 0 {
		t.Errorf("Matched = %d; want 0 for an absent recipient", result.Matched)
	}

	// Sharing an absent playlist fails before touching the inbox
	if _, err := svc.Share(ctx, "alice", "bob", "nope"); !errors.Is(err, apperrors.ErrPlaylistNotFound) {
		t.Errorf("err = %v; want ErrPlaylistNotFound", err)
	}
}

func mustPlaylists(t *testing.T, svc *LibraryService, userID string) map[string]*entities.Playlist {
	t.Helper()
	playlists, err := svc.GetPlaylists(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetPlaylists: %v", err)
	}
	return playlists
}
