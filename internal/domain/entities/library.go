package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
)

// FavouritePlaylistID is the playlist every new account starts with
const FavouritePlaylistID = "200"

// TrackRef is the persistent reference to a track inside a playlist
type TrackRef struct {
	ID     string                  `json:"id"`
	Source valueobjects.SourceType `json:"source"`
	Title  string                  `json:"title,omitempty"`
	URI    string                  `json:"uri,omitempty"`
}

// Perms holds per-playlist access lists of user ids
type Perms struct {
	Read   []string `json:"read"`
	Write  []string `json:"write"`
	Remove []string `json:"remove"`
}

// Playlist is one named playlist inside a user's library document
type Playlist struct {
	Tracks []TrackRef                `json:"tracks"`
	Perms  Perms                     `json:"perms"`
	Name   string                    `json:"name"`
	Type   valueobjects.PlaylistType `json:"type"`
}

// InboxEntry is one append-only notification, e.g. a playlist share
type InboxEntry struct {
	ID      string    `json:"id"`
	Sender  string    `json:"sender"`
	Title   string    `json:"title"`
	Message string    `json:"message,omitempty"`
	Referer string    `json:"referer,omitempty"` // shared playlist id
	SentAt  time.Time `json:"sent_at"`
}

// NewInboxEntry creates an inbox entry stamped with the current time
func NewInboxEntry(sender, title, message string) InboxEntry {
	return InboxEntry{
		ID:      uuid.New().String(),
		Sender:  sender,
		Title:   title,
		Message: message,
		SentAt:  time.Now(),
	}
}

// Library is a user's whole playlist document
type Library struct {
	Playlists map[string]*Playlist `json:"playlist"`
	Inbox     []InboxEntry         `json:"inbox"`
}

// NewDefaultLibrary builds the document a new account is provisioned
// with: a single empty Favourite playlist and an empty inbox.
func NewDefaultLibrary() *Library {
	return &Library{
		Playlists: map[string]*Playlist{
			FavouritePlaylistID: {
				Tracks: []TrackRef{},
				Perms:  Perms{Read: []string{}, Write: []string{}, Remove: []string{}},
				Name:   "Favourite",
				Type:   valueobjects.PlaylistTypePlaylist,
			},
		},
		Inbox: []InboxEntry{},
	}
}

// Playlist returns a playlist by id, nil when absent
func (l *Library) Playlist(id string) *Playlist {
	if l == nil {
		return nil
	}
	return l.Playlists[id]
}

// TotalTracks counts the tracks across all playlists
func (l *Library) TotalTracks() int {
	total := 0
	for _, p := range l.Playlists {
		total += len(p.Tracks)
	}
	return total
}
