package valueobjects

// PlaylistType distinguishes user-owned playlists from linked ones
type PlaylistType string

const (
	PlaylistTypePlaylist PlaylistType = "playlist"
	PlaylistTypeShare    PlaylistType = "share"
	PlaylistTypeLink     PlaylistType = "link"
)

// String returns the string representation
func (p PlaylistType) String() string {
	return string(p)
}

// IsValid checks if the playlist type is valid
func (p PlaylistType) IsValid() bool {
	switch p {
	case PlaylistTypePlaylist, PlaylistTypeShare, PlaylistTypeLink:
		return true
	}
	return false
}
