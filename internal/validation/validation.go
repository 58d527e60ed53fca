package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tunecord/tunecord/internal/errors"
)

var (
	// URL patterns
	youtubePattern    = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)
	soundcloudPattern = regexp.MustCompile(`^https?://(www\.)?soundcloud\.com/.+$`)
	spotifyPattern    = regexp.MustCompile(`^https?://open\.spotify\.com/(track|album|playlist)/.+$`)

	playlistNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	videoIDPattern      = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
)

// ValidateURL validates if a string is a valid URL
func ValidateURL(input string) error {
	if input == "" {
		return fmt.Errorf("%w: URL cannot be empty", errors.ErrInvalidURL)
	}

	_, err := url.ParseRequestURI(input)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidURL, err)
	}

	return nil
}

// IsYouTubeURL checks if URL is a YouTube URL
func IsYouTubeURL(input string) bool {
	return youtubePattern.MatchString(input)
}

// IsSoundCloudURL checks if URL is a SoundCloud URL
func IsSoundCloudURL(input string) bool {
	return soundcloudPattern.MatchString(input)
}

// IsSpotifyURL checks if URL is a Spotify URL
func IsSpotifyURL(input string) bool {
	return spotifyPattern.MatchString(input)
}

// IsSupportedURL checks if URL is from a supported platform
func IsSupportedURL(input string) bool {
	return IsYouTubeURL(input) || IsSoundCloudURL(input) || IsSpotifyURL(input)
}

// IsVideoID checks if input looks like a bare video identifier
func IsVideoID(input string) bool {
	return videoIDPattern.MatchString(input)
}

// ValidateQueuePosition validates a 1-indexed queue position
func ValidateQueuePosition(position, size int) error {
	if position < 1 || position > size {
		return fmt.Errorf("%w: must be between 1 and %d", errors.ErrInvalidPosition, size)
	}
	return nil
}

// SanitizeInput sanitizes user input by removing potentially dangerous characters
func SanitizeInput(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}

// ValidatePlaylistName validates playlist name
func ValidatePlaylistName(name string) error {
	name = SanitizeInput(name)

	if name == "" {
		return fmt.Errorf("%w: playlist name cannot be empty", errors.ErrInvalidInput)
	}

	if len(name) > 100 {
		return fmt.Errorf("%w: playlist name too long (max 100 characters)", errors.ErrInvalidInput)
	}

	if !playlistNamePattern.MatchString(name) {
		return fmt.Errorf("%w: playlist name contains invalid characters", errors.ErrInvalidInput)
	}

	return nil
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	// Prefer a word boundary when one exists
	if maxLen > 3 {
		s = s[:maxLen-3]
		if idx := strings.LastIndexAny(s, " \t\n"); idx > 0 {
			s = s[:idx]
		}
		return s + "..."
	}

	return s[:maxLen]
}
