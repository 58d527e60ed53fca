package errors

import (
	"errors"
	"fmt"
)

// Common error types for better error handling
var (
	// Settings errors
	ErrSettingsUnavailable = errors.New("settings store unavailable")
	ErrUnknownUpdateMode   = errors.New("unknown update mode")

	// Library errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrProvisionDeclined  = errors.New("account creation declined")
	ErrPlaylistLimit      = errors.New("playlist limit reached")
	ErrPlaylistTrackLimit = errors.New("playlist track limit reached")

	// Queue errors
	ErrQueueEmpty      = errors.New("queue is empty")
	ErrQueueFull       = errors.New("queue is full")
	ErrInvalidPosition = errors.New("invalid queue position")

	// External service errors
	ErrBadStatus     = errors.New("unexpected response status")
	ErrNoAPIKey      = errors.New("api key not configured")
	ErrEmptyEnvelope = errors.New("response envelope missing expected fields")

	// Reporting errors
	ErrNoReport = errors.New("nothing to report")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidURL   = errors.New("invalid URL")
)

// UserError wraps an error with a user-friendly message
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string {
	return e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func (e *UserError) UserMessage() string {
	return e.Message
}

// NewUserError creates a new user error
func NewUserError(err error, message string) *UserError {
	return &UserError{
		Err:     err,
		Message: message,
	}
}

// WrapUserError wraps an error with a user-friendly message
func WrapUserError(err error, format string, args ...interface{}) *UserError {
	return &UserError{
		Err:     err,
		Message: fmt.Sprintf(format, args...),
	}
}

// GetUserMessage extracts user-friendly message from error
func GetUserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage()
	}

	switch {
	case errors.Is(err, ErrAccountNotFound):
		return "📭 You don't have an account yet. Use `/register` first"
	case errors.Is(err, ErrPlaylistNotFound):
		return "📋 Playlist not found"
	case errors.Is(err, ErrAccountExists):
		return "✅ You already have an account"
	case errors.Is(err, ErrProvisionDeclined):
		return "Account creation cancelled"
	case errors.Is(err, ErrPlaylistLimit):
		return "⚠️ You have reached your playlist limit"
	case errors.Is(err, ErrPlaylistTrackLimit):
		return "⚠️ This playlist is full"
	case errors.Is(err, ErrQueueEmpty):
		return "📋 Queue is empty. Use `/play` to add tracks"
	case errors.Is(err, ErrQueueFull):
		return "⚠️ Queue is full. Please wait or clear the queue"
	case errors.Is(err, ErrInvalidURL):
		return "🔗 Invalid URL. Please provide a valid YouTube or Spotify link"
	case errors.Is(err, ErrNoReport):
		return "There are no errors to report"
	case errors.Is(err, ErrSettingsUnavailable):
		return "⚠️ Settings are unavailable right now. Please try again later"
	default:
		return "❌ An error occurred. Please try again later"
	}
}
