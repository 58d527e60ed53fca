package repositories

import (
	"context"

	"github.com/tunecord/tunecord/internal/domain/entities"
)

// UpdateResult reports what a store update touched
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// SettingsRepository defines the contract for guild settings storage
type SettingsRepository interface {
	// Find returns the settings bag for a guild, nil when no
	// document exists yet
	Find(ctx context.Context, guildID string) (entities.SettingsBag, error)

	// Insert materializes an empty settings document
	Insert(ctx context.Context, guildID string) error

	// Set overwrites the given keys in the stored document
	Set(ctx context.Context, guildID string, changes map[string]any) error

	// Unset removes the given keys from the stored document
	Unset(ctx context.Context, guildID string, keys []string) error
}

// LibraryRepository defines the contract for user library documents
type LibraryRepository interface {
	// Get returns a user's library document, nil when absent
	Get(ctx context.Context, userID string) (*entities.Library, error)

	// Insert creates the document for a new account. Returns false
	// without error when the account already exists.
	Insert(ctx context.Context, userID string, lib *entities.Library) (bool, error)

	// Push appends each value onto the named array fields
	Push(ctx context.Context, userID string, fields map[string]any) (UpdateResult, error)

	// Set overwrites the named fields
	Set(ctx context.Context, userID string, fields map[string]any) error

	// Pull removes elements equal to each value from the named
	// array fields
	Pull(ctx context.Context, userID string, fields map[string]any) (UpdateResult, error)

	// Unset removes the named fields
	Unset(ctx context.Context, userID string, fields ...string) error

	// PushInbox appends an entry onto the user's inbox
	PushInbox(ctx context.Context, userID string, entry entities.InboxEntry) (UpdateResult, error)
}
