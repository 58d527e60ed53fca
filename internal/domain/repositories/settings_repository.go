package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tunecord/tunecord/internal/database"
	"github.com/tunecord/tunecord/internal/domain/entities"
)

// DatabaseSettingsRepository implements SettingsRepository using PostgreSQL
type DatabaseSettingsRepository struct {
	db *database.DB
}

// NewDatabaseSettingsRepository creates a new database-backed settings repository
func NewDatabaseSettingsRepository(db *database.DB) *DatabaseSettingsRepository {
	return &DatabaseSettingsRepository{db: db}
}

// Find returns the settings bag for a guild, nil when no document exists
func (r *DatabaseSettingsRepository) Find(ctx context.Context, guildID string) (entities.SettingsBag, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.db.Queries.GetGuildSettings(ctx, guildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}

	bag := entities.SettingsBag{}
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, fmt.Errorf("failed to decode guild settings: %w", err)
	}
	return bag, nil
}

// Insert materializes an empty settings document
func (r *DatabaseSettingsRepository) Insert(ctx context.Context, guildID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.db.Queries.InsertGuildSettings(ctx, guildID); err != nil {
		return fmt.Errorf("failed to create guild settings: %w", err)
	}
	return nil
}

// Set overwrites the given keys in the stored document
func (r *DatabaseSettingsRepository) Set(ctx context.Context, guildID string, changes map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	patch, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to encode settings patch: %w", err)
	}

	err = r.db.Queries.MergeGuildSettings(ctx, database.MergeGuildSettingsParams{
		GuildID: guildID,
		Patch:   patch,
	})
	if err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}
	return nil
}

// Unset removes the given keys from the stored document
func (r *DatabaseSettingsRepository) Unset(ctx context.Context, guildID string, keys []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.Queries.RemoveGuildSettingsKeys(ctx, database.RemoveGuildSettingsKeysParams{
		GuildID: guildID,
		Keys:    keys,
	})
	if err != nil {
		return fmt.Errorf("failed to remove guild settings keys: %w", err)
	}
	return nil
}
