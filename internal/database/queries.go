package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx methods queries run against, satisfied
// by both *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles the SQL statements for the document tables
type Queries struct {
	db DBTX
}

// New creates a Queries bound to a pool or transaction
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const getGuildSettings = `
SELECT settings FROM guild_settings WHERE guild_id = $1
`

// GetGuildSettings returns the raw settings document for a guild.
// pgx.ErrNoRows surfaces when the guild has no document yet.
func (q *Queries) GetGuildSettings(ctx context.Context, guildID string) ([]byte, error) {
	var raw []byte
	err := q.db.QueryRow(ctx, getGuildSettings, guildID).Scan(&raw)
	return raw, err
}

const insertGuildSettings = `
INSERT INTO guild_settings (guild_id) VALUES ($1)
ON CONFLICT (guild_id) DO NOTHING
`

// InsertGuildSettings materializes an empty settings document
func (q *Queries) InsertGuildSettings(ctx context.Context, guildID string) error {
	_, err := q.db.Exec(ctx, insertGuildSettings, guildID)
	return err
}

const mergeGuildSettings = `
UPDATE guild_settings
SET settings = settings || $2::jsonb, updated_at = now()
WHERE guild_id = $1
`

// MergeGuildSettingsParams holds a guild id and a JSON patch object
type MergeGuildSettingsParams struct {
	GuildID string
	Patch   []byte
}

// MergeGuildSettings overwrites the patch keys in the settings document
func (q *Queries) MergeGuildSettings(ctx context.Context, arg MergeGuildSettingsParams) error {
	_, err := q.db.Exec(ctx, mergeGuildSettings, arg.GuildID, arg.Patch)
	return err
}

const removeGuildSettingsKeys = `
UPDATE guild_settings
SET settings = settings - $2::text[], updated_at = now()
WHERE guild_id = $1
`

// RemoveGuildSettingsKeysParams holds a guild id and keys to unset
type RemoveGuildSettingsKeysParams struct {
	GuildID string
	Keys    []string
}

// RemoveGuildSettingsKeys unsets the given keys in the settings document
func (q *Queries) RemoveGuildSettingsKeys(ctx context.Context, arg RemoveGuildSettingsKeysParams) error {
	_, err := q.db.Exec(ctx, removeGuildSettingsKeys, arg.GuildID, arg.Keys)
	return err
}

const getUserLibrary = `
SELECT doc FROM user_libraries WHERE user_id = $1
`

// GetUserLibrary returns the raw library document for a user.
// pgx.ErrNoRows surfaces when the user has no account.
func (q *Queries) GetUserLibrary(ctx context.Context, userID string) ([]byte, error) {
	var raw []byte
	err := q.db.QueryRow(ctx, getUserLibrary, userID).Scan(&raw)
	return raw, err
}

const getUserLibraryForUpdate = `
SELECT doc FROM user_libraries WHERE user_id = $1 FOR UPDATE
`

// GetUserLibraryForUpdate reads the document holding a row lock, for
// read-modify-write updates inside a transaction
func (q *Queries) GetUserLibraryForUpdate(ctx context.Context, userID string) ([]byte, error) {
	var raw []byte
	err := q.db.QueryRow(ctx, getUserLibraryForUpdate, userID).Scan(&raw)
	return raw, err
}

const insertUserLibrary = `
INSERT INTO user_libraries (user_id, doc) VALUES ($1, $2::jsonb)
`

// InsertUserLibraryParams holds a user id and the initial document
type InsertUserLibraryParams struct {
	UserID string
	Doc    []byte
}

// InsertUserLibrary creates the library document for a new account.
// A unique violation surfaces as a pgconn.PgError.
func (q *Queries) InsertUserLibrary(ctx context.Context, arg InsertUserLibraryParams) error {
	_, err := q.db.Exec(ctx, insertUserLibrary, arg.UserID, arg.Doc)
	return err
}

const updateUserLibrary = `
UPDATE user_libraries
SET doc = $2::jsonb, updated_at = now()
WHERE user_id = $1
`

// UpdateUserLibraryParams holds a user id and the replacement document
type UpdateUserLibraryParams struct {
	UserID string
	Doc    []byte
}

// UpdateUserLibrary replaces the library document and reports the
// number of matched rows
func (q *Queries) UpdateUserLibrary(ctx context.Context, arg UpdateUserLibraryParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateUserLibrary, arg.UserID, arg.Doc)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
