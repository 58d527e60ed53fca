package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tunecord/tunecord/internal/database"
	"github.com/tunecord/tunecord/internal/domain/entities"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys
const uniqueViolation = "23505"

// DatabaseLibraryRepository implements LibraryRepository using PostgreSQL.
// The whole library lives in one JSONB document per user; field updates
// are read-modify-write under a row lock.
type DatabaseLibraryRepository struct {
	db *database.DB
}

// NewDatabaseLibraryRepository creates a new database-backed library repository
func NewDatabaseLibraryRepository(db *database.DB) *DatabaseLibraryRepository {
	return &DatabaseLibraryRepository{db: db}
}

// Get returns a user's library document, nil when absent
func (r *DatabaseLibraryRepository) Get(ctx context.Context, userID string) (*entities.Library, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, err := r.db.Queries.GetUserLibrary(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user library: %w", err)
	}

	var lib entities.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("failed to decode user library: %w", err)
	}
	return &lib, nil
}

// Insert creates the document for a new account. A duplicate key is
// absorbed and reported as created=false.
func (r *DatabaseLibraryRepository) Insert(ctx context.Context, userID string, lib *entities.Library) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc, err := json.Marshal(lib)
	if err != nil {
		return false, fmt.Errorf("failed to encode user library: %w", err)
	}

	err = r.db.Queries.InsertUserLibrary(ctx, database.InsertUserLibraryParams{
		UserID: userID,
		Doc:    doc,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("failed to create user library: %w", err)
	}
	return true, nil
}

// Push appends each value onto the named array fields
func (r *DatabaseLibraryRepository) Push(ctx context.Context, userID string, fields map[string]any) (UpdateResult, error) {
	return r.mutate(ctx, userID, func(doc map[string]any) bool {
		changed := false
		for path, value := range fields {
			if database.DocumentPush(doc, path, value) {
				changed = true
			}
		}
		return changed
	})
}

// Set overwrites the named fields
func (r *DatabaseLibraryRepository) Set(ctx context.Context, userID string, fields map[string]any) error {
	_, err := r.mutate(ctx, userID, func(doc map[string]any) bool {
		changed := false
		for path, value := range fields {
			if database.DocumentSet(doc, path, value) {
				changed = true
			}
		}
		return changed
	})
	return err
}

// Pull removes elements equal to each value from the named array fields
func (r *DatabaseLibraryRepository) Pull(ctx context.Context, userID string, fields map[string]any) (UpdateResult, error) {
	return r.mutate(ctx, userID, func(doc map[string]any) bool {
		changed := false
		for path, value := range fields {
			if database.DocumentPull(doc, path, value) {
				changed = true
			}
		}
		return changed
	})
}

// Unset removes the named fields
func (r *DatabaseLibraryRepository) Unset(ctx context.Context, userID string, fields ...string) error {
	_, err := r.mutate(ctx, userID, func(doc map[string]any) bool {
		changed := false
		for _, path := range fields {
			if database.DocumentUnset(doc, path) {
				changed = true
			}
		}
		return changed
	})
	return err
}

// PushInbox appends an entry onto the user's inbox
func (r *DatabaseLibraryRepository) PushInbox(ctx context.Context, userID string, entry entities.InboxEntry) (UpdateResult, error) {
	return r.Push(ctx, userID, map[string]any{"inbox": entry})
}

// mutate applies a document transform under a row lock. A missing
// document is not an error; it reports as zero matched rows.
func (r *DatabaseLibraryRepository) mutate(ctx context.Context, userID string, apply func(doc map[string]any) bool) (UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	queries := r.db.Queries.WithTx(tx)

	raw, err := queries.GetUserLibraryForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UpdateResult{}, nil
		}
		return UpdateResult{}, fmt.Errorf("failed to load user library: %w", err)
	}

	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return UpdateResult{}, fmt.Errorf("failed to decode user library: %w", err)
	}

	result := UpdateResult{Matched: 1}
	if !apply(doc) {
		return result, nil
	}
	result.Modified = 1

	updated, err := json.Marshal(doc)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to encode user library: %w", err)
	}

	if _, err := queries.UpdateUserLibrary(ctx, database.UpdateUserLibraryParams{
		UserID: userID,
		Doc:    updated,
	}); err != nil {
		return UpdateResult{}, fmt.Errorf("failed to update user library: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return UpdateResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
