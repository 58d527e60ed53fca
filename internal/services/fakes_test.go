package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tunecord/tunecord/internal/database"
	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/repositories"
	"github.com/tunecord/tunecord/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error"})
}

// fakeSettingsRepo is an in-memory SettingsRepository counting store
// round trips
type fakeSettingsRepo struct {
	mu   sync.Mutex
	docs map[string]entities.SettingsBag

	findCalls   int
	insertCalls int
	failFind    bool

	// setDelay stalls Set calls so tests can interleave writers
	setDelay func()
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{docs: make(map[string]entities.SettingsBag)}
}

func (r *fakeSettingsRepo) Find(ctx context.Context, guildID string) (entities.SettingsBag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	if r.failFind {
		return nil, fmt.Errorf("store down")
	}
	bag, ok := r.docs[guildID]
	if !ok {
		return nil, nil
	}
	return bag.Clone(), nil
}

func (r *fakeSettingsRepo) Insert(ctx context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if _, ok := r.docs[guildID]; !ok {
		r.docs[guildID] = entities.SettingsBag{}
	}
	return nil
}

func (r *fakeSettingsRepo) Set(ctx context.Context, guildID string, changes map[string]any) error {
	if r.setDelay != nil {
		r.setDelay()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	bag, ok := r.docs[guildID]
	if !ok {
		bag = entities.SettingsBag{}
		r.docs[guildID] = bag
	}
	for key, value := range changes {
		bag[key] = value
	}
	return nil
}

func (r *fakeSettingsRepo) Unset(ctx context.Context, guildID string, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bag, ok := r.docs[guildID]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(bag, key)
	}
	return nil
}

// fakeLibraryRepo keeps library documents as decoded JSON and applies
// field updates with the same document helpers the real store uses
type fakeLibraryRepo struct {
	docs map[string]map[string]any

	insertCalls int
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{docs: make(map[string]map[string]any)}
}

func (r *fakeLibraryRepo) Get(ctx context.Context, userID string) (*entities.Library, error) {
	doc, ok := r.docs[userID]
	if !ok {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var lib entities.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

func (r *fakeLibraryRepo) Insert(ctx context.Context, userID string, lib *entities.Library) (bool, error) {
	r.insertCalls++
	if _, ok := r.docs[userID]; ok {
		return false, nil
	}
	doc, ok := database.Normalize(lib).(map[string]any)
	if !ok {
		return false, fmt.Errorf("library did not normalize to an object")
	}
	r.docs[userID] = doc
	return true, nil
}

func (r *fakeLibraryRepo) mutate(userID string, apply func(doc map[string]any) bool) (repositories.UpdateResult, error) {
	doc, ok := r.docs[userID]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	result := repositories.UpdateResult{Matched: 1}
	if apply(doc) {
		result.Modified = 1
	}
	return result, nil
}

func (r *fakeLibraryRepo) Push(ctx context.Context, userID string, fields map[string]any) (repositories.UpdateResult, error) {
	return r.mutate(userID, func(doc map[string]any) bool {
		changed := false
		for path, value := range fields {
			if database.DocumentPush(doc, path, value) {
				changed = true
			}
		}
		return changed
	})
}

func (r *fakeLibraryRepo) Set(ctx context.Context, userID string, fields map[string]any) error {
	_, err := r.mutate(userID, func(doc map[string]any) bool {
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

func (r *fakeLibraryRepo) Pull(ctx context.Context, userID string, fields map[string]any) (repositories.UpdateResult, error) {
	return r.mutate(userID, func(doc map[string]any) bool {
		changed := false
		for path, value := range fields {
			if database.DocumentPull(doc, path, value) {
				changed = true
			}
		}
		return changed
	})
}

func (r *fakeLibraryRepo) Unset(ctx context.Context, userID string, fields ...string) error {
	_, err := r.mutate(userID, func(doc map[string]any) bool {
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

func (r *fakeLibraryRepo) PushInbox(ctx context.Context, userID string, entry entities.InboxEntry) (repositories.UpdateResult, error) {
	return r.mutate(userID, func(doc map[string]any) bool {
		return database.DocumentPush(doc, "inbox", entry)
	})
}

// fakeConfirmer answers confirmation prompts without Discord
type fakeConfirmer struct {
	accept bool
	calls  int
}

func (c *fakeConfirmer) Confirm(ctx context.Context, userID, prompt string) (bool, error) {
	c.calls++
	return c.accept, nil
}
