package services

import (
	"context"
	"fmt"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/repositories"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	apperrors "github.com/tunecord/tunecord/internal/errors"
	"github.com/tunecord/tunecord/internal/utils"
	"github.com/tunecord/tunecord/pkg/logger"
)

// SettingsService is a lazy-loading cache over guild settings
// documents. The store stays the source of truth: reads fill the
// cache, writes go to the store and drop the cached entry. Cached
// bags serve repeated reads and are bounded by LRU eviction.
type SettingsService struct {
	repo   repositories.SettingsRepository
	cache  *utils.Cache[string, entities.SettingsBag]
	logger *logger.Logger
}

// NewSettingsService creates a settings service with a cache bounded
// to cacheSize guilds
func NewSettingsService(repo repositories.SettingsRepository, cacheSize int, log *logger.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		cache:  utils.NewCache[string, entities.SettingsBag](cacheSize, 0),
		logger: log,
	}
}

// Get returns the settings bag for a guild. A guild never seen before
// is materialized as an empty document in the store and cached, so
// absence degrades to an empty bag. Callers get a copy.
func (s *SettingsService) Get(ctx context.Context, guildID string) (entities.SettingsBag, error) {
	if bag, ok := s.cache.Get(guildID); ok {
		return bag.Clone(), nil
	}

	bag, err := s.repo.Find(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSettingsUnavailable, err)
	}
	if bag == nil {
		if err := s.repo.Insert(ctx, guildID); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSettingsUnavailable, err)
		}
		bag = entities.SettingsBag{}
		s.logger.WithField("guild", guildID).Debug("Materialized empty guild settings")
	}

	s.cache.Set(guildID, bag)
	return bag.Clone(), nil
}

// Update applies changes to a guild's settings. The store is written
// first and the cached entry is then dropped, so the next read
// reloads the document. Concurrent updates to the same guild each
// land in the store and the cache never holds a bag that merged only
// some of them.
func (s *SettingsService) Update(ctx context.Context, guildID string, changes map[string]any, mode valueobjects.UpdateMode) error {
	if len(changes) == 0 {
		return nil
	}

	// Loading first materializes the document for unseen guilds
	if _, err := s.Get(ctx, guildID); err != nil {
		return err
	}

	switch mode {
	case valueobjects.UpdateModeSet:
		if err := s.repo.Set(ctx, guildID, changes); err != nil {
			return err
		}
	case valueobjects.UpdateModeDelete:
		keys := make([]string, 0, len(changes))
		for key := range changes {
			keys = append(keys, key)
		}
		if err := s.repo.Unset(ctx, guildID, keys); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownUpdateMode, mode)
	}

	s.cache.Delete(guildID)
	return nil
}

// Lang returns a guild's language code, defaulting to EN
func (s *SettingsService) Lang(ctx context.Context, guildID string) string {
	bag, err := s.Get(ctx, guildID)
	if err != nil {
		s.logger.WithError(err).WithField("guild", guildID).Warn("Failed to load guild language")
		return entities.DefaultLang
	}
	return bag.Lang()
}

// Invalidate drops a guild's cache entry; the next read goes to the store
func (s *SettingsService) Invalidate(guildID string) {
	s.cache.Delete(guildID)
}

// CacheStats returns cache hit and miss counters
func (s *SettingsService) CacheStats() (hits, misses int64) {
	return s.cache.Stats()
}
