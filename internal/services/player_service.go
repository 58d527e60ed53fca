package services

import (
	"context"
	"sync"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/pkg/logger"
)

// PlayerService owns per-guild playback queues and replenishes them
// through autoplay when a guild has it enabled
type PlayerService struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Tracklist

	settings *SettingsService
	autoplay *AutoplayService
	maxQueue int
	logger   *logger.Logger
}

// NewPlayerService creates a player service. maxQueue bounds each
// guild's queue.
func NewPlayerService(settings *SettingsService, autoplay *AutoplayService, maxQueue int, log *logger.Logger) *PlayerService {
	return &PlayerService{
		sessions: make(map[string]*entities.Tracklist),
		settings: settings,
		autoplay: autoplay,
		maxQueue: maxQueue,
		logger:   log,
	}
}

// Session returns the guild's tracklist, creating it on first use
func (s *PlayerService) Session(guildID string) *entities.Tracklist {
	s.mu.RLock()
	tracklist, ok := s.sessions[guildID]
	s.mu.RUnlock()
	if ok {
		return tracklist
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tracklist, ok = s.sessions[guildID]; ok {
		return tracklist
	}
	tracklist = entities.NewTracklist(guildID, s.maxQueue)
	s.sessions[guildID] = tracklist
	return tracklist
}

// Release drops the guild's session and its queue
func (s *PlayerService) Release(guildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, guildID)
}

// Advance pops the next track for the guild. On an exhausted queue it
// runs one autoplay pass first when the guild has autoplay enabled,
// then retries. Returns nil when nothing is left to play.
func (s *PlayerService) Advance(ctx context.Context, guildID string) *entities.Track {
	tracklist := s.Session(guildID)

	if track := tracklist.Next(); track != nil {
		return track
	}
	if !s.autoplayEnabled(ctx, guildID) {
		return nil
	}

	result, err := s.autoplay.SimilarTrack(ctx, tracklist)
	if err != nil {
		s.logger.WithError(err).WithField("guild_id", guildID).Warn("Autoplay replenishment failed")
	}
	if !result.Added() {
		return nil
	}
	return tracklist.Next()
}

func (s *PlayerService) autoplayEnabled(ctx context.Context, guildID string) bool {
	bag, err := s.settings.Get(ctx, guildID)
	if err != nil {
		s.logger.WithError(err).WithField("guild_id", guildID).Warn("Settings lookup failed, autoplay off")
		return false
	}
	enabled, _ := bag.GetBool("autoplay")
	return enabled
}
