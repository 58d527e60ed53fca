package entities

import (
	"container/list"
	"sync"

	apperrors "github.com/tunecord/tunecord/internal/errors"
)

const defaultMaxHistory = 50

// Tracklist manages a guild's playback queue with thread-safety.
// Played tracks roll into a bounded history ring used for autoplay
// sampling and dedup.
type Tracklist struct {
	guildID    string
	queue      []*Track
	current    *Track
	history    *list.List
	maxHistory int
	maxQueue   int

	mu sync.RWMutex
}

// NewTracklist creates a tracklist bounded to maxQueue entries
func NewTracklist(guildID string, maxQueue int) *Tracklist {
	return &Tracklist{
		guildID:    guildID,
		queue:      make([]*Track, 0),
		history:    list.New(),
		maxHistory: defaultMaxHistory,
		maxQueue:   maxQueue,
	}
}

// GuildID returns the owning guild id
func (t *Tracklist) GuildID() string {
	return t.guildID
}

// Add appends tracks to the queue. The whole batch is rejected with
// ErrQueueFull if it would push the queue past its bound.
func (t *Tracklist) Add(tracks ...*Track) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.maxQueue > 0 && len(t.queue)+len(tracks) > t.maxQueue {
		return apperrors.ErrQueueFull
	}
	t.queue = append(t.queue, tracks...)
	return nil
}

// Current returns the currently playing track, nil when idle
func (t *Tracklist) Current() *Track {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Next pops the next track from the queue, rolling the finished one
// into history. Returns nil when the queue is exhausted.
func (t *Tracklist) Next() *Track {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		t.pushHistoryLocked(t.current)
		t.current = nil
	}

	if len(t.queue) == 0 {
		return nil
	}

	t.current = t.queue[0]
	t.queue = t.queue[1:]
	return t.current
}

// Size returns the number of queued (not yet played) tracks
func (t *Tracklist) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.queue)
}

// Upcoming returns a copy of up to limit queued tracks
func (t *Tracklist) Upcoming(limit int) []*Track {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || limit > len(t.queue) {
		limit = len(t.queue)
	}
	out := make([]*Track, limit)
	copy(out, t.queue[:limit])
	return out
}

// History returns played tracks in order, most recent last. When
// includeCurrent is set the currently playing track closes the list.
func (t *Tracklist) History(includeCurrent bool) []*Track {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Track, 0, t.history.Len()+1)
	for e := t.history.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Track))
	}
	if includeCurrent && t.current != nil {
		out = append(out, t.current)
	}
	return out
}

// Remove deletes the queued track at position (1-indexed)
func (t *Tracklist) Remove(position int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	index := position - 1
	if index < 0 || index >= len(t.queue) {
		return false
	}
	t.queue = append(t.queue[:index], t.queue[index+1:]...)
	return true
}

// Clear drops the queue and history
func (t *Tracklist) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.queue = make([]*Track, 0)
	t.current = nil
	t.history.Init()
}

// pushHistoryLocked must be called with the lock held
func (t *Tracklist) pushHistoryLocked(track *Track) {
	if t.history.Len() >= t.maxHistory {
		t.history.Remove(t.history.Front())
	}
	t.history.PushBack(track)
}
