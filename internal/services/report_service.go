package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "github.com/tunecord/tunecord/internal/errors"
)

// reportEntry is a single captured failure
type reportEntry struct {
	at     time.Time
	detail string
}

// ReportService accumulates per-guild error details in memory and
// renders them as a plain-text report on demand
type ReportService struct {
	mu          sync.Mutex
	perGuild    map[string][]reportEntry
	maxPerGuild int
	now         func() time.Time
}

// NewReportService creates a report service keeping at most
// maxPerGuild entries per guild, oldest dropped first
func NewReportService(maxPerGuild int) *ReportService {
	if maxPerGuild <= 0 {
		maxPerGuild = 100
	}
	return &ReportService{
		perGuild:    make(map[string][]reportEntry),
		maxPerGuild: maxPerGuild,
		now:         time.Now,
	}
}

// Record stores an error detail for a guild
func (s *ReportService) Record(guildID, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.perGuild[guildID], reportEntry{at: s.now(), detail: detail})
	if len(entries) > s.maxPerGuild {
		entries = entries[len(entries)-s.maxPerGuild:]
	}
	s.perGuild[guildID] = entries
}

// Len returns the number of entries recorded for a guild
func (s *ReportService) Len(guildID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.perGuild[guildID])
}

// Clear drops every recorded entry
func (s *ReportService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perGuild = make(map[string][]reportEntry)
}

// Render formats all recorded errors grouped by guild, numbered in
// arrival order. Returns ErrNoReport when nothing has been recorded.
func (s *ReportService) Render() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.perGuild) == 0 {
		return nil, apperrors.ErrNoReport
	}

	guildIDs := make([]string, 0, len(s.perGuild))
	for guildID := range s.perGuild {
		guildIDs = append(guildIDs, guildID)
	}
	sort.Strings(guildIDs)

	var buf bytes.Buffer
	separator := strings.Repeat("-", 30)
	for _, guildID := range guildIDs {
		fmt.Fprintf(&buf, "Guild ID: %s\n%s\n", guildID, separator)
		for i, entry := range s.perGuild[guildID] {
			fmt.Fprintf(&buf, "Error No: %d, Time: %s\n%s\n%s\n",
				i+1, entry.at.Format("2006-01-02 15:04:05"), entry.detail, separator)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
