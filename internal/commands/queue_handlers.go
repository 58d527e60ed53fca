package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	apperrors "github.com/tunecord/tunecord/internal/errors"
)

// handlePlay resolves the query and appends the tracks to the queue
func (h *Handler) handlePlay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return respondError(s, i, "Missing query")
	}
	query := data.Options[0].StringValue()

	if err := deferResponse(s, i); err != nil {
		return err
	}

	tracks, err := h.resolver.GetTracks(ctx, query, interactionUserID(i))
	if err != nil {
		_ = followUpError(s, i, "Could not resolve that query")
		return err
	}

	tracklist := h.player.Session(i.GuildID)
	if err := tracklist.Add(tracks...); err != nil {
		if errors.Is(err, apperrors.ErrQueueFull) {
			return followUp(s, i, "❌ The queue is full")
		}
		_ = followUpError(s, i, "Failed to queue the tracks")
		return err
	}

	if len(tracks) == 1 {
		return followUp(s, i, fmt.Sprintf("✅ Queued **%s**", tracks[0].DisplayName()))
	}
	return followUp(s, i, fmt.Sprintf("✅ Queued %d tracks", len(tracks)))
}

// handleQueue displays the current track and what comes next
func (h *Handler) handleQueue(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	tracklist := h.player.Session(i.GuildID)
	embed := NewEmbed(h.static.EmbedColor()).Title("Queue")

	if current := tracklist.Current(); current != nil {
		embed.Field("Now Playing", fmt.Sprintf("%s %s `%s`",
			h.static.EmojiForSource(string(current.Source)),
			current.DisplayName(), current.FormattedLength()), false)
	}

	upcoming := tracklist.Upcoming(10)
	if len(upcoming) == 0 && tracklist.Current() == nil {
		embed.Description("The queue is empty.")
	} else {
		var lines []string
		for n, track := range upcoming {
			lines = append(lines, fmt.Sprintf("`%d.` %s `%s`",
				n+1, track.DisplayName(), track.FormattedLength()))
		}
		if len(lines) > 0 {
			embed.Field(fmt.Sprintf("Up Next (%d)", tracklist.Size()), strings.Join(lines, "\n"), false)
		}
	}
	return respondEmbed(s, i, embed.Build())
}

// handleSkip advances the queue, letting autoplay refill it when the
// guild has that enabled
func (h *Handler) handleSkip(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	track := h.player.Advance(ctx, i.GuildID)
	if track == nil {
		return respond(s, i, "The queue is empty.")
	}
	return respondSuccess(s, i, fmt.Sprintf("Now playing **%s**", track.DisplayName()))
}

// handleClear drops the queue and its history
func (h *Handler) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	h.player.Session(i.GuildID).Clear()
	return respondSuccess(s, i, "Queue cleared")
}
