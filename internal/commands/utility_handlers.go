package commands

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	apperrors "github.com/tunecord/tunecord/internal/errors"
)

// handlePing shows gateway latency
func (h *Handler) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	latency := s.HeartbeatLatency().Milliseconds()
	return respond(s, i, fmt.Sprintf("🏓 Pong! Gateway latency: %dms", latency))
}

// handleReport sends the accumulated error report as a text file.
// Restricted to configured access users.
func (h *Handler) handleReport(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !h.static.HasBotAccess(interactionUserID(i)) {
		return respondError(s, i, "You don't have access to this command")
	}

	body, err := h.report.Render()
	if errors.Is(err, apperrors.ErrNoReport) {
		return respond(s, i, "No errors recorded.")
	}
	if err != nil {
		_ = respondError(s, i, "Failed to build the report")
		return err
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Files: []*discordgo.File{
				{
					Name:        "report.txt",
					ContentType: "text/plain",
					Reader:      bytes.NewReader(body),
				},
			},
		},
	})
}

// handleHelp lists the available commands
func (h *Handler) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	embed := NewEmbed(h.static.EmbedColor()).
		Title("Commands").
		Field("Account", "`/register` `/inbox`", false).
		Field("Settings", "`/settings view` `/settings set` `/settings reset` `/settings language` `/autoplay`", false).
		Field("Queue", "`/play` `/queue` `/skip` `/clear`", false).
		Field("Playlists", "`/playlists` `/playlist show` `/playlist create` `/playlist delete` `/playlist add` `/playlist remove` `/playlist share`", false).
		Field("Utility", "`/ping` `/help`", false).
		Build()
	return respondEmbed(s, i, embed)
}
