package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// handleRegister provisions an account for the caller after a DM
// confirmation
func (h *Handler) handleRegister(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := deferResponse(s, i); err != nil {
		return err
	}

	created, err := h.account.CreateAccount(ctx, interactionUserID(i))
	if err != nil {
		_ = followUpError(s, i, "Registration failed, try again later")
		return err
	}
	if !created {
		return followUp(s, i, "Registration was not confirmed. Check your DMs and try again.")
	}
	return followUp(s, i, "✅ Your account is ready. A **Favourite** playlist was created for you.")
}

// handleInbox shows what other users shared with the caller
func (h *Handler) handleInbox(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	entries, err := h.library.GetInbox(ctx, interactionUserID(i))
	if err != nil {
		_ = respondError(s, i, "Failed to load your inbox")
		return err
	}
	if entries == nil {
		return respondError(s, i, "You don't have an account yet, use /register first")
	}
	if len(entries) == 0 {
		return respond(s, i, "Your inbox is empty.")
	}

	var lines []string
	for n, entry := range entries {
		if n >= 10 {
			lines = append(lines, fmt.Sprintf("... and %d more", len(entries)-n))
			break
		}
		line := fmt.Sprintf("`%d.` **%s** from <@%s>", n+1, entry.Title, entry.Sender)
		if entry.Referer != "" {
			line += fmt.Sprintf(" (playlist `%s`)", entry.Referer)
		}
		lines = append(lines, line)
	}

	embed := NewEmbed(h.static.EmbedColor()).
		Title("Inbox").
		Description(strings.Join(lines, "\n")).
		Build()
	return respondEmbed(s, i, embed)
}
