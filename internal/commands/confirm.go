package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/tunecord/tunecord/pkg/logger"
)

const confirmPrefix = "confirm"

// DiscordConfirmer asks a user a yes/no question through message
// buttons in their DM channel. A missing answer counts as no.
type DiscordConfirmer struct {
	session *discordgo.Session
	timeout time.Duration
	logger  *logger.Logger

	mu      sync.Mutex
	pending map[string]chan bool
}

// NewDiscordConfirmer creates a confirmer with a 60 second answer window
func NewDiscordConfirmer(session *discordgo.Session, log *logger.Logger) *DiscordConfirmer {
	return &DiscordConfirmer{
		session: session,
		timeout: 60 * time.Second,
		logger:  log,
		pending: make(map[string]chan bool),
	}
}

// Confirm sends the prompt with accept/decline buttons and blocks
// until the user answers, the window closes, or ctx is done
func (c *DiscordConfirmer) Confirm(ctx context.Context, userID, prompt string) (bool, error) {
	channel, err := c.session.UserChannelCreate(userID)
	if err != nil {
		return false, fmt.Errorf("failed to open DM channel: %w", err)
	}

	token := uuid.NewString()
	answer := make(chan bool, 1)

	c.mu.Lock()
	c.pending[token] = answer
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, token)
		c.mu.Unlock()
	}()

	_, err = c.session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: prompt,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Accept",
						Style:    discordgo.SuccessButton,
						CustomID: fmt.Sprintf("%s:%s:yes", confirmPrefix, token),
					},
					discordgo.Button{
						Label:    "Decline",
						Style:    discordgo.DangerButton,
						CustomID: fmt.Sprintf("%s:%s:no", confirmPrefix, token),
					},
				},
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to send confirmation prompt: %w", err)
	}

	select {
	case accepted := <-answer:
		return accepted, nil
	case <-time.After(c.timeout):
		c.logger.WithField("user", userID).Debug("Confirmation timed out")
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// HandleComponent resolves a pending confirmation from a button press
func (c *DiscordConfirmer) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) != 3 || parts[0] != confirmPrefix {
		return
	}
	token, accepted := parts[1], parts[2] == "yes"

	c.mu.Lock()
	answer, ok := c.pending[token]
	if ok {
		delete(c.pending, token)
	}
	c.mu.Unlock()

	if !ok {
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "This confirmation has expired.",
				Components: []discordgo.MessageComponent{},
			},
		})
		return
	}
	answer <- accepted

	content := "Declined."
	if accepted {
		content = "Confirmed."
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
}
