package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/tunecord/tunecord/internal/config"
	"github.com/tunecord/tunecord/internal/services"
	"github.com/tunecord/tunecord/pkg/logger"
)

// Handler manages all bot commands
type Handler struct {
	session  *discordgo.Session
	settings *services.SettingsService
	library  *services.LibraryService
	account  *services.AccountService
	player   *services.PlayerService
	report   *services.ReportService
	resolver services.TrackResolver
	confirm  *DiscordConfirmer
	static   *config.Static
	logger   *logger.Logger

	// Last invocation time per cooldown bucket
	lastUsed   map[string]time.Time
	lastUsedMu sync.Mutex
}

// NewHandler creates a new command handler
func NewHandler(
	session *discordgo.Session,
	settings *services.SettingsService,
	library *services.LibraryService,
	account *services.AccountService,
	player *services.PlayerService,
	report *services.ReportService,
	resolver services.TrackResolver,
	confirm *DiscordConfirmer,
	static *config.Static,
	log *logger.Logger,
) *Handler {
	return &Handler{
		session:  session,
		settings: settings,
		library:  library,
		account:  account,
		player:   player,
		report:   report,
		resolver: resolver,
		confirm:  confirm,
		static:   static,
		logger:   log,
		lastUsed: make(map[string]time.Time),
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands() error {
	commands := GetCommands()

	_, err := h.session.ApplicationCommandBulkOverwrite(h.session.State.User.ID, "", commands)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	h.logger.WithField("count", len(commands)).Info("All commands registered")
	return nil
}

// HandleInteraction routes incoming interactions to appropriate handlers
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithField("panic", r).Error("Recovered from panic in command handler")
			_ = respondError(s, i, "An internal error occurred")
		}
	}()

	// Confirmation buttons
	if i.Type == discordgo.InteractionMessageComponent {
		h.confirm.HandleComponent(s, i)
		return
	}

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	userID := interactionUserID(i)

	h.logger.WithFields(map[string]interface{}{
		"command": data.Name,
		"guild":   i.GuildID,
		"user":    userID,
	}).Info("Command received")

	if wait, ok := h.checkCooldown(data.Name, userID); !ok {
		_ = respondError(s, i, fmt.Sprintf("You are on cooldown, try again in %.0fs", wait.Seconds()))
		return
	}

	ctx := context.Background()

	var err error
	switch data.Name {
	// Account commands
	case "register":
		err = h.handleRegister(ctx, s, i)
	case "inbox":
		err = h.handleInbox(ctx, s, i)

	// Settings commands
	case "settings":
		err = h.handleSettings(ctx, s, i)
	case "autoplay":
		err = h.handleAutoplay(ctx, s, i)

	// Queue commands
	case "play":
		err = h.handlePlay(ctx, s, i)
	case "queue":
		err = h.handleQueue(s, i)
	case "skip":
		err = h.handleSkip(ctx, s, i)
	case "clear":
		err = h.handleClear(s, i)

	// Playlist commands
	case "playlists":
		err = h.handlePlaylists(ctx, s, i)
	case "playlist":
		err = h.handlePlaylistSubcommand(ctx, s, i)

	// Utility commands
	case "ping":
		err = h.handlePing(s, i)
	case "report":
		err = h.handleReport(s, i)
	case "help":
		err = h.handleHelp(s, i)

	default:
		err = respondError(s, i, "Unknown command")
	}

	if err != nil {
		h.logger.WithError(err).WithField("command", data.Name).Error("Command handler failed")
		h.report.Record(i.GuildID, fmt.Sprintf("/%s: %v", data.Name, err))
	}
}

// checkCooldown enforces the configured per-command rate. It returns
// the remaining wait when the caller must back off.
func (h *Handler) checkCooldown(command, userID string) (time.Duration, bool) {
	cd, ok := h.static.CooldownFor(command, userID)
	if !ok {
		return 0, true
	}

	h.lastUsedMu.Lock()
	defer h.lastUsedMu.Unlock()

	key := command + ":" + userID
	per := time.Duration(cd.PerSeconds) * time.Second
	if last, seen := h.lastUsed[key]; seen {
		if elapsed := time.Since(last); elapsed < per {
			return per - elapsed, false
		}
	}
	h.lastUsed[key] = time.Now()
	return 0, true
}

// interactionUserID works for both guild and DM interactions
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
