package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/tunecord/tunecord/internal/domain/entities"
	apperrors "github.com/tunecord/tunecord/internal/errors"
)

// handlePlaylists lists the caller's playlists
func (h *Handler) handlePlaylists(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID := interactionUserID(i)

	playlists, err := h.library.GetPlaylists(ctx, userID)
	if err != nil {
		_ = respondError(s, i, "Failed to load your playlists")
		return err
	}
	if playlists == nil {
		return respondError(s, i, "You don't have an account yet, use /register first")
	}

	embed := NewEmbed(h.static.EmbedColor()).Title("Your Playlists")
	for id, playlist := range playlists {
		embed.Field(
			fmt.Sprintf("%s (`%s`)", playlist.Name, id),
			fmt.Sprintf("%d tracks", len(playlist.Tracks)),
			true,
		)
	}
	return respondEmbed(s, i, embed.Build())
}

// handlePlaylistSubcommand routes the playlist subcommands
func (h *Handler) handlePlaylistSubcommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return respondError(s, i, "Missing subcommand")
	}

	sub := data.Options[0]
	switch sub.Name {
	case "show":
		return h.handlePlaylistShow(ctx, s, i, sub.Options)
	case "create":
		return h.handlePlaylistCreate(ctx, s, i, sub.Options)
	case "delete":
		return h.handlePlaylistDelete(ctx, s, i, sub.Options)
	case "add":
		return h.handlePlaylistAdd(ctx, s, i, sub.Options)
	case "remove":
		return h.handlePlaylistRemove(ctx, s, i, sub.Options)
	case "share":
		return h.handlePlaylistShare(ctx, s, i, sub.Options)
	}
	return respondError(s, i, "Unknown subcommand")
}

func (h *Handler) handlePlaylistShow(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := interactionUserID(i)
	playlistID := stringOption(opts, "id")

	playlist, err := h.library.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		_ = respondError(s, i, "Failed to load the playlist")
		return err
	}
	if playlist == nil {
		return respondError(s, i, "No playlist with that id")
	}

	embed := NewEmbed(h.static.EmbedColor()).
		Title(playlist.Name).
		Footer(fmt.Sprintf("%d tracks", len(playlist.Tracks)))

	var lines []string
	for n, ref := range playlist.Tracks {
		if n >= 25 {
			lines = append(lines, fmt.Sprintf("... and %d more", len(playlist.Tracks)-n))
			break
		}
		lines = append(lines, fmt.Sprintf("`%d.` %s [%s](%s)",
			n+1, h.static.EmojiForSource(string(ref.Source)), ref.Title, ref.URI))
	}
	if len(lines) == 0 {
		embed.Description("This playlist is empty.")
	} else {
		embed.Description(strings.Join(lines, "\n"))
	}
	return respondEmbed(s, i, embed.Build())
}

func (h *Handler) handlePlaylistCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := interactionUserID(i)
	name := stringOption(opts, "name")
	playlistID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	err := h.library.CreatePlaylist(ctx, userID, playlistID, name)
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return respondError(s, i, "You don't have an account yet, use /register first")
	case errors.Is(err, apperrors.ErrPlaylistLimit):
		return respondError(s, i, "You reached your playlist limit")
	case errors.Is(err, apperrors.ErrInvalidInput):
		return respondError(s, i, "That playlist name is not allowed")
	case err != nil:
		_ = respondError(s, i, "Failed to create the playlist")
		return err
	}
	return respondSuccess(s, i, fmt.Sprintf("Created playlist **%s** (`%s`)", name, playlistID))
}

func (h *Handler) handlePlaylistDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := interactionUserID(i)
	playlistID := stringOption(opts, "id")

	if playlistID == entities.FavouritePlaylistID {
		return respondError(s, i, "The Favourite playlist cannot be deleted")
	}
	if err := h.library.DeletePlaylist(ctx, userID, playlistID); err != nil {
		_ = respondError(s, i, "Failed to delete the playlist")
		return err
	}
	return respondSuccess(s, i, fmt.Sprintf("Deleted playlist `%s`", playlistID))
}

func (h *Handler) handlePlaylistAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := interactionUserID(i)
	playlistID := stringOption(opts, "id")
	query := stringOption(opts, "query")

	var track *entities.Track
	if query == "" {
		track = h.player.Session(i.GuildID).Current()
		if track == nil {
			return respondError(s, i, "Nothing is playing, give a URL or search query")
		}
	} else {
		if err := deferResponse(s, i); err != nil {
			return err
		}
		tracks, err := h.resolver.GetTracks(ctx, query, userID)
		if err != nil {
			_ = followUpError(s, i, "Could not resolve that query")
			return err
		}
		track = tracks[0]
	}

	result, err := h.library.AddTrack(ctx, userID, playlistID, track.Ref())
	switch {
	case errors.Is(err, apperrors.ErrPlaylistNotFound):
		return h.replyOrFollowUp(s, i, query != "", "❌ No playlist with that id")
	case errors.Is(err, apperrors.ErrPlaylistTrackLimit):
		return h.replyOrFollowUp(s, i, query != "", "❌ That playlist is full")
	case err != nil:
		_ = h.replyOrFollowUp(s, i, query != "", "❌ Failed to add the track")
		return err
	}
	if result.Modified == 0 {
		return h.replyOrFollowUp(s, i, query != "", "The track is already in that playlist")
	}
	return h.replyOrFollowUp(s, i, query != "", fmt.Sprintf("✅ Added **%s** to `%s`", track.Title, playlistID))
}

func (h *Handler) handlePlaylistRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := interactionUserID(i)
	playlistID := stringOption(opts, "id")
	index := intOption(opts, "index")

	playlist, err := h.library.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		_ = respondError(s, i, "Failed to load the playlist")
		return err
	}
	if playlist == nil {
		return respondError(s, i, "No playlist with that id")
	}
	if index < 1 || index > len(playlist.Tracks) {
		return respondError(s, i, fmt.Sprintf("Index must be between 1 and %d", len(playlist.Tracks)))
	}

	ref := playlist.Tracks[index-1]
	if _, err := h.library.RemoveTrack(ctx, userID, playlistID, ref); err != nil {
		_ = respondError(s, i, "Failed to remove the track")
		return err
	}
	return respondSuccess(s, i, fmt.Sprintf("Removed **%s** from `%s`", ref.Title, playlistID))
}

func (h *Handler) handlePlaylistShare(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := interactionUserID(i)
	playlistID := stringOption(opts, "id")

	var target *discordgo.User
	for _, opt := range opts {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		return respondError(s, i, "Pick a user to share with")
	}
	if target.Bot {
		return respondError(s, i, "Bots have no use for playlists")
	}
	if target.ID == userID {
		return respondError(s, i, "You already have that playlist")
	}

	result, err := h.library.Share(ctx, userID, target.ID, playlistID)
	switch {
	case errors.Is(err, apperrors.ErrPlaylistNotFound):
		return respondError(s, i, "No playlist with that id")
	case err != nil:
		_ = respondError(s, i, "Failed to share the playlist")
		return err
	}
	if result.Matched == 0 {
		return respondError(s, i, "That user doesn't have an account")
	}
	return respondSuccess(s, i, fmt.Sprintf("Shared `%s` with **%s**", playlistID, target.Username))
}

// replyOrFollowUp picks the right response channel depending on
// whether the interaction was already deferred
func (h *Handler) replyOrFollowUp(s *discordgo.Session, i *discordgo.InteractionCreate, deferred bool, message string) error {
	if deferred {
		return followUp(s, i, message)
	}
	return respond(s, i, message)
}

func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func intOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, opt := range opts {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return 0
}
