package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
)

// handleSettings routes the settings subcommands
func (h *Handler) handleSettings(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return respondError(s, i, "Missing subcommand")
	}

	sub := data.Options[0]
	switch sub.Name {
	case "view":
		return h.handleSettingsView(ctx, s, i)
	case "set":
		return h.handleSettingsSet(ctx, s, i, sub.Options)
	case "reset":
		return h.handleSettingsReset(ctx, s, i, sub.Options)
	case "language":
		return h.handleSettingsLanguage(ctx, s, i, sub.Options)
	}
	return respondError(s, i, "Unknown subcommand")
}

func (h *Handler) handleSettingsView(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	bag, err := h.settings.Get(ctx, i.GuildID)
	if err != nil {
		_ = respondError(s, i, "Settings are unavailable right now")
		return err
	}

	embed := NewEmbed(h.static.EmbedColor()).
		Title("Server Settings").
		Field("Language", bag.Lang(), true)

	keys := make([]string, 0, len(bag))
	for key := range bag {
		if key == "lang" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		embed.Description("No custom settings yet.")
	}
	for _, key := range keys {
		embed.Field(key, fmt.Sprint(bag[key]), true)
	}
	return respondEmbed(s, i, embed.Build())
}

func (h *Handler) handleSettingsSet(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var key, raw string
	for _, opt := range opts {
		switch opt.Name {
		case "key":
			key = opt.StringValue()
		case "value":
			raw = opt.StringValue()
		}
	}
	if key == "" {
		return respondError(s, i, "Setting name required")
	}

	changes := map[string]any{key: parseSettingValue(raw)}
	if err := h.settings.Update(ctx, i.GuildID, changes, valueobjects.UpdateModeSet); err != nil {
		_ = respondError(s, i, "Failed to update the setting")
		return err
	}
	return respondSuccess(s, i, fmt.Sprintf("Set `%s` to `%s`", key, raw))
}

func (h *Handler) handleSettingsReset(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var key string
	for _, opt := range opts {
		if opt.Name == "key" {
			key = opt.StringValue()
		}
	}
	if key == "" {
		return respondError(s, i, "Setting name required")
	}

	if err := h.settings.Update(ctx, i.GuildID, map[string]any{key: nil}, valueobjects.UpdateModeDelete); err != nil {
		_ = respondError(s, i, "Failed to reset the setting")
		return err
	}
	return respondSuccess(s, i, fmt.Sprintf("Reset `%s` to its default", key))
}

func (h *Handler) handleSettingsLanguage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var code string
	for _, opt := range opts {
		if opt.Name == "code" {
			code = strings.ToUpper(opt.StringValue())
		}
	}
	if code == "" {
		return respondError(s, i, "Language code required")
	}

	if err := h.settings.Update(ctx, i.GuildID, map[string]any{"lang": code}, valueobjects.UpdateModeSet); err != nil {
		_ = respondError(s, i, "Failed to update the language")
		return err
	}
	return respondSuccess(s, i, "Language set to "+code)
}

// handleAutoplay toggles queue replenishment for the guild
func (h *Handler) handleAutoplay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return respondError(s, i, "Missing option")
	}
	enabled := data.Options[0].BoolValue()

	if err := h.settings.Update(ctx, i.GuildID, map[string]any{"autoplay": enabled}, valueobjects.UpdateModeSet); err != nil {
		_ = respondError(s, i, "Failed to update autoplay")
		return err
	}
	if enabled {
		return respondSuccess(s, i, "Autoplay enabled")
	}
	return respondSuccess(s, i, "Autoplay disabled")
}

// parseSettingValue keeps booleans and numbers typed in the stored doc
func parseSettingValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
