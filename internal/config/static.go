package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultEmbedColor = "0xb3b3b3"

// Node describes a backend audio node
type Node struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	Secure   bool   `json:"secure"`
}

// Cooldown describes a command rate limit: Rate uses per PerSeconds window
type Cooldown struct {
	Rate       int
	PerSeconds int
}

// UnmarshalJSON accepts the [rate, perSeconds] pair form
func (c *Cooldown) UnmarshalJSON(b []byte) error {
	var pair []int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("cooldown must be a [rate, perSeconds] pair, got %d values", len(pair))
	}
	c.Rate, c.PerSeconds = pair[0], pair[1]
	return nil
}

// ControllerButton is one button of the music controller layout.
// The file form is either a bare name or a {"name": "color"} object.
type ControllerButton struct {
	Name  string
	Color string
}

// UnmarshalJSON accepts both the string and the single-pair object form
func (b *ControllerButton) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		b.Name = name
		return nil
	}
	var pair map[string]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	for name, color := range pair {
		b.Name = name
		b.Color = color
	}
	return nil
}

// Static holds the settings-file configuration loaded once at startup
type Static struct {
	Nodes         map[string]Node       `json:"nodes"`
	MaxQueue      int                   `json:"default_max_queue"`
	Prefix        string                `json:"prefix"`
	EmbedColorRaw string                `json:"embed_color"`
	BotAccessUser []string              `json:"bot_access_user"`
	EmojiSources  map[string]string     `json:"emoji_source_raw"`
	Cooldowns     map[string]Cooldown   `json:"cooldowns"`
	Aliases       map[string][]string   `json:"aliases"`
	Controller    [][]ControllerButton  `json:"controller"`

	embedColor int
	accessSet  map[string]struct{}
}

// DefaultStatic returns the settings used when no file is present
func DefaultStatic() *Static {
	s := &Static{
		Nodes:         map[string]Node{},
		MaxQueue:      1000,
		Prefix:        "",
		EmbedColorRaw: defaultEmbedColor,
		EmojiSources:  map[string]string{},
		Cooldowns:     map[string]Cooldown{},
		Aliases:       map[string][]string{},
		Controller: [][]ControllerButton{
			{{Name: "back"}, {Name: "resume"}, {Name: "skip"}, {Name: "stop", Color: "red"}, {Name: "add"}},
			{{Name: "tracks"}},
		},
	}
	s.finalize()
	return s
}

// LoadStatic reads the settings file, filling defaults for missing keys
func LoadStatic(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultStatic(), nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultStatic()
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if s.MaxQueue <= 0 {
		s.MaxQueue = 1000
	}
	if err := s.finalize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Static) finalize() error {
	color := s.EmbedColorRaw
	if color == "" {
		color = defaultEmbedColor
	}
	parsed, err := strconv.ParseInt(strings.TrimPrefix(color, "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("invalid embed_color %q: %w", s.EmbedColorRaw, err)
	}
	s.embedColor = int(parsed)

	s.accessSet = make(map[string]struct{}, len(s.BotAccessUser))
	for _, id := range s.BotAccessUser {
		s.accessSet[id] = struct{}{}
	}
	return nil
}

// EmbedColor returns the presentation accent color as an integer
func (s *Static) EmbedColor() int {
	return s.embedColor
}

// HasBotAccess reports whether a user is exempt from cooldowns
func (s *Static) HasBotAccess(userID string) bool {
	_, ok := s.accessSet[userID]
	return ok
}

// CooldownFor returns the cooldown for a command, if any. Users with
// bot access are always exempt.
func (s *Static) CooldownFor(command, userID string) (Cooldown, bool) {
	if s.HasBotAccess(userID) {
		return Cooldown{}, false
	}
	cd, ok := s.Cooldowns[command]
	return cd, ok
}

// AliasesFor returns the alias list for a command name
func (s *Static) AliasesFor(name string) []string {
	return s.Aliases[name]
}

// EmojiForSource returns the display emoji for a track source
func (s *Static) EmojiForSource(source string) string {
	if emoji, ok := s.EmojiSources[strings.ToLower(source)]; ok {
		return emoji
	}
	return "🔗"
}
