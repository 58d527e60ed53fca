package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadStaticMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadStatic(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadStatic: %v", err)
	}
	if s.MaxQueue != 1000 {
		t.Errorf("MaxQueue = %d; want 1000", s.MaxQueue)
	}
	if s.EmbedColor() != 0xb3b3b3 {
		t.Errorf("EmbedColor = %#x; want the default grey", s.EmbedColor())
	}
	if len(s.Controller) != 2 {
		t.Errorf("Controller rows = %d; want the default layout", len(s.Controller))
	}
}

func TestLoadStaticParsesFile(t *testing.T) {
	path := writeSettings(t, `{
		"default_max_queue": 500,
		"prefix": "?",
		"embed_color": "0xff0000",
		"bot_access_user": ["admin-1"],
		"emoji_source_raw": {"youtube": "📺"},
		"cooldowns": {"play": [2, 30]},
		"aliases": {"play": ["p"]},
		"controller": [["back", "resume", {"stop": "red"}]]
	}`)

	s, err := LoadStatic(path)
	if err != nil {
		t.Fatalf("LoadStatic: %v", err)
	}

	if s.MaxQueue != 500 || s.Prefix != "?" {
		t.Errorf("MaxQueue/Prefix = %d/%q", s.MaxQueue, s.Prefix)
	}
	if s.EmbedColor() != 0xff0000 {
		t.Errorf("EmbedColor = %#x; want red", s.EmbedColor())
	}

	cd, ok := s.CooldownFor("play", "someone")
	if !ok || cd.Rate != 2 || cd.PerSeconds != 30 {
		t.Errorf("CooldownFor(play) = %+v, %v; want [2, 30]", cd, ok)
	}

	// Access users are exempt from cooldowns
	if _, ok := s.CooldownFor("play", "admin-1"); ok {
		t.Error("access users should bypass cooldowns")
	}
	if !s.HasBotAccess("admin-1") || s.HasBotAccess("someone") {
		t.Error("HasBotAccess should match only the configured ids")
	}

	if got := s.AliasesFor("play"); len(got) != 1 || got[0] != "p" {
		t.Errorf("AliasesFor(play) = %v; want [p]", got)
	}

	row := s.Controller[0]
	if len(row) != 3 {
		t.Fatalf("controller row = %d buttons; want 3", len(row))
	}
	if row[0].Name != "back" || row[0].Color != "" {
		t.Errorf("bare button = %+v; want name only", row[0])
	}
	if row[2].Name != "stop" || row[2].Color != "red" {
		t.Errorf("colored button = %+v; want stop/red", row[2])
	}
}

func TestLoadStaticEmojiFallback(t *testing.T) {
	path := writeSettings(t, `{"emoji_source_raw": {"youtube": "📺"}}`)
	s, err := LoadStatic(path)
	if err != nil {
		t.Fatalf("LoadStatic: %v", err)
	}

	if got := s.EmojiForSource("YouTube"); got != "📺" {
		t.Errorf("EmojiForSource(YouTube) = %q; lookups are case-insensitive", got)
	}
	if got := s.EmojiForSource("soundcloud"); got != "🔗" {
		t.Errorf("EmojiForSource(soundcloud) = %q; want the link fallback", got)
	}
}

func TestLoadStaticRejectsBadColor(t *testing.T) {
	path := writeSettings(t, `{"embed_color": "not-a-color"}`)
	if _, err := LoadStatic(path); err == nil {
		t.Error("an unparseable embed color should fail loading")
	}
}

func TestLoadStaticRejectsBadCooldown(t *testing.T) {
	path := writeSettings(t, `{"cooldowns": {"play": [1]}}`)
	if _, err := LoadStatic(path); err == nil {
		t.Error("a cooldown that is not a [rate, perSeconds] pair should fail")
	}
}
