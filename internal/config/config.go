package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Bot Settings
	BotToken string
	BotName  string
	Version  string

	// Database
	DatabaseURL string

	// External catalogs
	YouTubeAPIKey       string
	SpotifyClientID     string
	SpotifyClientSecret string

	// Static settings file
	SettingsPath string

	// Logging
	LogLevel string
	LogFile  string

	// Limits
	SettingsCacheSize  int
	ReportMaxPerGuild  int
	AutoplayHistoryLen int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	databaseUser := os.Getenv("POSTGRES_USER")
	databasePassword := os.Getenv("POSTGRES_PASSWORD")
	databaseName := os.Getenv("POSTGRES_DB")
	databaseHost := getEnvOrDefault("POSTGRES_HOST", "localhost")
	databasePort := getEnvOrDefault("POSTGRES_PORT", "5432")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		if databaseUser == "" || databaseName == "" {
			return nil, fmt.Errorf("DATABASE_URL or POSTGRES_USER/POSTGRES_DB environment variables are required")
		}
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			databaseUser, databasePassword, databaseHost, databasePort, databaseName)
	}

	cfg := &Config{
		// Bot Settings
		BotToken: botToken,
		BotName:  getEnvOrDefault("BOT_NAME", "Tunecord"),
		Version:  getEnvOrDefault("VERSION", "1.0.0"),

		// Database
		DatabaseURL: databaseURL,

		// External catalogs
		YouTubeAPIKey:       os.Getenv("YOUTUBE_API_KEY"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),

		// Static settings file
		SettingsPath: getEnvOrDefault("SETTINGS_PATH", "./settings.json"),

		// Logging
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
		LogFile:  getEnvOrDefault("LOG_FILE", ""),

		// Limits
		SettingsCacheSize:  getEnvInt("SETTINGS_CACHE_SIZE", 10000),
		ReportMaxPerGuild:  getEnvInt("REPORT_MAX_PER_GUILD", 100),
		AutoplayHistoryLen: getEnvInt("AUTOPLAY_HISTORY_LEN", 10),
	}

	return cfg, nil
}

// GetSafeToken returns a masked version of the token for logging
func (c *Config) GetSafeToken() string {
	if len(c.BotToken) < 15 {
		return "***"
	}
	return c.BotToken[:10] + "..." + c.BotToken[len(c.BotToken)-4:]
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
