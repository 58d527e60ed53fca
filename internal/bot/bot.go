package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/tunecord/tunecord/internal/commands"
	"github.com/tunecord/tunecord/internal/config"
	"github.com/tunecord/tunecord/internal/database"
	"github.com/tunecord/tunecord/internal/domain/repositories"
	"github.com/tunecord/tunecord/internal/services"
	"github.com/tunecord/tunecord/internal/services/spotify"
	"github.com/tunecord/tunecord/internal/services/youtube"
	"github.com/tunecord/tunecord/pkg/logger"
)

// MusicBot wires the Discord session to the services
type MusicBot struct {
	config          *config.Config
	static          *config.Static
	logger          *logger.Logger
	session         *discordgo.Session
	db              *database.DB
	settingsService *services.SettingsService
	libraryService  *services.LibraryService
	accountService  *services.AccountService
	playerService   *services.PlayerService
	reportService   *services.ReportService
	cmdHandler      *commands.Handler
}

// New creates a new MusicBot instance
func New(cfg *config.Config, static *config.Static, log *logger.Logger) (*MusicBot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages
	session.StateEnabled = true

	// Connect and migrate the database
	ctx := context.Background()
	dbCfg := database.DefaultConfig(cfg.DatabaseURL)
	db, err := database.Connect(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	// External catalogs
	ytService := youtube.NewService(cfg.YouTubeAPIKey, log)
	if !ytService.Configured() {
		log.Info("YouTube API key not provided - search and autoplay will be limited")
	}

	var catalog services.RelatedTrackProvider
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		spotifyService, err := spotify.NewService(cfg.SpotifyClientID, cfg.SpotifyClientSecret, log)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Spotify service - Spotify seeds will not work")
		} else {
			catalog = spotifyService
			log.Info("Spotify service initialized")
		}
	} else {
		log.Info("Spotify credentials not provided - Spotify seeds will not work")
	}

	// Repositories and services
	settingsRepo := repositories.NewDatabaseSettingsRepository(db)
	libraryRepo := repositories.NewDatabaseLibraryRepository(db)

	settingsService := services.NewSettingsService(settingsRepo, cfg.SettingsCacheSize, log)
	libraryService := services.NewLibraryService(libraryRepo, log)
	reportService := services.NewReportService(cfg.ReportMaxPerGuild)
	resolver := services.NewSearchResolver(ytService, log)

	confirmer := commands.NewDiscordConfirmer(session, log)
	accountService := services.NewAccountService(libraryRepo, confirmer, log)

	autoplayService := services.NewAutoplayService(ytService, catalog, resolver, cfg.BotName, cfg.AutoplayHistoryLen, log)
	playerService := services.NewPlayerService(settingsService, autoplayService, static.MaxQueue, log)

	cmdHandler := commands.NewHandler(
		session,
		settingsService,
		libraryService,
		accountService,
		playerService,
		reportService,
		resolver,
		confirmer,
		static,
		log,
	)

	bot := &MusicBot{
		config:          cfg,
		static:          static,
		logger:          log,
		session:         session,
		db:              db,
		settingsService: settingsService,
		libraryService:  libraryService,
		accountService:  accountService,
		playerService:   playerService,
		reportService:   reportService,
		cmdHandler:      cmdHandler,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(cmdHandler.HandleInteraction)
	session.AddHandler(bot.onGuildDelete)

	return bot, nil
}

// Start opens the gateway connection and registers commands
func (b *MusicBot) Start(ctx context.Context) error {
	b.logger.Info("Opening Discord connection...")
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	b.logger.Info("Registering slash commands...")
	if err := b.cmdHandler.RegisterCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop stops the bot gracefully
func (b *MusicBot) Stop() {
	b.logger.Info("Shutting down services...")

	if b.db != nil {
		b.db.Close()
	}

	b.logger.Info("Closing Discord connection...")
	if err := b.session.Close(); err != nil {
		b.logger.WithError(err).Error("Failed to close Discord session")
	}
}

// onReady is called when the bot is ready
func (b *MusicBot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.logger.Infof("Bot is ready! Logged in as %s#%s", event.User.Username, event.User.Discriminator)
	b.logger.Infof("Connected to %d guilds", len(event.Guilds))

	status := fmt.Sprintf("%s v%s - /help", b.config.BotName, b.config.Version)
	if err := s.UpdateGameStatus(0, status); err != nil {
		b.logger.WithError(err).Warn("Failed to update status")
	}
}

// onGuildDelete drops per-guild state when the bot leaves a guild
func (b *MusicBot) onGuildDelete(s *discordgo.Session, event *discordgo.GuildDelete) {
	if event.Unavailable {
		return
	}
	b.playerService.Release(event.ID)
	b.settingsService.Invalidate(event.ID)
	b.logger.WithField("guild", event.ID).Info("Left guild, state released")
}
