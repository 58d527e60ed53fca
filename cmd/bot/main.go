package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tunecord/tunecord/internal/bot"
	"github.com/tunecord/tunecord/internal/config"
	"github.com/tunecord/tunecord/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info"}).WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})

	log.Infof("Starting %s v%s", cfg.BotName, cfg.Version)
	log.WithField("token", cfg.GetSafeToken()).Debug("Configuration loaded")

	static, err := config.LoadStatic(cfg.SettingsPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load settings file")
	}

	musicBot, err := bot.New(cfg, static, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create bot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := musicBot.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start bot")
	}

	log.Info("Bot is running. Press CTRL-C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	musicBot.Stop()
	log.Info("Goodbye!")
}
