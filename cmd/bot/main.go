package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/mixelka/menubot/internal/config"
	"github.com/mixelka/menubot/internal/dispatch"
	"github.com/mixelka/menubot/internal/images"
	"github.com/mixelka/menubot/internal/telegram"
	"github.com/mixelka/menubot/internal/weather"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting menu bot")

	// Create external clients
	weatherClient := weather.NewClient(weather.Config{
		BaseURL: cfg.WeatherAPIURL,
		APIKey:  cfg.WeatherAPIKey,
		Timeout: cfg.HTTPTimeout,
	})
	imageClient := images.NewClient(cfg.ImageURL, cfg.HTTPTimeout)

	// Create bot
	bot, err := telegram.NewBot(telegram.BotDeps{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	dispatcher := dispatch.New(dispatch.Deps{
		Gateway: bot.Gateway(),
		Weather: weatherClient,
		Images:  imageClient,
		Logger:  logger,
	})
	bot.SetDispatcher(dispatcher)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start bot
	logger.Info("bot is running, press Ctrl+C to stop")
	bot.Start(ctx)

	logger.Info("waiting for image tasks to finish")
	dispatcher.Wait()

	logger.Info("bot stopped")
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
