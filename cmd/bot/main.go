// Package main запускает Telegram-бота с обработчиками из роутеров.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"tgrouter/internal/config"
	"tgrouter/internal/external/telegram"
	"tgrouter/internal/handlers"
	"tgrouter/internal/middleware"
	"tgrouter/internal/router"
	"tgrouter/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.DefaultOptions()).Fatal("Failed to load configuration", zap.Error(err))
	}

	logOpts := logger.DefaultOptions()
	logOpts.Level = cfg.LogLevel
	logOpts.FilePath = logger.FilePath(cfg.LogPath, cfg.AppDataDir)

	log := logger.New(logOpts)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := telegram.DefaultOptions()
	opts.PollTimeout = cfg.PollTimeout
	opts.DropPendingUpdates = cfg.DropPendingUpdates
	opts.ReconnectDelay = cfg.ReconnectDelay

	client, err := telegram.NewClient(cfg.BotToken, cfg.Debug, opts, log)
	if err != nil {
		log.Fatal("Failed to create bot", zap.Error(err))
	}

	client.Use(middleware.Recovery(log), middleware.Logging(log))

	reg := router.Default()
	handlers.New(client, cfg.AdminUsername, reg.Stats, log).Register(reg)

	if err := reg.RegisterBot(client); err != nil {
		log.Fatal("Failed to register handlers", zap.Error(err))
	}

	stats := reg.Stats()
	log.Info("Handlers registered",
		zap.Int("message_handlers", stats.Handlers.Message),
		zap.Int("callback_handlers", stats.Handlers.Callback))

	if err := client.SetCommands(reg.Router().BotCommands()); err != nil {
		log.Error("Failed to set bot commands", zap.Error(err))
	}

	if err := client.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot stopped with error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Bot stopped successfully")
}
