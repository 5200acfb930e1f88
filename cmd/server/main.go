package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mailtriage/internal/classifier"
	"mailtriage/internal/notifier"
	"mailtriage/internal/server"
	"mailtriage/internal/service"
	"mailtriage/internal/storage"
	"mailtriage/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the classification gateway: remote when a credential is
	// configured, offline keyword matching otherwise.
	var gateway classifier.Gateway
	if cfg.OpenAI.APIKey != "" {
		logger.Info("Using OpenAI gateway", zap.String("model", cfg.OpenAI.Model))
		gateway = classifier.NewOpenAIGateway(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("No OpenAI credential, using offline keyword gateway")
		gateway = classifier.NewKeywordGateway()
	}

	// Initialize the review notifier
	var notify notifier.Notifier = notifier.NewNoopNotifier()
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		logger.Info("Using Telegram review notifier", zap.Int64("chat_id", cfg.Telegram.ChatID))
		notify, err = notifier.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create notifier", zap.Error(err))
		}
	}

	svc := service.New(gateway, classifier.NewPolicy(logger), store, notify, logger)
	srv := server.New(svc, logger)

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.Address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal("Server error", zap.Error(err))
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		if err := srv.Shutdown(); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
	}
}
