package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"payvue/internal/amqp"
	"payvue/internal/config"
	applog "payvue/internal/log"
	"payvue/internal/refresh"
	"payvue/internal/session"
	"payvue/internal/storage"
	"payvue/internal/upstream"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting payvue-refresher")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.SessionFile)
	if _, err := sessions.Load(); err != nil {
		logger.Warn("No usable session found; refresh cycles will fail until one is saved",
			applog.FieldError, err, "path", cfg.SessionFile)
	}

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, sessions, logger)

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var publisher refresh.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	refresher := refresh.New(client, repo, publisher, cfg.RefreshInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Refresher running", "interval", cfg.RefreshInterval.String())
	if err := refresher.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Refresher error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Refresher stopped gracefully")
}
