package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"payvue/internal/amqp"
	"payvue/internal/cache"
	"payvue/internal/config"
	apphttp "payvue/internal/http"
	applog "payvue/internal/log"
	"payvue/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting payvue server")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	store, err := cache.New(cfg.CacheBackend, cfg.CacheTTL, cfg.RedisAddr)
	if err != nil {
		logger.Error("Failed to initialize cache", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Cache initialized", applog.FieldCacheBackend, cfg.CacheBackend)

	// Periodic cleanup for the in-process cache backend
	cacheManager := cache.NewManager()
	if mem, ok := store.(*cache.MemoryStore); ok {
		cacheManager.Register(mem)
		cacheManager.StartCleanup(10 * time.Minute)
		defer cacheManager.Stop()
	}

	srv := apphttp.NewServer(":"+cfg.Port, repo, store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Refresh notifications are optional; without a broker the version-keyed
	// cache still converges on the next read
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			if err := amqpClient.ConsumeSnapshotRefreshed(ctx, srv.OnSnapshotRefreshed); err != nil {
				if err != context.Canceled {
					logger.Error("Message consumption failed", applog.FieldError, err)
				}
			}
		}()
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting HTTP server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
