// Gaia Eyes widget service. Serves the space-weather dashboard widgets as
// embeddable HTML fragments, proxies the backend dashboard API, and caches
// upstream JSON and imagery.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/config"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/fetchers"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/media"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/server"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/transient"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/widgets"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting gaiaeyes-widgets",
		logger.String("environment", cfg.Environment),
		logger.String("port", cfg.Port))

	if cfg.APIBase == "" {
		log.Warn("GAIAEYES_API_BASE is not set, dashboard proxy and widgets will report errors")
	}

	// Transient cache: SQLite survives restarts, memory does not
	var store transient.Store
	if cfg.CacheDBPath != "" {
		store, err = transient.NewSQLiteStore(cfg.CacheDBPath)
		if err != nil {
			log.Fatal("Failed to open cache database",
				logger.String("path", cfg.CacheDBPath), logger.Error(err))
		}
		log.Info("Using SQLite transient cache", logger.String("path", cfg.CacheDBPath))
	} else {
		store = transient.NewMemoryStore()
		log.Info("Using in-memory transient cache")
	}
	defer store.Close()

	fetcher := fetchers.NewClient(store, cfg.CacheTTL, log)
	gaia := fetchers.NewGaiaClient(fetcher, cfg.APIBase, cfg.MediaBaseURL, cfg.SupabaseAnonKey, cfg.ImageryCacheTTL)

	mediaStore, err := media.NewStore(ctx, cfg, fetcher)
	if err != nil {
		if err == media.ErrNotConfigured {
			log.Warn("No media origin configured, imagery endpoints disabled")
			mediaStore = nil
		} else {
			log.Fatal("Failed to create media store", logger.Error(err))
		}
	}
	if mediaStore != nil {
		defer mediaStore.Close()
	}

	renderer := widgets.NewRenderer(gaia, cfg, log)
	srv := server.New(cfg, log, gaia, renderer, mediaStore)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("Server stopped unexpectedly", logger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", logger.Error(err))
	}

	log.Info("Stopped")
}
