package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/broodsire/internal/api"
	"github.com/dgallion1/broodsire/internal/cache"
	"github.com/dgallion1/broodsire/internal/config"
	"github.com/dgallion1/broodsire/internal/marker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	vocab, err := cfg.Vocabulary()
	if err != nil {
		log.Error("invalid marker vocabulary", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := cache.New(marker.New(vocab), log)

	// Warm the cache; a bad document is reported per request, not fatal.
	if _, err := store.Get(ctx, cfg.DocumentPath); err != nil {
		log.Warn("initial document load failed", "path", cfg.DocumentPath, "error", err)
	}

	if cfg.WatchDocument {
		go func() {
			if err := store.Watch(ctx, cfg.DocumentPath); err != nil {
				log.Error("document watcher stopped", "error", err)
			}
		}()
	}

	srv := api.NewServer(store, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting broodsire", "port", cfg.Port, "document", cfg.DocumentPath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
