package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pr-poehali-dev/rutor-parser-site/app/api"
	"github.com/pr-poehali-dev/rutor-parser-site/app/cfg"
	"github.com/pr-poehali-dev/rutor-parser-site/app/database"
	"github.com/pr-poehali-dev/rutor-parser-site/app/ingest"
	"github.com/pr-poehali-dev/rutor-parser-site/app/kinopoisk"
	"github.com/pr-poehali-dev/rutor-parser-site/app/listing"
	"github.com/pr-poehali-dev/rutor-parser-site/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting rutor parser server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	postRepo := database.NewPostRepository(db)

	source, err := ingest.LoadSourceConfig(appCfg.SourceConfigPath)
	if err != nil {
		slog.Error("Failed to load source configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Listing source configured",
		"base_url", source.BaseURL,
		"pages", source.Pages,
		"lookback_days", source.LookbackDays)

	enricher := kinopoisk.NewClient(appCfg.KinopoiskAPIKey)
	if enricher.IsConfigured() {
		slog.Info("Kinopoisk enrichment enabled")
	} else {
		slog.Info("Kinopoisk enrichment disabled (KINOPOISK_API_KEY not set)")
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 5,
		},
	}

	parser := listing.NewParser(source.BaseURL)
	ingester := ingest.NewIngester(source, parser, enricher, postRepo, httpClient, appCfg.UserAgent)

	scheduler := tasks.NewScheduler(ingester)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(postRepo, ingester)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:    ":" + appCfg.Port,
		Handler: server,
		// A synchronous POST ingestion walks every listing page, so the
		// write timeout is far above the usual 30s.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}
