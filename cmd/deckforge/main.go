// Package main is the entry point for the deckforge server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deckforge/internal/cache"
	"deckforge/internal/config"
	"deckforge/internal/database"
	"deckforge/internal/handlers"
	"deckforge/internal/imagesearch"
	"deckforge/internal/imaging"
	"deckforge/internal/metrics"
	"deckforge/internal/middleware"
	"deckforge/internal/pptx"
	"deckforge/internal/presentation"
	"deckforge/internal/router"
	"deckforge/internal/storage"
	"deckforge/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: debug level in development, info otherwise.
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"domain", cfg.Domain,
	)

	m, err := metrics.New()
	if err != nil {
		slog.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey. The query cache is optional: without it every
	// ingestion goes straight to the photo-search providers.
	var queryCache imagesearch.Cache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, image query cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		queryCache = cache.NewQueryCache(valkeyClient, cache.DefaultQueryTTL)
	}

	// Photo-search providers in priority order.
	resolver := imagesearch.NewResolver([]imagesearch.ProviderConfig{
		{Name: "unsplash", APIKey: cfg.UnsplashKey, BaseURL: cfg.UnsplashBaseURL},
		{Name: "pexels", APIKey: cfg.PexelsKey, BaseURL: cfg.PexelsBaseURL},
	}, queryCache, m)

	slog.Info("image providers initialized", "chain", resolver.Available())

	// Connect to S3-compatible object storage (optional, app works without it).
	var archive *storage.DeckArchive
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		archive = storage.NewDeckArchive(storageClient, m)
		slog.Info("s3 deck archive connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, decks are rendered on every download")
	}

	fetcher, err := imaging.NewFetcher(cfg.ImageCacheSize)
	if err != nil {
		slog.Error("failed to initialize image fetcher", "error", err)
		os.Exit(1)
	}
	assembler := presentation.NewAssembler(pptx.NewEncoder(fetcher), m)

	slideshows := handlers.NewSlideshows(
		store.NewSlideshowStore(db),
		resolver,
		assembler,
		archive,
		store.NewExportLogStore(db),
		cfg.Domain,
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(slideshows, limiter, m)

	// WriteTimeout must cover rendering a deck with remote pictures.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
