// Package main is the entry point for the SlidePress API server.
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

	"github.com/joho/godotenv"

	"slidepress/internal/ai"
	"slidepress/internal/cache"
	"slidepress/internal/config"
	"slidepress/internal/database"
	"slidepress/internal/handlers"
	"slidepress/internal/metrics"
	"slidepress/internal/middleware"
	"slidepress/internal/router"
	"slidepress/internal/store"
)

func main() {
	// Local development reads a .env file; in containers the environment
	// is already populated and the missing file is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

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

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache for draft previews).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	draftCache := cache.NewDraftCache(valkeyClient, cache.DefaultDraftTTL)

	// Initialize data stores.
	accountStore := store.NewAccountStore(db)
	templateStore := store.NewTemplateStore(db)
	postStore := store.NewPostStore(db)
	styleMetaStore := store.NewStyleMetaStore(db)
	carouselStore := store.NewCarouselStore(db)

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, MaxTokens: cfg.AIMaxTokens},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, MaxTokens: cfg.AIMaxTokens},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, MaxTokens: cfg.AIMaxTokens},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, MaxTokens: cfg.AIMaxTokens},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Prometheus metrics, exposed on /metrics.
	m := metrics.New()
	metrics.SetGlobal(m)

	// Generation rate limiter, per account with plan-dependent budgets.
	limiter := middleware.NewRateLimiter(cfg.FreeGenerationsPerMin, cfg.ProGenerationsPerMin, time.Minute)
	defer limiter.Stop()

	api := handlers.NewAPI(accountStore, templateStore, postStore, styleMetaStore, carouselStore, aiRegistry, draftCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(api, accountStore, limiter, m.Registry())

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate generation endpoints that wait on LLM
	// responses (typically 10-30s, up to 60s for complex prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
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
