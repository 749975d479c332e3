// Package main is the entry point for the brandpress content pipeline
// server. It loads configuration, connects to services, sets up routing,
// and starts the HTTP server with graceful shutdown support. A background
// ticker sweeps brand page tokens through the refresh exchange.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandpress/internal/ai"
	"brandpress/internal/brandconfig"
	"brandpress/internal/cache"
	"brandpress/internal/config"
	"brandpress/internal/database"
	"brandpress/internal/handlers"
	"brandpress/internal/publisher"
	"brandpress/internal/router"
	"brandpress/internal/store"
	"brandpress/internal/vault"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
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
		"dry_run", cfg.DryRun,
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

	// Seed the built-in category templates (no-op once rows exist).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey for the resolved-config cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	configCache := cache.NewConfigCache(valkeyClient, cache.DefaultConfigTTL)

	// Initialize data stores.
	brandStore := store.NewBrandStore(db)
	templateStore := store.NewCategoryTemplateStore(db)
	overrideStore := store.NewBrandOverrideStore(db)
	credentialStore := store.NewBrandCredentialStore(db)

	// Credential vault over the credential rows. In development an empty
	// CREDENTIAL_ENCRYPTION_KEY falls back to a fixed dev seed; config.Load
	// refuses that in production and staging.
	credVault := vault.New(credentialStore, cfg.CredentialKey)

	// Config resolution over templates and overrides.
	resolver := brandconfig.NewResolver(templateStore, overrideStore)

	// Publish state machine.
	pub := publisher.New(credVault, publisher.Options{
		DryRun:       cfg.DryRun,
		PollInterval: cfg.ReelPollInterval,
		PollAttempts: cfg.ReelPollAttempts,
	})

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai": {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"claude": {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Background token refresh sweep. Long-lived page tokens expire after
	// ~60 days; a daily exchange keeps them fresh.
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go func() {
		ticker := time.NewTicker(cfg.TokenRefreshEvery)
		defer ticker.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				pub.RefreshAllTokens(refreshCtx, brandStore)
			}
		}
	}()

	// Create handler groups with their dependencies.
	api := handlers.NewAPI(brandStore, templateStore, overrideStore, resolver, credVault, aiRegistry, configCache)

	// Set up the Chi router.
	r := router.New(api)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate caption endpoints that wait on LLM
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

	stopRefresh()

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
