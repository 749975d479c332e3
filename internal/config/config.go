// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "staging", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Credential vault root secret. Secrets at rest are encrypted with a key
	// derived from this value, so it must stay stable across restarts.
	CredentialKey string

	// Publishing settings
	DryRun            bool
	GraphAPIVersion   string
	ReelPollInterval  time.Duration
	ReelPollAttempts  int
	TokenRefreshEvery time.Duration

	// AI providers for caption generation. Providers without keys are
	// simply unavailable; the API then returns rendered prompts alone.
	AIProvider    string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	ClaudeKey     string
	ClaudeModel   string
	ClaudeBaseURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production or staging mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "brandpress"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "brandpress"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		CredentialKey: os.Getenv("CREDENTIAL_ENCRYPTION_KEY"),

		DryRun:            envOrDefault("DRY_RUN", "true") == "true",
		GraphAPIVersion:   envOrDefault("META_GRAPH_API_VERSION", "v25.0"),
		ReelPollInterval:  envDuration("REEL_POLL_INTERVAL", 10*time.Second),
		ReelPollAttempts:  envInt("REEL_POLL_ATTEMPTS", 30),
		TokenRefreshEvery: envDuration("TOKEN_REFRESH_EVERY", 24*time.Hour),

		AIProvider:    envOrDefault("AI_PROVIDER", "openai"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		ClaudeBaseURL: os.Getenv("CLAUDE_BASE_URL"),
	}

	if cfg.IsProductionLike() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in %s", cfg.Env)
		}
		// Without a stable root secret the vault would fall back to the
		// development key and every stored credential would be trivially
		// decryptable.
		if cfg.CredentialKey == "" {
			return nil, fmt.Errorf("CREDENTIAL_ENCRYPTION_KEY must be set in %s", cfg.Env)
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProductionLike returns true for environments where development
// fallbacks (default passwords, the built-in vault key) are forbidden.
func (c *Config) IsProductionLike() bool {
	return c.Env == "production" || c.Env == "staging"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads an integer environment variable, returning a fallback if
// unset or unparsable.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// envDuration reads a duration environment variable (e.g. "10s", "24h"),
// returning a fallback if unset or unparsable.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
