// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables
// and rejects missing or placeholder credentials before any network or
// database work begins.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/reclaimd/reclaimd-go/internal/model"
)

// knownPlaceholderSecrets contains default/example secrets that must be
// rejected instead of silently proceeding with a broken deployment.
var knownPlaceholderSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-session-secret-goes-here!!!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"RECLAIMD_DB_PATH" envDefault:"./data/reclaimd.db"`
	SessionSecret string `env:"RECLAIMD_SESSION_SECRET,required"`
	ServerHost    string `env:"RECLAIMD_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"RECLAIMD_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"RECLAIMD_ENV" envDefault:"development"`
	LogLevel      string `env:"RECLAIMD_LOG_LEVEL" envDefault:"info"`

	// DefaultRole is assigned to self-provisioned profiles (sign-up and
	// lazy creation on first login).
	DefaultRole string `env:"RECLAIMD_DEFAULT_ROLE" envDefault:"author"`

	// AdminEmail is the bootstrap admin account created when no admin
	// exists yet. The generated password is logged once at startup.
	AdminEmail string `env:"RECLAIMD_ADMIN_EMAIL" envDefault:"admin@reclaimd.local"`

	// Cache configuration
	RedisURL     string `env:"RECLAIMD_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"RECLAIMD_CACHE_PREFIX" envDefault:"rcd:"`    // Redis key prefix
	CacheTTL     int    `env:"RECLAIMD_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"RECLAIMD_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"RECLAIMD_DO_SEED" envDefault:"false"` // Enable demo content seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("RECLAIMD_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownPlaceholderSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("RECLAIMD_SESSION_SECRET is a known placeholder value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !model.IsValidRole(cfg.DefaultRole) {
		return nil, fmt.Errorf("RECLAIMD_DEFAULT_ROLE must be one of %v, got %q",
			model.ValidRoles, cfg.DefaultRole)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("RECLAIMD_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
