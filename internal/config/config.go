// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SMARTWARGA_DB_PATH" envDefault:"./data/smartwarga.db"`
	ServerHost string `env:"SMARTWARGA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SMARTWARGA_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SMARTWARGA_ENV" envDefault:"development"`
	LogLevel   string `env:"SMARTWARGA_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"SMARTWARGA_UPLOADS_DIR" envDefault:"./uploads"`

	// CORSOrigin is the browser origin allowed to call the API.
	CORSOrigin string `env:"SMARTWARGA_CORS_ORIGIN" envDefault:"*"`

	// Cache configuration. An empty Redis URL selects the in-process cache.
	RedisURL string `env:"SMARTWARGA_REDIS_URL"`

	// AI assistant configuration. An empty API key disables the assistant
	// endpoint's model calls; it then always serves the fallback message.
	OpenAIAPIKey  string `env:"SMARTWARGA_OPENAI_API_KEY"`
	OpenAIModel   string `env:"SMARTWARGA_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"SMARTWARGA_OPENAI_BASE_URL"`

	// SearchURL points at a SearXNG instance for web search augmentation.
	// Empty disables search.
	SearchURL string `env:"SMARTWARGA_SEARCH_URL"`

	// AuditRetentionDays is how long audit entries are kept before the
	// nightly purge removes them. Zero or negative disables the purge.
	AuditRetentionDays int `env:"SMARTWARGA_AUDIT_RETENTION_DAYS" envDefault:"180"`
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

// AssistantEnabled returns true if the OpenAI API key is configured.
func (c Config) AssistantEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// AuditRetention returns the audit retention as a duration.
func (c Config) AuditRetention() time.Duration {
	if c.AuditRetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.AuditRetentionDays) * 24 * time.Hour
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SMARTWARGA_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if err := validateOptionalURL("SMARTWARGA_SEARCH_URL", cfg.SearchURL); err != nil {
		return nil, err
	}
	if err := validateOptionalURL("SMARTWARGA_OPENAI_BASE_URL", cfg.OpenAIBaseURL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateOptionalURL(name, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http or https URL, got %q", name, raw)
	}
	return nil
}
