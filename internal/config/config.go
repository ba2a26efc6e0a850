// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SKILLFRESH_DB_PATH" envDefault:"./data/skillfresh.db"`
	ServerHost string `env:"SKILLFRESH_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SKILLFRESH_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SKILLFRESH_ENV" envDefault:"development"`
	LogLevel   string `env:"SKILLFRESH_LOG_LEVEL" envDefault:"info"`

	// Rate limiting configuration
	APIRateLimit    float64 `env:"SKILLFRESH_API_RATE_LIMIT" envDefault:"10"`     // Requests per second per API key
	APIRateBurst    int     `env:"SKILLFRESH_API_RATE_BURST" envDefault:"20"`     // Burst size per API key
	GlobalRateLimit float64 `env:"SKILLFRESH_GLOBAL_RATE_LIMIT" envDefault:"100"` // Requests per second per client IP
	GlobalRateBurst int     `env:"SKILLFRESH_GLOBAL_RATE_BURST" envDefault:"200"` // Burst size per client IP

	// Seeding configuration
	DoSeed bool `env:"SKILLFRESH_DO_SEED" envDefault:"true"` // Create the default user and bootstrap key on first run
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SKILLFRESH_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.APIRateLimit <= 0 || cfg.GlobalRateLimit <= 0 {
		return nil, fmt.Errorf("rate limits must be positive")
	}
	if cfg.APIRateBurst < 1 || cfg.GlobalRateBurst < 1 {
		return nil, fmt.Errorf("rate limit bursts must be at least 1")
	}

	return cfg, nil
}
