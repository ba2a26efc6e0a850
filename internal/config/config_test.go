// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "./data/skillfresh.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true by default")
	}
	if cfg.APIRateLimit != 10 || cfg.APIRateBurst != 20 {
		t.Errorf("API rate defaults = %v/%d, want 10/20", cfg.APIRateLimit, cfg.APIRateBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SKILLFRESH_DB_PATH", "/tmp/test.db")
	t.Setenv("SKILLFRESH_SERVER_PORT", "9090")
	t.Setenv("SKILLFRESH_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false in production")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SKILLFRESH_SERVER_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for out-of-range port")
	}
}

func TestLoadRejectsZeroRateLimit(t *testing.T) {
	t.Setenv("SKILLFRESH_API_RATE_LIMIT", "0")
	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for zero rate limit")
	}
}
