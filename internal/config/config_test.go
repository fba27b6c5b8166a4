// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RECLAIMD_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/reclaimd.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/reclaimd.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.DefaultRole != "author" {
		t.Errorf("DefaultRole = %q, want %q", cfg.DefaultRole, "author")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true with no Redis URL")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without RECLAIMD_SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RECLAIMD_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with a short secret")
	}
	if !strings.Contains(err.Error(), "at least 32 bytes") {
		t.Errorf("error %q does not mention minimum length", err)
	}
}

func TestLoad_PlaceholderSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RECLAIMD_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted a known placeholder secret")
	}
	if !strings.Contains(err.Error(), "placeholder") {
		t.Errorf("error %q does not mention placeholder", err)
	}
}

func TestLoad_InvalidDefaultRole(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RECLAIMD_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "RECLAIMD_DEFAULT_ROLE", "superuser")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted an unknown default role")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 3000}
	if got := cfg.ServerAddr(); got != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", got, "0.0.0.0:3000")
	}
}
