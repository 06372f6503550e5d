package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("ADMIN_EMAIL", "a@b.c")
	t.Setenv("ADMIN_PASSWORD", "x")
	t.Setenv("SESSION_SECRET", "s")

	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.CacheTTL != defaultCacheTTL {
		t.Fatalf("CacheTTL = %v, want %v", cfg.CacheTTL, defaultCacheTTL)
	}
	if !cfg.IsDev() {
		t.Fatalf("empty APP_ENV should count as dev")
	}
}

func TestLoadCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "2h")
	if cfg := Load(); cfg.CacheTTL != 2*time.Hour {
		t.Fatalf("CacheTTL = %v, want 2h", cfg.CacheTTL)
	}

	t.Setenv("CACHE_TTL", "not-a-duration")
	if cfg := Load(); cfg.CacheTTL != defaultCacheTTL {
		t.Fatalf("invalid CACHE_TTL should fall back to default, got %v", cfg.CacheTTL)
	}
}

func TestIsDev(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if cfg := Load(); cfg.IsDev() {
		t.Fatalf("production env should not be dev")
	}
}
