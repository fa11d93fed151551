package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5005" || cfg.UpstreamURL != "http://127.0.0.1:5000/trip" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.UpstreamTimeout != 210*time.Second || cfg.CacheTTL != 600*time.Second {
		t.Fatalf("durations=%v/%v", cfg.UpstreamTimeout, cfg.CacheTTL)
	}
	if cfg.ServeFreshOnSuccess || cfg.CacheOnSuccess || cfg.CoalesceRequests {
		t.Fatalf("policy flags must default to off: %+v", cfg)
	}
	if cfg.StorageBackend != "file" {
		t.Fatalf("backend=%q", cfg.StorageBackend)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "30s")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("SERVE_FRESH_ON_SUCCESS", "true")
	t.Setenv("COALESCE_REQUESTS", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UpstreamTimeout != 30*time.Second || cfg.CacheTTL != time.Minute {
		t.Fatalf("durations=%v/%v", cfg.UpstreamTimeout, cfg.CacheTTL)
	}
	if !cfg.ServeFreshOnSuccess || !cfg.CoalesceRequests || cfg.CacheOnSuccess {
		t.Fatalf("flags=%+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad duration")
	}
	t.Setenv("UPSTREAM_TIMEOUT", "")

	t.Setenv("STORAGE_BACKEND", "redis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	t.Setenv("STORAGE_BACKEND", "")

	t.Setenv("STORAGE_BACKEND", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for postgres backend without DATABASE_URL")
	}
}
