package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Cart.StorageTTL; got != 168*time.Hour {
		t.Fatalf("expected default cart TTL 168h, got %v", got)
	}

	if cfg.Upstream.BaseURL != "https://hooks.example.com/webhook" {
		t.Fatalf("unexpected upstream base url %q", cfg.Upstream.BaseURL)
	}

	if cfg.EventingEnabled() {
		t.Fatal("eventing should be disabled without a GCP project")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsTrailingSlashUpstream(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvUpstreamBaseURL, "https://hooks.example.com/webhook/")

	if _, err := Load(); err == nil {
		t.Fatal("expected trailing slash to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvUpstreamBaseURL, "https://hooks.example.com/webhook")
}
