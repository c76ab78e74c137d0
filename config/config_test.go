package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("UPSTREAM_BASE_URL", "")
	LoadConfig()

	if AppConfig.AppPort != "8080" {
		t.Fatalf("expected default port, got %s", AppConfig.AppPort)
	}
	if AppConfig.Env != "development" {
		t.Fatalf("expected default env, got %s", AppConfig.Env)
	}
	if AppConfig.UpstreamTimeout != 15*time.Second {
		t.Fatalf("expected default upstream timeout, got %s", AppConfig.UpstreamTimeout)
	}
	if AppConfig.DirectoryCacheTTL != 2*time.Minute {
		t.Fatalf("expected default directory cache TTL, got %s", AppConfig.DirectoryCacheTTL)
	}
	if IsProduction() {
		t.Fatal("development env reported as production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("UPSTREAM_BASE_URL", "https://queues.example.com")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("REDIS_SESSION_DB", "5")
	t.Setenv("DIRECTORY_REFRESH_INTERVAL", "90s")
	LoadConfig()

	if AppConfig.AppPort != "9090" {
		t.Fatalf("expected override port, got %s", AppConfig.AppPort)
	}
	if AppConfig.UpstreamBaseURL != "https://queues.example.com" {
		t.Fatalf("expected upstream override, got %s", AppConfig.UpstreamBaseURL)
	}
	if AppConfig.UpstreamTimeout != 3*time.Second {
		t.Fatalf("expected timeout override, got %s", AppConfig.UpstreamTimeout)
	}
	if AppConfig.RedisSessionDB != 5 {
		t.Fatalf("expected session db override, got %d", AppConfig.RedisSessionDB)
	}
	if AppConfig.DirectoryRefreshInterval != 90*time.Second {
		t.Fatalf("expected refresh interval override, got %s", AppConfig.DirectoryRefreshInterval)
	}
	if !IsProduction() {
		t.Fatal("production env not detected")
	}
}
