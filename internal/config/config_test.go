package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
server:
  port: "9090"
redis:
  addr: "localhost:6379"
audit:
  max_resubmission_attempts: 5
smtp:
  host: mail.local
  recipients: ["instructor@local"]
`)
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("expected env override, got %s", cfg.Redis.Addr)
	}
	if cfg.Audit.MaxResubmissionAttempts != 5 {
		t.Fatalf("expected cap 5, got %d", cfg.Audit.MaxResubmissionAttempts)
	}
	if cfg.SMTP.Port != "587" || cfg.Questions.TTL != "10m" {
		t.Fatalf("expected defaults to survive, got smtp port %s ttl %s", cfg.SMTP.Port, cfg.Questions.TTL)
	}
	if cfg.SlogLevel().String() != "DEBUG" {
		t.Fatalf("expected debug level, got %s", cfg.SlogLevel())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Audit.MaxResubmissionAttempts != 20 {
		t.Fatalf("expected default cap, got %d", cfg.Audit.MaxResubmissionAttempts)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for invalid, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
