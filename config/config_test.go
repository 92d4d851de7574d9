package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port == "" {
		t.Error("default port should be set")
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("default sslmode = %q, want disable", cfg.Database.SSLMode)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("scheduler should be enabled by default")
	}
	if cfg.Scheduler.WarrantySweep != "02:00" {
		t.Errorf("default sweep time = %q, want 02:00", cfg.Scheduler.WarrantySweep)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("jwt secret = %q", cfg.JWT.Secret)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: \"3000\"\nscheduler:\n  enabled: false\n  warranty_sweep: \"04:30\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg := Load()

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Scheduler.Enabled {
		t.Error("scheduler should be disabled by file")
	}
	if cfg.Scheduler.WarrantySweep != "04:30" {
		t.Errorf("sweep time = %q, want 04:30", cfg.Scheduler.WarrantySweep)
	}
}

func TestConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "secret", Name: "propdesk", SSLMode: "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=propdesk sslmode=disable"
	if got := c.ConnectionString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpirationDuration(t *testing.T) {
	c := JWTConfig{ExpirationHours: 12}
	if c.ExpirationDuration() != 12*time.Hour {
		t.Errorf("got %v, want 12h", c.ExpirationDuration())
	}

	c = JWTConfig{}
	if c.ExpirationDuration() != 24*time.Hour {
		t.Errorf("zero hours should fall back to 24h, got %v", c.ExpirationDuration())
	}
}
