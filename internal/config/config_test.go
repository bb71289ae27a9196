package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing config, got %v", err)
	}

	if cfg.SyncedFormat != DefaultSyncedFormat {
		t.Errorf("expected synced format %q, got %q", DefaultSyncedFormat, cfg.SyncedFormat)
	}
	if cfg.UnsyncedFormat != DefaultUnsyncedFormat {
		t.Errorf("expected unsynced format %q, got %q", DefaultUnsyncedFormat, cfg.UnsyncedFormat)
	}
	if cfg.Channel != "" {
		t.Errorf("expected no default channel, got %q", cfg.Channel)
	}
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `channel: nixos-unstable
feed_url: https://mirror.example.org
timeout_seconds: 3
synced_format: "ok"
unsynced_format: "{n} behind"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Channel != "nixos-unstable" {
		t.Errorf("expected channel 'nixos-unstable', got %q", cfg.Channel)
	}
	if cfg.FeedURL != "https://mirror.example.org" {
		t.Errorf("expected feed URL 'https://mirror.example.org', got %q", cfg.FeedURL)
	}
	if cfg.FeedTimeout() != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", cfg.FeedTimeout())
	}
	if cfg.UnsyncedFormat != "{n} behind" {
		t.Errorf("expected unsynced format '{n} behind', got %q", cfg.UnsyncedFormat)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("channel: nixos-24.11\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("NIXOS_UPDATE_STATUS_CHANNEL", "nixos-unstable")
	t.Setenv("NIXOS_UPDATE_STATUS_TIMEOUT_SECONDS", "7")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Channel != "nixos-unstable" {
		t.Errorf("expected env to override channel, got %q", cfg.Channel)
	}
	if cfg.FeedTimeout() != 7*time.Second {
		t.Errorf("expected timeout 7s from env, got %s", cfg.FeedTimeout())
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid config, got nil")
	}
}

func TestLoadFrom_BlankFormatsFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("synced_format: \"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.SyncedFormat != DefaultSyncedFormat {
		t.Errorf("expected synced format %q, got %q", DefaultSyncedFormat, cfg.SyncedFormat)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	expected := filepath.Join("nixos-update-status", "config.yaml")
	if filepath.Base(filepath.Dir(path)) != "nixos-update-status" {
		t.Errorf("expected path ending in %s, got %s", expected, path)
	}
}
