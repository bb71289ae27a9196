// Package config loads the tool configuration. Resolution order:
// built-in defaults, then the optional YAML config file, then
// NIXOS_UPDATE_STATUS_* environment variables. Flags override all of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultSyncedFormat is printed when no updates were missed.
	DefaultSyncedFormat = "synced"
	// DefaultUnsyncedFormat is printed otherwise; {n} is replaced by the
	// missed-update count.
	DefaultUnsyncedFormat = "unsynced ({n})"

	envPrefix = "NIXOS_UPDATE_STATUS_"
)

// Config represents the flat tool configuration.
type Config struct {
	// Channel is the default channel when none is given on the command line.
	Channel string `yaml:"channel" env:"CHANNEL"`

	// FeedURL is the base URL of the channel feed.
	FeedURL string `yaml:"feed_url" env:"FEED_URL"`

	// TimeoutSeconds bounds a single feed fetch.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`

	// StatePath overrides the location of the persisted state file.
	StatePath string `yaml:"state_path" env:"STATE_PATH"`

	// SyncedFormat and UnsyncedFormat are the output templates.
	SyncedFormat   string `yaml:"synced_format" env:"SYNCED_FORMAT"`
	UnsyncedFormat string `yaml:"unsynced_format" env:"UNSYNCED_FORMAT"`
}

// FeedTimeout returns the configured feed timeout, or zero when unset (the
// feed adapter falls back to its default).
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a configuration with built-in defaults. Zero-valued
// feed settings are resolved by the feed adapter.
func DefaultConfig() *Config {
	return &Config{
		SyncedFormat:   DefaultSyncedFormat,
		UnsyncedFormat: DefaultUnsyncedFormat,
	}
}

// DefaultPath returns the config file location,
// e.g. ~/.config/nixos-update-status/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "nixos-update-status", "config.yaml"), nil
}

// Load builds the effective configuration. A missing config file is not an
// error; a present but invalid one is.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom builds the effective configuration from the given file path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config at %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if cfg.SyncedFormat == "" {
		cfg.SyncedFormat = DefaultSyncedFormat
	}
	if cfg.UnsyncedFormat == "" {
		cfg.UnsyncedFormat = DefaultUnsyncedFormat
	}

	return cfg, nil
}
