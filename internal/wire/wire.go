// Package wire provides dependency injection for the application.
// Each run is a single invocation, so composition is plain construction
// rather than long-lived singletons.
package wire

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	cliadapter "github.com/Acizza/nixos-update-status/internal/adapters/cli"
	"github.com/Acizza/nixos-update-status/internal/adapters/feed"
	"github.com/Acizza/nixos-update-status/internal/adapters/filesystem"
	"github.com/Acizza/nixos-update-status/internal/app"
	"github.com/Acizza/nixos-update-status/internal/config"
	"github.com/Acizza/nixos-update-status/internal/ports/primary"
)

// StateCache builds the filesystem state cache from the configuration.
func StateCache(cfg *config.Config) (*filesystem.StateCache, error) {
	path := cfg.StatePath
	if path == "" {
		var err error
		path, err = filesystem.DefaultStatePath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate state cache: %w", err)
		}
	}
	return filesystem.NewStateCache(path), nil
}

// ChannelFeed builds the HTTP feed adapter from the configuration.
func ChannelFeed(cfg *config.Config) *feed.HTTPFeed {
	return feed.NewHTTPFeed(cfg.FeedURL, cfg.FeedTimeout())
}

// DriftService builds the drift service with its adapters.
func DriftService(cfg *config.Config, log *zap.Logger) (primary.DriftService, error) {
	cache, err := StateCache(cfg)
	if err != nil {
		return nil, err
	}
	return app.NewDriftService(ChannelFeed(cfg), cache, log), nil
}

// StatusAdapter returns a StatusAdapter writing to stdout.
func StatusAdapter(cfg *config.Config, log *zap.Logger) (*cliadapter.StatusAdapter, error) {
	return StatusAdapterWithOutput(cfg, log, os.Stdout)
}

// StatusAdapterWithOutput returns a StatusAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func StatusAdapterWithOutput(cfg *config.Config, log *zap.Logger, out io.Writer) (*cliadapter.StatusAdapter, error) {
	service, err := DriftService(cfg, log)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewStatusAdapter(service, out, log), nil
}

// Logger builds the process logger. Output goes to stderr so stdout stays
// reserved for the status line.
func Logger() (*zap.Logger, error) {
	return zap.NewDevelopment()
}
