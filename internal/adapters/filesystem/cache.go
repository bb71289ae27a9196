// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Acizza/nixos-update-status/internal/ports/secondary"
)

// StateFileName is the name of the persisted state file inside the cache
// directory.
const StateFileName = "state.json"

// channelRecord is the on-disk layout of the persisted record.
type channelRecord struct {
	Channel          string `json:"channel"`
	LastSeenRevision string `json:"last_seen_revision"`
	MissedCount      int    `json:"missed_count"`
}

// StateCache implements secondary.StateCache with a single JSON file.
// Writes go to a temp file in the same directory followed by a rename, so a
// crash mid-write never leaves a truncated record: a reader always sees either
// the old or the new complete file.
type StateCache struct {
	path string
}

// NewStateCache creates a state cache backed by the given file path.
func NewStateCache(path string) *StateCache {
	return &StateCache{path: path}
}

// DefaultStatePath returns the per-user location of the state file,
// e.g. ~/.cache/nixos-update-status/state.json.
func DefaultStatePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(dir, "nixos-update-status", StateFileName), nil
}

// Path returns the state file location.
func (c *StateCache) Path() string {
	return c.path
}

// Load reads the stored record. A missing file is a first run and returns
// (nil, nil); an unparsable or invalid file returns ErrCacheCorrupt.
func (c *StateCache) Load(ctx context.Context) (*secondary.ChannelRecord, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file at %s: %w", c.path, err)
	}

	var rec channelRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", secondary.ErrCacheCorrupt, c.path, err)
	}
	if rec.Channel == "" || rec.LastSeenRevision == "" || rec.MissedCount < 0 {
		return nil, fmt.Errorf("%w: incomplete record in %s", secondary.ErrCacheCorrupt, c.path)
	}

	return &secondary.ChannelRecord{
		Channel:          rec.Channel,
		LastSeenRevision: rec.LastSeenRevision,
		MissedCount:      rec.MissedCount,
	}, nil
}

// Save atomically replaces the stored record, creating the cache directory on
// demand.
func (c *StateCache) Save(ctx context.Context, record *secondary.ChannelRecord) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory at %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(channelRecord{
		Channel:          record.Channel,
		LastSeenRevision: record.LastSeenRevision,
		MissedCount:      record.MissedCount,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state record: %w", err)
	}
	data = append(data, '\n')

	// Temp file in the destination directory so the rename stays on one
	// filesystem and is atomic.
	tmp, err := os.CreateTemp(dir, StateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file at %s: %w", c.path, err)
	}
	return nil
}

// Clear removes the state file. Missing files are not an error.
func (c *StateCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file at %s: %w", c.path, err)
	}
	return nil
}

// Ensure StateCache implements the interface
var _ secondary.StateCache = (*StateCache)(nil)
