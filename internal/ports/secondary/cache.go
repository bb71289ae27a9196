package secondary

import (
	"context"
	"errors"
)

// ErrCacheCorrupt indicates a cache file exists but could not be parsed.
// Callers must treat this identically to "no record" rather than aborting.
var ErrCacheCorrupt = errors.New("state cache corrupt")

// ChannelRecord is the durable record of the last observed channel state.
// At most one record is retained at a time; tracking a different channel
// fully replaces it.
type ChannelRecord struct {
	Channel          string
	LastSeenRevision string
	MissedCount      int
}

// StateCache defines the secondary port for persisting the channel record
// across invocations.
type StateCache interface {
	// Load returns the stored record, or (nil, nil) when no cache exists yet.
	// Fails with ErrCacheCorrupt when a file exists but cannot be parsed.
	Load(ctx context.Context) (*ChannelRecord, error)

	// Save atomically persists the record, fully replacing any prior content.
	// A concurrent reader sees either the old or the new complete record.
	Save(ctx context.Context, record *ChannelRecord) error
}
