// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrUnknownChannel indicates the named channel does not exist in the feed.
var ErrUnknownChannel = errors.New("unknown channel")

// ErrSourceUnavailable indicates the remote feed could not be reached or
// returned data that cannot be interpreted as a revision history.
var ErrSourceUnavailable = errors.New("channel feed unavailable")

// RevisionHistory is the ordered list of known revision identifiers for a
// channel, oldest first. The last element is the current revision.
type RevisionHistory []string

// Latest returns the current revision, or "" for an empty history.
func (h RevisionHistory) Latest() string {
	if len(h) == 0 {
		return ""
	}
	return h[len(h)-1]
}

// ChannelFeed defines the secondary port for resolving the remote state of a
// channel. Implementations perform no side effects beyond the fetch itself and
// must return within a bounded time.
type ChannelFeed interface {
	// History fetches the ordered revision history for a channel.
	// Fails with ErrUnknownChannel when the channel does not exist and with
	// ErrSourceUnavailable when the feed is unreachable or malformed.
	History(ctx context.Context, channel string) (RevisionHistory, error)
}
