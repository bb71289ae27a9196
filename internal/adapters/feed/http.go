// Package feed contains the HTTP adapter for the channel feed.
package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Acizza/nixos-update-status/internal/ports/secondary"
)

const (
	// DefaultBaseURL is the public NixOS channel feed.
	DefaultBaseURL = "https://channels.nixos.org"

	// DefaultTimeout bounds a single fetch so a hung feed never stalls the
	// caller (a status bar) indefinitely.
	DefaultTimeout = 10 * time.Second

	// maxHistoryBytes caps the response body read from the feed.
	maxHistoryBytes = 1 << 20
)

// HTTPFeed implements secondary.ChannelFeed against an HTTP channel feed.
// The feed serves one revision per line under <base>/<channel>/history,
// oldest first; the first whitespace-separated field of each line is the
// revision identifier.
type HTTPFeed struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFeed creates a new HTTP feed adapter. Empty baseURL and zero timeout
// fall back to the defaults.
func NewHTTPFeed(baseURL string, timeout time.Duration) *HTTPFeed {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFeed{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// History fetches the ordered revision history for a channel.
func (f *HTTPFeed) History(ctx context.Context, channel string) (secondary.RevisionHistory, error) {
	if channel == "" || strings.ContainsAny(channel, "/ ") {
		return nil, fmt.Errorf("%w: invalid channel name %q", secondary.ErrUnknownChannel, channel)
	}

	historyURL := fmt.Sprintf("%s/%s/history", f.baseURL, url.PathEscape(channel))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, historyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", secondary.ErrSourceUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", secondary.ErrSourceUnavailable, historyURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", secondary.ErrUnknownChannel, channel)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %s from %s", secondary.ErrSourceUnavailable, resp.Status, historyURL)
	}

	history, err := parseHistory(io.LimitReader(resp.Body, maxHistoryBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", secondary.ErrSourceUnavailable, historyURL, err)
	}
	return history, nil
}

// parseHistory reads one revision per line, first field only, and rejects
// empty or duplicated histories.
func parseHistory(r io.Reader) (secondary.RevisionHistory, error) {
	var history secondary.RevisionHistory
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rev := fields[0]
		if _, ok := seen[rev]; ok {
			return nil, fmt.Errorf("duplicate revision %q in history", rev)
		}
		seen[rev] = struct{}{}
		history = append(history, rev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %v", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("history is empty")
	}
	return history, nil
}

// Ensure HTTPFeed implements the interface
var _ secondary.ChannelFeed = (*HTTPFeed)(nil)
