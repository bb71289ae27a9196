package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Acizza/nixos-update-status/internal/ports/secondary"
)

func newTestFeed(handler http.HandlerFunc) (*HTTPFeed, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewHTTPFeed(server.URL, time.Second), server
}

func TestHistory_OrderedParse(t *testing.T) {
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nixos-unstable/history" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "aaa111 1700000000\nbbb222 1700100000\nccc333 1700200000\n")
	})
	defer server.Close()

	history, err := feed.History(context.Background(), "nixos-unstable")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 revisions, got %d", len(history))
	}
	if history[0] != "aaa111" || history[2] != "ccc333" {
		t.Errorf("unexpected order: %v", history)
	}
	if history.Latest() != "ccc333" {
		t.Errorf("expected latest 'ccc333', got '%s'", history.Latest())
	}
}

func TestHistory_SkipsBlankLines(t *testing.T) {
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "\naaa111 1700000000\n\nbbb222 1700100000\n\n")
	})
	defer server.Close()

	history, err := feed.History(context.Background(), "c")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 revisions, got %d", len(history))
	}
}

func TestHistory_UnknownChannel(t *testing.T) {
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer server.Close()

	_, err := feed.History(context.Background(), "no-such-channel")

	if !errors.Is(err, secondary.ErrUnknownChannel) {
		t.Errorf("expected ErrUnknownChannel, got %v", err)
	}
}

func TestHistory_ServerError(t *testing.T) {
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := feed.History(context.Background(), "c")

	if !errors.Is(err, secondary.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestHistory_EmptyBody(t *testing.T) {
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	_, err := feed.History(context.Background(), "c")

	if !errors.Is(err, secondary.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable for empty history, got %v", err)
	}
}

func TestHistory_DuplicateRevisions(t *testing.T) {
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "aaa111 1\nbbb222 2\naaa111 3\n")
	})
	defer server.Close()

	_, err := feed.History(context.Background(), "c")

	if !errors.Is(err, secondary.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable for duplicates, got %v", err)
	}
}

func TestHistory_UnreachableFeed(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	feed := NewHTTPFeed(url, time.Second)

	_, err := feed.History(context.Background(), "c")

	if !errors.Is(err, secondary.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestHistory_HangingFeedTimesOut(t *testing.T) {
	release := make(chan struct{})
	feed, server := newTestFeed(func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer server.Close()
	defer close(release)

	feed = NewHTTPFeed(server.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := feed.History(context.Background(), "c")

	if !errors.Is(err, secondary.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("fetch did not respect the timeout, took %s", elapsed)
	}
}

func TestHistory_InvalidChannelName(t *testing.T) {
	feed := NewHTTPFeed("http://example.invalid", time.Second)

	for _, channel := range []string{"", "a/b", "has space"} {
		_, err := feed.History(context.Background(), channel)
		if !errors.Is(err, secondary.ErrUnknownChannel) {
			t.Errorf("channel %q: expected ErrUnknownChannel, got %v", channel, err)
		}
	}
}

func TestNewHTTPFeed_Defaults(t *testing.T) {
	feed := NewHTTPFeed("", 0)

	if feed.baseURL != DefaultBaseURL {
		t.Errorf("expected default base URL %s, got %s", DefaultBaseURL, feed.baseURL)
	}
	if feed.client.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultTimeout, feed.client.Timeout)
	}
}
