// Package app implements the application services behind the primary ports.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Acizza/nixos-update-status/internal/core/drift"
	"github.com/Acizza/nixos-update-status/internal/ports/primary"
	"github.com/Acizza/nixos-update-status/internal/ports/secondary"
)

// DriftServiceImpl implements the DriftService interface. It orchestrates the
// feed fetch, cache reconciliation, and cache write for a single run.
type DriftServiceImpl struct {
	feed  secondary.ChannelFeed
	cache secondary.StateCache
	log   *zap.Logger
}

// NewDriftService creates a new DriftService with injected dependencies.
func NewDriftService(feed secondary.ChannelFeed, cache secondary.StateCache, log *zap.Logger) *DriftServiceImpl {
	return &DriftServiceImpl{
		feed:  feed,
		cache: cache,
		log:   log,
	}
}

// CheckDrift resolves the current remote state of a channel, reconciles it
// with the persisted record, and persists the result.
//
// A feed failure is surfaced unchanged and leaves the cache untouched: stale
// state must never be discarded on a transient fetch error. An unreadable or
// corrupt cache is self-healing and treated as a first run. A failed save is
// returned together with the computed status so the caller can still report.
func (s *DriftServiceImpl) CheckDrift(ctx context.Context, req primary.CheckDriftRequest) (*primary.DriftStatus, error) {
	if req.Channel == "" {
		return nil, fmt.Errorf("channel name is required")
	}

	history, err := s.feed.History(ctx, req.Channel)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: feed returned an empty history for channel %q", secondary.ErrSourceUnavailable, req.Channel)
	}

	prior := s.loadPrior(ctx)
	result := drift.Reconcile(prior, req.Channel, history)

	status := &primary.DriftStatus{
		Channel:        req.Channel,
		State:          primary.DriftState(result.State),
		Synced:         result.MissedCount == 0,
		MissedCount:    result.MissedCount,
		LatestRevision: history.Latest(),
	}

	// Saved unconditionally, even when unchanged, to refresh the record.
	record := &secondary.ChannelRecord{
		Channel:          result.Record.Channel,
		LastSeenRevision: result.Record.LastSeenRevision,
		MissedCount:      result.Record.MissedCount,
	}
	if err := s.cache.Save(ctx, record); err != nil {
		return status, fmt.Errorf("failed to persist channel state: %w", err)
	}

	return status, nil
}

// loadPrior reads the persisted record, degrading to a first run when the
// cache is missing, corrupt, or unreadable.
func (s *DriftServiceImpl) loadPrior(ctx context.Context) *drift.Record {
	record, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn("discarding unreadable state cache", zap.Error(err))
		return nil
	}
	if record == nil {
		return nil
	}
	return &drift.Record{
		Channel:          record.Channel,
		LastSeenRevision: record.LastSeenRevision,
		MissedCount:      record.MissedCount,
	}
}

// Ensure DriftServiceImpl implements the interface
var _ primary.DriftService = (*DriftServiceImpl)(nil)
