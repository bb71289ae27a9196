// Package primary defines the primary ports (driving interfaces) for the
// application. CLI adapters depend on these, never on implementations.
package primary

import "context"

// DriftState classifies the outcome of a single reconciliation run.
type DriftState string

const (
	// StateFresh means no prior record existed for the requested channel
	// (first run, or the tracked channel changed).
	StateFresh DriftState = "fresh"
	// StateSynced means the last seen revision is still the current one.
	StateSynced DriftState = "synced"
	// StateDrifted means the last seen revision sits earlier in the current
	// history; the missed count is exact.
	StateDrifted DriftState = "drifted"
	// StateRebased means the last seen revision is no longer present in the
	// history at all; the missed count is a conservative lower bound.
	StateRebased DriftState = "rebased"
)

// DriftService defines the primary port for channel drift checks.
type DriftService interface {
	// CheckDrift resolves the remote state of a channel, reconciles it with
	// the persisted record, persists the updated record, and reports drift.
	//
	// When the remote feed fails, no status is returned and the persisted
	// record is left untouched. When only persisting the updated record
	// fails, the computed status is returned together with the error so the
	// caller can still report it.
	CheckDrift(ctx context.Context, req CheckDriftRequest) (*DriftStatus, error)
}

// CheckDriftRequest contains parameters for a drift check.
type CheckDriftRequest struct {
	Channel string
}

// DriftStatus is the result of a drift check.
type DriftStatus struct {
	Channel        string
	State          DriftState
	Synced         bool
	MissedCount    int
	LatestRevision string
}
