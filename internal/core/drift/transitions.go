// Package drift contains the pure reconciliation logic for channel drift.
// This is part of the Functional Core - no I/O, only pure functions.
package drift

// State represents the possible outcomes of reconciling a prior record with
// the current revision history.
type State string

const (
	StateFresh   State = "fresh"
	StateSynced  State = "synced"
	StateDrifted State = "drifted"
	StateRebased State = "rebased"
)

// Record is the last observed channel state carried between runs.
type Record struct {
	Channel          string
	LastSeenRevision string
	MissedCount      int
}

// Result contains the outcome of a reconciliation: the classified state and
// the record to persist for the next run.
type Result struct {
	State       State
	MissedCount int
	Record      Record
}

// Reconcile computes how many bumps separate the previously observed revision
// from the current latest one. history is ordered oldest first and must be
// non-empty; prior may be nil (first run).
//
// Rules:
//   - No prior record, or the prior record tracks a different channel:
//     fresh start, count 0. Switching channels discards prior drift knowledge.
//   - Prior revision equals the latest: synced, count 0. The count never
//     accumulates once synced.
//   - Prior revision found at position i of n: drifted by exactly n-1-i bumps,
//     one per subsequent position.
//   - Prior revision absent from the history (aged out of the feed's retained
//     window): the exact count is unknowable, so report 1 as a conservative
//     lower bound rather than pretending to be synced.
func Reconcile(prior *Record, channel string, history []string) Result {
	latest := history[len(history)-1]

	if prior == nil || prior.Channel != channel {
		return Result{
			State: StateFresh,
			Record: Record{
				Channel:          channel,
				LastSeenRevision: latest,
			},
		}
	}

	if prior.LastSeenRevision == latest {
		return Result{
			State: StateSynced,
			Record: Record{
				Channel:          channel,
				LastSeenRevision: prior.LastSeenRevision,
			},
		}
	}

	for i, rev := range history {
		if rev == prior.LastSeenRevision {
			missed := len(history) - 1 - i
			return Result{
				State:       StateDrifted,
				MissedCount: missed,
				Record: Record{
					Channel:          channel,
					LastSeenRevision: latest,
					MissedCount:      missed,
				},
			}
		}
	}

	return Result{
		State:       StateRebased,
		MissedCount: 1,
		Record: Record{
			Channel:          channel,
			LastSeenRevision: latest,
			MissedCount:      1,
		},
	}
}
