// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Acizza/nixos-update-status/internal/ports/primary"
)

// CountPlaceholder is the token in the unsynced template that is replaced by
// the missed-update count.
const CountPlaceholder = "{n}"

// StatusAdapter translates a drift check into a single status line on out.
// It depends only on the DriftService interface, enabling easy testing with
// mocks.
type StatusAdapter struct {
	service primary.DriftService
	out     io.Writer
	log     *zap.Logger
}

// NewStatusAdapter creates a new StatusAdapter writing to the given output.
func NewStatusAdapter(service primary.DriftService, out io.Writer, log *zap.Logger) *StatusAdapter {
	return &StatusAdapter{
		service: service,
		out:     out,
		log:     log,
	}
}

// Check runs a drift check for the channel and prints the rendered template.
// A persistence failure is demoted to a warning: once a status has been
// computed, reporting it takes priority.
func (a *StatusAdapter) Check(ctx context.Context, channel, syncedFormat, unsyncedFormat string) error {
	status, err := a.service.CheckDrift(ctx, primary.CheckDriftRequest{Channel: channel})
	if status == nil {
		return err
	}
	if err != nil {
		a.log.Warn("status computed but not persisted", zap.String("channel", channel), zap.Error(err))
	}

	fmt.Fprintln(a.out, Render(status, syncedFormat, unsyncedFormat))
	return nil
}

// Render substitutes the missed count into the matching template.
func Render(status *primary.DriftStatus, syncedFormat, unsyncedFormat string) string {
	if status.Synced {
		return syncedFormat
	}
	return strings.ReplaceAll(unsyncedFormat, CountPlaceholder, strconv.Itoa(status.MissedCount))
}
