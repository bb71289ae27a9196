package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Acizza/nixos-update-status/internal/config"
	"github.com/Acizza/nixos-update-status/internal/ports/secondary"
	"github.com/Acizza/nixos-update-status/internal/wire"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	var (
		syncedFormat   string
		unsyncedFormat string
	)

	cmd := &cobra.Command{
		Use:   "check [channel]",
		Short: "Report missed updates for a NixOS channel",
		Long: `Check how many channel bumps have been missed since the last run.

Prints a single status line on stdout, suitable for a status bar:
- the synced format (default "synced") when up to date
- the unsynced format (default "unsynced ({n})") otherwise, with {n}
  replaced by the number of missed updates

The channel argument falls back to the "channel" setting in the config
file. Tracking a different channel than last time resets the count.

Examples:
  nixos-update-status check nixos-unstable
  nixos-update-status check nixos-25.05 --unsynced-format "{n} behind"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			channel := cfg.Channel
			if len(args) == 1 {
				channel = args[0]
			}
			if channel == "" {
				return fmt.Errorf("no channel given and none configured")
			}

			if cmd.Flags().Changed("synced-format") {
				cfg.SyncedFormat = syncedFormat
			}
			if cmd.Flags().Changed("unsynced-format") {
				cfg.UnsyncedFormat = unsyncedFormat
			}

			log, err := wire.Logger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck // best-effort flush on exit

			adapter, err := wire.StatusAdapter(cfg, log)
			if err != nil {
				return err
			}

			err = adapter.Check(cmd.Context(), channel, cfg.SyncedFormat, cfg.UnsyncedFormat)
			if errors.Is(err, secondary.ErrUnknownChannel) {
				return fmt.Errorf("channel %q does not exist in the feed", channel)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&syncedFormat, "synced-format", config.DefaultSyncedFormat, "Output when no updates were missed")
	cmd.Flags().StringVar(&unsyncedFormat, "unsynced-format", config.DefaultUnsyncedFormat, "Output when updates were missed; {n} is the count")

	return cmd
}
