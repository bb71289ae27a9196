package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Acizza/nixos-update-status/internal/config"
	"github.com/Acizza/nixos-update-status/internal/wire"
)

// CacheCmd returns the cache command with its subcommands
func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or reset the persisted channel state",
	}

	cmd.AddCommand(cacheShowCmd())
	cmd.AddCommand(cachePathCmd())
	cmd.AddCommand(cacheClearCmd())

	return cmd
}

func cacheShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored channel record",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cache, err := wire.StateCache(cfg)
			if err != nil {
				return err
			}

			record, err := cache.Load(cmd.Context())
			if err != nil {
				return err
			}
			if record == nil {
				fmt.Println("No channel state recorded yet.")
				return nil
			}

			fmt.Printf("Channel:        %s\n", record.Channel)
			fmt.Printf("Last seen:      %s\n", record.LastSeenRevision)
			fmt.Printf("Missed updates: %d\n", record.MissedCount)
			return nil
		},
	}
}

func cachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the state file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cache, err := wire.StateCache(cfg)
			if err != nil {
				return err
			}
			fmt.Println(cache.Path())
			return nil
		},
	}
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored channel record",
		Long: `Remove the stored channel record.

The next check run starts fresh and reports a missed count of 0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cache, err := wire.StateCache(cfg)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Printf("✓ Cleared channel state at %s\n", cache.Path())
			return nil
		},
	}
}
