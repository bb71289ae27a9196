package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Acizza/nixos-update-status/internal/cli"
	"github.com/Acizza/nixos-update-status/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "nixos-update-status",
		Short:   "Display missed NixOS channel updates",
		Version: version.String(),
		Long: `nixos-update-status reports whether this machine is in sync with a NixOS
channel and how many channel bumps have been missed since the last run.
It is meant to be invoked periodically as a status-bar data source.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.CheckCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.CacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
