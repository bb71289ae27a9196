package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Acizza/nixos-update-status/internal/config"
	"github.com/Acizza/nixos-update-status/internal/ports/secondary"
	"github.com/Acizza/nixos-update-status/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, state cache, and feed reachability",
		Long: `Environment health check.

Validates:
- Config file (if present) parses
- State cache directory is writable
- Persisted state record (if present) parses
- Channel feed is reachable for the configured channel

Examples:
  nixos-update-status doctor          # Run full health check
  nixos-update-status doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, results := checkConfig()

			results = append(results, checkStateCache(cmd.Context(), cfg))
			results = append(results, checkFeed(cmd.Context(), cfg))

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check          Status")
				fmt.Println("─────────────────────")
				for _, r := range results {
					fmt.Printf("%-14s %s\n", r.Name, colorStatus(r.Status))
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Exit code only, no output")

	return cmd
}

func colorStatus(status string) string {
	switch status {
	case "✓":
		return color.New(color.FgGreen).Sprint(status)
	case "⚠":
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgRed).Sprint(status)
	}
}

// checkConfig validates the config file and returns the effective config.
// A broken config still yields defaults so the remaining checks can run.
func checkConfig() (*config.Config, []CheckResult) {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig(), []CheckResult{{
			Name:    "config",
			Status:  "✗",
			Details: err.Error(),
		}}
	}

	path, _ := config.DefaultPath()
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return cfg, []CheckResult{{
			Name:    "config",
			Status:  "⚠",
			Details: fmt.Sprintf("no config file at %s (defaults in effect)", path),
		}}
	}
	return cfg, []CheckResult{{Name: "config", Status: "✓"}}
}

// checkStateCache verifies the state directory is writable and the persisted
// record (if any) parses.
func checkStateCache(ctx context.Context, cfg *config.Config) CheckResult {
	cache, err := wire.StateCache(cfg)
	if err != nil {
		return CheckResult{Name: "state cache", Status: "✗", Details: err.Error()}
	}

	dir := filepath.Dir(cache.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return CheckResult{
			Name:    "state cache",
			Status:  "✗",
			Details: fmt.Sprintf("cannot create state directory %s: %v", dir, err),
		}
	}
	probe, err := os.CreateTemp(dir, "doctor-*")
	if err != nil {
		return CheckResult{
			Name:    "state cache",
			Status:  "✗",
			Details: fmt.Sprintf("state directory %s is not writable: %v", dir, err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	record, err := cache.Load(ctx)
	switch {
	case errors.Is(err, secondary.ErrCacheCorrupt):
		return CheckResult{
			Name:    "state cache",
			Status:  "⚠",
			Details: fmt.Sprintf("%v (the next check run starts fresh)", err),
		}
	case err != nil:
		return CheckResult{Name: "state cache", Status: "✗", Details: err.Error()}
	case record == nil:
		return CheckResult{
			Name:    "state cache",
			Status:  "⚠",
			Details: fmt.Sprintf("no state file at %s yet (first run pending)", cache.Path()),
		}
	}
	return CheckResult{Name: "state cache", Status: "✓"}
}

// checkFeed fetches the configured channel's history once.
func checkFeed(ctx context.Context, cfg *config.Config) CheckResult {
	if cfg.Channel == "" {
		return CheckResult{
			Name:    "channel feed",
			Status:  "⚠",
			Details: "no default channel configured; feed reachability not checked",
		}
	}

	if _, err := wire.ChannelFeed(cfg).History(ctx, cfg.Channel); err != nil {
		return CheckResult{Name: "channel feed", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "channel feed", Status: "✓"}
}
