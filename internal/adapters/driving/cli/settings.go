package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage default search settings",
	Long: `View and adjust the default search parameters. Overrides are stored
persistently and clamped into the hard limits; per-search flags still
take precedence over them.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective defaults",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Override one default",
	Long: `Override one default search setting.

Available keys:
  top_sites        - number of top sites to check
  timeout          - per-site timeout in seconds
  max_connections  - maximum concurrent connections
  retries          - retry count for failed probes
  parsing_enabled  - extended page parsing (true/false)
  include_similar  - include inexact matches (true/false)
  id_type          - identifier type`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Remove one override",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if defaultsService == nil {
		return errors.New("settings service not configured")
	}

	ctx := context.Background()
	defaults, err := defaultsService.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	overrides, err := defaultsService.Overrides(ctx)
	if err != nil {
		return fmt.Errorf("failed to load overrides: %w", err)
	}

	marker := func(key string) string {
		if _, ok := overrides[key]; ok {
			return " (override)"
		}
		return ""
	}

	cmd.Println("Search Defaults")
	cmd.Println("===============")
	cmd.Println()
	cmd.Printf("  top_sites:        %d%s\n", defaults.TopSites, marker("top_sites"))
	cmd.Printf("  timeout:          %d%s\n", defaults.TimeoutSeconds, marker("timeout"))
	cmd.Printf("  max_connections:  %d%s\n", defaults.MaxConnections, marker("max_connections"))
	cmd.Printf("  retries:          %d%s\n", defaults.Retries, marker("retries"))
	cmd.Printf("  parsing_enabled:  %t%s\n", defaults.ParsingEnabled, marker("parsing_enabled"))
	cmd.Printf("  include_similar:  %t%s\n", defaults.IncludeSimilar, marker("include_similar"))
	cmd.Printf("  id_type:          %s%s\n", defaults.IDType, marker("id_type"))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if defaultsService == nil {
		return errors.New("settings service not configured")
	}

	key := strings.ToLower(args[0])
	stored, err := defaultsService.Set(context.Background(), key, args[1])
	if err != nil {
		return err
	}

	if stored != strings.TrimSpace(args[1]) {
		cmd.Printf("Set %s = %s (clamped from %s).\n", key, stored, args[1])
	} else {
		cmd.Printf("Set %s = %s.\n", key, stored)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if defaultsService == nil {
		return errors.New("settings service not configured")
	}

	key := strings.ToLower(args[0])
	if err := defaultsService.Reset(context.Background(), key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}

	cmd.Printf("Reset %s to its configured default.\n", key)
	return nil
}
