package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and reload the site catalog",
	RunE:  runCatalogInfo,
}

var catalogInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show catalog details",
	RunE:  runCatalogInfo,
}

var catalogReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the site catalog from disk",
	Long: `Re-reads the site database file. Refused while a search is running so
an in-flight session never sees the catalog change under it.`,
	RunE: runCatalogReload,
}

func init() {
	catalogCmd.AddCommand(catalogInfoCmd)
	catalogCmd.AddCommand(catalogReloadCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogInfo(cmd *cobra.Command, _ []string) error {
	if siteCatalog == nil {
		return errors.New("site catalog not configured")
	}

	cmd.Printf("File:  %s\n", siteCatalog.Path())
	cmd.Printf("Sites: %d\n", siteCatalog.Len())
	if siteCatalog.Stale() {
		cmd.Println("The file has changed on disk; run `prowl catalog reload` to pick up changes.")
	}
	return nil
}

func runCatalogReload(cmd *cobra.Command, _ []string) error {
	if coordinator == nil {
		return errors.New("search service not configured")
	}

	err := coordinator.ReloadCatalog(context.Background())
	if errors.Is(err, domain.ErrCatalogBusy) {
		return errors.New("a search is running; retry the reload once it finishes")
	}
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}

	cmd.Printf("Catalog reloaded: %d sites.\n", siteCatalog.Len())
	return nil
}
