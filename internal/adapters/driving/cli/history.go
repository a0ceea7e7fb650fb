package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if auditStore == nil {
		return errors.New("audit store not configured")
	}

	entries, err := auditStore.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load search history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No searches recorded yet.")
		return nil
	}

	cmd.Printf("Recent searches (%d):\n\n", len(entries))
	for _, entry := range entries {
		cmd.Printf("  %s  %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Username)
		cmd.Printf("    Requester: %s, found %d of %d sites in %s\n",
			entry.UserID, entry.SitesFound, entry.SitesChecked,
			domain.FormatDuration(time.Duration(entry.DurationSeconds*float64(time.Second))))
	}
	return nil
}
