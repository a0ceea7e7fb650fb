package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active search session",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if coordinator == nil {
		return errors.New("search service not configured")
	}

	info, active := coordinator.Status()
	if !active {
		cmd.Println("No search is running.")
		return nil
	}

	cmd.Printf("Session:   %s\n", info.ID)
	cmd.Printf("Username:  %s\n", info.Username)
	cmd.Printf("Requester: %s\n", info.RequesterID)
	cmd.Printf("Status:    %s\n", info.Status)
	cmd.Printf("Elapsed:   %s\n", domain.FormatDuration(info.Elapsed().Round(time.Second)))
	cmd.Printf("Top sites: %d\n", info.Options.TopSites)
	return nil
}
