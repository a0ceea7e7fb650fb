package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

var whitelistNotes string

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Manage the search whitelist",
	Long:  `Only whitelisted requesters (and the owner) may run searches.`,
	RunE:  runWhitelistList,
}

var whitelistAddCmd = &cobra.Command{
	Use:   "add [user-id]",
	Short: "Whitelist a requester",
	Args:  cobra.ExactArgs(1),
	RunE:  runWhitelistAdd,
}

var whitelistRemoveCmd = &cobra.Command{
	Use:   "remove [user-id]",
	Short: "Remove a requester from the whitelist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWhitelistRemove,
}

var whitelistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List whitelisted requesters",
	RunE:  runWhitelistList,
}

func init() {
	whitelistAddCmd.Flags().StringVarP(&whitelistNotes, "notes", "n", "", "note stored with the entry")

	whitelistCmd.AddCommand(whitelistAddCmd)
	whitelistCmd.AddCommand(whitelistRemoveCmd)
	whitelistCmd.AddCommand(whitelistListCmd)
	rootCmd.AddCommand(whitelistCmd)
}

// requireOwner gates the mutating whitelist commands.
func requireOwner(ctx context.Context) error {
	err := permissionService.Require(ctx, appConfig.OwnerID, domain.PermissionOwner)
	if errors.Is(err, domain.ErrNotAuthorized) {
		return errors.New("owner_id is not configured; whitelist changes require an owner")
	}
	return err
}

func runWhitelistAdd(cmd *cobra.Command, args []string) error {
	if whitelistStore == nil {
		return errors.New("whitelist store not configured")
	}

	ctx := context.Background()
	if err := requireOwner(ctx); err != nil {
		return err
	}

	err := whitelistStore.Add(ctx, domain.WhitelistEntry{
		UserID:  args[0],
		AddedBy: appConfig.OwnerID,
		AddedAt: time.Now().UTC(),
		Notes:   whitelistNotes,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		cmd.Printf("%s is already whitelisted.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to whitelist %s: %w", args[0], err)
	}

	cmd.Printf("Whitelisted %s.\n", args[0])
	return nil
}

func runWhitelistRemove(cmd *cobra.Command, args []string) error {
	if whitelistStore == nil {
		return errors.New("whitelist store not configured")
	}

	ctx := context.Background()
	if err := requireOwner(ctx); err != nil {
		return err
	}

	err := whitelistStore.Remove(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("%s is not on the whitelist.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}

	cmd.Printf("Removed %s from the whitelist.\n", args[0])
	return nil
}

func runWhitelistList(cmd *cobra.Command, _ []string) error {
	if whitelistStore == nil {
		return errors.New("whitelist store not configured")
	}

	entries, err := whitelistStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list whitelist: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("The whitelist is empty.")
		return nil
	}

	cmd.Printf("Whitelisted requesters (%d):\n\n", len(entries))
	for _, entry := range entries {
		cmd.Printf("  %s\n", entry.UserID)
		cmd.Printf("    Added: %s by %s\n", entry.AddedAt.Format("2006-01-02 15:04:05"), entry.AddedBy)
		if entry.Notes != "" {
			cmd.Printf("    Notes: %s\n", entry.Notes)
		}
		cmd.Println()
	}
	return nil
}
