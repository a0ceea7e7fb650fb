package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driving"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

var (
	searchTopSites       int
	searchTimeout        int
	searchMaxConnections int
	searchRetries        int
	searchTags           string
	searchSites          string
	searchSimilar        bool
	searchParsing        bool
	searchIDType         string
	searchRequester      string
)

var searchCmd = &cobra.Command{
	Use:   "search [username]",
	Short: "Search a username across the site catalog",
	Long: `Runs a search for the given username. Only one search can run at a
time; a second attempt is refused while the first is active.

Usernames are 3-64 characters of letters, digits, dots, dashes and
underscores. A leading @ is stripped. Press Ctrl-C to cancel a running
search; cancellation takes effect within a second.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchTopSites, "top-sites", 0, "number of top sites to check")
	searchCmd.Flags().IntVar(&searchTimeout, "timeout", 0, "per-site timeout in seconds")
	searchCmd.Flags().IntVar(&searchMaxConnections, "max-connections", 0, "maximum concurrent connections")
	searchCmd.Flags().IntVar(&searchRetries, "retries", 0, "retry count for failed probes")
	searchCmd.Flags().StringVar(&searchTags, "tags", "", "restrict to sites with these tags (comma-separated)")
	searchCmd.Flags().StringVar(&searchSites, "sites", "", "restrict to these site names (comma-separated)")
	searchCmd.Flags().BoolVar(&searchSimilar, "similar", false, "include probable but inexact matches")
	searchCmd.Flags().BoolVar(&searchParsing, "parsing", true, "enable extended page parsing")
	searchCmd.Flags().StringVar(&searchIDType, "id-type", "", "identifier type to search")
	searchCmd.Flags().StringVar(&searchRequester, "requester", "", "requester identity (defaults to the configured owner)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if coordinator == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()

	requester := searchRequester
	if requester == "" {
		requester = appConfig.OwnerID
	}
	if err := permissionService.Require(ctx, requester, domain.PermissionWhitelisted); err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			return fmt.Errorf("requester %s is not whitelisted; ask the owner to run `prowl whitelist add %s`", requester, requester)
		}
		return err
	}

	opts, err := buildSearchOptions(ctx, cmd)
	if err != nil {
		return err
	}

	handle, err := coordinator.TryBegin(ctx, driving.StartRequest{
		Username:    args[0],
		RequesterID: requester,
		Options:     opts,
	})
	if err != nil {
		var busy *domain.BusyError
		if errors.As(err, &busy) {
			return fmt.Errorf("a search for %q is already running (requested by %s); try again once it finishes", busy.Username, busy.RequesterID)
		}
		if errors.Is(err, domain.ErrInvalidUsername) {
			return fmt.Errorf("invalid username %q: 3-64 characters of letters, digits, dots, dashes and underscores", args[0])
		}
		return err
	}

	// Ctrl-C cancels the session instead of killing the process; the
	// run loop acknowledges within one tick.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			if err := handle.Cancel(requester); err != nil {
				logger.Warn("cancel request rejected: %v", err)
			}
		}
	}()

	<-handle.Done()
	return printOutcome(cmd, handle.Outcome())
}

// buildSearchOptions starts from the effective defaults and overlays
// the flags the caller explicitly set.
func buildSearchOptions(ctx context.Context, cmd *cobra.Command) (domain.SearchOptions, error) {
	defaults, err := defaultsService.Current(ctx)
	if err != nil {
		return domain.SearchOptions{}, err
	}
	opts := defaults.Options()

	flags := cmd.Flags()
	if flags.Changed("top-sites") {
		opts.TopSites = searchTopSites
	}
	if flags.Changed("timeout") {
		opts.TimeoutSeconds = searchTimeout
	}
	if flags.Changed("max-connections") {
		opts.MaxConnections = searchMaxConnections
	}
	if flags.Changed("retries") {
		opts.Retries = searchRetries
	}
	if flags.Changed("similar") {
		opts.IncludeSimilar = searchSimilar
	}
	if flags.Changed("parsing") {
		opts.ParsingEnabled = searchParsing
	}
	if flags.Changed("id-type") {
		opts.IDType = searchIDType
	}
	opts.Tags = domain.SplitList(searchTags)
	opts.Sites = domain.SplitList(searchSites)

	return opts, nil
}

func printOutcome(cmd *cobra.Command, out driving.SessionOutcome) error {
	switch out.Status {
	case domain.SessionCancelled:
		return nil
	case domain.SessionFailed:
		return fmt.Errorf("search failed: %w", out.Err)
	}

	if out.Result != nil && len(out.Result.Found) > 0 {
		cmd.Println()
		for i, account := range out.Result.Found {
			cmd.Printf("  %d. %s\n     %s\n", i+1, account.Site, account.URL)
		}
	}

	cmd.Println()
	if out.HTMLPath != "" {
		cmd.Printf("HTML report: %s\n", out.HTMLPath)
	}
	if out.TXTPath != "" {
		cmd.Printf("TXT report:  %s\n", out.TXTPath)
	}
	return nil
}
