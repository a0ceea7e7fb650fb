// Package cli implements the prowl command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prowl-osint/prowl-cli/internal/adapters/driven/archive"
	"github.com/prowl-osint/prowl-cli/internal/adapters/driven/catalog"
	configfile "github.com/prowl-osint/prowl-cli/internal/adapters/driven/config/file"
	"github.com/prowl-osint/prowl-cli/internal/adapters/driven/osint"
	"github.com/prowl-osint/prowl-cli/internal/adapters/driven/storage/sqlite"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driving"
	"github.com/prowl-osint/prowl-cli/internal/core/services"
	"github.com/prowl-osint/prowl-cli/internal/logger"
	"github.com/prowl-osint/prowl-cli/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Wired once by initServices; tests
// substitute mocks directly.
var (
	coordinator       driving.SearchCoordinator
	permissionService driving.PermissionService
	defaultsService   *services.DefaultsService
	whitelistStore    driven.WhitelistStore
	auditStore        driven.AuditStore
	siteCatalog       catalogInfo

	appConfig     configfile.Config
	appConfigPath string
	store         *sqlite.Store
)

// catalogInfo is the catalog surface the CLI needs beyond the core
// port: staleness and origin for the info command.
type catalogInfo interface {
	driven.SiteCatalog
	Stale() bool
	Path() string
}

var (
	verboseFlag bool
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "prowl",
	Short: "Username search across social sites",
	Long: `Prowl checks a username across the site catalog and reports
where matching accounts exist. Searches run one at a time; results are
written as HTML and TXT reports and recorded in the search history.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.prowl/config.toml)")
}

// Execute runs the root command and releases held resources.
func Execute() error {
	defer closeResources()
	return rootCmd.Execute()
}

// initServices loads the configuration and wires every adapter and
// service. Commands that need no services (version, help) skip it, and
// pre-wired services (tests) are left alone.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}
	if coordinator != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg
	appConfigPath = path
	if cfg.Verbose {
		logger.SetVerbose(true)
	}
	logger.Debug("config loaded from %s", path)

	if cfg.FileLogging {
		logPath, err := logger.EnableFileLogging(cfg.LogsDir)
		if err != nil {
			logger.Warn("file logging unavailable: %v", err)
		} else {
			logger.Debug("file logging to %s", logPath)
		}
	}

	store, err = sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening data store: %w", err)
	}
	whitelistStore = store.WhitelistStore()
	auditStore = store.AuditStore()

	cat, err := catalog.New(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("loading site catalog: %w", err)
	}
	siteCatalog = cat
	logger.Info("site catalog loaded: %d sites", cat.Len())

	if cfg.ProviderURL == "" {
		return fmt.Errorf("provider_url is not configured; set it in %s", path)
	}

	permissionService = services.NewPermissionService(cfg.OwnerID, whitelistStore)
	defaultsService = services.NewDefaultsService(cfg.Defaults(), store.SettingsStore())

	coordinator = services.NewCoordinator(
		osint.NewClient(cfg.ProviderURL),
		cat,
		auditStore,
		report.NewGenerator(cfg.ReportsDir),
		newProgressPrinter(cmd.OutOrStdout()),
		archive.NewSink(cfg.ArchiveDir),
		logDiagnosticSink{},
		services.CoordinatorConfig{CookiesFile: cfg.CookiesFile},
	)

	return nil
}

func closeResources() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing data store: %v", err)
		}
	}
	if c, ok := siteCatalog.(*catalog.Catalog); ok && c != nil {
		if err := c.Close(); err != nil {
			logger.Warn("closing site catalog: %v", err)
		}
	}
	if err := logger.DisableFileLogging(); err != nil {
		logger.Warn("closing log file: %v", err)
	}
}

// logDiagnosticSink routes full failure details to the error log. The
// requester-facing message stays truncated; this sink is where the
// whole error ends up.
type logDiagnosticSink struct{}

var _ driven.DiagnosticSink = (logDiagnosticSink{})

func (logDiagnosticSink) ReportFailure(sessionID, username string, err error) {
	logger.Error("session %s for %q failed: %v", sessionID, username, err)
}
