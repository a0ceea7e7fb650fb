package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/prowl-osint/prowl-cli/internal/adapters/driven/config/file"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

var logsCleanupDays int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage log files",
}

var logsToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Enable or disable file logging",
	Long: `Flips file logging on or off and persists the choice to the config
file. When enabled, every log message is mirrored into a daily file
under the logs directory at full detail.`,
	RunE: runLogsToggle,
}

var logsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old log files",
	RunE:  runLogsCleanup,
}

func init() {
	logsCleanupCmd.Flags().IntVar(&logsCleanupDays, "days", 7, "delete logs older than this many days")

	logsCmd.AddCommand(logsToggleCmd)
	logsCmd.AddCommand(logsCleanupCmd)
	rootCmd.AddCommand(logsCmd)
}

func runLogsToggle(cmd *cobra.Command, _ []string) error {
	if err := requireOwner(context.Background()); err != nil {
		return err
	}

	appConfig.FileLogging = !appConfig.FileLogging
	if appConfig.FileLogging {
		path, err := logger.EnableFileLogging(appConfig.LogsDir)
		if err != nil {
			appConfig.FileLogging = false
			return err
		}
		cmd.Printf("File logging enabled: %s\n", path)
	} else {
		if err := logger.DisableFileLogging(); err != nil {
			logger.Warn("closing log file: %v", err)
		}
		cmd.Println("File logging disabled.")
	}

	if appConfigPath != "" {
		if err := configfile.Save(appConfigPath, appConfig); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}
	return nil
}

func runLogsCleanup(cmd *cobra.Command, _ []string) error {
	if err := requireOwner(context.Background()); err != nil {
		return err
	}

	days := logsCleanupDays
	if days < 1 {
		days = 1
	}

	removed, bytesFreed, err := logger.CleanupLogs(appConfig.LogsDir, time.Duration(days)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("cleaning up logs: %w", err)
	}

	if removed == 0 {
		cmd.Printf("No log files older than %d days found.\n", days)
		return nil
	}
	cmd.Printf("Deleted %d log files (%s) older than %d days.\n", removed, formatSize(bytesFreed), days)
	return nil
}

func formatSize(n int64) string {
	if n < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(n)/1024/1024)
}
