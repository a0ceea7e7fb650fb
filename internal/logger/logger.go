// Package logger provides verbose logging for the Prowl CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help operators follow the search pipeline.
// File logging can additionally mirror every message, including debug
// detail, into a daily log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	logFile *os.File
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// EnableFileLogging opens a daily log file under dir and mirrors every
// message into it at full detail, regardless of the verbose flag.
// Returns the file path.
func EnableFileLogging(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating logs directory: %w", err)
	}
	path := filepath.Join(dir, "prowl_"+time.Now().Format("20060102")+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return path, nil
}

// DisableFileLogging closes the log file, if one is open.
func DisableFileLogging() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// emit writes one log line: to the console when console is true, and
// always to the log file (timestamped) when file logging is enabled.
// Callers hold mu.
func emit(console bool, prefix, format string, args ...any) {
	line := fmt.Sprintf(prefix+format+"\n", args...)
	if console {
		fmt.Fprint(output, line)
	}
	if logFile != nil {
		fmt.Fprintf(logFile, "[%s] %s", time.Now().Format("2006-01-02 15:04:05"), line)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	emit(verbose, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	emit(verbose, "", "\n=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	emit(verbose, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	emit(verbose, "[WARN] ", format, args...)
}

// Error prints an error message unconditionally. Failures are surfaced
// even when verbose mode is off.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	emit(true, "[ERROR] ", format, args...)
}

// CleanupLogs deletes .log files under dir whose modification time is
// older than maxAge. Returns the number of files removed and their
// total size in bytes. A missing directory is not an error.
func CleanupLogs(dir string, maxAge time.Duration) (int, int64, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reading logs directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	var removed int
	var bytes int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			Warn("removing %s: %v", entry.Name(), err)
			continue
		}
		removed++
		bytes += info.Size()
	}
	return removed, bytes, nil
}
