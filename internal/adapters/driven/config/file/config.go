// Package file loads and saves the prowl configuration from a TOML
// file in the config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// Config is the on-disk configuration. Zero values fall back to the
// defaults from DefaultConfig at load time.
type Config struct {
	// OwnerID identifies the operator with unconditional permission.
	OwnerID string `toml:"owner_id"`

	// DataDir holds the SQLite database. Empty means ~/.prowl/data.
	DataDir string `toml:"data_dir"`

	// CatalogFile is the site-database JSON file.
	CatalogFile string `toml:"catalog_file"`

	// CookiesFile is handed through to the probe service.
	CookiesFile string `toml:"cookies_file"`

	// ProviderURL is the base URL of the probe service.
	ProviderURL string `toml:"provider_url"`

	ReportsDir string `toml:"reports_dir"`
	ArchiveDir string `toml:"archive_dir"`

	Verbose bool `toml:"verbose"`

	// FileLogging mirrors log output into daily files under LogsDir.
	FileLogging bool   `toml:"file_logging"`
	LogsDir     string `toml:"logs_dir"`

	SearchDefaults SearchDefaultsConfig `toml:"search_defaults"`
}

// SearchDefaultsConfig mirrors domain.SearchDefaults in TOML form.
type SearchDefaultsConfig struct {
	TopSites       int    `toml:"top_sites"`
	Timeout        int    `toml:"timeout"`
	MaxConnections int    `toml:"max_connections"`
	Retries        int    `toml:"retries"`
	ParsingEnabled bool   `toml:"parsing_enabled"`
	IncludeSimilar bool   `toml:"include_similar"`
	IDType         string `toml:"id_type"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	defaults := domain.BuiltinSearchDefaults()
	return Config{
		CatalogFile: "data.json",
		CookiesFile: "cookies.txt",
		ReportsDir:  "reports",
		ArchiveDir:  "archive",
		LogsDir:     "logs",
		SearchDefaults: SearchDefaultsConfig{
			TopSites:       defaults.TopSites,
			Timeout:        defaults.TimeoutSeconds,
			MaxConnections: defaults.MaxConnections,
			Retries:        defaults.Retries,
			ParsingEnabled: defaults.ParsingEnabled,
			IncludeSimilar: defaults.IncludeSimilar,
			IDType:         defaults.IDType,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.prowl/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".prowl", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields the
// defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// Save writes the config file, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// withDefaults fills fields the file left empty.
func (c Config) withDefaults() Config {
	base := DefaultConfig()
	if c.CatalogFile == "" {
		c.CatalogFile = base.CatalogFile
	}
	if c.CookiesFile == "" {
		c.CookiesFile = base.CookiesFile
	}
	if c.ReportsDir == "" {
		c.ReportsDir = base.ReportsDir
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = base.ArchiveDir
	}
	if c.LogsDir == "" {
		c.LogsDir = base.LogsDir
	}
	if c.SearchDefaults.IDType == "" {
		c.SearchDefaults.IDType = base.SearchDefaults.IDType
	}
	return c
}

// Defaults converts the TOML search defaults into domain form, clamped
// to the hard limits.
func (c Config) Defaults() domain.SearchDefaults {
	return domain.SearchDefaults{
		TopSites:       c.SearchDefaults.TopSites,
		TimeoutSeconds: c.SearchDefaults.Timeout,
		MaxConnections: c.SearchDefaults.MaxConnections,
		Retries:        c.SearchDefaults.Retries,
		ParsingEnabled: c.SearchDefaults.ParsingEnabled,
		IncludeSimilar: c.SearchDefaults.IncludeSimilar,
		IDType:         c.SearchDefaults.IDType,
	}.Clamped()
}
