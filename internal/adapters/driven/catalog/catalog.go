// Package catalog loads the site database consumed by searches. The
// database is a JSON file in the maigret layout: a "sites" object
// keyed by display name, each entry carrying its main URL, popularity
// rank, tags and supported identifier type.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driven.SiteCatalog = (*Catalog)(nil)

// siteFile is the on-disk JSON layout.
type siteFile struct {
	Sites map[string]siteEntry `json:"sites"`
}

type siteEntry struct {
	URLMain   string   `json:"urlMain"`
	AlexaRank int      `json:"alexaRank"`
	Tags      []string `json:"tags"`
	Disabled  bool     `json:"disabled"`
	Type      string   `json:"type"`

	// Type defaults to "username" when absent.
}

// Catalog is a cached, file-backed site database. A filesystem watcher
// marks the cache stale when the file changes on disk; the cache is
// only replaced by an explicit Reload.
type Catalog struct {
	path string

	mu    sync.RWMutex
	sites []siteRecord

	stale   atomic.Bool
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// siteRecord is the cached form of one entry.
type siteRecord struct {
	record driven.SiteRecord
	idType string
}

// New loads the site database at path and starts watching it for
// changes. Watcher setup failures are logged, not fatal: staleness
// detection is best-effort.
func New(path string) (*Catalog, error) {
	c := &Catalog{path: path, done: make(chan struct{})}

	sites, err := load(path)
	if err != nil {
		return nil, err
	}
	c.sites = sites

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("site catalog watcher unavailable: %v", err)
		return c, nil
	}
	if err := watcher.Add(path); err != nil {
		logger.Warn("watching site catalog: %v", err)
		watcher.Close()
		return c, nil
	}
	c.watcher = watcher
	go c.watch()

	return c, nil
}

// Close stops the filesystem watcher.
func (c *Catalog) Close() error {
	if c.watcher == nil {
		return nil
	}
	close(c.done)
	return c.watcher.Close()
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.path
}

// Stale reports whether the file has changed since the cache was
// loaded.
func (c *Catalog) Stale() bool {
	return c.stale.Load()
}

// Len reports the number of sites currently cached.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sites)
}

// Reload re-reads the database file and swaps the cache.
func (c *Catalog) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sites, err := load(c.path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.sites = sites
	c.mu.Unlock()
	c.stale.Store(false)

	logger.Info("site catalog reloaded: %d sites", len(sites))
	return nil
}

// RankedSites returns up to topN sites by popularity, optionally
// filtered by tags or restricted to specific names, for the given
// identifier type.
func (c *Catalog) RankedSites(topN int, tags, names []string, idType string) (driven.SiteSelection, error) {
	if idType == "" {
		idType = domain.DefaultIDType
	}
	if c.stale.Load() {
		logger.Warn("site catalog file changed on disk; run a reload to pick up changes")
	}

	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[strings.ToLower(n)] = true
	}

	c.mu.RLock()
	matched := make([]driven.SiteRecord, 0, len(c.sites))
	for _, s := range c.sites {
		if s.idType != idType {
			continue
		}
		if len(nameSet) > 0 && !nameSet[strings.ToLower(s.record.Name)] {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(s.record.Tags, tags) {
			continue
		}
		matched = append(matched, s.record)
	}
	c.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Rank < matched[j].Rank
	})
	if topN > 0 && len(matched) > topN {
		matched = matched[:topN]
	}

	return driven.SiteSelection{Sites: matched}, nil
}

func hasAnyTag(siteTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range siteTags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

// load parses the database file. Disabled sites are dropped; entries
// without a rank sort last.
func load(path string) ([]siteRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site catalog: %w", err)
	}

	var parsed siteFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing site catalog: %w", err)
	}
	if len(parsed.Sites) == 0 {
		return nil, fmt.Errorf("site catalog %s contains no sites", path)
	}

	sites := make([]siteRecord, 0, len(parsed.Sites))
	for name, entry := range parsed.Sites {
		if entry.Disabled {
			continue
		}
		rank := entry.AlexaRank
		if rank <= 0 {
			rank = math.MaxInt
		}
		idType := entry.Type
		if idType == "" {
			idType = domain.DefaultIDType
		}
		sites = append(sites, siteRecord{
			record: driven.SiteRecord{
				Name:    name,
				URLMain: entry.URLMain,
				Rank:    rank,
				Tags:    entry.Tags,
			},
			idType: idType,
		})
	}
	return sites, nil
}

// watch marks the cache stale on any write to the database file.
func (c *Catalog) watch() {
	for {
		select {
		case <-c.done:
			return
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				c.stale.Store(true)
				logger.Debug("site catalog changed on disk: %s", event.Op)
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("site catalog watcher: %v", err)
		}
	}
}
