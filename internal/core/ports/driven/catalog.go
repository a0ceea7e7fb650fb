package driven

import "context"

// SiteRecord is one catalog entry eligible for probing.
type SiteRecord struct {
	// Name is the site's display name.
	Name string

	// URLMain is the site's landing URL.
	URLMain string

	// Rank orders sites by popularity; lower is more popular.
	Rank int

	// Tags are the site's category labels.
	Tags []string
}

// SiteSelection holds the ranked subset of the catalog chosen for a run.
type SiteSelection struct {
	Sites []SiteRecord
}

// SiteCatalog provides the ranked site database consumed by the probe
// provider. Implementations load once and cache; Reload refreshes the
// cache on demand but callers must refuse it while a session is active.
type SiteCatalog interface {
	// RankedSites returns up to topN sites by popularity, optionally
	// filtered by tags or restricted to specific names, for the given
	// identifier type.
	RankedSites(topN int, tags, names []string, idType string) (SiteSelection, error)

	// Reload re-reads the underlying database.
	Reload(ctx context.Context) error

	// Len reports the number of sites currently cached.
	Len() int
}
