package domain

import (
	"regexp"
	"strings"
)

// Hard limits for search options. Raw input is clamped to these ranges,
// never rejected.
const (
	TopSitesMin = 1
	TopSitesMax = 1500

	TimeoutMin = 1
	TimeoutMax = 300

	MaxConnectionsMin = 1
	MaxConnectionsMax = 200

	RetriesMin = 0
	RetriesMax = 5
)

// DefaultIDType is used when no identifier type is given.
const DefaultIDType = "username"

// usernameRe matches acceptable target usernames: 3-64 characters of
// letters, digits, hyphen, underscore and period.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9\-_\.]{3,64}$`)

// ValidateUsername normalises and validates a target username.
// A leading @ is stripped and surrounding whitespace trimmed before
// the pattern check. Returns ErrInvalidUsername on failure.
func ValidateUsername(raw string) (string, error) {
	username := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
	if !usernameRe.MatchString(username) {
		return "", ErrInvalidUsername
	}
	return username, nil
}

// SearchOptions configures one probe run. Zero or out-of-range numeric
// fields are clamped by Validated; a raw SearchOptions must never reach
// the provider directly.
type SearchOptions struct {
	// TopSites is how many top-ranked catalog sites to probe.
	TopSites int

	// TimeoutSeconds is the per-site probe timeout.
	TimeoutSeconds int

	// MaxConnections limits concurrent probe connections.
	MaxConnections int

	// Retries is how many times the provider retries a failed probe.
	Retries int

	// ParsingEnabled asks the provider to parse profile pages.
	ParsingEnabled bool

	// IncludeSimilar keeps fuzzy/similar matches in the extracted results.
	IncludeSimilar bool

	// IDType is the identifier kind being searched ("username", "email").
	IDType string

	// Tags filters the site selection by category tags.
	Tags []string

	// Sites restricts the selection to specific site names.
	Sites []string
}

// Validated returns a copy with every bounded field clamped to its hard
// limit. It is total: invalid input is corrected, never rejected, and
// the operation is idempotent.
func (o SearchOptions) Validated() SearchOptions {
	idType := o.IDType
	if idType == "" {
		idType = DefaultIDType
	}
	return SearchOptions{
		TopSites:       Clamp(o.TopSites, TopSitesMin, TopSitesMax),
		TimeoutSeconds: Clamp(o.TimeoutSeconds, TimeoutMin, TimeoutMax),
		MaxConnections: Clamp(o.MaxConnections, MaxConnectionsMin, MaxConnectionsMax),
		Retries:        Clamp(o.Retries, RetriesMin, RetriesMax),
		ParsingEnabled: o.ParsingEnabled,
		IncludeSimilar: o.IncludeSimilar,
		IDType:         idType,
		Tags:           append([]string(nil), o.Tags...),
		Sites:          append([]string(nil), o.Sites...),
	}
}

// Clamp constrains v to the inclusive range [min, max].
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// SplitList parses a delimiter-separated input into trimmed entries,
// dropping empties. Used for the tags and sites free-text fields.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
