package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// SiteStatus is the normalised verdict for one probed site. Loose
// provider statuses are mapped onto this enum at the adapter boundary;
// downstream logic switches on it and never on raw strings.
type SiteStatus string

// Recognised site statuses.
const (
	// StatusClaimed means the identifier exists on the site.
	StatusClaimed SiteStatus = "claimed"

	// StatusAvailable means the identifier is free on the site.
	StatusAvailable SiteStatus = "available"

	// StatusUnknown means the probe could not determine a verdict.
	StatusUnknown SiteStatus = "unknown"

	// StatusIllegal means the identifier is not valid for the site.
	StatusIllegal SiteStatus = "illegal"
)

// IsValid returns true if the status is recognised.
func (s SiteStatus) IsValid() bool {
	switch s {
	case StatusClaimed, StatusAvailable, StatusUnknown, StatusIllegal:
		return true
	default:
		return false
	}
}

// Errored returns true if the status counts towards the error tally.
func (s SiteStatus) Errored() bool {
	return s == StatusUnknown || s == StatusIllegal
}

// String returns the string representation.
func (s SiteStatus) String() string {
	return string(s)
}

// ParseSiteStatus normalises a loose provider status string into the
// enum. Unrecognised values map to StatusUnknown.
func ParseSiteStatus(raw string) SiteStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "claimed", "found":
		return StatusClaimed
	case "available", "free", "not found":
		return StatusAvailable
	case "illegal", "invalid":
		return StatusIllegal
	default:
		return StatusUnknown
	}
}

// RawSiteResult is one per-site probe outcome as returned by the
// provider. Ephemeral: consumed once by extraction and report
// generation. Slices of RawSiteResult preserve the provider's native
// response order.
type RawSiteResult struct {
	// SiteName is the provider's label for the site.
	SiteName string

	// Status is the normalised verdict. HasStatus is false when the
	// provider returned no verdict at all for the site.
	Status    SiteStatus
	HasStatus bool

	// URL is the claimed profile URL, when one exists.
	URL string

	// Similar flags a probable-but-not-exact (fuzzy) match.
	Similar bool

	// Tags are the catalog categories the site belongs to.
	Tags []string
}

// FoundAccount is a sanitised hit derived from a claimed RawSiteResult.
// Immutable once built.
type FoundAccount struct {
	// Site is the display-safe site label.
	Site string

	// URL is the claimed profile URL.
	URL string
}

// SearchResult summarises one completed session. Created once, written
// to the audit log and consumed by report generation.
type SearchResult struct {
	Username        string
	Found           []FoundAccount
	TotalFound      int
	TotalChecked    int
	DurationSeconds float64
	ErrorsCount     int
}

// labelStripRe removes characters usable for markup or formatting
// injection in rendered output.
var labelStripRe = regexp.MustCompile("[\\[\\]()@#*_~`|\\\\]")

// maxLabelLength caps site labels for safe display.
const maxLabelLength = 100

// SafeLabel sanitises free text for display: markup characters are
// stripped, newlines collapsed to spaces, the result trimmed and
// length-capped. An emptied string falls back to "unknown".
func SafeLabel(text string) string {
	cleaned := labelStripRe.ReplaceAllString(text, "")
	cleaned = strings.NewReplacer("\n", " ", "\r", " ").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "unknown"
	}
	return truncateRunes(cleaned, maxLabelLength)
}

// truncateRunes caps s at n runes, never cutting mid-rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// FormatDuration renders a duration for human display.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds) / 60
	return fmt.Sprintf("%dm %.0fs", minutes, seconds-float64(minutes*60))
}
