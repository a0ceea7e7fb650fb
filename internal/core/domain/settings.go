package domain

import "time"

// PermissionLevel orders the access tiers for prowl operations.
type PermissionLevel int

// Permission tiers, lowest to highest.
const (
	PermissionNone PermissionLevel = iota
	PermissionMember
	PermissionWhitelisted
	PermissionOwner
)

// String returns a human-readable tier name.
func (l PermissionLevel) String() string {
	switch l {
	case PermissionMember:
		return "member"
	case PermissionWhitelisted:
		return "whitelisted"
	case PermissionOwner:
		return "owner"
	default:
		return "none"
	}
}

// AtLeast returns true if l meets the minimum tier.
func (l PermissionLevel) AtLeast(minimum PermissionLevel) bool {
	return l >= minimum
}

// SearchDefaults are the operator-tunable default search parameters.
// They seed SearchOptions when a request leaves a field unset.
type SearchDefaults struct {
	TopSites       int
	TimeoutSeconds int
	MaxConnections int
	Retries        int
	ParsingEnabled bool
	IncludeSimilar bool
	IDType         string
}

// BuiltinSearchDefaults returns the defaults used before any operator
// override is stored.
func BuiltinSearchDefaults() SearchDefaults {
	return SearchDefaults{
		TopSites:       500,
		TimeoutSeconds: 30,
		MaxConnections: 50,
		Retries:        1,
		ParsingEnabled: true,
		IncludeSimilar: false,
		IDType:         DefaultIDType,
	}
}

// Clamped returns a copy with every bounded field inside its hard
// limit, mirroring SearchOptions.Validated.
func (d SearchDefaults) Clamped() SearchDefaults {
	idType := d.IDType
	if idType == "" {
		idType = DefaultIDType
	}
	return SearchDefaults{
		TopSites:       Clamp(d.TopSites, TopSitesMin, TopSitesMax),
		TimeoutSeconds: Clamp(d.TimeoutSeconds, TimeoutMin, TimeoutMax),
		MaxConnections: Clamp(d.MaxConnections, MaxConnectionsMin, MaxConnectionsMax),
		Retries:        Clamp(d.Retries, RetriesMin, RetriesMax),
		ParsingEnabled: d.ParsingEnabled,
		IncludeSimilar: d.IncludeSimilar,
		IDType:         idType,
	}
}

// Options builds SearchOptions from the defaults.
func (d SearchDefaults) Options() SearchOptions {
	return SearchOptions{
		TopSites:       d.TopSites,
		TimeoutSeconds: d.TimeoutSeconds,
		MaxConnections: d.MaxConnections,
		Retries:        d.Retries,
		ParsingEnabled: d.ParsingEnabled,
		IncludeSimilar: d.IncludeSimilar,
		IDType:         d.IDType,
	}.Validated()
}

// WhitelistEntry records one authorised requester.
type WhitelistEntry struct {
	UserID  string
	AddedBy string
	AddedAt time.Time
	Notes   string
}

// AuditEntry is one append-only record of a completed search.
type AuditEntry struct {
	ID              int64
	UserID          string
	Username        string
	SitesChecked    int
	SitesFound      int
	DurationSeconds float64
	Timestamp       time.Time
}
