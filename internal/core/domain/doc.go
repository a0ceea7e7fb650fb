// Package domain defines the core business entities for Prowl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchOptions: Validated parameters for one probe run
//   - SessionInfo: Read-only snapshot of a search session
//   - RawSiteResult: One per-site probe outcome from the provider
//   - SearchResult: Summary of a completed session
//   - WhitelistEntry, AuditEntry: Persisted access and history records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
