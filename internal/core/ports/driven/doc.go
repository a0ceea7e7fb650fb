// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - SearchProvider: Probes sites for an identifier
//   - SiteCatalog: Ranks and filters the probe site list
//   - ReportGenerator: Renders HTML and TXT reports
//   - ProgressSink: Live progress display during a session
//   - ArchiveSink: Copies finished reports to the archive
//   - DiagnosticSink: Receives the full text of provider failures
//   - WhitelistStore: Requester authorisation persistence
//   - AuditStore: Search history persistence
//   - SettingsStore: Default-override persistence
//
// All of them must be provided; tests substitute in-memory fakes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
