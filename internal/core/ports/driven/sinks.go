package driven

import "github.com/prowl-osint/prowl-cli/internal/core/domain"

// ProgressSink is the narrow surface the coordinator reports to. The
// core knows nothing about formatting; it sends the initial status,
// throttled in-place updates, and one final state. Updates are
// idempotent overwrites of a single surface, never new messages.
type ProgressSink interface {
	// Begin announces a newly admitted session.
	Begin(info domain.SessionInfo)

	// Update overwrites the status surface with the current snapshot.
	// Callers throttle; implementations may assume sequential,
	// single-writer delivery.
	Update(info domain.SessionInfo)

	// Finish overwrites the surface one last time with the terminal
	// state. result is nil unless the session completed.
	Finish(info domain.SessionInfo, result *domain.SearchResult, err error)
}

// ArchiveSink is notified after a successful rich-artifact write.
type ArchiveSink interface {
	// ArchiveReport receives the completed rich-artifact path together
	// with the searched username and requester identity.
	ArchiveReport(path, username, requesterID string) error
}
