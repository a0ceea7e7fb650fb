package driving

import (
	"context"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// StartRequest describes one attempt to open a search session.
type StartRequest struct {
	// Username is the raw target identifier; the coordinator validates
	// it before touching the gate.
	Username string

	// RequesterID is the identity opening the session. Cancellation is
	// bound to it.
	RequesterID string

	// Options are the raw search parameters; clamped on admission.
	Options domain.SearchOptions
}

// SessionHandle is the caller's grip on an admitted session.
type SessionHandle interface {
	// Info returns the admission-time snapshot.
	Info() domain.SessionInfo

	// Cancel requests cooperative cancellation. Only the requester that
	// opened the session may cancel; others get domain.ErrNotAuthorized.
	// Cancellation takes effect at the next tick boundary and is
	// terminal.
	Cancel(requesterID string) error

	// Done is closed once the session reaches a terminal state and the
	// gate has been released.
	Done() <-chan struct{}

	// Outcome returns the terminal result. Valid only after Done is
	// closed. Result and artifacts are nil unless the session
	// completed.
	Outcome() SessionOutcome
}

// SessionOutcome is the terminal summary of one session.
type SessionOutcome struct {
	// Status is the terminal session state.
	Status domain.SessionStatus

	// Result is set when the session completed.
	Result *domain.SearchResult

	// HTMLPath and TXTPath point at the generated artifacts; either may
	// be empty if that artifact failed independently.
	HTMLPath string
	TXTPath  string

	// Err carries the truncated, requester-facing failure description
	// for a Failed session.
	Err error
}

// SearchCoordinator is the single-flight gate over search sessions.
// At most one session is active process-wide.
type SearchCoordinator interface {
	// TryBegin admits a session or fails immediately. It never queues:
	// a held gate yields a *domain.BusyError exposing the in-flight
	// username and requester. A malformed username yields
	// domain.ErrInvalidUsername before any state is touched.
	TryBegin(ctx context.Context, req StartRequest) (SessionHandle, error)

	// Status reports the active session, if any. Safe to call
	// concurrently with a running session; it never acquires the gate.
	Status() (domain.SessionInfo, bool)

	// ReloadCatalog refreshes the site catalog. Refused with
	// domain.ErrCatalogBusy while a session is active.
	ReloadCatalog(ctx context.Context) error
}
