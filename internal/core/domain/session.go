package domain

import "time"

// SessionStatus is the lifecycle state of one search session.
//
// Transitions: Initializing -> Running -> {Completed | Failed |
// Cancelling -> Cancelled}. The three terminal states each release the
// single-flight gate exactly once. Only a provider failure before the
// first tick may skip Running.
type SessionStatus string

// Session lifecycle states.
const (
	SessionInitializing SessionStatus = "initializing"
	SessionRunning      SessionStatus = "running"
	SessionCancelling   SessionStatus = "cancelling"
	SessionCancelled    SessionStatus = "cancelled"
	SessionCompleted    SessionStatus = "completed"
	SessionFailed       SessionStatus = "failed"
)

// Terminal returns true for states that release the search slot.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionCancelled, SessionCompleted, SessionFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SessionStatus) String() string {
	return string(s)
}

// SessionInfo is a read-only snapshot of a session, safe to hand to
// concurrent status queries.
type SessionInfo struct {
	// ID correlates audit and diagnostic lines for one run.
	ID string

	// Username is the identifier being searched, unique process-wide
	// while the session is active.
	Username string

	// RequesterID is the identity that opened the session.
	RequesterID string

	// Status is the lifecycle state at snapshot time.
	Status SessionStatus

	// StartedAt carries a monotonic clock reading, so Elapsed stays
	// correct across wall-clock adjustments.
	StartedAt time.Time

	// Options is the validated options snapshot the session runs with.
	Options SearchOptions
}

// Elapsed returns the time since admission.
func (i SessionInfo) Elapsed() time.Duration {
	return time.Since(i.StartedAt)
}
