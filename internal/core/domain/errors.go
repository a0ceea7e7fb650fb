package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidUsername indicates the target username failed pre-validation.
	// Rejected before the search gate is touched; no state is mutated.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrNotAuthorized indicates the requester lacks the required permission level.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrSearchInProgress indicates the single search slot is already held.
	ErrSearchInProgress = errors.New("search in progress")

	// ErrCatalogBusy indicates the site catalog cannot be reloaded while
	// a search session is active.
	ErrCatalogBusy = errors.New("catalog busy")

	// ErrSessionCancelled indicates a session ended via an explicit
	// cancellation request. It is an expected outcome, not a failure.
	ErrSessionCancelled = errors.New("session cancelled")

	// ErrProviderUnavailable indicates the probe provider is not configured.
	ErrProviderUnavailable = errors.New("probe provider unavailable")
)

// BusyError reports a rejected admission attempt. It carries enough
// context for the caller to display who holds the slot.
type BusyError struct {
	// Username is the identifier the in-flight session is searching.
	Username string

	// RequesterID is the identity that opened the in-flight session.
	RequesterID string
}

// Error implements the error interface.
func (e *BusyError) Error() string {
	return fmt.Sprintf("search in progress for %q", e.Username)
}

// Unwrap allows errors.Is(err, ErrSearchInProgress).
func (e *BusyError) Unwrap() error {
	return ErrSearchInProgress
}

// ProviderError wraps a failure raised by the external probe provider.
// The session that hit it transitions to Failed.
type ProviderError struct {
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("probe provider: %v", e.Err)
}

// Unwrap returns the underlying provider failure.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// TruncateError shortens an error message for requester-facing display.
// The full text still goes to the diagnostic sink.
func TruncateError(err error, limit int) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if limit > 0 {
		return truncateRunes(msg, limit)
	}
	return msg
}
