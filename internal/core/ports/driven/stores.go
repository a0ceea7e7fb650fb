package driven

import (
	"context"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// WhitelistStore persists the set of requesters authorised to search.
type WhitelistStore interface {
	// Add whitelists a user. Returns domain.ErrAlreadyExists when the
	// user is already present.
	Add(ctx context.Context, entry domain.WhitelistEntry) error

	// Remove deletes a user. Returns domain.ErrNotFound when absent.
	Remove(ctx context.Context, userID string) error

	// IsWhitelisted checks membership.
	IsWhitelisted(ctx context.Context, userID string) (bool, error)

	// List returns all entries, newest first.
	List(ctx context.Context) ([]domain.WhitelistEntry, error)
}

// AuditStore is the append-only record of completed searches. The core
// only writes; reads exist for the operator-facing history listing.
type AuditStore interface {
	// LogSearch appends one completed-search record.
	LogSearch(ctx context.Context, entry domain.AuditEntry) error

	// Recent returns the most recent entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// SettingsStore is a persistent key/value store for runtime setting
// overrides.
type SettingsStore interface {
	// Get retrieves a setting value. Returns domain.ErrNotFound when
	// the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a setting value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Delete removes a setting. Returns domain.ErrNotFound when absent.
	Delete(ctx context.Context, key string) error

	// All returns every stored setting.
	All(ctx context.Context) (map[string]string, error)
}
