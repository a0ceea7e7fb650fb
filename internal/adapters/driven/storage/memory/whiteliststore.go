// Package memory provides in-memory store implementations used by
// tests and by ephemeral runs without a data directory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
)

// Ensure WhitelistStore implements the interface.
var _ driven.WhitelistStore = (*WhitelistStore)(nil)

// WhitelistStore is an in-memory implementation of driven.WhitelistStore.
type WhitelistStore struct {
	mu      sync.RWMutex
	entries map[string]domain.WhitelistEntry
}

// NewWhitelistStore creates a new in-memory whitelist store.
func NewWhitelistStore() *WhitelistStore {
	return &WhitelistStore{
		entries: make(map[string]domain.WhitelistEntry),
	}
}

// Add whitelists a user.
func (s *WhitelistStore) Add(_ context.Context, entry domain.WhitelistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.UserID]; ok {
		return domain.ErrAlreadyExists
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	s.entries[entry.UserID] = entry
	return nil
}

// Remove deletes a user from the whitelist.
func (s *WhitelistStore) Remove(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, userID)
	return nil
}

// IsWhitelisted checks membership.
func (s *WhitelistStore) IsWhitelisted(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[userID]
	return ok, nil
}

// List returns all entries, newest first.
func (s *WhitelistStore) List(_ context.Context) ([]domain.WhitelistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.WhitelistEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})
	return entries, nil
}
