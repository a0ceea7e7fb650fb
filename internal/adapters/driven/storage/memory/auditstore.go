package memory

import (
	"context"
	"sync"
	"time"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
)

// Ensure AuditStore implements the interface.
var _ driven.AuditStore = (*AuditStore)(nil)

// AuditStore is an in-memory implementation of driven.AuditStore.
type AuditStore struct {
	mu      sync.RWMutex
	nextID  int64
	entries []domain.AuditEntry
}

// NewAuditStore creates a new in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{nextID: 1}
}

// LogSearch appends one completed-search record.
func (s *AuditStore) LogSearch(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	s.nextID++
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *AuditStore) Recent(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 10
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	recent := make([]domain.AuditEntry, 0, limit)
	for i := len(s.entries) - 1; i >= len(s.entries)-limit; i-- {
		recent = append(recent, s.entries[i])
	}
	return recent, nil
}
