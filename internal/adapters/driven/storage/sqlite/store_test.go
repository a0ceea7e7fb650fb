package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "prowl-test-*")
	require.NoError(t, err)

	// Create store in temp directory
	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "prowl.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "prowl-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrate again against an already-current schema.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestWhitelistStore_AddAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	wl := store.WhitelistStore()

	err := wl.Add(ctx, domain.WhitelistEntry{
		UserID:  "1001",
		AddedBy: "owner",
		AddedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Notes:   "trusted analyst",
	})
	require.NoError(t, err)

	err = wl.Add(ctx, domain.WhitelistEntry{
		UserID:  "1002",
		AddedBy: "owner",
		AddedAt: time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	entries, err := wl.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "1002", entries[0].UserID)
	assert.Equal(t, "1001", entries[1].UserID)
	assert.Equal(t, "trusted analyst", entries[1].Notes)
	assert.Equal(t, "owner", entries[1].AddedBy)
}

func TestWhitelistStore_AddDuplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	wl := store.WhitelistStore()

	require.NoError(t, wl.Add(ctx, domain.WhitelistEntry{UserID: "1001", AddedBy: "owner"}))

	err := wl.Add(ctx, domain.WhitelistEntry{UserID: "1001", AddedBy: "owner"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestWhitelistStore_IsWhitelisted(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	wl := store.WhitelistStore()

	ok, err := wl.IsWhitelisted(ctx, "1001")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, wl.Add(ctx, domain.WhitelistEntry{UserID: "1001", AddedBy: "owner"}))

	ok, err = wl.IsWhitelisted(ctx, "1001")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWhitelistStore_Remove(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	wl := store.WhitelistStore()

	require.NoError(t, wl.Add(ctx, domain.WhitelistEntry{UserID: "1001", AddedBy: "owner"}))
	require.NoError(t, wl.Remove(ctx, "1001"))

	ok, err := wl.IsWhitelisted(ctx, "1001")
	require.NoError(t, err)
	assert.False(t, ok)

	err = wl.Remove(ctx, "1001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditStore_LogAndRecent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	audit := store.AuditStore()

	for i, username := range []string{"alpha", "beta", "gamma"} {
		err := audit.LogSearch(ctx, domain.AuditEntry{
			UserID:          "1001",
			Username:        username,
			SitesChecked:    100 + i,
			SitesFound:      i,
			DurationSeconds: float64(i) * 1.5,
		})
		require.NoError(t, err)
	}

	entries, err := audit.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "gamma", entries[0].Username)
	assert.Equal(t, "beta", entries[1].Username)
	assert.Equal(t, 102, entries[0].SitesChecked)
	assert.Equal(t, 2, entries[0].SitesFound)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAuditStore_RecentDefaultLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	audit := store.AuditStore()

	for i := 0; i < 15; i++ {
		require.NoError(t, audit.LogSearch(ctx, domain.AuditEntry{
			UserID:   "1001",
			Username: "user",
		}))
	}

	entries, err := audit.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestSettingsStore_GetSetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	settings := store.SettingsStore()

	_, err := settings.Get(ctx, "top_sites")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, settings.Set(ctx, "top_sites", "300"))

	value, err := settings.Get(ctx, "top_sites")
	require.NoError(t, err)
	assert.Equal(t, "300", value)

	// Overwrite
	require.NoError(t, settings.Set(ctx, "top_sites", "750"))
	value, err = settings.Get(ctx, "top_sites")
	require.NoError(t, err)
	assert.Equal(t, "750", value)

	require.NoError(t, settings.Delete(ctx, "top_sites"))
	_, err = settings.Get(ctx, "top_sites")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = settings.Delete(ctx, "top_sites")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsStore_All(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	settings := store.SettingsStore()

	require.NoError(t, settings.Set(ctx, "top_sites", "300"))
	require.NoError(t, settings.Set(ctx, "timeout", "60"))

	all, err := settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"top_sites": "300", "timeout": "60"}, all)
}
