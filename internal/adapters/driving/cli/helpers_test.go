package cli

import (
	"context"
	"testing"

	"github.com/prowl-osint/prowl-cli/internal/adapters/driven/storage/memory"
	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driving"
	"github.com/prowl-osint/prowl-cli/internal/core/services"
)

// mockHandle is a pre-finished session handle.
type mockHandle struct {
	info      domain.SessionInfo
	outcome   driving.SessionOutcome
	cancelErr error
	cancelled []string
	done      chan struct{}
}

func newMockHandle(outcome driving.SessionOutcome) *mockHandle {
	done := make(chan struct{})
	close(done)
	return &mockHandle{outcome: outcome, done: done}
}

func (h *mockHandle) Info() domain.SessionInfo { return h.info }
func (h *mockHandle) Cancel(requesterID string) error {
	h.cancelled = append(h.cancelled, requesterID)
	return h.cancelErr
}
func (h *mockHandle) Done() <-chan struct{}           { return h.done }
func (h *mockHandle) Outcome() driving.SessionOutcome { return h.outcome }

// mockCoordinator implements driving.SearchCoordinator.
type mockCoordinator struct {
	beginReq     driving.StartRequest
	beginHandle  driving.SessionHandle
	beginErr     error
	statusInfo   domain.SessionInfo
	statusActive bool
	reloadErr    error
	reloads      int
}

func (m *mockCoordinator) TryBegin(_ context.Context, req driving.StartRequest) (driving.SessionHandle, error) {
	m.beginReq = req
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.beginHandle, nil
}

func (m *mockCoordinator) Status() (domain.SessionInfo, bool) {
	return m.statusInfo, m.statusActive
}

func (m *mockCoordinator) ReloadCatalog(_ context.Context) error {
	m.reloads++
	return m.reloadErr
}

// mockCatalog implements the catalogInfo surface.
type mockCatalog struct {
	sites int
	stale bool
	path  string
}

func (m *mockCatalog) RankedSites(int, []string, []string, string) (driven.SiteSelection, error) {
	return driven.SiteSelection{}, nil
}
func (m *mockCatalog) Reload(context.Context) error { return nil }
func (m *mockCatalog) Len() int                     { return m.sites }
func (m *mockCatalog) Stale() bool                  { return m.stale }
func (m *mockCatalog) Path() string                 { return m.path }

// setupTestServices wires mock services into the package variables and
// returns a cleanup restoring the previous state. The owner "42" and
// the whitelisted requester "9001" are pre-seeded.
func setupTestServices(t *testing.T) (*mockCoordinator, func()) {
	t.Helper()

	oldCoordinator := coordinator
	oldPermissions := permissionService
	oldDefaults := defaultsService
	oldWhitelist := whitelistStore
	oldAudit := auditStore
	oldCatalog := siteCatalog
	oldConfig := appConfig

	wl := memory.NewWhitelistStore()
	_ = wl.Add(context.Background(), domain.WhitelistEntry{UserID: "9001", AddedBy: "42"})

	mc := &mockCoordinator{
		beginHandle: newMockHandle(driving.SessionOutcome{Status: domain.SessionCompleted}),
	}

	coordinator = mc
	whitelistStore = wl
	auditStore = memory.NewAuditStore()
	defaultsService = services.NewDefaultsService(domain.BuiltinSearchDefaults(), memory.NewSettingsStore())
	permissionService = services.NewPermissionService("42", wl)
	siteCatalog = &mockCatalog{sites: 3, path: "data.json"}
	appConfig.OwnerID = "42"

	cleanup := func() {
		coordinator = oldCoordinator
		permissionService = oldPermissions
		defaultsService = oldDefaults
		whitelistStore = oldWhitelist
		auditStore = oldAudit
		siteCatalog = oldCatalog
		appConfig = oldConfig
	}
	return mc, cleanup
}
