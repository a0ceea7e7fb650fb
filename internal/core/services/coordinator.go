package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driving"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.SearchCoordinator = (*Coordinator)(nil)

const (
	// defaultTick is the polling loop interval.
	defaultTick = 1 * time.Second

	// defaultProgressInterval throttles status-surface edits. It exists
	// to respect external rate limits on edit frequency; do not tighten
	// it without considering that constraint.
	defaultProgressInterval = 3 * time.Second

	// errorDisplayLimit bounds requester-facing error text. The
	// diagnostic sink always receives the full error.
	errorDisplayLimit = 500
)

// CoordinatorConfig tunes a Coordinator. Zero durations fall back to
// the production defaults; tests shrink them.
type CoordinatorConfig struct {
	// CookiesFile optionally points at a cookies file handed to the
	// provider.
	CookiesFile string

	// Tick overrides the polling interval.
	Tick time.Duration

	// ProgressInterval overrides the progress-edit throttle.
	ProgressInterval time.Duration
}

// Coordinator is the single-flight gate over search sessions. It admits
// at most one active session process-wide, drives the cancellable
// execution and progress-polling loop, and sequences extraction, report
// generation, archival and audit logging.
type Coordinator struct {
	provider driven.SearchProvider
	catalog  driven.SiteCatalog
	audit    driven.AuditStore
	reporter driven.ReportGenerator
	progress driven.ProgressSink
	archive  driven.ArchiveSink
	diag     driven.DiagnosticSink
	cfg      CoordinatorConfig

	// mu guards admission and release of the session slot and the
	// reload flag. Status queries never take it; they read the
	// snapshot below.
	mu        sync.Mutex
	active    *session
	reloading bool

	snapshot atomic.Pointer[domain.SessionInfo]
}

// NewCoordinator wires a coordinator with its collaborators. The
// catalog, audit store, reporter and sinks are owned by the caller and
// passed in explicitly; the coordinator has no lazily-initialised
// globals.
func NewCoordinator(
	provider driven.SearchProvider,
	catalog driven.SiteCatalog,
	audit driven.AuditStore,
	reporter driven.ReportGenerator,
	progress driven.ProgressSink,
	archive driven.ArchiveSink,
	diag driven.DiagnosticSink,
	cfg CoordinatorConfig,
) *Coordinator {
	if cfg.Tick <= 0 {
		cfg.Tick = defaultTick
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = defaultProgressInterval
	}
	return &Coordinator{
		provider: provider,
		catalog:  catalog,
		audit:    audit,
		reporter: reporter,
		progress: progress,
		archive:  archive,
		diag:     diag,
		cfg:      cfg,
	}
}

// session is the mutable state of one in-flight search. The run
// goroutine is the only mutator after admission; the cancellation flag
// is the one exception, set by the requester through the handle.
type session struct {
	info      domain.SessionInfo
	cancelled atomic.Bool
	done      chan struct{}
	outcome   driving.SessionOutcome
}

// sessionHandle exposes a session to its requester. It keeps its own
// immutable admission-time snapshot so Info never races the run
// goroutine's status transitions.
type sessionHandle struct {
	s    *session
	info domain.SessionInfo
}

var _ driving.SessionHandle = (*sessionHandle)(nil)

// Info returns the admission-time snapshot.
func (h *sessionHandle) Info() domain.SessionInfo {
	return h.info
}

// Cancel raises the cooperative cancellation flag. Only the requester
// that opened the session may cancel; the flag takes effect at the next
// tick boundary and is terminal.
func (h *sessionHandle) Cancel(requesterID string) error {
	if requesterID != h.info.RequesterID {
		return fmt.Errorf("%w: only the original requester may cancel", domain.ErrNotAuthorized)
	}
	h.s.cancelled.Store(true)
	return nil
}

// Done is closed once the session is terminal and the gate released.
func (h *sessionHandle) Done() <-chan struct{} {
	return h.s.done
}

// Outcome returns the terminal summary. Valid only after Done.
func (h *sessionHandle) Outcome() driving.SessionOutcome {
	return h.s.outcome
}

// TryBegin validates the request and attempts to open the exclusive
// session slot. It never blocks and never queues: a held slot returns
// *domain.BusyError immediately.
func (c *Coordinator) TryBegin(ctx context.Context, req driving.StartRequest) (driving.SessionHandle, error) {
	username, err := domain.ValidateUsername(req.Username)
	if err != nil {
		return nil, err
	}
	opts := req.Options.Validated()

	sess := &session{
		info: domain.SessionInfo{
			ID:          uuid.New().String(),
			Username:    username,
			RequesterID: req.RequesterID,
			Status:      domain.SessionInitializing,
			StartedAt:   time.Now(),
			Options:     opts,
		},
		done: make(chan struct{}),
	}

	c.mu.Lock()
	if c.reloading {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: catalog reload in progress", domain.ErrCatalogBusy)
	}
	if c.active != nil {
		busy := &domain.BusyError{
			Username:    c.active.info.Username,
			RequesterID: c.active.info.RequesterID,
		}
		c.mu.Unlock()
		return nil, busy
	}
	c.active = sess
	c.mu.Unlock()
	c.publish(sess)

	logger.Info("session %s admitted: username=%s requester=%s", sess.info.ID, username, req.RequesterID)
	c.progress.Begin(sess.info)

	handle := &sessionHandle{s: sess, info: sess.info}
	go c.run(ctx, sess)

	return handle, nil
}

// Status reports the active session without touching the gate.
func (c *Coordinator) Status() (domain.SessionInfo, bool) {
	if info := c.snapshot.Load(); info != nil {
		return *info, true
	}
	return domain.SessionInfo{}, false
}

// ReloadCatalog refreshes the site catalog, refusing while a session is
// active. The reloading flag blocks admission for the duration of the
// reload, so a session never starts against a catalog mid-swap.
func (c *Coordinator) ReloadCatalog(ctx context.Context) error {
	c.mu.Lock()
	if c.active != nil || c.reloading {
		c.mu.Unlock()
		return domain.ErrCatalogBusy
	}
	c.reloading = true
	c.mu.Unlock()

	err := c.catalog.Reload(ctx)

	c.mu.Lock()
	c.reloading = false
	c.mu.Unlock()
	return err
}

// probeOutcome carries the provider call's result into the polling loop.
type probeOutcome struct {
	results []domain.RawSiteResult
	err     error
}

// run drives one session to a terminal state. Every exit path releases
// the gate exactly once via the deferred release.
func (c *Coordinator) run(ctx context.Context, sess *session) {
	defer func() {
		c.release(sess)
		close(sess.done)
	}()

	selection, err := c.catalog.RankedSites(
		sess.info.Options.TopSites,
		sess.info.Options.Tags,
		sess.info.Options.Sites,
		sess.info.Options.IDType,
	)
	if err != nil {
		c.fail(sess, fmt.Errorf("rank sites: %w", err))
		return
	}

	c.transition(sess, domain.SessionRunning)

	probeCtx, cancelProbe := context.WithCancel(ctx)
	defer cancelProbe()

	resultCh := make(chan probeOutcome, 1)
	go func() {
		results, err := c.provider.Search(probeCtx, driven.ProbeRequest{
			Username:       sess.info.Username,
			Sites:          selection.Sites,
			TimeoutSeconds: sess.info.Options.TimeoutSeconds,
			MaxConnections: sess.info.Options.MaxConnections,
			Retries:        sess.info.Options.Retries,
			IDType:         sess.info.Options.IDType,
			ParsingEnabled: sess.info.Options.ParsingEnabled,
			CookiesFile:    c.cfg.CookiesFile,
		})
		resultCh <- probeOutcome{results: results, err: err}
	}()

	// One edit per ProgressInterval at most. The initial token is
	// drained so the first throttled update lands a full interval after
	// admission, matching the Begin message already on the surface.
	limiter := rate.NewLimiter(rate.Every(c.cfg.ProgressInterval), 1)
	limiter.Allow()

	ticker := time.NewTicker(c.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case out := <-resultCh:
			c.finish(sess, out)
			return

		case <-ticker.C:
			if sess.cancelled.Load() {
				c.transition(sess, domain.SessionCancelling)
				cancelProbe()
				<-resultCh // await the provider's acknowledgment
				c.transition(sess, domain.SessionCancelled)
				sess.outcome = driving.SessionOutcome{
					Status: domain.SessionCancelled,
					Err:    domain.ErrSessionCancelled,
				}
				c.progress.Finish(sess.info, nil, domain.ErrSessionCancelled)
				logger.Info("session %s cancelled after %s", sess.info.ID, sess.info.Elapsed())
				return
			}
			if limiter.Allow() {
				c.progress.Update(sess.info)
			}
		}
	}
}

// finish handles the provider call's completion: failure or the
// post-processing pipeline of extraction, report generation, archival
// and audit logging. The polling loop has already exited.
func (c *Coordinator) finish(sess *session, out probeOutcome) {
	if out.err != nil {
		c.fail(sess, &domain.ProviderError{Err: out.err})
		return
	}

	duration := sess.info.Elapsed()
	found, errorsCount := Extract(out.results, sess.info.Options.IncludeSimilar)
	result := &domain.SearchResult{
		Username:        sess.info.Username,
		Found:           found,
		TotalFound:      len(found),
		TotalChecked:    len(out.results),
		DurationSeconds: duration.Seconds(),
		ErrorsCount:     errorsCount,
	}

	c.transition(sess, domain.SessionCompleted)

	artifacts := c.reporter.Generate(context.Background(), sess.info.Username, sess.info.Options.IDType, out.results, result)
	if artifacts.HTMLErr != nil {
		logger.Warn("session %s: html artifact failed: %v", sess.info.ID, artifacts.HTMLErr)
	}
	if artifacts.TXTErr != nil {
		logger.Warn("session %s: txt artifact failed: %v", sess.info.ID, artifacts.TXTErr)
	}

	if artifacts.HTMLPath != "" {
		if err := c.archive.ArchiveReport(artifacts.HTMLPath, sess.info.Username, sess.info.RequesterID); err != nil {
			logger.Warn("session %s: archive failed: %v", sess.info.ID, err)
		}
	}

	if err := c.audit.LogSearch(context.Background(), domain.AuditEntry{
		UserID:          sess.info.RequesterID,
		Username:        sess.info.Username,
		SitesChecked:    result.TotalChecked,
		SitesFound:      result.TotalFound,
		DurationSeconds: result.DurationSeconds,
	}); err != nil {
		logger.Warn("session %s: audit log failed: %v", sess.info.ID, err)
	}

	sess.outcome = driving.SessionOutcome{
		Status:   domain.SessionCompleted,
		Result:   result,
		HTMLPath: artifacts.HTMLPath,
		TXTPath:  artifacts.TXTPath,
	}
	c.progress.Finish(sess.info, result, nil)
	logger.Info("session %s completed: checked=%d found=%d errors=%d duration=%s",
		sess.info.ID, result.TotalChecked, result.TotalFound, result.ErrorsCount, duration)
}

// fail transitions a session to Failed. The diagnostic sink gets the
// full error; the requester-facing outcome carries the truncated form.
// No report is generated.
func (c *Coordinator) fail(sess *session, err error) {
	c.transition(sess, domain.SessionFailed)
	c.diag.ReportFailure(sess.info.ID, sess.info.Username, err)

	truncated := errors.New(domain.TruncateError(err, errorDisplayLimit))
	sess.outcome = driving.SessionOutcome{
		Status: domain.SessionFailed,
		Err:    truncated,
	}
	c.progress.Finish(sess.info, nil, truncated)
	logger.Error("session %s failed: %v", sess.info.ID, err)
}

// transition moves the session to a new state and refreshes the status
// snapshot. Called only from the run goroutine.
func (c *Coordinator) transition(sess *session, status domain.SessionStatus) {
	sess.info.Status = status
	c.publish(sess)
}

// publish stores a copy of the session info for lock-free status reads.
func (c *Coordinator) publish(sess *session) {
	info := sess.info
	c.snapshot.Store(&info)
}

// release clears the session slot. Runs on every exit path.
func (c *Coordinator) release(sess *session) {
	c.mu.Lock()
	if c.active == sess {
		c.active = nil
	}
	c.mu.Unlock()
	c.snapshot.Store(nil)
}
