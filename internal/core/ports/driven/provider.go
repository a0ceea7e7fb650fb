package driven

import (
	"context"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// ProbeRequest is the validated input handed to the search provider.
// It is built exclusively from SearchOptions.Validated output.
type ProbeRequest struct {
	// Username is the pre-validated identifier to search.
	Username string

	// Sites is the catalog selection to probe, in ranked order.
	Sites []SiteRecord

	// TimeoutSeconds, MaxConnections and Retries tune the probe run.
	TimeoutSeconds int
	MaxConnections int
	Retries        int

	// IDType is the identifier kind ("username", "email").
	IDType string

	// ParsingEnabled asks the provider to parse profile pages.
	ParsingEnabled bool

	// CookiesFile optionally points at a Netscape cookies file.
	CookiesFile string
}

// SearchProvider is the external OSINT probe service. One call covers
// the whole site selection; cancellation is cooperative through ctx.
// Results preserve the provider's native response order.
type SearchProvider interface {
	// Search probes every site in the request. A cancelled ctx must be
	// surfaced as ctx.Err so the coordinator can distinguish
	// cancellation from provider failure.
	Search(ctx context.Context, req ProbeRequest) ([]domain.RawSiteResult, error)
}

// DiagnosticSink receives full-detail failure reports. Requester-facing
// surfaces only ever see the truncated form.
type DiagnosticSink interface {
	// ReportFailure records the complete error text for a session.
	ReportFailure(sessionID, username string, err error)
}
