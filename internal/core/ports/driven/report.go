package driven

import (
	"context"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// ReportArtifacts describes the outcome of one generation pass. Each
// artifact is attempted independently; a failure in one never prevents
// the other.
type ReportArtifacts struct {
	// HTMLPath is the rich artifact location; empty when HTMLErr is set.
	HTMLPath string
	HTMLErr  error

	// TXTPath is the plain artifact location; empty when TXTErr is set.
	TXTPath string
	TXTErr  error
}

// ReportGenerator renders the two report artifacts for a completed
// session. Generation is blocking IO and must not run on the
// coordinator's polling loop.
type ReportGenerator interface {
	// Generate writes both artifacts and reports per-artifact failures
	// inside the returned ReportArtifacts.
	Generate(ctx context.Context, username, idType string, raw []domain.RawSiteResult, result *domain.SearchResult) ReportArtifacts
}
