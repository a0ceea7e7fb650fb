// Package report renders the two per-search artifacts: a rich HTML
// report covering every probed site, and a plain TXT summary of the
// found accounts. The two artifacts are generated independently so a
// failure in one never loses the other.
package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.ReportGenerator = (*Generator)(nil)

//go:embed report.html.tmpl
var htmlTemplateText string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateText))

// slugRe matches runs of characters not allowed in report filenames.
var slugRe = regexp.MustCompile("[^a-zA-Z0-9_.-]+")

// filenameTimestamp is the layout embedded in artifact filenames.
const filenameTimestamp = "20060102_150405"

// Generator writes report artifacts into a fixed directory.
type Generator struct {
	dir string
	now func() time.Time
}

// NewGenerator creates a Generator writing into dir. The directory is
// created on first use.
func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir, now: time.Now}
}

// Generate writes both artifacts for a completed search. Per-artifact
// failures are reported inside the returned ReportArtifacts; generation
// of one artifact proceeds even when the other fails.
func (g *Generator) Generate(ctx context.Context, username, idType string, raw []domain.RawSiteResult, result *domain.SearchResult) driven.ReportArtifacts {
	var artifacts driven.ReportArtifacts

	if err := ctx.Err(); err != nil {
		artifacts.HTMLErr = err
		artifacts.TXTErr = err
		return artifacts
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		err = fmt.Errorf("create reports directory: %w", err)
		artifacts.HTMLErr = err
		artifacts.TXTErr = err
		return artifacts
	}

	base := fmt.Sprintf("%s_%s", slug(username), g.now().Format(filenameTimestamp))

	htmlPath := filepath.Join(g.dir, base+".html")
	if err := g.writeHTML(htmlPath, username, idType, raw, result); err != nil {
		artifacts.HTMLErr = fmt.Errorf("write html report: %w", err)
	} else {
		artifacts.HTMLPath = htmlPath
		logger.Debug("wrote html report %s", htmlPath)
	}

	txtPath := filepath.Join(g.dir, base+".txt")
	if err := g.writeTXT(txtPath, username, result); err != nil {
		artifacts.TXTErr = fmt.Errorf("write txt report: %w", err)
	} else {
		artifacts.TXTPath = txtPath
		logger.Debug("wrote txt report %s", txtPath)
	}

	return artifacts
}

// slug reduces a username to a filename-safe stem. Runs of disallowed
// characters collapse to a single underscore; an emptied stem falls
// back to "report".
func slug(username string) string {
	s := slugRe.ReplaceAllString(username, "_")
	s = strings.Trim(s, "._-")
	if s == "" {
		return "report"
	}
	return s
}

type htmlRow struct {
	Site    string
	Status  string
	URL     string
	Similar bool
	Tags    string
}

type htmlData struct {
	Username    string
	IDType      string
	GeneratedAt string
	Checked     int
	Found       int
	Errors      int
	Duration    string
	Accounts    []domain.FoundAccount
	Rows        []htmlRow
}

func (g *Generator) writeHTML(path, username, idType string, raw []domain.RawSiteResult, result *domain.SearchResult) error {
	data := htmlData{
		Username:    username,
		IDType:      idType,
		GeneratedAt: g.now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Checked:     result.TotalChecked,
		Found:       result.TotalFound,
		Errors:      result.ErrorsCount,
		Duration:    domain.FormatDuration(time.Duration(result.DurationSeconds * float64(time.Second))),
		Accounts:    result.Found,
	}
	for _, r := range raw {
		if !r.HasStatus {
			continue
		}
		data.Rows = append(data.Rows, htmlRow{
			Site:    domain.SafeLabel(r.SiteName),
			Status:  r.Status.String(),
			URL:     r.URL,
			Similar: r.Similar,
			Tags:    strings.Join(r.Tags, ", "),
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (g *Generator) writeTXT(path, username string, result *domain.SearchResult) error {
	var buf bytes.Buffer
	g.renderTXT(&buf, username, result)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (g *Generator) renderTXT(w io.Writer, username string, result *domain.SearchResult) {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)
	duration := domain.FormatDuration(time.Duration(result.DurationSeconds * float64(time.Second)))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PROWL SEARCH RESULTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "username:       %s\n", username)
	fmt.Fprintf(w, "date/time:      %s\n", g.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "sites checked:  %d\n", result.TotalChecked)
	fmt.Fprintf(w, "accounts found: %d\n", result.TotalFound)
	fmt.Fprintf(w, "duration:       %s\n", duration)
	fmt.Fprintln(w)
	fmt.Fprintln(w, thin)
	fmt.Fprintln(w, "FOUND ACCOUNTS")
	fmt.Fprintln(w, thin)
	fmt.Fprintln(w)

	if len(result.Found) > 0 {
		for i, account := range result.Found {
			fmt.Fprintf(w, "%3d. %s\n", i+1, account.Site)
			fmt.Fprintf(w, "     %s\n", account.URL)
			fmt.Fprintln(w)
		}
	} else {
		fmt.Fprintln(w, "no accounts found.")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, thin)
	fmt.Fprintln(w, "END OF REPORT")
	fmt.Fprintln(w, thin)
}
