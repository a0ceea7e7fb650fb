package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
)

var (
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
)

// Ensure progressPrinter implements the interface.
var _ driven.ProgressSink = (*progressPrinter)(nil)

// progressPrinter renders session progress as a single status line.
// On a terminal the line is repainted in place; elsewhere each update
// is its own line so logs stay readable.
type progressPrinter struct {
	w       io.Writer
	tty     bool
	lastLen int
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &progressPrinter{w: w, tty: tty}
}

// Begin announces a newly admitted session.
func (p *progressPrinter) Begin(info domain.SessionInfo) {
	p.paint(progressStyle.Render(fmt.Sprintf("searching %q across up to %d sites...", info.Username, info.Options.TopSites)))
}

// Update overwrites the status line with the current snapshot.
func (p *progressPrinter) Update(info domain.SessionInfo) {
	elapsed := domain.FormatDuration(info.Elapsed().Round(time.Second))
	p.paint(progressStyle.Render(fmt.Sprintf("searching %q... %s elapsed (%s)", info.Username, elapsed, info.Status)))
}

// Finish overwrites the status line one last time with the terminal
// state.
func (p *progressPrinter) Finish(info domain.SessionInfo, result *domain.SearchResult, err error) {
	switch {
	case info.Status == domain.SessionCancelled || errors.Is(err, domain.ErrSessionCancelled):
		p.paint(warnStyle.Render(fmt.Sprintf("search for %q cancelled after %s", info.Username, domain.FormatDuration(info.Elapsed().Round(time.Second)))))
	case err != nil:
		p.paint(errorStyle.Render(fmt.Sprintf("search for %q failed: %v", info.Username, err)))
	case result != nil:
		p.paint(successStyle.Render(fmt.Sprintf("found %d accounts for %q (%d sites checked, %d errors, %s)",
			result.TotalFound, info.Username, result.TotalChecked, result.ErrorsCount,
			domain.FormatDuration(time.Duration(result.DurationSeconds*float64(time.Second))))))
	default:
		p.paint(fmt.Sprintf("search for %q finished (%s)", info.Username, info.Status))
	}
	p.end()
}

// paint writes one status line, clearing the previous one on a tty.
func (p *progressPrinter) paint(line string) {
	if !p.tty {
		fmt.Fprintln(p.w, line)
		return
	}
	pad := ""
	if delta := p.lastLen - lipgloss.Width(line); delta > 0 {
		pad = strings.Repeat(" ", delta)
	}
	fmt.Fprintf(p.w, "\r%s%s", line, pad)
	p.lastLen = lipgloss.Width(line)
}

// end terminates the in-place line on a tty.
func (p *progressPrinter) end() {
	if p.tty {
		fmt.Fprintln(p.w)
		p.lastLen = 0
	}
}
