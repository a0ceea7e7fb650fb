package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

func progressInfo(status domain.SessionStatus) domain.SessionInfo {
	return domain.SessionInfo{
		ID:        "abc",
		Username:  "johndoe",
		Status:    status,
		StartedAt: time.Now().Add(-4 * time.Second),
		Options:   domain.SearchOptions{TopSites: 500}.Validated(),
	}
}

func TestProgressPrinter_NonTTYPrintsLines(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf)
	assert.False(t, p.tty)

	p.Begin(progressInfo(domain.SessionInitializing))
	p.Update(progressInfo(domain.SessionRunning))
	p.Finish(progressInfo(domain.SessionCompleted), &domain.SearchResult{
		TotalFound: 3, TotalChecked: 120, DurationSeconds: 4.0,
	}, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], `searching "johndoe"`)
	assert.Contains(t, lines[1], "elapsed")
	assert.Contains(t, lines[2], "found 3 accounts")
}

func TestProgressPrinter_FinishFailed(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf)

	p.Finish(progressInfo(domain.SessionFailed), nil, errors.New("probe service unreachable"))

	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "probe service unreachable")
}

func TestProgressPrinter_FinishCancelled(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf)

	// The run loop hands Finish the cancellation sentinel; it must not
	// render as a failure.
	p.Finish(progressInfo(domain.SessionCancelled), nil, domain.ErrSessionCancelled)

	assert.Contains(t, buf.String(), "cancelled after")
	assert.NotContains(t, buf.String(), "failed")
}
