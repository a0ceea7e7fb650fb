package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

func TestStatusCmd_NoActiveSession(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No search is running.")
}

func TestStatusCmd_ActiveSession(t *testing.T) {
	mc, cleanup := setupTestServices(t)
	defer cleanup()

	mc.statusActive = true
	mc.statusInfo = domain.SessionInfo{
		ID:          "abc-123",
		Username:    "johndoe",
		RequesterID: "9001",
		Status:      domain.SessionRunning,
		StartedAt:   time.Now().Add(-5 * time.Second),
		Options:     domain.SearchOptions{TopSites: 500}.Validated(),
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "abc-123")
	assert.Contains(t, buf.String(), "johndoe")
	assert.Contains(t, buf.String(), "running")
}
