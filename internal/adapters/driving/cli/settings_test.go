package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := runCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "top_sites:        500")
	assert.Contains(t, out, "id_type:          username")
	assert.NotContains(t, out, "(override)")
}

func TestSettingsCmd_SetAndShowOverride(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := runCommand(t, "settings", "set", "top_sites", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Set top_sites = 200.")

	out, err = runCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "top_sites:        200 (override)")
}

func TestSettingsCmd_SetClamps(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := runCommand(t, "settings", "set", "timeout", "9999")
	require.NoError(t, err)
	assert.Contains(t, out, "Set timeout = 300 (clamped from 9999).")
}

func TestSettingsCmd_SetRejectsUnknownKey(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCommand(t, "settings", "set", "colour", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestSettingsCmd_Reset(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCommand(t, "settings", "set", "retries", "4")
	require.NoError(t, err)

	out, err := runCommand(t, "settings", "reset", "retries")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset retries")

	out, err = runCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "retries:          1\n")
}
