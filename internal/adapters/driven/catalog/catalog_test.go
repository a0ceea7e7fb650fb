package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
  "sites": {
    "GitHub":   {"urlMain": "https://github.com",  "alexaRank": 100, "tags": ["coding"]},
    "Reddit":   {"urlMain": "https://reddit.com",  "alexaRank": 20,  "tags": ["forum", "news"]},
    "Obscure":  {"urlMain": "https://obscure.example", "tags": ["forum"]},
    "DeadSite": {"urlMain": "https://dead.example", "alexaRank": 1, "disabled": true},
    "GPGKeys":  {"urlMain": "https://keys.example", "alexaRank": 5, "type": "gpg_key"}
  }
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_LoadsEnabledSites(t *testing.T) {
	c, err := New(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	defer c.Close()

	// disabled site dropped, gpg site kept with its own id type
	assert.Equal(t, 4, c.Len())
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNew_EmptyCatalog(t *testing.T) {
	_, err := New(writeCatalog(t, `{"sites": {}}`))
	assert.Error(t, err)
}

func TestRankedSites_OrderAndLimit(t *testing.T) {
	c, err := New(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	defer c.Close()

	selection, err := c.RankedSites(2, nil, nil, "username")
	require.NoError(t, err)
	require.Len(t, selection.Sites, 2)

	// most popular first; unranked sites sort last
	assert.Equal(t, "Reddit", selection.Sites[0].Name)
	assert.Equal(t, "GitHub", selection.Sites[1].Name)
}

func TestRankedSites_UnrankedLast(t *testing.T) {
	c, err := New(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	defer c.Close()

	selection, err := c.RankedSites(0, nil, nil, "username")
	require.NoError(t, err)
	require.Len(t, selection.Sites, 3)
	assert.Equal(t, "Obscure", selection.Sites[2].Name)
}

func TestRankedSites_TagFilter(t *testing.T) {
	c, err := New(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	defer c.Close()

	selection, err := c.RankedSites(0, []string{"forum"}, nil, "username")
	require.NoError(t, err)
	require.Len(t, selection.Sites, 2)
	assert.Equal(t, "Reddit", selection.Sites[0].Name)
	assert.Equal(t, "Obscure", selection.Sites[1].Name)
}

func TestRankedSites_NameFilter(t *testing.T) {
	c, err := New(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	defer c.Close()

	selection, err := c.RankedSites(0, nil, []string{"github"}, "username")
	require.NoError(t, err)
	require.Len(t, selection.Sites, 1)
	assert.Equal(t, "GitHub", selection.Sites[0].Name)
}

func TestRankedSites_IDTypeFilter(t *testing.T) {
	c, err := New(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	defer c.Close()

	selection, err := c.RankedSites(0, nil, nil, "gpg_key")
	require.NoError(t, err)
	require.Len(t, selection.Sites, 1)
	assert.Equal(t, "GPGKeys", selection.Sites[0].Name)
}

func TestReload_SwapsCache(t *testing.T) {
	path := writeCatalog(t, testCatalog)
	c, err := New(path)
	require.NoError(t, err)
	defer c.Close()

	smaller := `{"sites": {"GitHub": {"urlMain": "https://github.com", "alexaRank": 100}}}`
	require.NoError(t, os.WriteFile(path, []byte(smaller), 0o644))

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Stale())
}

func TestStale_SetOnFileChange(t *testing.T) {
	path := writeCatalog(t, testCatalog)
	c, err := New(path)
	require.NoError(t, err)
	defer c.Close()

	require.False(t, c.Stale())
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	assert.Eventually(t, c.Stale, 2*time.Second, 10*time.Millisecond)
}
