package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailLocations_Embedded(t *testing.T) {
	overrides, err := ThumbnailLocations("")
	require.NoError(t, err)
	assert.NotNil(t, overrides)
	assert.Empty(t, overrides)
}

func TestThumbnailLocations_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Valencia": "https://example.com/valencia.jpg"}`), 0o600))

	overrides, err := ThumbnailLocations(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/valencia.jpg", overrides["Valencia"])

	// mutating one copy must not leak into the next
	overrides["Valencia"] = "changed"
	again, err := ThumbnailLocations(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/valencia.jpg", again["Valencia"])
}

func TestThumbnailLocations_Errors(t *testing.T) {
	_, err := ThumbnailLocations(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = parseThumbnails([]byte(`["not", "an", "object"]`))
	assert.Error(t, err)
}

func TestSiteMapHeader(t *testing.T) {
	header := SiteMap.Header()
	require.Len(t, header, 2)
	assert.Equal(t, "/how-to-work-with-me", header[0].URL)
	assert.Equal(t, "/where-i-am-today", header[1].URL)
}
