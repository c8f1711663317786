package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFTPURL(t *testing.T) {
	t.Parallel()

	host, path, err := parseFTPURL("ftp://data.example.org/pub/regions.geojson")
	require.NoError(t, err)
	assert.Equal(t, "data.example.org:21", host)
	assert.Equal(t, "/pub/regions.geojson", path)
}

func TestParseFTPURL_ExplicitPort(t *testing.T) {
	t.Parallel()

	host, _, err := parseFTPURL("ftp://data.example.org:2121/file.zip")
	require.NoError(t, err)
	assert.Equal(t, "data.example.org:2121", host)
}

func TestParseFTPURL_WrongScheme(t *testing.T) {
	t.Parallel()

	_, _, err := parseFTPURL("https://example.org/file")
	assert.Error(t, err)
}

func TestParseFTPURL_EmptyPath(t *testing.T) {
	t.Parallel()

	_, _, err := parseFTPURL("ftp://example.org")
	assert.Error(t, err)
}
