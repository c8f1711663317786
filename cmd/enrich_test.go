package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich_RemoteInputRequiresOutput(t *testing.T) {
	cfg = testConfig()

	err := enrichCmd.RunE(enrichCmd, []string{"https://example.org/regions.geojson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}
