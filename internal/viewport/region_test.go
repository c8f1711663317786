package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronomaps/atlas-cli/internal/geojson"
)

func pointFeature(region string, lon, lat float64) *geojson.Feature {
	return &geojson.Feature{
		Type:       "Feature",
		Properties: map[string]any{"region": region},
		Geometry: &geojson.Geometry{
			Type:        "Point",
			Coordinates: geojson.Position(lon, lat),
		},
	}
}

func TestRegions_GroupsAndCounts(t *testing.T) {
	t.Parallel()

	features := []*geojson.Feature{
		pointFeature("Bohemia", 14.4, 50.1),
		pointFeature("Moravia", 16.6, 49.2),
		pointFeature("Bohemia", 15.8, 50.0),
	}

	summaries := Regions(features, "region", DefaultSize)
	require.Len(t, summaries, 2)

	// First-seen order.
	assert.Equal(t, "Bohemia", summaries[0].Region)
	assert.Equal(t, "Moravia", summaries[1].Region)

	assert.Equal(t, 2, summaries[0].FeatureCount)
	assert.Equal(t, BBox{MinLon: 14.4, MaxLon: 15.8, MinLat: 50.0, MaxLat: 50.1}, summaries[0].BBox)

	assert.Equal(t, 1, summaries[1].FeatureCount)
	assert.Equal(t, 16.6, summaries[1].View.Longitude)
	assert.Equal(t, 49.2, summaries[1].View.Latitude)
}

func TestRegions_CountsFeaturesWithoutCoordinates(t *testing.T) {
	t.Parallel()

	noGeom := &geojson.Feature{
		Type:       "Feature",
		Properties: map[string]any{"region": "Bohemia"},
	}
	features := []*geojson.Feature{
		pointFeature("Bohemia", 14.4, 50.1),
		noGeom,
	}

	summaries := Regions(features, "region", DefaultSize)
	require.Len(t, summaries, 1)

	// The geometry-less feature widens nothing but still counts.
	assert.Equal(t, 2, summaries[0].FeatureCount)
	assert.Equal(t, 0.0, summaries[0].BBox.Width())
}

func TestRegions_SkipsEmptyRegionKey(t *testing.T) {
	t.Parallel()

	features := []*geojson.Feature{
		pointFeature("", 14.4, 50.1),
		{Type: "Feature", Geometry: &geojson.Geometry{Type: "Point", Coordinates: geojson.Position(1, 1)}},
		pointFeature("Moravia", 16.6, 49.2),
	}

	summaries := Regions(features, "region", DefaultSize)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Moravia", summaries[0].Region)
}

func TestRegions_DropsRegionWithNoPoints(t *testing.T) {
	t.Parallel()

	features := []*geojson.Feature{
		{Type: "Feature", Properties: map[string]any{"region": "Atlantis"}},
	}

	assert.Empty(t, Regions(features, "region", DefaultSize))
}
