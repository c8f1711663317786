package geojson

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "name": "regions",
  "features": [
    {
      "type": "Feature",
      "properties": {"title": "Devín Castle", "region": "Bratislava"},
      "geometry": {"type": "Point", "coordinates": [16.98, 48.17]}
    },
    {
      "type": "Feature",
      "properties": {"title": "Lost Village"},
      "geometry": null
    }
  ]
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	coll, err := Decode(strings.NewReader(sampleCollection))
	require.NoError(t, err)

	assert.Equal(t, "FeatureCollection", coll.Type)
	assert.Equal(t, "regions", coll.Name)
	require.Len(t, coll.Features, 2)

	f := coll.Features[0]
	assert.Equal(t, "Devín Castle", f.StringProp("title"))
	require.NotNil(t, f.Geometry)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{16.98, 48.17}, f.Geometry.Coordinates.Coords())

	assert.Nil(t, coll.Features[1].Geometry)
}

func TestGeometry_MalformedCoordinatesPreserved(t *testing.T) {
	t.Parallel()

	raw := `{"type":"Point","coordinates":[["not"],"numbers"]}`

	var g Geometry
	require.NoError(t, json.Unmarshal([]byte(raw), &g))

	assert.True(t, g.Malformed())
	assert.True(t, g.Coordinates.IsEmpty())

	// The broken bytes survive a re-encode untouched.
	out, err := json.Marshal(&g)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestForeignMembersPreserved(t *testing.T) {
	t.Parallel()

	raw := `{
  "type": "FeatureCollection",
  "name": "regions",
  "generator": "qgis",
  "features": [
    {
      "type": "Feature",
      "bbox": [16.9, 48.1, 17.0, 48.2],
      "centroid": {"lon": 16.95, "lat": 48.15},
      "properties": {"title": "Devín Castle"},
      "geometry": {"type": "Point", "coordinates": [16.98, 48.17]}
    }
  ]
}`

	coll, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)

	out, err := json.Marshal(coll)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestGeometryCollectionRoundTrip(t *testing.T) {
	t.Parallel()

	raw := `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[17.1,48.1]}]}`

	var g Geometry
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	assert.True(t, g.Coordinates.IsEmpty())

	out, err := json.Marshal(&g)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	t.Parallel()

	coll := &Collection{
		Type: "FeatureCollection",
		Features: []*Feature{
			{Type: "Feature", Properties: map[string]any{"title": "Schloss <Hof> & Garten"}},
		},
	}

	var sb strings.Builder
	require.NoError(t, Encode(&sb, coll))
	assert.Contains(t, sb.String(), "Schloss <Hof> & Garten")
}

func TestLoadSave_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.geojson")

	coll, err := Decode(strings.NewReader(sampleCollection))
	require.NoError(t, err)
	require.NoError(t, Save(path, coll))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got.Features, 2)
	assert.Equal(t, "Devín Castle", got.Features[0].StringProp("title"))
}

func TestFeature_PropHelpers(t *testing.T) {
	t.Parallel()

	f := &Feature{Type: "Feature"}

	assert.Equal(t, "", f.StringProp("title"))

	f.SetProp("title", "Hrad")
	assert.Equal(t, "Hrad", f.StringProp("title"))

	f.SetProp("count", 3)
	assert.Equal(t, "", f.StringProp("count"))

	assert.True(t, f.DeleteProp("title"))
	assert.False(t, f.DeleteProp("title"))
}
