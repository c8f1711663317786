package shape

import (
	"encoding/json"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geometryJSON(t *testing.T, s shp.Shape) string {
	t.Helper()
	g := fromGeom(toGeom(s))
	require.NotNil(t, g)
	out, err := json.Marshal(g)
	require.NoError(t, err)
	return string(out)
}

func TestConvert_Point(t *testing.T) {
	t.Parallel()

	got := geometryJSON(t, &shp.Point{X: 17.1, Y: 48.15})
	assert.JSONEq(t, `{"type":"Point","coordinates":[17.1,48.15]}`, got)
}

func TestConvert_SinglePartPolyLine(t *testing.T) {
	t.Parallel()

	pl := &shp.PolyLine{
		NumParts: 1,
		Parts:    []int32{0},
		Points:   []shp.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}},
	}

	got := geometryJSON(t, pl)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[0,0],[1,1],[2,0]]}`, got)
}

func TestConvert_MultiPartPolyLine(t *testing.T) {
	t.Parallel()

	pl := &shp.PolyLine{
		NumParts: 2,
		Parts:    []int32{0, 2},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 1, Y: 1},
			{X: 5, Y: 5}, {X: 6, Y: 6},
		},
	}

	got := geometryJSON(t, pl)
	assert.JSONEq(t, `{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[5,5],[6,6]]]}`, got)
}

func TestConvert_SinglePartPolygon(t *testing.T) {
	t.Parallel()

	p := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0},
		},
	}

	got := geometryJSON(t, p)
	assert.JSONEq(t, `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,2],[0,2],[0,0]]]}`, got)
}

func TestConvert_MultiPartPolygon(t *testing.T) {
	t.Parallel()

	p := &shp.Polygon{
		NumParts: 2,
		Parts:    []int32{0, 4},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0},
			{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 5},
		},
	}

	got := geometryJSON(t, p)
	assert.JSONEq(t, `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`, got)
}

func TestConvert_EmptyShapes(t *testing.T) {
	t.Parallel()

	assert.Nil(t, toGeom(nil))
	assert.Nil(t, toGeom(&shp.PolyLine{}))
	assert.Nil(t, toGeom(&shp.Polygon{}))
	assert.Nil(t, toGeom(&shp.Null{}))
}
