package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds(t *testing.T) {
	t.Parallel()

	pts := []Point{
		{Lon: 2, Lat: 5},
		{Lon: -3, Lat: 7},
		{Lon: 10, Lat: -1},
	}

	box, ok := Bounds(pts)
	require.True(t, ok)
	assert.Equal(t, BBox{MinLon: -3, MaxLon: 10, MinLat: -1, MaxLat: 7}, box)
}

func TestBounds_Empty(t *testing.T) {
	t.Parallel()

	_, ok := Bounds(nil)
	assert.False(t, ok)
}

func TestBounds_SinglePoint(t *testing.T) {
	t.Parallel()

	box, ok := Bounds([]Point{{Lon: 17.1, Lat: 48.15}})
	require.True(t, ok)
	assert.Equal(t, 0.0, box.Width())
	assert.Equal(t, 0.0, box.Height())
	assert.Equal(t, Point{Lon: 17.1, Lat: 48.15}, box.Center())
}

func TestCenter_IsMidpointNotCentroid(t *testing.T) {
	t.Parallel()

	// Many points clustered near one corner must not pull the center; the
	// center is the box midpoint.
	pts := []Point{
		{Lon: 0, Lat: 0},
		{Lon: 0.1, Lat: 0.1},
		{Lon: 0.2, Lat: 0.2},
		{Lon: 10, Lat: 10},
	}
	box, ok := Bounds(pts)
	require.True(t, ok)
	assert.Equal(t, Point{Lon: 5, Lat: 5}, box.Center())
}

func TestContains(t *testing.T) {
	t.Parallel()

	box := BBox{MinLon: 0, MaxLon: 10, MinLat: 0, MaxLat: 5}
	assert.True(t, box.Contains(Point{Lon: 5, Lat: 2}))
	assert.True(t, box.Contains(Point{Lon: 0, Lat: 0}))
	assert.False(t, box.Contains(Point{Lon: 11, Lat: 2}))
	assert.False(t, box.Contains(Point{Lon: 5, Lat: -0.1}))
}
