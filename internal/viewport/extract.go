// Package viewport computes display geometry for GeoJSON features: flattened
// coordinates, axis-aligned bounding boxes, bounding-box centers, map zoom
// levels, and per-region aggregates.
package viewport

import (
	"github.com/chronomaps/atlas-cli/internal/geojson"
)

// Point is a single WGS84 coordinate in decimal degrees.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Extract flattens a geometry into its coordinate pairs, in order of
// appearance, duplicates retained. Recursion stops at any position leaf, so
// points, line strings, polygon rings and multi-polygons all flatten without
// the caller naming the geometry type. Nil, empty and malformed geometries
// yield an empty slice.
func Extract(g *geojson.Geometry) []Point {
	if g == nil {
		return nil
	}
	return appendPoints(nil, g.Coordinates)
}

func appendPoints(pts []Point, t geojson.CoordTree) []Point {
	if t.IsPosition() {
		// Positions shorter than a lon/lat pair carry no usable point.
		if pos := t.Coords(); len(pos) >= 2 {
			pts = append(pts, Point{Lon: pos[0], Lat: pos[1]})
		}
		return pts
	}
	for _, child := range t.Children() {
		pts = appendPoints(pts, child)
	}
	return pts
}
