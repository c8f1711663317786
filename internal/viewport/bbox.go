package viewport

// BBox is an axis-aligned bounding box in lon/lat degrees.
type BBox struct {
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
}

// Bounds computes the bounding box of a point set. ok is false for an empty
// set; callers skip downstream viewport computation in that case instead of
// propagating a sentinel box.
func Bounds(pts []Point) (box BBox, ok bool) {
	if len(pts) == 0 {
		return BBox{}, false
	}
	box = BBox{
		MinLon: pts[0].Lon, MaxLon: pts[0].Lon,
		MinLat: pts[0].Lat, MaxLat: pts[0].Lat,
	}
	for _, p := range pts[1:] {
		if p.Lon < box.MinLon {
			box.MinLon = p.Lon
		}
		if p.Lon > box.MaxLon {
			box.MaxLon = p.Lon
		}
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
	}
	return box, true
}

// Center returns the midpoint of the box. This is deliberately the
// bounding-box center, not the point-set centroid.
func (b BBox) Center() Point {
	return Point{
		Lon: (b.MinLon + b.MaxLon) / 2,
		Lat: (b.MinLat + b.MaxLat) / 2,
	}
}

// Width returns the longitude span in degrees.
func (b BBox) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitude span in degrees.
func (b BBox) Height() float64 { return b.MaxLat - b.MinLat }

// Contains reports whether the point lies within the box, inclusive.
func (b BBox) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}
