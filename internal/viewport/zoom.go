package viewport

import "math"

const (
	// MinZoom and MaxZoom bound the tile-pyramid zoom index.
	MinZoom = 1
	MaxZoom = 18

	tileSize = 256

	// worldLonSpan is the full longitude extent of the web-mercator world.
	// worldLatSpan approximates the visible latitude extent, crudely
	// compensating for mercator vertical stretch.
	worldLonSpan = 360.0
	worldLatSpan = 170.0

	// paddingFactor leaves 10% of the viewport free on each side.
	paddingFactor = 1.2

	// minSpanDegrees floors degenerate (zero-width or zero-height) boxes so
	// the zoom logarithm stays finite. 1e-4 degrees is roughly 11 m at the
	// equator; a single point therefore maps to MaxZoom.
	minSpanDegrees = 1e-4
)

// Size is a target viewport in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultSize is the viewport the original map frontend renders into.
var DefaultSize = Size{Width: 1200, Height: 800}

// Zoom computes the zoom level at which the box fits the viewport with 10%
// padding per side on both axes. Each axis gets its own zoom from the tile
// pyramid (zoom 0 shows the whole world span in one tile width); the smaller
// of the two wins because the viewport must show the full box on both axes
// at once. The result is rounded and clamped to [MinZoom, MaxZoom].
func Zoom(b BBox, size Size) int {
	lonSpan := math.Max(b.Width(), minSpanDegrees) * paddingFactor
	latSpan := math.Max(b.Height(), minSpanDegrees) * paddingFactor

	zoomLon := math.Log2(worldLonSpan * float64(size.Width) / (tileSize * lonSpan))
	zoomLat := math.Log2(worldLatSpan * float64(size.Height) / (tileSize * latSpan))

	z := math.Round(math.Min(zoomLon, zoomLat))
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return int(z)
}

// Viewport is a computed map view: center plus zoom.
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// View combines Center and Zoom for a box.
func View(b BBox, size Size) Viewport {
	c := b.Center()
	return Viewport{Latitude: c.Lat, Longitude: c.Lon, Zoom: Zoom(b, size)}
}
