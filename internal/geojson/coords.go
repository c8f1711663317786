package geojson

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// CoordTree is the coordinate array of a GeoJSON geometry: either a single
// position ([lon, lat] or [lon, lat, alt]) or a nested list of further trees.
// Which of the two it is gets decided by shape while decoding: an array whose
// first element is a number is a position, anything else recurses. Depth is
// therefore not assumed; Point, LineString, Polygon and MultiPolygon
// coordinates all decode through the same two cases.
type CoordTree struct {
	pos      []float64
	children []CoordTree
	leaf     bool
}

// Position builds a leaf tree from a single coordinate.
func Position(coords ...float64) CoordTree {
	return CoordTree{pos: coords, leaf: true}
}

// Nest builds an interior tree from child trees.
func Nest(children ...CoordTree) CoordTree {
	return CoordTree{children: children}
}

// IsPosition reports whether the tree is a single coordinate.
func (t CoordTree) IsPosition() bool { return t.leaf }

// Coords returns the raw coordinate slice of a position leaf. Nil for
// interior nodes.
func (t CoordTree) Coords() []float64 { return t.pos }

// Children returns the nested trees of an interior node. Nil for leaves.
func (t CoordTree) Children() []CoordTree { return t.children }

// IsEmpty reports whether the tree holds no coordinates at all.
func (t CoordTree) IsEmpty() bool {
	return !t.leaf && len(t.children) == 0
}

// UnmarshalJSON decodes a nested coordinate array. A JSON array whose first
// element is a number decodes as a position; otherwise every element must
// itself decode as a CoordTree. Anything else (non-numeric leaves, ragged
// nesting) is an error, which callers downgrade to "no coordinates" for the
// owning feature.
func (t *CoordTree) UnmarshalJSON(data []byte) error {
	*t = CoordTree{}

	var pos []float64
	if err := json.Unmarshal(data, &pos); err == nil {
		if len(pos) > 0 {
			t.pos = pos
			t.leaf = true
		}
		return nil
	}

	var children []CoordTree
	if err := json.Unmarshal(data, &children); err != nil {
		return eris.Wrap(err, "geojson: malformed coordinate array")
	}
	t.children = children
	return nil
}

// MarshalJSON re-encodes the tree in the same shape it was decoded from.
func (t CoordTree) MarshalJSON() ([]byte, error) {
	if t.leaf {
		return json.Marshal(t.pos)
	}
	if t.children == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.children)
}

// Truncate2D drops altitude components from every position in the tree,
// keeping only longitude and latitude. Returns the number of positions that
// carried an extra component.
func (t *CoordTree) Truncate2D() int {
	if t.leaf {
		if len(t.pos) > 2 {
			t.pos = t.pos[:2]
			return 1
		}
		return 0
	}
	n := 0
	for i := range t.children {
		n += t.children[i].Truncate2D()
	}
	return n
}
