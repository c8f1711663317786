// Package geojson models GeoJSON feature collections for the cleanup
// pipeline. Property bags are kept as open maps so unknown fields survive a
// load/save round trip; coordinates are kept as a recursive tree so every
// geometry type passes through the same code.
package geojson

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Collection is a GeoJSON FeatureCollection. Foreign members (bbox and any
// non-standard keys) are carried through a load/save round trip untouched.
type Collection struct {
	Type     string
	Name     string
	CRS      json.RawMessage
	Features []*Feature

	extra map[string]json.RawMessage
}

// Feature is a single GeoJSON feature. Foreign members are carried through
// untouched, like on Collection.
type Feature struct {
	Type       string
	ID         any
	Properties map[string]any
	Geometry   *Geometry

	extra map[string]json.RawMessage
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for key, raw := range members {
		var err error
		switch key {
		case "type":
			err = json.Unmarshal(raw, &c.Type)
		case "name":
			err = json.Unmarshal(raw, &c.Name)
		case "crs":
			c.CRS = raw
		case "features":
			err = json.Unmarshal(raw, &c.Features)
		default:
			if c.extra == nil {
				c.extra = map[string]json.RawMessage{}
			}
			c.extra[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type     string          `json:"type"`
		Name     string          `json:"name,omitempty"`
		CRS      json.RawMessage `json:"crs,omitempty"`
		Features []*Feature      `json:"features"`
	}
	known, err := json.Marshal(wire{c.Type, c.Name, c.CRS, c.Features})
	if err != nil {
		return nil, err
	}
	return spliceExtra(known, c.extra)
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for key, raw := range members {
		var err error
		switch key {
		case "type":
			err = json.Unmarshal(raw, &f.Type)
		case "id":
			err = json.Unmarshal(raw, &f.ID)
		case "properties":
			err = json.Unmarshal(raw, &f.Properties)
		case "geometry":
			err = json.Unmarshal(raw, &f.Geometry)
		default:
			if f.extra == nil {
				f.extra = map[string]json.RawMessage{}
			}
			f.extra[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Feature) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type       string         `json:"type"`
		ID         any            `json:"id,omitempty"`
		Properties map[string]any `json:"properties"`
		Geometry   *Geometry      `json:"geometry"`
	}
	known, err := json.Marshal(wire{f.Type, f.ID, f.Properties, f.Geometry})
	if err != nil {
		return nil, err
	}
	return spliceExtra(known, f.extra)
}

// spliceExtra appends the foreign members, in key order, inside the closing
// brace of an already-marshaled object.
func spliceExtra(obj []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(obj[:len(obj)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Geometry is a GeoJSON geometry object. Malformed coordinate arrays do not
// fail the decode of the surrounding collection; they leave the geometry
// marked malformed with the original bytes preserved for re-encoding. A
// GeometryCollection's geometries member round-trips as raw bytes; nothing
// in the pipeline descends into it.
type Geometry struct {
	Type        string
	Coordinates CoordTree

	raw        json.RawMessage
	geometries json.RawMessage
	malformed  bool
}

// Malformed reports whether the coordinate array failed to decode. Such a
// geometry contributes no positions but round-trips its original bytes.
func (g *Geometry) Malformed() bool { return g.malformed }

type geometryWire struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  json.RawMessage `json:"geometries,omitempty"`
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var wire geometryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	g.Type = wire.Type
	g.raw = wire.Coordinates
	g.geometries = wire.Geometries
	if len(wire.Coordinates) == 0 || string(wire.Coordinates) == "null" {
		g.Coordinates = CoordTree{}
		return nil
	}
	if err := json.Unmarshal(wire.Coordinates, &g.Coordinates); err != nil {
		g.Coordinates = CoordTree{}
		g.malformed = true
	}
	return nil
}

func (g *Geometry) MarshalJSON() ([]byte, error) {
	if g.malformed {
		return json.Marshal(geometryWire{Type: g.Type, Coordinates: g.raw, Geometries: g.geometries})
	}
	wire := geometryWire{Type: g.Type, Geometries: g.geometries}
	if !g.Coordinates.IsEmpty() || len(g.raw) > 0 {
		coords, err := g.Coordinates.MarshalJSON()
		if err != nil {
			return nil, err
		}
		wire.Coordinates = coords
	}
	return json.Marshal(wire)
}

// StringProp returns the named property as a string. Missing or non-string
// values return "".
func (f *Feature) StringProp(key string) string {
	if f.Properties == nil {
		return ""
	}
	s, _ := f.Properties[key].(string)
	return s
}

// SetProp sets a property, allocating the bag if needed.
func (f *Feature) SetProp(key string, value any) {
	if f.Properties == nil {
		f.Properties = map[string]any{}
	}
	f.Properties[key] = value
}

// DeleteProp removes a property and reports whether it was present.
func (f *Feature) DeleteProp(key string) bool {
	if f.Properties == nil {
		return false
	}
	if _, ok := f.Properties[key]; !ok {
		return false
	}
	delete(f.Properties, key)
	return true
}
