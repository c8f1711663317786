// Package shape imports ESRI shapefiles as GeoJSON feature collections so
// regional boundary data can enter the cleanup pipeline alongside hand-edited
// GeoJSON files. Attribute columns become feature properties; geometries go
// through go-geom so multi-part records keep their part structure.
package shape

import (
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/chronomaps/atlas-cli/internal/geojson"
)

// Import reads a shapefile and returns an equivalent GeoJSON collection.
// Records with unsupported or empty geometry are kept as coordinate-less
// features, matching how the pipeline treats features whose geometry never
// existed.
func Import(path string) (*geojson.Collection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "shape: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	coll := &geojson.Collection{
		Type: "FeatureCollection",
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	var degenerate int
	for reader.Next() {
		_, s := reader.Shape()

		props := make(map[string]any, len(names))
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val != "" {
				props[name] = val
			}
		}

		feat := &geojson.Feature{Type: "Feature", Properties: props}
		g := toGeom(s)
		if g == nil {
			degenerate++
		} else {
			feat.Geometry = fromGeom(g)
		}
		coll.Features = append(coll.Features, feat)
	}

	if degenerate > 0 {
		zap.L().Debug("shape: records imported without geometry",
			zap.String("file", filepath.Base(path)),
			zap.Int("count", degenerate),
		)
	}

	return coll, nil
}

// toGeom converts a go-shp geometry to a go-geom geometry. Returns nil for
// nil, unsupported or empty shapes.
func toGeom(s shp.Shape) geom.T {
	switch v := s.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{v.X, v.Y}).SetSRID(4326)
	case *shp.PolyLine:
		return polyLineToMultiLineString(v)
	case *shp.Polygon:
		return polygonToMultiPolygon(v)
	default:
		return nil
	}
}

// polyLineToMultiLineString converts a shapefile PolyLine, part by part.
func polyLineToMultiLineString(pl *shp.PolyLine) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY).SetSRID(4326)
	for i := int32(0); i < pl.NumParts; i++ {
		ls := geom.NewLineStringFlat(geom.XY, partCoords(pl.Points, pl.Parts, i, pl.NumParts))
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("shape: skipping malformed linestring part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}
	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

// polygonToMultiPolygon converts a shapefile Polygon. Each part becomes its
// own single-ring polygon; hole detection by winding order is out of scope
// for the boundary data this importer handles.
func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := int32(0); i < p.NumParts; i++ {
		ring := geom.NewLinearRingFlat(geom.XY, partCoords(p.Points, p.Parts, i, p.NumParts))
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("shape: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("shape: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// partCoords returns the flat XY coordinates for one part of a multi-part
// shapefile record.
func partCoords(points []shp.Point, parts []int32, i, numParts int32) []float64 {
	start := parts[i]
	end := int32(len(points))
	if i+1 < numParts {
		end = parts[i+1]
	}
	flat := make([]float64, 0, (end-start)*2)
	for j := start; j < end; j++ {
		flat = append(flat, points[j].X, points[j].Y)
	}
	return flat
}

// fromGeom renders a go-geom geometry as a GeoJSON geometry.
func fromGeom(g geom.T) *geojson.Geometry {
	switch v := g.(type) {
	case *geom.Point:
		return &geojson.Geometry{
			Type:        "Point",
			Coordinates: geojson.Position(v.Coords()...),
		}
	case *geom.MultiLineString:
		lines := make([]geojson.CoordTree, 0, v.NumLineStrings())
		for i := 0; i < v.NumLineStrings(); i++ {
			lines = append(lines, coordsTree(v.LineString(i).Coords()))
		}
		if len(lines) == 1 {
			return &geojson.Geometry{Type: "LineString", Coordinates: lines[0]}
		}
		return &geojson.Geometry{Type: "MultiLineString", Coordinates: geojson.Nest(lines...)}
	case *geom.MultiPolygon:
		polys := make([]geojson.CoordTree, 0, v.NumPolygons())
		for i := 0; i < v.NumPolygons(); i++ {
			poly := v.Polygon(i)
			rings := make([]geojson.CoordTree, 0, poly.NumLinearRings())
			for j := 0; j < poly.NumLinearRings(); j++ {
				rings = append(rings, coordsTree(poly.LinearRing(j).Coords()))
			}
			polys = append(polys, geojson.Nest(rings...))
		}
		if len(polys) == 1 {
			return &geojson.Geometry{Type: "Polygon", Coordinates: polys[0]}
		}
		return &geojson.Geometry{Type: "MultiPolygon", Coordinates: geojson.Nest(polys...)}
	default:
		return nil
	}
}

// coordsTree builds the coordinate tree for one ring or line.
func coordsTree(coords []geom.Coord) geojson.CoordTree {
	leaves := make([]geojson.CoordTree, 0, len(coords))
	for _, c := range coords {
		leaves = append(leaves, geojson.Position(c[0], c[1]))
	}
	return geojson.Nest(leaves...)
}
