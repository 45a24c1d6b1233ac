package geo

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadShapefileRegions reads regions from a shapefile; attributes from the
// .dbf next to it supply codes and names.
func LoadShapefileRegions(path string) ([]Region, error) {
	fc, err := ReadShapefile(path)
	if err != nil {
		return nil, err
	}
	regions := RegionsFromFeatures(fc)
	slog.Debug("Loaded shapefile regions", "path", path, "shapes", len(fc.Features), "regions", len(regions))
	return regions, nil
}

// ReadShapefile converts every supported shape of a shapefile into a GeoJSON
// feature carrying the record's attributes as properties.
func ReadShapefile(path string) (*geojson.FeatureCollection, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = f.String()
	}

	fc := geojson.NewFeatureCollection()

	for shape.Next() {
		n, p := shape.Shape()

		var geometry orb.Geometry

		switch s := p.(type) {
		case *shp.Null:
			continue
		case *shp.PolyLine:
			geometry = convertPolyLine(s)
		case *shp.Polygon:
			geometry = convertPolygon(s)
		case *shp.Point:
			geometry = orb.Point{s.X, s.Y}
		default:
			slog.Warn("Skipping unsupported shape type", "type", fmt.Sprintf("%T", p), "record", n)
			continue
		}

		f := geojson.NewFeature(geometry)
		for i, name := range fieldNames {
			f.Properties[name] = strings.TrimRight(shape.ReadAttribute(n, i), "\x00 ")
		}
		fc.Append(f)
	}

	if err := shape.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shapes: %w", err)
	}
	return fc, nil
}

// partPoints returns the points of each part of a multi-part shape.
func partPoints(numParts int32, parts []int32, points []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, numParts)
	for i := 0; i < int(numParts); i++ {
		start := parts[i]
		end := int32(len(points))
		if i < int(numParts)-1 {
			end = parts[i+1]
		}

		line := make([]orb.Point, 0, end-start)
		for j := start; j < end; j++ {
			line = append(line, orb.Point{points[j].X, points[j].Y})
		}
		out = append(out, line)
	}
	return out
}

func convertPolyLine(s *shp.PolyLine) orb.MultiLineString {
	var multiline orb.MultiLineString
	for _, line := range partPoints(s.NumParts, s.Parts, s.Points) {
		multiline = append(multiline, orb.LineString(line))
	}
	return multiline
}

// convertPolygon groups shapefile rings into polygons. Outer rings are
// clockwise; each counter-clockwise ring is a hole of the outer ring before
// it.
func convertPolygon(s *shp.Polygon) orb.Geometry {
	var polys orb.MultiPolygon

	for _, pts := range partPoints(s.NumParts, s.Parts, s.Points) {
		ring := orb.Ring(pts)
		if len(ring) < 3 {
			continue
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}

		if ring.Orientation() == orb.CCW && len(polys) > 0 {
			last := len(polys) - 1
			polys[last] = append(polys[last], ring)
			continue
		}
		polys = append(polys, orb.Polygon{ring})
	}

	if len(polys) == 1 {
		return polys[0]
	}
	return polys
}
