package geo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property keys probed, in order, for a region's code and display name.
// They cover Natural Earth admin-0/admin-1 exports and plain hand-made files.
var (
	codeKeys = []string{"code", "postal", "STUSPS", "iso_3166_2", "ISO_A2", "iso_a2", "ISO_A2_EH", "iso_a2_eh", "id"}
	nameKeys = []string{"name", "NAME", "name_en", "NAME_EN", "ADMIN", "admin"}
)

// Region is one labelled area of the map (a country or a state).
type Region struct {
	Code     string
	Name     string
	Geometry orb.Geometry // lon/lat until projected; nil when the source had none
}

// Polygonal reports whether the region has an area that points can fall into.
func (r Region) Polygonal() bool {
	switch g := r.Geometry.(type) {
	case orb.Polygon:
		return len(g) > 0
	case orb.MultiPolygon:
		return len(g) > 0
	}
	return false
}

// LoadRegions reads regions from a GeoJSON file or, for a .shp path, from a
// shapefile.
func LoadRegions(path string) ([]Region, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return LoadShapefileRegions(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions %s: %w", path, err)
	}
	regions, err := ParseRegions(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regions %s: %w", path, err)
	}

	slog.Debug("Loaded regions", "path", path, "count", len(regions))
	return regions, nil
}

// ParseRegions decodes a GeoJSON FeatureCollection into regions.
func ParseRegions(data []byte) ([]Region, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	return RegionsFromFeatures(fc), nil
}

// RegionsFromFeatures converts features into regions. Features without a
// code are skipped; they cannot be referenced by a map.
func RegionsFromFeatures(fc *geojson.FeatureCollection) []Region {
	regions := make([]Region, 0, len(fc.Features))
	for i, f := range fc.Features {
		code := firstStringProp(f.Properties, codeKeys...)
		if code == "" {
			if id, ok := f.ID.(string); ok {
				code = id
			}
		}
		if code == "" {
			slog.Debug("Skipping region without code", "index", i)
			continue
		}

		name := firstStringProp(f.Properties, nameKeys...)
		if name == "" {
			name = code
		}
		regions = append(regions, Region{Code: code, Name: name, Geometry: f.Geometry})
	}
	return regions
}

// RegionsToFeatures is the inverse of RegionsFromFeatures. Regions without
// geometry are left out.
func RegionsToFeatures(regions []Region) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range regions {
		if r.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(r.Geometry)
		f.Properties["code"] = r.Code
		f.Properties["name"] = r.Name
		fc.Append(f)
	}
	return fc
}
