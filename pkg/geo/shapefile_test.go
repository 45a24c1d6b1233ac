package geo

import (
	"path/filepath"
	"testing"

	"atlasgo/pkg/geom"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeShapefile writes two states: one with a hole, one made of two islands.
func writeShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "states.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("postal", 8),
		shp.StringField("name", 24),
	}))

	// Outer rings clockwise, holes counter-clockwise.
	withHole := shp.Polygon(*shp.NewPolyLine([][]shp.Point{
		{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}},
		{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 2}},
	}))
	islands := shp.Polygon(*shp.NewPolyLine([][]shp.Point{
		{{X: 20, Y: 0}, {X: 20, Y: 5}, {X: 25, Y: 5}, {X: 25, Y: 0}, {X: 20, Y: 0}},
		{{X: 30, Y: 0}, {X: 30, Y: 5}, {X: 35, Y: 5}, {X: 35, Y: 0}, {X: 30, Y: 0}},
	}))

	w.Write(&withHole)
	require.NoError(t, w.WriteAttribute(0, 0, "WH"))
	require.NoError(t, w.WriteAttribute(0, 1, "With Hole"))
	w.Write(&islands)
	require.NoError(t, w.WriteAttribute(1, 0, "IS"))
	require.NoError(t, w.WriteAttribute(1, 1, "Islands"))
	w.Close()

	return path
}

func TestLoadShapefileRegions(t *testing.T) {
	path := writeShapefile(t)

	regions, err := LoadRegions(path)
	require.NoError(t, err)
	require.Len(t, regions, 2)

	assert.Equal(t, "WH", regions[0].Code)
	assert.Equal(t, "With Hole", regions[0].Name)
	poly, ok := regions[0].Geometry.(orb.Polygon)
	require.True(t, ok, "got %T", regions[0].Geometry)
	assert.Len(t, poly, 2, "outer ring plus hole")

	assert.Equal(t, "IS", regions[1].Code)
	multi, ok := regions[1].Geometry.(orb.MultiPolygon)
	require.True(t, ok, "got %T", regions[1].Geometry)
	assert.Len(t, multi, 2, "two islands")

	idx := NewRegionIndex(regions)
	code, ok := idx.Locate(geom.Point{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, "WH", code)

	_, ok = idx.Locate(geom.Point{X: 3, Y: 3})
	assert.False(t, ok, "the hole is not part of the region")

	code, ok = idx.Locate(geom.Point{X: 32, Y: 2})
	assert.True(t, ok)
	assert.Equal(t, "IS", code)
}

func TestReadShapefile_Missing(t *testing.T) {
	_, err := ReadShapefile(filepath.Join(t.TempDir(), "missing.shp"))
	assert.Error(t, err)
}
