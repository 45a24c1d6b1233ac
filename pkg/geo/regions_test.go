package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"postal": "NE", "name": "Nebraska"},
      "geometry": {"type": "Polygon", "coordinates": [[[-104, 40], [-95.3, 40], [-95.3, 43], [-104, 43], [-104, 40]]]}
    },
    {
      "type": "Feature",
      "properties": {"ISO_A2": "-99", "ISO_A2_EH": "FR", "NAME": "France"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[-5, 42], [8, 42], [8, 51], [-5, 51], [-5, 42]]], [[[8.5, 41.3], [9.6, 41.3], [9.6, 43], [8.5, 43], [8.5, 41.3]]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "No code at all"},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}
    },
    {
      "type": "Feature",
      "id": "XX",
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [3, 3]}
    }
  ]
}`

func TestParseRegions(t *testing.T) {
	regions, err := ParseRegions([]byte(statesGeoJSON))
	require.NoError(t, err)
	require.Len(t, regions, 3)

	tests := []struct {
		code, name string
		polygonal  bool
	}{
		{"NE", "Nebraska", true},
		{"FR", "France", true},
		{"XX", "XX", false},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.code, regions[i].Code)
		assert.Equal(t, tt.name, regions[i].Name)
		assert.Equal(t, tt.polygonal, regions[i].Polygonal(), tt.code)
	}

	_, ok := regions[1].Geometry.(orb.MultiPolygon)
	assert.True(t, ok)
}

func TestParseRegions_Invalid(t *testing.T) {
	_, err := ParseRegions([]byte(`{"type": "FeatureCollection", "features": [`))
	assert.Error(t, err)
}

func TestLoadRegions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "states.geojson")
	require.NoError(t, os.WriteFile(path, []byte(statesGeoJSON), 0o644))

	regions, err := LoadRegions(path)
	require.NoError(t, err)
	assert.Len(t, regions, 3)

	_, err = LoadRegions(filepath.Join(dir, "missing.geojson"))
	assert.Error(t, err)
}

func TestRegionsToFeatures(t *testing.T) {
	regions, err := ParseRegions([]byte(statesGeoJSON))
	require.NoError(t, err)
	regions = append(regions, Region{Code: "NIL"})

	fc := RegionsToFeatures(regions)
	require.Len(t, fc.Features, 3)

	back := RegionsFromFeatures(fc)
	for i := range back {
		assert.Equal(t, regions[i].Code, back[i].Code)
		assert.Equal(t, regions[i].Name, back[i].Name)
	}
}

func TestGetStringProp(t *testing.T) {
	props := map[string]interface{}{
		"s":   "text",
		"f":   42.0,
		"b":   true,
		"neg": "-99",
	}
	assert.Equal(t, "text", getStringProp(props, "s"))
	assert.Equal(t, "42", getStringProp(props, "f"))
	assert.Equal(t, "", getStringProp(props, "b"))
	assert.Equal(t, "", getStringProp(props, "missing"))
	assert.Equal(t, "text", firstStringProp(props, "neg", "missing", "s"))
}
