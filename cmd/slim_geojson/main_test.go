package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"atlasgo/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const naturalEarth = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"postal": "NE", "name": "Nebraska", "featurecla": "Admin-1 scale rank", "scalerank": 2},
   "geometry": {"type": "Polygon", "coordinates": [[[-104.053, 41.0], [-102.0517, 41.0021], [-102.0517, 40.0], [-95.3083, 40.0], [-95.7, 42.5], [-98.0, 43.0], [-104.0534, 43.0], [-104.053, 41.0]]]}},
  {"type": "Feature", "properties": {"postal": "KS", "name": "Kansas", "featurecla": "Admin-1 scale rank"},
   "geometry": {"type": "Polygon", "coordinates": [[[-102.0517, 37.0], [-94.6, 37.0], [-94.6, 40.0], [-102.0517, 40.0], [-102.0517, 37.0]]]}}
]}`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "states.geojson")
	require.NoError(t, os.WriteFile(input, []byte(naturalEarth), 0o644))

	tests := []struct {
		name  string
		opts  options
		codes []string
	}{
		{"All regions", options{threshold: 0.01, precision: 2}, []string{"NE", "KS"}},
		{"Keep filter", options{threshold: 0.01, precision: 2, keep: "KS, XX"}, []string{"KS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(dir, "slim.geojson")
			var buf bytes.Buffer
			require.NoError(t, run(input, output, tt.opts, &buf))
			assert.Contains(t, buf.String(), "reduction")

			regions, err := geo.LoadRegions(output)
			require.NoError(t, err)
			require.Len(t, regions, len(tt.codes))
			for i, code := range tt.codes {
				assert.Equal(t, code, regions[i].Code)
			}

			data, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.NotContains(t, string(data), "featurecla")
			assert.NotContains(t, string(data), "104.053,")

			if tt.codes[0] == "NE" {
				ring := regions[0].Geometry.(orb.Polygon)[0]
				assert.Contains(t, ring, orb.Point{-104.05, 43})
			}
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "nope.geojson"), filepath.Join(dir, "out.geojson"), options{}, &bytes.Buffer{})
	assert.Error(t, err)
}
