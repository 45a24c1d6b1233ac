package geo

import (
	"testing"

	"atlasgo/pkg/geom"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func square(x, y, size float64) orb.Ring {
	return orb.Ring{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}
}

func testRegions() []Region {
	return []Region{
		{Code: "A", Name: "Alpha", Geometry: orb.Polygon{square(0, 0, 10)}},
		// B has a hole where C sits
		{Code: "B", Name: "Beta", Geometry: orb.Polygon{square(20, 0, 10), square(23, 3, 4)}},
		{Code: "C", Name: "Gamma", Geometry: orb.Polygon{square(23, 3, 4)}},
		{Code: "D", Name: "Delta", Geometry: orb.MultiPolygon{{square(40, 0, 5)}, {square(50, 0, 5)}}},
		{Code: "A", Name: "Duplicate", Geometry: orb.Polygon{square(100, 100, 10)}},
		{Code: "P", Name: "Point only", Geometry: orb.Point{5, 5}},
	}
}

func TestRegionIndex_Locate(t *testing.T) {
	idx := NewRegionIndex(testRegions())

	tests := []struct {
		name     string
		p        geom.Point
		wantCode string
		wantOK   bool
	}{
		{"Inside square", geom.Point{X: 5, Y: 5}, "A", true},
		{"Outside everything", geom.Point{X: 15, Y: 5}, "", false},
		{"Ring around hole", geom.Point{X: 21, Y: 1}, "B", true},
		{"In the hole", geom.Point{X: 25, Y: 5}, "C", true},
		{"Second polygon of multi", geom.Point{X: 52, Y: 2}, "D", true},
		{"Between multi parts", geom.Point{X: 47, Y: 2}, "", false},
		{"Duplicate code ignored", geom.Point{X: 105, Y: 105}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := idx.Locate(tt.p)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}

	assert.Equal(t, 4, idx.Len())
	r, ok := idx.Region("A")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", r.Name)
	_, ok = idx.Region("P")
	assert.False(t, ok, "non-polygonal regions are not indexed")
}

func TestRegionIndex_Tolerance(t *testing.T) {
	idx := NewRegionIndex(testRegions(), WithTolerance(1.5))

	tests := []struct {
		name     string
		p        geom.Point
		wantCode string
		wantOK   bool
	}{
		{"Just off the coast", geom.Point{X: 11, Y: 5}, "A", true},
		{"Closer to B", geom.Point{X: 19, Y: 5}, "B", true},
		{"Too far", geom.Point{X: 15, Y: 5}, "", false},
		{"Inside still wins", geom.Point{X: 9.5, Y: 5}, "A", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := idx.Locate(tt.p)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRegionIndex_Nil(t *testing.T) {
	var idx *RegionIndex

	code, ok := idx.Locate(geom.Point{X: 1, Y: 1})
	assert.False(t, ok)
	assert.Empty(t, code)
	assert.Zero(t, idx.Len())

	_, ok = idx.Region("A")
	assert.False(t, ok)
}
