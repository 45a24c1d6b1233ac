package geo

import (
	"atlasgo/pkg/geom"

	"github.com/paulmach/orb"
)

type indexedRegion struct {
	region Region
	bound  orb.Bound
}

// RegionIndex answers which region a point falls into. It is built once per
// render and is read-only afterwards.
type RegionIndex struct {
	regions   []indexedRegion
	byCode    map[string]int
	tolerance float64
}

// IndexOption customises a RegionIndex.
type IndexOption func(*RegionIndex)

// WithTolerance lets points up to d outside every region snap to the nearest
// one. Coastal capitals often sit just off a simplified outline.
func WithTolerance(d float64) IndexOption {
	return func(idx *RegionIndex) {
		idx.tolerance = d
	}
}

// NewRegionIndex indexes the polygonal regions; others are ignored. When two
// regions share a code the first one wins.
func NewRegionIndex(regions []Region, opts ...IndexOption) *RegionIndex {
	idx := &RegionIndex{byCode: make(map[string]int, len(regions))}
	for _, opt := range opts {
		opt(idx)
	}

	for _, r := range regions {
		if !r.Polygonal() {
			continue
		}
		if _, dup := idx.byCode[r.Code]; dup {
			continue
		}
		idx.byCode[r.Code] = len(idx.regions)
		idx.regions = append(idx.regions, indexedRegion{region: r, bound: r.Geometry.Bound()})
	}
	return idx
}

// Len returns the number of indexed regions.
func (idx *RegionIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.regions)
}

// Region returns the indexed region with the given code.
func (idx *RegionIndex) Region(code string) (Region, bool) {
	if idx == nil {
		return Region{}, false
	}
	i, ok := idx.byCode[code]
	if !ok {
		return Region{}, false
	}
	return idx.regions[i].region, true
}

// Locate returns the code of the region containing p. A nil index locates
// nothing.
func (idx *RegionIndex) Locate(p geom.Point) (string, bool) {
	if idx == nil {
		return "", false
	}
	point := orb.Point{p.X, p.Y}

	for _, ir := range idx.regions {
		// Fast bounding box check
		if !ir.bound.Contains(point) {
			continue
		}
		if containsPoint(ir.region.Geometry, point) {
			return ir.region.Code, true
		}
	}

	if idx.tolerance <= 0 {
		return "", false
	}

	best, bestDist := -1, 0.0
	for i, ir := range idx.regions {
		if !ir.bound.Pad(idx.tolerance).Contains(point) {
			continue
		}
		d := distanceToGeometry(point, ir.region.Geometry)
		if d <= idx.tolerance && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return "", false
	}
	return idx.regions[best].region.Code, true
}
