package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Border is the boundary two regions have in common.
type Border struct {
	A, B     string // region codes, A listed first in the input
	Geometry orb.MultiLineString
}

type segmentKey [4]float64

// key identifies an edge regardless of its direction.
func key(a, b orb.Point) segmentKey {
	if b[0] < a[0] || (b[0] == a[0] && b[1] < a[1]) {
		a, b = b, a
	}
	return segmentKey{a[0], a[1], b[0], b[1]}
}

func rings(g orb.Geometry) []orb.Ring {
	switch g := g.(type) {
	case orb.Polygon:
		return g
	case orb.MultiPolygon:
		var out []orb.Ring
		for _, p := range g {
			out = append(out, p...)
		}
		return out
	}
	return nil
}

// SharedBorders finds, for every pair of polygonal regions, the edges they
// have in common. Neighbouring regions cut from the same dataset share their
// vertices exactly, so edges are matched by their endpoints. Consecutive
// shared edges are joined into one line.
func SharedBorders(regions []Region) []Border {
	owners := make(map[segmentKey][]int)
	for i, r := range regions {
		seen := make(map[segmentKey]bool)
		for _, ring := range rings(r.Geometry) {
			for k := 0; k+1 < len(ring); k++ {
				sk := key(ring[k], ring[k+1])
				if ring[k] == ring[k+1] || seen[sk] {
					continue
				}
				seen[sk] = true
				owners[sk] = append(owners[sk], i)
			}
		}
	}

	var borders []Border
	for i, r := range regions {
		lines := make(map[int]orb.MultiLineString)
		var order []int

		for _, ring := range rings(r.Geometry) {
			open := make(map[int]bool) // whether the last edge of this ring extended a line for j
			for k := 0; k+1 < len(ring); k++ {
				a, b := ring[k], ring[k+1]
				if a == b {
					continue
				}
				shared := make(map[int]bool)
				for _, j := range owners[key(a, b)] {
					if j <= i {
						continue
					}
					shared[j] = true
					if _, ok := lines[j]; !ok {
						order = append(order, j)
					}
					ml := lines[j]
					if open[j] && len(ml) > 0 && ml[len(ml)-1][len(ml[len(ml)-1])-1] == a {
						ml[len(ml)-1] = append(ml[len(ml)-1], b)
					} else {
						ml = append(ml, orb.LineString{a, b})
					}
					lines[j] = ml
				}
				for j := range open {
					if !shared[j] {
						delete(open, j)
					}
				}
				for j := range shared {
					open[j] = true
				}
			}
		}

		for _, j := range order {
			borders = append(borders, Border{A: r.Code, B: regions[j].Code, Geometry: lines[j]})
		}
	}
	return borders
}

// BordersToFeatures encodes borders as GeoJSON line features.
func BordersToFeatures(borders []Border) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, b := range borders {
		f := geojson.NewFeature(b.Geometry)
		f.Properties["region1"] = b.A
		f.Properties["region2"] = b.B
		fc.Append(f)
	}
	return fc
}
