package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// SimplifyOptions controls region slimming.
type SimplifyOptions struct {
	Threshold float64 // Douglas-Peucker tolerance in source units; <= 0 skips simplification
	Precision int     // Decimal places kept after simplification; <= 0 keeps full precision
}

// Simplify returns copies of the regions with lighter geometry. Rings that
// collapse below four points are dropped, and a region that would lose all
// of its polygons keeps its original shape. The input is not modified.
func Simplify(regions []Region, opts SimplifyOptions) []Region {
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		if r.Geometry == nil {
			out = append(out, r)
			continue
		}
		g := orb.Clone(r.Geometry)
		if opts.Threshold > 0 {
			g = simplify.DouglasPeucker(opts.Threshold).Simplify(g)
			if pruned := pruneRings(g); pruned != nil {
				g = pruned
			} else {
				g = orb.Clone(r.Geometry)
			}
		}
		if opts.Precision > 0 {
			g = orb.Round(g, int(math.Pow10(opts.Precision)))
		}
		r.Geometry = g
		out = append(out, r)
	}
	return out
}

// pruneRings drops degenerate rings. It returns nil when nothing polygonal
// survives; non-polygonal geometry is passed through.
func pruneRings(g orb.Geometry) orb.Geometry {
	switch v := g.(type) {
	case orb.Polygon:
		if p := prunePolygon(v); p != nil {
			return p
		}
		return nil
	case orb.MultiPolygon:
		var mp orb.MultiPolygon
		for _, p := range v {
			if p = prunePolygon(p); p != nil {
				mp = append(mp, p)
			}
		}
		switch len(mp) {
		case 0:
			return nil
		case 1:
			return mp[0]
		}
		return mp
	}
	return g
}

func prunePolygon(p orb.Polygon) orb.Polygon {
	if len(p) == 0 || len(p[0]) < 4 {
		return nil
	}
	out := orb.Polygon{p[0]}
	for _, hole := range p[1:] {
		if len(hole) >= 4 {
			out = append(out, hole)
		}
	}
	return out
}
