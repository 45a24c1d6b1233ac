// Package geom holds the screen-space primitives used by label placement.
// Coordinates follow the rendered map: x grows right, y grows down.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r2"
)

// parallelTolerance is the denominator below which two segments are
// treated as parallel.
const parallelTolerance = 1e-4

// Point is a screen-space position.
type Point = r2.Vec

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside or on the border of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks the rectangle by d on every side. Negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Square returns the bounding square of a circle with radius rad around c.
func Square(c Point, rad float64) Rect {
	return Rect{X: c.X - rad, Y: c.Y - rad, W: 2 * rad, H: 2 * rad}
}

// RectOverlapArea returns the intersection area of a and b.
// Degenerate rectangles never overlap anything.
func RectOverlapArea(a, b Rect) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}
	dx := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
	if !(dx > 0) {
		return 0
	}
	dy := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)
	if !(dy > 0) {
		return 0
	}
	return dx * dy
}

// SegmentsIntersect reports whether segment p1-p2 crosses segment p3-p4.
// Parallel (and collinear) segments are reported as not intersecting.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := r2.Sub(p2, p1)
	d2 := r2.Sub(p4, p3)

	denom := r2.Cross(d1, d2)
	if math.Abs(denom) < parallelTolerance {
		return false
	}

	w := r2.Sub(p3, p1)
	ua := r2.Cross(w, d2) / denom
	ub := r2.Cross(w, d1) / denom

	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// SegmentIntersectsRect reports whether segment p1-p2 crosses any edge of r.
// A segment lying completely inside r touches no edge and is not reported.
func SegmentIntersectsRect(p1, p2 Point, r Rect) bool {
	if r.Empty() {
		return false
	}
	tl := Point{X: r.X, Y: r.Y}
	tr := Point{X: r.X + r.W, Y: r.Y}
	br := Point{X: r.X + r.W, Y: r.Y + r.H}
	bl := Point{X: r.X, Y: r.Y + r.H}

	return SegmentsIntersect(p1, p2, tl, tr) ||
		SegmentsIntersect(p1, p2, tr, br) ||
		SegmentsIntersect(p1, p2, br, bl) ||
		SegmentsIntersect(p1, p2, bl, tl)
}

// PointInPolygon reports whether p lies inside the ring described by poly.
// The ring does not need to be closed. Fewer than three vertices never
// contain anything.
func PointInPolygon(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	ring := make(orb.Ring, 0, len(poly)+1)
	for _, v := range poly {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	if !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return planar.RingContains(ring, orb.Point{p.X, p.Y})
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Rotate turns p by angle radians about pivot. A point sitting on the pivot
// is returned unchanged.
func Rotate(p, pivot Point, angle float64) Point {
	if p == pivot || angle == 0 {
		return p
	}
	return r2.NewRotation(angle, pivot).Rotate(p)
}
