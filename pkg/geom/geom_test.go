package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"Disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, 0},
		{"Touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
		{"Partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, 25},
		{"Contained", Rect{0, 0, 10, 10}, Rect{2, 2, 3, 4}, 12},
		{"Identical", Rect{1, 1, 4, 4}, Rect{1, 1, 4, 4}, 16},
		{"Zero width", Rect{0, 0, 0, 10}, Rect{0, 0, 10, 10}, 0},
		{"Negative height", Rect{0, 0, 10, -5}, Rect{0, -5, 10, 10}, 0},
		{"NaN dimension", Rect{0, 0, math.NaN(), 10}, Rect{0, 0, 10, 10}, 0},
		{"Region labels from scenario", Rect{100, 100, 40, 10}, Rect{110, 105, 40, 10}, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectOverlapArea(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, got, RectOverlapArea(tt.b, tt.a), 1e-9, "overlap must be symmetric")
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Point
		want           bool
	}{
		{"Crossing X", Point{X: 0, Y: 0}, Point{X: 10, Y: 10}, Point{X: 0, Y: 10}, Point{X: 10, Y: 0}, true},
		{"Shared endpoint", Point{X: 0, Y: 0}, Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, Point{X: 10, Y: 0}, true},
		{"Disjoint", Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 5, Y: 0}, Point{X: 6, Y: 1}, false},
		{"Would cross if extended", Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 0, Y: 10}, Point{X: 10, Y: 0}, false},
		{"Parallel", Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, Point{X: 0, Y: 1}, Point{X: 10, Y: 1}, false},
		{"Collinear overlap", Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, Point{X: 5, Y: 0}, Point{X: 15, Y: 0}, false},
		{"Zero length", Point{X: 3, Y: 3}, Point{X: 3, Y: 3}, Point{X: 0, Y: 0}, Point{X: 10, Y: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsIntersect(tt.p1, tt.p2, tt.p3, tt.p4))
		})
	}
}

func TestSegmentIntersectsRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 10, H: 10}

	assert.True(t, SegmentIntersectsRect(Point{X: 0, Y: 15}, Point{X: 30, Y: 15}, r), "passes through")
	assert.True(t, SegmentIntersectsRect(Point{X: 0, Y: 0}, Point{X: 15, Y: 15}, r), "ends inside")
	assert.False(t, SegmentIntersectsRect(Point{X: 12, Y: 12}, Point{X: 18, Y: 18}, r), "fully inside")
	assert.False(t, SegmentIntersectsRect(Point{X: 0, Y: 0}, Point{X: 30, Y: 0}, r), "passes above")
	assert.False(t, SegmentIntersectsRect(Point{X: 0, Y: 15}, Point{X: 30, Y: 15}, Rect{}), "empty rect")
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	concave := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 5}, {X: 0, Y: 10}}

	tests := []struct {
		name string
		p    Point
		poly []Point
		want bool
	}{
		{"Inside square", Point{X: 5, Y: 5}, square, true},
		{"Outside square", Point{X: 15, Y: 5}, square, false},
		{"Inside concave", Point{X: 2, Y: 2}, concave, true},
		{"In concave notch", Point{X: 5, Y: 8}, concave, false},
		{"Degenerate", Point{X: 0, Y: 0}, square[:2], false},
		{"Closed ring", Point{X: 5, Y: 5}, append(append([]Point{}, square...), square[0]), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInPolygon(tt.p, tt.poly))
		})
	}
}

func TestRotate(t *testing.T) {
	pivot := Point{X: 10, Y: 10}

	got := Rotate(Point{X: 20, Y: 10}, pivot, math.Pi/2)
	assert.InDelta(t, 10.0, got.X, 1e-9)
	assert.InDelta(t, 20.0, got.Y, 1e-9)

	// Rotation keeps the distance to the pivot.
	p := Point{X: 13, Y: 4}
	assert.InDelta(t, Dist(p, pivot), Dist(Rotate(p, pivot, 0.7), pivot), 1e-9)

	// Nothing to rotate when the point sits on the pivot.
	assert.Equal(t, pivot, Rotate(pivot, pivot, 1.2))
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 4}

	assert.Equal(t, Point{X: 5, Y: 2}, r.Center())
	assert.True(t, r.Contains(Point{X: 10, Y: 4}))
	assert.False(t, r.Contains(Point{X: 11, Y: 4}))
	assert.Equal(t, Rect{X: 1, Y: 1, W: 8, H: 2}, r.Inset(1))
	assert.Equal(t, Rect{X: 3, Y: 3, W: 4, H: 4}, Square(Point{X: 5, Y: 5}, 2))
	assert.True(t, Rect{W: 0, H: 5}.Empty())
}
