package labels

import (
	"errors"

	"atlasgo/pkg/geom"
)

// Contract violations reported by the placement engines.
var (
	ErrMismatchedInput = errors.New("labels and anchors differ in length")
	ErrInvalidBounds   = errors.New("placement bounds must be positive")
)

// Anchor is the fixed marker a label belongs to (city dot, capital star,
// region centroid). R is the visual radius of the marker.
type Anchor struct {
	X       float64
	Y       float64
	R       float64
	ID      string // e.g. region code or city id
	Name    string
	Capital bool
}

// Point returns the anchor position.
func (a Anchor) Point() geom.Point {
	return geom.Point{X: a.X, Y: a.Y}
}

// Marker returns the square footprint of the anchor's marker.
func (a Anchor) Marker() geom.Rect {
	return geom.Square(a.Point(), a.R)
}

// Label is a measured piece of text. X,Y is the lower-left baseline corner;
// only X and Y change during placement.
type Label struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Text   string
}

// Point returns the label's reference corner.
func (l Label) Point() geom.Point {
	return geom.Point{X: l.X, Y: l.Y}
}

// Box returns the rectangle covered by the label text.
func (l Label) Box() geom.Rect {
	return geom.Rect{X: l.X, Y: l.Y - l.Height, W: l.Width, H: l.Height}
}

// At returns a copy of the label moved to x,y.
func (l Label) At(x, y float64) Label {
	l.X, l.Y = x, y
	return l
}

// Entry pairs a label with the anchor it describes.
type Entry struct {
	Anchor Anchor
	Label  Label
}

// DisplayName is the name the entry is known by on the map.
func (e Entry) DisplayName() string {
	if e.Anchor.Name != "" {
		return e.Anchor.Name
	}
	return e.Label.Text
}

// Position identifies one of the eight canonical label placements around
// an anchor. The numeric values are part of the output contract.
type Position int

const (
	PositionRight Position = iota
	PositionLeft
	PositionTopRight
	PositionTopLeft
	PositionTopCenter
	PositionBottomRight
	PositionBottomLeft
	PositionBottomCenter

	// PositionNone marks a label that sits on its anchor or was never placed.
	PositionNone Position = -1
)

var positionNames = [...]string{
	"right", "left", "top-right", "top-left", "top-center",
	"bottom-right", "bottom-left", "bottom-center",
}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return "none"
	}
	return positionNames[p]
}

// Centered reports whether the position sits directly above or below the anchor.
func (p Position) Centered() bool {
	return p == PositionTopCenter || p == PositionBottomCenter
}

// Candidate is a proposed label position.
type Candidate struct {
	X        float64
	Y        float64
	Position Position
}

// Placement is the final position chosen for a label.
type Placement struct {
	X        float64
	Y        float64
	Position Position
}

// Bounds is the drawable area; labels are kept within [0,Width]x[0,Height].
type Bounds struct {
	Width  float64
	Height float64
}

func (b Bounds) contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

func (b Bounds) clamp(x, y float64) (float64, float64) {
	return min(max(x, 0), b.Width), min(max(y, 0), b.Height)
}
