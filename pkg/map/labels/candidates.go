package labels

import (
	"atlasgo/pkg/config"
)

// offsetFactor scales gap+radius into the distance between marker centre
// and the nearest label edge.
const offsetFactor = 0.8

// CandidateGenerator produces the eight fixed label positions around an anchor.
type CandidateGenerator struct {
	cfg config.CandidatesConfig
}

// NewCandidateGenerator creates a generator for the given marker geometry.
func NewCandidateGenerator(cfg config.CandidatesConfig) *CandidateGenerator {
	return &CandidateGenerator{cfg: cfg}
}

// Radius returns the marker radius used for a. Anchors without a radius
// get the configured city or capital radius.
func (g *CandidateGenerator) Radius(a Anchor, primary bool) float64 {
	if a.R > 0 {
		return a.R
	}
	if primary {
		return g.cfg.CapitalRadius
	}
	return g.cfg.CityRadius
}

// Offset returns the distance between the anchor and the label edge.
// It never drops below the marker radius, so no candidate covers the marker.
func (g *CandidateGenerator) Offset(a Anchor, primary bool) float64 {
	r := g.Radius(a, primary)
	return max((g.cfg.Gap+r)*offsetFactor, r)
}

// Generate returns the eight candidates for a label of the given size, in
// Position order. Negative sizes are treated as zero.
func (g *CandidateGenerator) Generate(a Anchor, width, height float64, primary bool) []Candidate {
	w := max(width, 0)
	h := max(height, 0)
	off := g.Offset(a, primary)

	right := a.X + off
	left := a.X - off - w
	center := a.X - w/2
	above := a.Y - off
	below := a.Y + off + h
	middle := a.Y + h/2

	return []Candidate{
		{X: right, Y: middle, Position: PositionRight},
		{X: left, Y: middle, Position: PositionLeft},
		{X: right, Y: above, Position: PositionTopRight},
		{X: left, Y: above, Position: PositionTopLeft},
		{X: center, Y: above, Position: PositionTopCenter},
		{X: right, Y: below, Position: PositionBottomRight},
		{X: left, Y: below, Position: PositionBottomLeft},
		{X: center, Y: below, Position: PositionBottomCenter},
	}
}

// Classify maps a label to the canonical position it occupies relative to
// its anchor. Labels covering the anchor on both axes get PositionNone.
func Classify(a Anchor, l Label) Position {
	box := l.Box()

	var col int // -1 left, 0 center, 1 right
	switch {
	case box.X >= a.X:
		col = 1
	case box.X+box.W <= a.X:
		col = -1
	}

	var row int // -1 above, 0 middle, 1 below
	switch {
	case box.Y+box.H <= a.Y:
		row = -1
	case box.Y >= a.Y:
		row = 1
	}

	switch {
	case row == 0 && col == 1:
		return PositionRight
	case row == 0 && col == -1:
		return PositionLeft
	case row == -1 && col == 1:
		return PositionTopRight
	case row == -1 && col == -1:
		return PositionTopLeft
	case row == -1:
		return PositionTopCenter
	case row == 1 && col == 1:
		return PositionBottomRight
	case row == 1 && col == -1:
		return PositionBottomLeft
	case row == 1:
		return PositionBottomCenter
	}
	return PositionNone
}
