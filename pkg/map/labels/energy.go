package labels

import (
	"atlasgo/pkg/config"
	"atlasgo/pkg/geom"

	"gonum.org/v1/gonum/floats"
)

// layout is the mutable state of one annealing run.
type layout struct {
	labels  []Label
	anchors []Anchor
	fixed   []geom.Rect
	w       config.EnergyWeights
}

// energy scores label i against everything else; lower is better.
func (s *layout) energy(i int) float64 {
	lab := s.labels[i]
	anc := s.anchors[i]
	box := lab.Box()
	leaderFrom := anc.Point()
	leaderTo := lab.Point()

	var e float64

	if s.w.LeaderLength > 0 {
		e += geom.Dist(leaderFrom, leaderTo) * s.w.LeaderLength
	}

	for j := range s.labels {
		if j == i {
			continue
		}
		if s.w.LeaderCrossing > 0 &&
			geom.SegmentsIntersect(leaderFrom, leaderTo, s.anchors[j].Point(), s.labels[j].Point()) {
			e += s.w.LeaderCrossing
		}
		if s.w.LabelLabel > 0 {
			e += geom.RectOverlapArea(box, s.labels[j].Box()) * s.w.LabelLabel
		}
	}

	if s.w.LabelAnchor > 0 {
		for _, a := range s.anchors {
			e += geom.RectOverlapArea(box, a.Marker()) * s.w.LabelAnchor
		}
	}

	for _, r := range s.fixed {
		if s.w.LabelFixed > 0 {
			e += geom.RectOverlapArea(box, r) * s.w.LabelFixed
		}
		if s.w.LeaderFixed > 0 && geom.SegmentIntersectsRect(leaderFrom, leaderTo, r) {
			e += s.w.LeaderFixed
		}
	}

	return e
}

// total sums the energy of every label. Pairwise terms are counted from
// both sides.
func (s *layout) total() float64 {
	per := make([]float64, len(s.labels))
	for i := range s.labels {
		per[i] = s.energy(i)
	}
	return floats.Sum(per)
}
