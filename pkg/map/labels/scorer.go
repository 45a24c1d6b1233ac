package labels

import (
	"atlasgo/pkg/config"
	"atlasgo/pkg/geom"
)

// LabelWithCandidates is a label waiting for the deterministic pass.
type LabelWithCandidates struct {
	Label      Label
	Anchor     Anchor
	Candidates []Candidate
}

// CandidateScore breaks down the penalty of one candidate.
type CandidateScore struct {
	Candidate Candidate
	Fixed     float64
	Placed    float64
	Centered  float64
	Distance  float64
	Total     float64
}

// Scorer picks, for each label in turn, the cheapest of its candidates.
// Each label sees the final choices of the labels before it, so the result
// depends on input order.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a new Scorer.
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates every candidate of item against the fixed obstacles and
// the boxes of labels placed so far.
func (s *Scorer) Score(item LabelWithCandidates, fixed, placed []geom.Rect) []CandidateScore {
	scores := make([]CandidateScore, len(item.Candidates))
	anchor := item.Anchor.Point()

	for i, c := range item.Candidates {
		box := item.Label.At(c.X, c.Y).Box()
		sc := CandidateScore{Candidate: c}

		for _, r := range fixed {
			sc.Fixed += geom.RectOverlapArea(box, r) * s.cfg.FixedOverlap
		}
		for _, r := range placed {
			sc.Placed += geom.RectOverlapArea(box, r) * s.cfg.PlacedOverlap
		}
		if c.Position.Centered() {
			sc.Centered = s.cfg.Centered
		}
		sc.Distance = geom.Dist(box.Center(), anchor) * s.cfg.Distance

		sc.Total = sc.Fixed + sc.Placed + sc.Centered + sc.Distance
		scores[i] = sc
	}
	return scores
}

// Place runs the single deterministic pass. Ties go to the earlier
// candidate. Items without candidates keep their current position.
func (s *Scorer) Place(items []LabelWithCandidates, fixed []geom.Rect) []Placement {
	out := make([]Placement, len(items))
	placed := make([]geom.Rect, 0, len(items))

	for i, item := range items {
		best := -1
		var bestTotal float64
		for j, sc := range s.Score(item, fixed, placed) {
			if best < 0 || sc.Total < bestTotal {
				best, bestTotal = j, sc.Total
			}
		}

		if best < 0 {
			out[i] = Placement{X: item.Label.X, Y: item.Label.Y, Position: PositionNone}
		} else {
			c := item.Candidates[best]
			out[i] = Placement{X: c.X, Y: c.Y, Position: c.Position}
		}
		placed = append(placed, item.Label.At(out[i].X, out[i].Y).Box())
	}
	return out
}
