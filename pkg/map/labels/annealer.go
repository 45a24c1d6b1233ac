package labels

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"atlasgo/pkg/config"
	"atlasgo/pkg/geom"
	"atlasgo/pkg/logging"
)

// initialTemperature is where every run starts cooling from.
const initialTemperature = 1.0

// MoveKind is the kind of perturbation tried on a label.
type MoveKind int

const (
	MoveTranslate MoveKind = iota
	MoveRotate
)

func (m MoveKind) String() string {
	if m == MoveRotate {
		return "rotate"
	}
	return "translate"
}

// Step describes one proposal of an annealing run.
type Step struct {
	Sweep       int
	Label       int
	Move        MoveKind
	Temperature float64
	Delta       float64 // energy change of the proposal; 0 when out of bounds
	Accepted    bool
	OutOfBounds bool
}

// Stats summarises an annealing run.
type Stats struct {
	Seed          uint64
	Sweeps        int
	Proposed      int
	Accepted      int
	Rejected      int
	OutOfBounds   int
	InitialEnergy float64
	FinalEnergy   float64
}

// Annealer places labels by simulated annealing. It holds configuration
// only; every Place call runs on freshly built state.
type Annealer struct {
	cfg      config.AnnealConfig
	observer func(Step)
}

// AnnealerOption customises an Annealer.
type AnnealerOption func(*Annealer)

// WithObserver registers fn to receive every proposal.
func WithObserver(fn func(Step)) AnnealerOption {
	return func(a *Annealer) {
		a.observer = fn
	}
}

// NewAnnealer validates cfg and returns an Annealer.
func NewAnnealer(cfg config.AnnealConfig, opts ...AnnealerOption) (*Annealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid anneal config: %w", err)
	}
	a := &Annealer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Place anneals the labels around their anchors (labels[i] belongs to
// anchors[i]) while avoiding the fixed rectangles. The inputs are not
// modified; the returned slice holds the final positions.
func (a *Annealer) Place(labels []Label, anchors []Anchor, fixed []geom.Rect, bounds Bounds) ([]Label, Stats, error) {
	if len(labels) != len(anchors) {
		return nil, Stats{}, fmt.Errorf("%w: %d labels, %d anchors", ErrMismatchedInput, len(labels), len(anchors))
	}
	if !(bounds.Width > 0) || !(bounds.Height > 0) {
		return nil, Stats{}, fmt.Errorf("%w: %gx%g", ErrInvalidBounds, bounds.Width, bounds.Height)
	}

	s := &layout{
		labels:  make([]Label, len(labels)),
		anchors: append([]Anchor(nil), anchors...),
		fixed:   append([]geom.Rect(nil), fixed...),
		w:       a.cfg.Weights,
	}
	for i, l := range labels {
		x, y := bounds.clamp(l.X, l.Y)
		s.labels[i] = l.At(x, y)
	}

	seed := a.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	stats := Stats{Seed: seed, Sweeps: a.cfg.Sweeps, InitialEnergy: s.total()}
	if len(labels) == 0 {
		return s.labels, stats, nil
	}

	temp := initialTemperature
	for sweep := 0; sweep < a.cfg.Sweeps; sweep++ {
		accepted := 0
		for _, i := range rng.Perm(len(s.labels)) {
			move := MoveTranslate
			if rng.Float64() >= 0.5 {
				move = MoveRotate
			}
			step := a.propose(s, rng, i, move, temp, bounds)
			step.Sweep = sweep

			stats.Proposed++
			switch {
			case step.OutOfBounds:
				stats.OutOfBounds++
			case step.Accepted:
				stats.Accepted++
				accepted++
			default:
				stats.Rejected++
			}
			if a.observer != nil {
				a.observer(step)
			}
		}
		logging.TraceDefault("anneal sweep", "sweep", sweep, "temperature", temp, "accepted", accepted)
		temp -= initialTemperature / float64(a.cfg.Sweeps)
	}

	stats.FinalEnergy = s.total()
	return s.labels, stats, nil
}

// propose perturbs label i once and keeps or reverts the change using the
// Metropolis criterion.
func (a *Annealer) propose(s *layout, rng *rand.Rand, i int, move MoveKind, temp float64, bounds Bounds) Step {
	step := Step{Label: i, Move: move, Temperature: temp}
	old := s.labels[i]
	oldEnergy := s.energy(i)

	var next geom.Point
	switch move {
	case MoveRotate:
		angle := (rng.Float64() - 0.5) * a.cfg.MaxAngle
		next = geom.Rotate(old.Point(), s.anchors[i].Point(), angle)
	default:
		next = geom.Point{
			X: old.X + (rng.Float64()-0.5)*a.cfg.MaxMove,
			Y: old.Y + (rng.Float64()-0.5)*a.cfg.MaxMove,
		}
	}

	if !bounds.contains(next.X, next.Y) {
		step.OutOfBounds = true
		return step
	}

	s.labels[i] = old.At(next.X, next.Y)
	step.Delta = s.energy(i) - oldEnergy

	if step.Delta <= 0 || (temp > 0 && rng.Float64() < math.Exp(-step.Delta/temp)) {
		step.Accepted = true
		return step
	}

	s.labels[i] = old
	return step
}
