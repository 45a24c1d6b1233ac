package labels

import (
	"fmt"
	"log/slog"

	"atlasgo/pkg/config"
	"atlasgo/pkg/geom"
	"atlasgo/pkg/logging"
)

// FixedLabel is an already rendered label (typically a region name) that
// movable labels must keep clear of.
type FixedLabel struct {
	ID   string
	Text string
	Box  geom.Rect
}

// Scene is everything the placement pass needs for one render.
type Scene struct {
	Bounds  Bounds
	Fixed   []FixedLabel
	Entries []Entry
}

// Result is the outcome of a placement pass. Entries and Placements are
// index-aligned.
type Result struct {
	Strategy   string
	Entries    []Entry
	Placements []Placement
	Resolution Resolution
	Stats      *Stats // set for the annealing strategy
}

// Manager coordinates conflict resolution, candidate generation and placement.
type Manager struct {
	cfg       config.PlacementConfig
	locator   RegionLocator
	generator *CandidateGenerator
	scorer    *Scorer
	annealer  *Annealer
	logger    *slog.Logger
}

// NewManager creates a new Label Manager. locator may be nil, in which
// case every capital counts as unmapped.
func NewManager(cfg config.PlacementConfig, locator RegionLocator) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid placement config: %w", err)
	}
	annealer, err := NewAnnealer(cfg.Anneal)
	if err != nil {
		return nil, err
	}
	return &Manager{
		cfg:       cfg,
		locator:   locator,
		generator: NewCandidateGenerator(cfg.Candidates),
		scorer:    NewScorer(cfg.Scoring),
		annealer:  annealer,
		logger:    slog.Default().With("component", "labels"),
	}, nil
}

// Layout places every label of the scene.
func (m *Manager) Layout(scene Scene) (*Result, error) {
	// 1. One capital per region
	res := ResolveCapitals(scene.Entries, m.locator)
	for _, d := range res.Dropped {
		m.logger.Debug("Dropped duplicate capital",
			"name", d.Entry.DisplayName(), "region", d.Region, "kept", d.KeptBy)
	}

	// 2. Candidates
	entries := make([]Entry, len(res.Entries))
	items := make([]LabelWithCandidates, len(res.Entries))
	for i, e := range res.Entries {
		e.Anchor.R = m.generator.Radius(e.Anchor, e.Anchor.Capital)
		entries[i] = e
		items[i] = LabelWithCandidates{
			Label:      e.Label,
			Anchor:     e.Anchor,
			Candidates: m.generator.Generate(e.Anchor, e.Label.Width, e.Label.Height, e.Anchor.Capital),
		}
	}

	fixed := make([]geom.Rect, len(scene.Fixed))
	for i, f := range scene.Fixed {
		fixed[i] = f.Box
	}

	// 3. Deterministic pass; also seeds the annealer
	placements := m.scorer.Place(items, fixed)
	for i, p := range placements {
		logging.Trace(m.logger, "Scored label", "name", entries[i].DisplayName(), "position", p.Position.String())
	}

	result := &Result{
		Strategy:   m.cfg.Strategy,
		Entries:    entries,
		Placements: placements,
		Resolution: res,
	}
	if m.cfg.Strategy != config.StrategyAnneal {
		m.logger.Debug("Placed labels", "strategy", m.cfg.Strategy, "count", len(placements))
		return result, nil
	}

	// 4. Anneal from the scored positions
	labels := make([]Label, len(entries))
	anchors := make([]Anchor, len(entries))
	for i, e := range entries {
		labels[i] = e.Label.At(placements[i].X, placements[i].Y)
		anchors[i] = e.Anchor
	}

	annealed, stats, err := m.annealer.Place(labels, anchors, fixed, scene.Bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to anneal labels: %w", err)
	}
	for i, l := range annealed {
		placements[i] = Placement{X: l.X, Y: l.Y, Position: Classify(anchors[i], l)}
	}
	result.Stats = &stats

	m.logger.Debug("Placed labels",
		"strategy", m.cfg.Strategy,
		"count", len(placements),
		"seed", stats.Seed,
		"energy_before", stats.InitialEnergy,
		"energy_after", stats.FinalEnergy,
		"accepted", stats.Accepted,
		"rejected", stats.Rejected,
		"out_of_bounds", stats.OutOfBounds,
	)
	return result, nil
}
