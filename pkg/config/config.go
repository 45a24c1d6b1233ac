package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Placement strategies.
const (
	StrategyScoring = "scoring"
	StrategyAnneal  = "anneal"
)

// Config holds the application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Render    RenderConfig    `yaml:"render"`
	Placement PlacementConfig `yaml:"placement"`
	History   HistoryConfig   `yaml:"history"`
}

// HistoryConfig holds the layout archive settings.
type HistoryConfig struct {
	Path      string   `yaml:"path"`      // Empty disables the archive
	Retention Duration `yaml:"retention"` // Runs older than this are pruned at startup; 0 keeps all
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server LogSettings `yaml:"server"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// RenderConfig holds the viewport and font settings of the rendering step.
type RenderConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Padding        float64 `yaml:"padding"`
	CityFontSize   float64 `yaml:"city_font_size"`
	RegionFontSize float64 `yaml:"region_font_size"`
	CoastTolerance float64 `yaml:"coast_tolerance"` // Screen units a capital may sit outside its region
}

// PlacementConfig groups every tunable of the label placement engines.
type PlacementConfig struct {
	Strategy   string           `yaml:"strategy"` // "scoring", "anneal"
	Candidates CandidatesConfig `yaml:"candidates"`
	Anneal     AnnealConfig     `yaml:"anneal"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// CandidatesConfig holds the geometry of the eight fixed label positions.
type CandidatesConfig struct {
	Gap           float64 `yaml:"gap"`            // Clearance between marker and label
	CityRadius    float64 `yaml:"city_radius"`    // Marker radius when the anchor carries none
	CapitalRadius float64 `yaml:"capital_radius"` // Marker radius for primary anchors
}

// AnnealConfig holds the simulated annealing settings.
type AnnealConfig struct {
	Sweeps   int           `yaml:"sweeps"`
	MaxMove  float64       `yaml:"max_move"`
	MaxAngle float64       `yaml:"max_angle"` // Radians
	Seed     uint64        `yaml:"seed"`      // 0 picks a fresh seed per run
	Weights  EnergyWeights `yaml:"weights"`
}

// EnergyWeights weighs the terms of the annealing energy function.
type EnergyWeights struct {
	LeaderLength   float64 `yaml:"leader_length"`
	LeaderCrossing float64 `yaml:"leader_crossing"`
	LabelLabel     float64 `yaml:"label_label"`
	LabelAnchor    float64 `yaml:"label_anchor"`
	LabelFixed     float64 `yaml:"label_fixed"`
	LeaderFixed    float64 `yaml:"leader_fixed"`
}

// ScoringConfig holds the penalties of the deterministic candidate scorer.
type ScoringConfig struct {
	FixedOverlap  float64 `yaml:"fixed_overlap"`  // Per unit area over a fixed obstacle
	PlacedOverlap float64 `yaml:"placed_overlap"` // Per unit area over an earlier label
	Centered      float64 `yaml:"centered"`       // Flat penalty for top/bottom-center
	Distance      float64 `yaml:"distance"`       // Per unit of candidate-to-anchor distance
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/atlasgo.log",
				Level: "INFO",
			},
		},
		Render: RenderConfig{
			Width:          960,
			Height:         600,
			Padding:        20,
			CityFontSize:   11,
			RegionFontSize: 12,
			CoastTolerance: 3,
		},
		Placement: DefaultPlacement(),
		History: HistoryConfig{
			Path:      "./data/atlasgo.db",
			Retention: Duration(4 * Week),
		},
	}
}

// DefaultPlacement returns the default placement settings.
func DefaultPlacement() PlacementConfig {
	return PlacementConfig{
		Strategy: StrategyScoring,
		Candidates: CandidatesConfig{
			Gap:           4,
			CityRadius:    2,
			CapitalRadius: 4,
		},
		Anneal: AnnealConfig{
			Sweeps:   200,
			MaxMove:  3.0,
			MaxAngle: 0.3,
			Weights: EnergyWeights{
				LeaderLength:   0.3,
				LeaderCrossing: 0,
				LabelLabel:     5.0,
				LabelAnchor:    10.0,
				LabelFixed:     100.0,
				LeaderFixed:    0,
			},
		},
		Scoring: ScoringConfig{
			FixedOverlap:  100,
			PlacedOverlap: 5,
			Centered:      50,
			Distance:      0.5,
		},
	}
}

// Validate checks the configuration for values the engines cannot work with.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render viewport must be positive, got %gx%g", c.Render.Width, c.Render.Height)
	}
	if c.Render.Padding < 0 || 2*c.Render.Padding >= c.Render.Width || 2*c.Render.Padding >= c.Render.Height {
		return fmt.Errorf("render padding %g does not fit the viewport", c.Render.Padding)
	}
	if c.Render.CityFontSize <= 0 || c.Render.RegionFontSize <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	if c.Render.CoastTolerance < 0 {
		return fmt.Errorf("render coast_tolerance must not be negative, got %g", c.Render.CoastTolerance)
	}
	if c.History.Retention < 0 {
		return fmt.Errorf("history retention must not be negative")
	}
	return c.Placement.Validate()
}

// Validate checks the placement settings.
func (p *PlacementConfig) Validate() error {
	switch p.Strategy {
	case StrategyScoring, StrategyAnneal:
	default:
		return fmt.Errorf("unknown placement strategy '%s': must be '%s' or '%s'", p.Strategy, StrategyScoring, StrategyAnneal)
	}
	if p.Candidates.Gap < 0 || p.Candidates.CityRadius < 0 || p.Candidates.CapitalRadius < 0 {
		return fmt.Errorf("candidate gap and radii must not be negative")
	}
	if err := p.Anneal.Validate(); err != nil {
		return err
	}
	return p.Scoring.Validate()
}

// Validate checks the annealing settings. A fixed obstacle must always cost
// more than the same overlap with a movable label or a marker.
func (a *AnnealConfig) Validate() error {
	if a.Sweeps <= 0 {
		return fmt.Errorf("anneal sweeps must be positive, got %d", a.Sweeps)
	}
	if a.MaxMove <= 0 {
		return fmt.Errorf("anneal max_move must be positive, got %g", a.MaxMove)
	}
	if a.MaxAngle <= 0 {
		return fmt.Errorf("anneal max_angle must be positive, got %g", a.MaxAngle)
	}
	w := a.Weights
	for name, v := range map[string]float64{
		"leader_length":   w.LeaderLength,
		"leader_crossing": w.LeaderCrossing,
		"label_label":     w.LabelLabel,
		"label_anchor":    w.LabelAnchor,
		"label_fixed":     w.LabelFixed,
		"leader_fixed":    w.LeaderFixed,
	} {
		if v < 0 {
			return fmt.Errorf("anneal weight %s must not be negative, got %g", name, v)
		}
	}
	if w.LabelFixed <= w.LabelLabel || w.LabelFixed <= w.LabelAnchor {
		return fmt.Errorf("anneal weight label_fixed (%g) must exceed label_label (%g) and label_anchor (%g)",
			w.LabelFixed, w.LabelLabel, w.LabelAnchor)
	}
	return nil
}

// Validate checks the scorer penalties.
func (s *ScoringConfig) Validate() error {
	if s.FixedOverlap < 0 || s.PlacedOverlap < 0 || s.Centered < 0 || s.Distance < 0 {
		return fmt.Errorf("scoring penalties must not be negative")
	}
	if s.FixedOverlap <= s.PlacedOverlap {
		return fmt.Errorf("scoring fixed_overlap (%g) must exceed placed_overlap (%g)", s.FixedOverlap, s.PlacedOverlap)
	}
	return nil
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT save back to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	applyEnv(cfg)
	cfg.Log.Server.Path = expandPath(cfg.Log.Server.Path)
	cfg.History.Path = expandPath(cfg.History.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv lets the environment override a few run-level settings without
// touching the file on disk.
func applyEnv(cfg *Config) {
	if s := os.Getenv("ATLASGO_STRATEGY"); s != "" {
		cfg.Placement.Strategy = s
	}
	if s := os.Getenv("ATLASGO_SEED"); s != "" {
		if seed, err := strconv.ParseUint(s, 10, 64); err == nil {
			cfg.Placement.Anneal.Seed = seed
		}
	}
	if s, ok := os.LookupEnv("ATLASGO_HISTORY"); ok {
		cfg.History.Path = s
	}
	if s := os.Getenv("ATLASGO_LOG_LEVEL"); s != "" {
		cfg.Log.Server.Level = s
	}
}

var winEnvRe = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// expandPath resolves $VAR, ${VAR} and %VAR% references.
func expandPath(p string) string {
	p = winEnvRe.ReplaceAllStringFunc(p, func(m string) string {
		return os.Getenv(m[1 : len(m)-1])
	})
	return os.ExpandEnv(p)
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# atlasgo configuration
# ---------------------
# Coordinates and sizes are in rendered map units (pixels).
# Angles are in radians.

`)
	data = append(header, data...)

	reStrategy := regexp.MustCompile(`(?m)^(\s+)strategy:`)
	data = reStrategy.ReplaceAll(data, []byte("${1}# Options: scoring, anneal\n${1}strategy:"))

	reSeed := regexp.MustCompile(`(?m)^(\s+)seed:`)
	data = reSeed.ReplaceAll(data, []byte("${1}# 0 picks a fresh seed per run\n${1}seed:"))

	reHistory := regexp.MustCompile(`(?m)^history:`)
	data = reHistory.ReplaceAll(data, []byte("# Archive of past layouts (SQLite); empty path disables it\nhistory:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
