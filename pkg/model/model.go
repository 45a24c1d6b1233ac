package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MapSpec is the structured description of a map to render.
type MapSpec struct {
	Title        string   `json:"title,omitempty"`
	Regions      []string `json:"regions,omitempty"`       // Codes of regions whose names are drawn
	LabelRegions bool     `json:"label_regions,omitempty"` // Draw the name of every region
	Cities       []City   `json:"cities"`
}

// City is a point to mark and label.
type City struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Capital bool    `json:"capital,omitempty"`
}

// ParseMapSpec decodes and validates a map specification.
func ParseMapSpec(data []byte) (*MapSpec, error) {
	var spec MapSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse map spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks that every city can be placed.
func (s *MapSpec) Validate() error {
	var errs []error
	for i, c := range s.Cities {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("city %d: name is empty", i))
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			errs = append(errs, fmt.Errorf("city %d (%s): coordinates %g,%g out of range", i, c.Name, c.Lat, c.Lon))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid map spec: %w", err)
	}
	return nil
}

// Layout is the placed result of a MapSpec, in screen units with y growing
// downward.
type Layout struct {
	Title        string           `json:"title,omitempty"`
	RunID        string           `json:"run_id,omitempty"`
	Width        float64          `json:"width"`
	Height       float64          `json:"height"`
	Strategy     string           `json:"strategy"`
	Seed         uint64           `json:"seed,omitempty"` // Annealing seed, for reproduction
	RegionLabels []RegionLabel    `json:"region_labels"`
	CityLabels   []CityLabel      `json:"city_labels"`
	Dropped      []DroppedCapital `json:"dropped,omitempty"`
}

// RegionLabel is a region name centred on the region. X,Y is the top-left
// corner of its box.
type RegionLabel struct {
	Code   string  `json:"code"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CityLabel is a placed city label. X,Y is the lower-left baseline corner
// of the text; Position is the canonical slot index (-1 when none applies).
type CityLabel struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Capital      bool    `json:"capital,omitempty"`
	AnchorX      float64 `json:"anchor_x"`
	AnchorY      float64 `json:"anchor_y"`
	Radius       float64 `json:"radius"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Position     int     `json:"position"`
	PositionName string  `json:"position_name"`
}

// DroppedCapital records a capital left off the map because its region
// already shows another one.
type DroppedCapital struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	KeptBy string `json:"kept_by"`
}
