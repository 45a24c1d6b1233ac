package render

import (
	"fmt"
	"log/slog"

	"atlasgo/pkg/config"
	"atlasgo/pkg/geo"
	"atlasgo/pkg/geom"
	"atlasgo/pkg/map/labels"
	"atlasgo/pkg/model"
	"atlasgo/pkg/textmetrics"

	"github.com/paulmach/orb/planar"
)

// Builder prepares the placement scene of a map.
type Builder struct {
	cfg      config.RenderConfig
	measurer textmetrics.Measurer
}

// NewBuilder creates a new Builder.
func NewBuilder(cfg config.RenderConfig, measurer textmetrics.Measurer) *Builder {
	return &Builder{cfg: cfg, measurer: measurer}
}

// Build projects the regions and cities of spec into the viewport. Region
// names become fixed obstacles centred on their region; cities become
// anchors with measured labels. The returned index locates screen points in
// the projected regions.
func (b *Builder) Build(spec model.MapSpec, regions []geo.Region) (labels.Scene, *geo.RegionIndex, error) {
	proj, err := NewProjector(regions, spec.Cities, b.cfg.Width, b.cfg.Height, b.cfg.Padding)
	if err != nil {
		return labels.Scene{}, nil, fmt.Errorf("failed to fit map: %w", err)
	}

	projected := make([]geo.Region, len(regions))
	for i, r := range regions {
		projected[i] = proj.Region(r)
	}
	index := geo.NewRegionIndex(projected, geo.WithTolerance(b.cfg.CoastTolerance))

	scene := labels.Scene{
		Bounds: labels.Bounds{Width: b.cfg.Width, Height: b.cfg.Height},
		Fixed:  b.regionLabels(spec, projected, index),
	}

	for _, c := range spec.Cities {
		p := proj.Point(c.Lon, c.Lat)
		w, h := b.measurer.Measure(c.Name, b.cfg.CityFontSize)
		scene.Entries = append(scene.Entries, labels.Entry{
			Anchor: labels.Anchor{X: p.X, Y: p.Y, ID: c.ID, Name: c.Name, Capital: c.Capital},
			Label:  labels.Label{X: p.X, Y: p.Y, Width: w, Height: h, Text: c.Name},
		})
	}

	slog.Debug("Built scene",
		"regions", index.Len(),
		"region_labels", len(scene.Fixed),
		"cities", len(scene.Entries),
	)
	return scene, index, nil
}

// regionLabels returns the boxes of the region names to draw: every
// polygonal region when LabelRegions is set, otherwise those listed in
// spec.Regions in their listed order.
func (b *Builder) regionLabels(spec model.MapSpec, projected []geo.Region, index *geo.RegionIndex) []labels.FixedLabel {
	var chosen []geo.Region
	if spec.LabelRegions {
		seen := make(map[string]bool)
		for _, r := range projected {
			if !r.Polygonal() || seen[r.Code] {
				continue
			}
			seen[r.Code] = true
			chosen = append(chosen, r)
		}
	} else {
		for _, code := range spec.Regions {
			r, ok := index.Region(code)
			if !ok {
				slog.Warn("Region not found in region data", "code", code)
				continue
			}
			chosen = append(chosen, r)
		}
	}

	out := make([]labels.FixedLabel, 0, len(chosen))
	for _, r := range chosen {
		c, _ := planar.CentroidArea(r.Geometry)
		w, h := b.measurer.Measure(r.Name, b.cfg.RegionFontSize)
		out = append(out, labels.FixedLabel{
			ID:   r.Code,
			Text: r.Name,
			Box:  geom.Rect{X: c[0] - w/2, Y: c[1] - h/2, W: w, H: h},
		})
	}
	return out
}
