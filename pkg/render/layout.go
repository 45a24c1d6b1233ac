package render

import (
	"atlasgo/pkg/map/labels"
	"atlasgo/pkg/model"
)

// Layout converts a placement result into the output document.
func Layout(spec model.MapSpec, scene labels.Scene, res *labels.Result) *model.Layout {
	out := &model.Layout{
		Title:        spec.Title,
		Width:        scene.Bounds.Width,
		Height:       scene.Bounds.Height,
		Strategy:     res.Strategy,
		RegionLabels: make([]model.RegionLabel, 0, len(scene.Fixed)),
		CityLabels:   make([]model.CityLabel, 0, len(res.Entries)),
	}
	if res.Stats != nil {
		out.Seed = res.Stats.Seed
	}

	for _, f := range scene.Fixed {
		out.RegionLabels = append(out.RegionLabels, model.RegionLabel{
			Code:   f.ID,
			Text:   f.Text,
			X:      f.Box.X,
			Y:      f.Box.Y,
			Width:  f.Box.W,
			Height: f.Box.H,
		})
	}

	for i, e := range res.Entries {
		p := res.Placements[i]
		out.CityLabels = append(out.CityLabels, model.CityLabel{
			ID:           e.Anchor.ID,
			Name:         e.DisplayName(),
			Capital:      e.Anchor.Capital,
			AnchorX:      e.Anchor.X,
			AnchorY:      e.Anchor.Y,
			Radius:       e.Anchor.R,
			X:            p.X,
			Y:            p.Y,
			Width:        e.Label.Width,
			Height:       e.Label.Height,
			Position:     int(p.Position),
			PositionName: p.Position.String(),
		})
	}

	for _, d := range res.Resolution.Dropped {
		out.Dropped = append(out.Dropped, model.DroppedCapital{
			Name:   d.Entry.DisplayName(),
			Region: d.Region,
			KeptBy: d.KeptBy,
		})
	}
	return out
}
