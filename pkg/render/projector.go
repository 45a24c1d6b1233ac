// Package render turns a map specification into a placement scene and the
// placement result back into a layout.
package render

import (
	"errors"
	"math"

	"atlasgo/pkg/geo"
	"atlasgo/pkg/geom"
	"atlasgo/pkg/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// maxLat is where Web Mercator is cut off.
const maxLat = 85.05112878

// ErrEmptyMap is returned when there is nothing to fit into the viewport.
var ErrEmptyMap = errors.New("map has no regions and no cities")

// Projector maps lon/lat to screen units: Web Mercator, scaled and centred
// to fit the viewport minus padding, with y growing downward.
type Projector struct {
	scale float64
	minX  float64
	maxY  float64
	offX  float64
	offY  float64
}

func mercator(p orb.Point) orb.Point {
	p[1] = math.Max(-maxLat, math.Min(maxLat, p[1]))
	return project.WGS84.ToMercator(p)
}

// NewProjector fits the regions and cities into a width x height viewport.
func NewProjector(regions []geo.Region, cities []model.City, width, height, padding float64) (*Projector, error) {
	var (
		bound orb.Bound
		found bool
	)
	extend := func(b orb.Bound) {
		if !found {
			bound, found = b, true
			return
		}
		bound = bound.Union(b)
	}

	for _, r := range regions {
		if r.Geometry == nil {
			continue
		}
		extend(project.Geometry(orb.Clone(r.Geometry), mercator).Bound())
	}
	for _, c := range cities {
		extend(mercator(orb.Point{c.Lon, c.Lat}).Bound())
	}
	if !found {
		return nil, ErrEmptyMap
	}

	innerW, innerH := width-2*padding, height-2*padding
	dx, dy := bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1]

	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = math.Min(innerW/dx, innerH/dy)
	case dx > 0:
		scale = innerW / dx
	case dy > 0:
		scale = innerH / dy
	}

	return &Projector{
		scale: scale,
		minX:  bound.Min[0],
		maxY:  bound.Max[1],
		offX:  padding + (innerW-dx*scale)/2,
		offY:  padding + (innerH-dy*scale)/2,
	}, nil
}

func (p *Projector) toScreen(pt orb.Point) orb.Point {
	m := mercator(pt)
	return orb.Point{
		p.offX + (m[0]-p.minX)*p.scale,
		p.offY + (p.maxY-m[1])*p.scale,
	}
}

// Point projects a lon/lat pair.
func (p *Projector) Point(lon, lat float64) geom.Point {
	s := p.toScreen(orb.Point{lon, lat})
	return geom.Point{X: s[0], Y: s[1]}
}

// Geometry returns a projected copy of g; g itself is left untouched.
func (p *Projector) Geometry(g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	return project.Geometry(orb.Clone(g), p.toScreen)
}

// Region returns a projected copy of r.
func (p *Projector) Region(r geo.Region) geo.Region {
	r.Geometry = p.Geometry(r.Geometry)
	return r
}
