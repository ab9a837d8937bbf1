package layout

import (
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/geom"
)

type laneGroup struct {
	spec   diagram.LaneSpec
	draw   bool
	shapes []diagram.ShapeSpec
}

// laneGroups assigns shapes to lanes. Declared lanes come first in
// declaration order. Without declarations, distinct shape groups become
// lanes in order of first appearance. Shapes left over go to a trailing
// lane that has no background.
func (e *engine) laneGroups() []laneGroup {
	var groups []laneGroup
	index := make(map[string]int)
	if len(e.def.Lanes) > 0 {
		for _, l := range e.def.Lanes {
			index[l.ID] = len(groups)
			groups = append(groups, laneGroup{spec: l, draw: true})
		}
	} else {
		for _, s := range e.def.Shapes {
			if _, ok := index[s.Group]; ok || s.Group == "" {
				continue
			}
			index[s.Group] = len(groups)
			groups = append(groups, laneGroup{spec: diagram.LaneSpec{ID: s.Group, Label: s.Group}, draw: true})
		}
	}

	var rest []diagram.ShapeSpec
	for _, s := range e.def.Shapes {
		if i, ok := index[s.Group]; ok {
			groups[i].shapes = append(groups[i].shapes, s)
		} else {
			rest = append(rest, s)
		}
	}
	if len(rest) > 0 || len(groups) == 0 {
		groups = append(groups, laneGroup{shapes: rest})
	}
	return groups
}

// bandRect returns band i of n equal bands of area.
func bandRect(area geom.Rect, i, n int, horizontal bool) geom.Rect {
	if horizontal {
		h := area.CY / n
		return geom.Rect{X: area.X, Y: area.Y + i*h, CX: area.CX, CY: h}
	}
	w := area.CX / n
	return geom.Rect{X: area.X + i*w, Y: area.Y, CX: w, CY: area.CY}
}

func (e *engine) planLanes() plan {
	groups := e.laneGroups()
	area := e.usable()
	horizontal := e.def.OrientationOrDefault() == diagram.Horizontal

	var p plan
	for i, g := range groups {
		band := bandRect(area, i, len(groups), horizontal)
		content := band
		if g.draw {
			p.lanes = append(p.lanes, lanePlan{spec: g.spec, index: i, rect: band})
			if g.spec.Label != "" || g.spec.ID != "" {
				content = e.reserveLaneLabel(band, horizontal)
			}
		}
		rects := e.rowRects(content, len(g.shapes), horizontal)
		for j, s := range g.shapes {
			p.shapes = append(p.shapes, placement{spec: s, rect: rects[j], band: i})
		}
	}

	p.connect = func(src, tgt *placement) (geom.Anchor, geom.Anchor, []geom.Point) {
		alongX := (src.band == tgt.band) == horizontal
		if src.band == tgt.band {
			if around := between(p.shapes, src, tgt, alongX); len(around) > 0 {
				return detour(src.rect, tgt.rect, around, e.opts.LoopOffset, alongX)
			}
		}
		if alongX {
			return flowX(src.rect, tgt.rect)
		}
		return flowY(src.rect, tgt.rect)
	}
	return p
}

// reserveLaneLabel removes the lane caption strip: a left column for
// horizontal lanes, a top header for vertical ones.
func (e *engine) reserveLaneLabel(band geom.Rect, horizontal bool) geom.Rect {
	if horizontal {
		w := min(e.opts.LaneLabel, band.CX/4)
		return geom.Rect{X: band.X + w, Y: band.Y, CX: band.CX - w, CY: band.CY}
	}
	h := min(e.opts.LaneHeader, band.CY/4)
	return geom.Rect{X: band.X, Y: band.Y + h, CX: band.CX, CY: band.CY - h}
}
