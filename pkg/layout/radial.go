package layout

import "github.com/matzehuels/placard/pkg/geom"

// planRadial puts the hub (the shape marked hub, else the first shape) at
// the center of the usable area and the remaining shapes on a circle around
// it, in definition order.
func (e *engine) planRadial() plan {
	shapes := e.def.Shapes
	hub := 0
	for i, s := range shapes {
		if s.Hub {
			hub = i
			break
		}
	}

	center := e.usable().Center()
	spokes := geom.Radial(center, e.opts.RadialRadius, len(shapes)-1)

	var p plan
	j := 0
	for i, s := range shapes {
		if i == hub {
			p.shapes = append(p.shapes, placement{
				spec: s,
				rect: geom.CenteredAt(center, e.opts.HubWidth, e.opts.HubHeight),
			})
			continue
		}
		p.shapes = append(p.shapes, placement{
			spec: s,
			rect: geom.CenteredAt(spokes[j], e.opts.SpokeWidth, e.opts.SpokeHeight),
			band: 1,
		})
		j++
	}
	p.connect = direct
	return p
}
