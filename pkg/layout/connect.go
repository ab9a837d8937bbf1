package layout

import "github.com/matzehuels/placard/pkg/geom"

// flowX connects two shapes side to side, entering the target from the
// side facing the source.
func flowX(src, tgt geom.Rect) (geom.Anchor, geom.Anchor, []geom.Point) {
	sa, ta := geom.AnchorRight, geom.AnchorLeft
	if tgt.Center().X < src.Center().X {
		sa, ta = geom.AnchorLeft, geom.AnchorRight
	}
	a, b := src.Anchor(sa), tgt.Anchor(ta)
	if a.X == b.X || a.Y == b.Y {
		return sa, ta, []geom.Point{a, b}
	}
	mx := (a.X + b.X) / 2
	if mx == a.X || mx == b.X {
		return sa, ta, []geom.Point{a, b}
	}
	return sa, ta, []geom.Point{a, {X: mx, Y: a.Y}, {X: mx, Y: b.Y}, b}
}

// flowY connects two shapes bottom to top, or top to bottom when the
// target sits above the source.
func flowY(src, tgt geom.Rect) (geom.Anchor, geom.Anchor, []geom.Point) {
	sa, ta := geom.AnchorBottom, geom.AnchorTop
	if tgt.Center().Y < src.Center().Y {
		sa, ta = geom.AnchorTop, geom.AnchorBottom
	}
	a, b := src.Anchor(sa), tgt.Anchor(ta)
	if a.X == b.X || a.Y == b.Y {
		return sa, ta, []geom.Point{a, b}
	}
	my := (a.Y + b.Y) / 2
	if my == a.Y || my == b.Y {
		return sa, ta, []geom.Point{a, b}
	}
	return sa, ta, []geom.Point{a, {X: a.X, Y: my}, {X: b.X, Y: my}, b}
}

// between returns the rects of shapes in src's band whose centers lie
// strictly between src and tgt along the flow axis.
func between(ps []placement, src, tgt *placement, alongX bool) []geom.Rect {
	axis := func(r geom.Rect) int {
		if alongX {
			return r.Center().X
		}
		return r.Center().Y
	}
	lo, hi := axis(src.rect), axis(tgt.rect)
	if lo > hi {
		lo, hi = hi, lo
	}
	var out []geom.Rect
	for i := range ps {
		o := &ps[i]
		if o.band != src.band || o.spec.ID == src.spec.ID || o.spec.ID == tgt.spec.ID {
			continue
		}
		if v := axis(o.rect); v > lo && v < hi {
			out = append(out, o.rect)
		}
	}
	return out
}

// detour routes around the shapes between src and tgt with a U-shaped
// loop offset from all of them. In a row, back edges pass below and
// forward edges above. In a column, back edges pass on the right and
// forward edges on the left.
func detour(src, tgt geom.Rect, around []geom.Rect, offset int, alongX bool) (geom.Anchor, geom.Anchor, []geom.Point) {
	all := append([]geom.Rect{src, tgt}, around...)
	if alongX {
		side, y := geom.AnchorTop, src.Y
		for _, r := range all {
			y = min(y, r.Y)
		}
		y -= offset
		if tgt.Center().X < src.Center().X {
			side, y = geom.AnchorBottom, src.Bottom()
			for _, r := range all {
				y = max(y, r.Bottom())
			}
			y += offset
		}
		a, b := src.Anchor(side), tgt.Anchor(side)
		return side, side, []geom.Point{a, {X: a.X, Y: y}, {X: b.X, Y: y}, b}
	}

	side, x := geom.AnchorLeft, src.X
	for _, r := range all {
		x = min(x, r.X)
	}
	x -= offset
	if tgt.Center().Y < src.Center().Y {
		side, x = geom.AnchorRight, src.Right()
		for _, r := range all {
			x = max(x, r.Right())
		}
		x += offset
	}
	a, b := src.Anchor(side), tgt.Anchor(side)
	return side, side, []geom.Point{a, {X: x, Y: a.Y}, {X: x, Y: b.Y}, b}
}

// selfLoop leaves r on the right, passes over its top-right corner and
// comes back in from the top.
func selfLoop(r geom.Rect, offset int) (geom.Anchor, geom.Anchor, []geom.Point) {
	a, b := r.Anchor(geom.AnchorRight), r.Anchor(geom.AnchorTop)
	x, y := a.X+offset, b.Y-offset
	return geom.AnchorRight, geom.AnchorTop, []geom.Point{a, {X: x, Y: a.Y}, {X: x, Y: y}, {X: b.X, Y: y}, b}
}

// facing returns the side of r that faces p, weighting by r's aspect ratio.
func facing(r geom.Rect, p geom.Point) geom.Anchor {
	c := r.Center()
	dx, dy := int64(p.X-c.X), int64(p.Y-c.Y)
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx*int64(r.CY) > ady*int64(r.CX) {
		if dx > 0 {
			return geom.AnchorRight
		}
		return geom.AnchorLeft
	}
	if dy > 0 {
		return geom.AnchorBottom
	}
	return geom.AnchorTop
}

// direct connects the facing sides of two shapes with a single segment.
func direct(src, tgt *placement) (geom.Anchor, geom.Anchor, []geom.Point) {
	sa := facing(src.rect, tgt.rect.Center())
	ta := facing(tgt.rect, src.rect.Center())
	return sa, ta, []geom.Point{src.rect.Anchor(sa), tgt.rect.Anchor(ta)}
}

// rowRects sizes and centers n shapes inside box, side by side when
// alongX is set and stacked otherwise. Shapes shrink to fit the box.
func (e *engine) rowRects(box geom.Rect, n int, alongX bool) []geom.Rect {
	if n == 0 {
		return nil
	}
	pad, gap := e.opts.LanePadding, e.opts.Gap
	out := make([]geom.Rect, n)
	if alongX {
		w := max(1, min(e.opts.ShapeWidth, (box.CX-2*pad-(n-1)*gap)/n))
		h := max(1, min(e.opts.ShapeHeight, box.CY-2*pad))
		y := box.Y + (box.CY-h)/2
		for i, x := range geom.CenterRow(n, w, gap, box.CX) {
			out[i] = geom.Rect{X: box.X + x, Y: y, CX: w, CY: h}
		}
		return out
	}
	h := max(1, min(e.opts.ShapeHeight, (box.CY-2*pad-(n-1)*gap)/n))
	w := max(1, min(e.opts.ShapeWidth, box.CX-2*pad))
	x := box.X + (box.CX-w)/2
	for i, y := range geom.CenterRow(n, h, gap, box.CY) {
		out[i] = geom.Rect{X: x, Y: box.Y + y, CX: w, CY: h}
	}
	return out
}
