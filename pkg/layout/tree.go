package layout

import (
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/geom"
)

// treeLevels returns each shape's breadth-first depth from the roots
// (shapes without incoming connections). Shapes only reachable through a
// cycle are placed on level 0.
func treeLevels(shapes []diagram.ShapeSpec, conns []diagram.ConnectionSpec) []int {
	idx := make(map[string]int, len(shapes))
	for i, s := range shapes {
		idx[s.ID] = i
	}
	children := make([][]int, len(shapes))
	indegree := make([]int, len(shapes))
	for _, c := range conns {
		from, okf := idx[c.Source]
		to, okt := idx[c.Target]
		if !okf || !okt || from == to {
			continue
		}
		children[from] = append(children[from], to)
		indegree[to]++
	}

	level := make([]int, len(shapes))
	for i := range level {
		level[i] = -1
	}
	var queue []int
	for i := range shapes {
		if indegree[i] == 0 {
			level[i] = 0
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range children[n] {
			if level[c] < 0 {
				level[c] = level[n] + 1
				queue = append(queue, c)
			}
		}
	}
	for i := range level {
		if level[i] < 0 {
			level[i] = 0
		}
	}
	return level
}

func (e *engine) planTree() plan {
	shapes := e.def.Shapes
	level := treeLevels(shapes, e.def.Connections)

	depth := 0
	for _, l := range level {
		depth = max(depth, l+1)
	}
	rows := make([][]int, depth)
	for i, l := range level {
		rows[l] = append(rows[l], i)
	}

	area := e.usable()
	rects := make([]geom.Rect, len(shapes))
	for l, members := range rows {
		band := bandRect(area, l, depth, true)
		for j, r := range e.rowRects(band, len(members), true) {
			rects[members[j]] = r
		}
	}

	var p plan
	for i, s := range shapes {
		p.shapes = append(p.shapes, placement{spec: s, rect: rects[i], band: level[i]})
	}
	p.connect = func(src, tgt *placement) (geom.Anchor, geom.Anchor, []geom.Point) {
		if src.band == tgt.band {
			return flowX(src.rect, tgt.rect)
		}
		return flowY(src.rect, tgt.rect)
	}
	return p
}
