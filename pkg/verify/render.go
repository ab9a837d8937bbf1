package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
)

// Element is one primitive recovered from an emitted document, in the
// order it is painted. Source and Target are set for connectors.
type Element struct {
	ID     int           `json:"id"`
	Kind   string        `json:"kind"`
	Tier   layout.ZLayer `json:"tier"`
	Source int           `json:"source,omitempty"`
	Target int           `json:"target,omitempty"`
}

// Elements returns the elements a faithful emitter produces for l.
func Elements(l *layout.Layout) []Element {
	ps := l.Primitives()
	out := make([]Element, len(ps))
	for i, p := range ps {
		out[i] = Element{ID: p.ID, Kind: p.Kind, Tier: p.ZLayer, Source: p.Source, Target: p.Target}
	}
	return out
}

// Render checks emitted elements against the layout they came from.
//
// The element count must equal expected, ids must be unique, no shape may
// be painted before the last connector, and every connector must bind
// emitted shapes. All violations are reported together in one
// INVALID_RENDER error. Any other tier regression is a paint_order warning.
func Render(elements []Element, expected int) ([]diagram.Warning, error) {
	var (
		problems []string
		subjects []string
	)
	fail := func(msg string, ids ...int) {
		problems = append(problems, msg)
		for _, id := range ids {
			subjects = append(subjects, strconv.Itoa(id))
		}
	}

	if len(elements) != expected {
		fail(fmt.Sprintf("emitted %d elements, want %d", len(elements), expected))
	}

	seen := make(map[int]bool, len(elements))
	shapes := make(map[int]bool)
	for _, e := range elements {
		if seen[e.ID] {
			fail(fmt.Sprintf("duplicate id %d", e.ID), e.ID)
		}
		seen[e.ID] = true
		if e.Kind == layout.KindShape {
			shapes[e.ID] = true
		}
	}

	firstShape, lastConn := -1, -1
	for i, e := range elements {
		if e.Tier == layout.ZShape && firstShape < 0 {
			firstShape = i
		}
		if e.Tier == layout.ZConnector {
			lastConn = i
		}
	}
	if firstShape >= 0 && firstShape < lastConn {
		fail(fmt.Sprintf("shape %d painted before connector %d", elements[firstShape].ID, elements[lastConn].ID),
			elements[firstShape].ID, elements[lastConn].ID)
	}

	for _, e := range elements {
		if e.Kind != layout.KindConnector {
			continue
		}
		if !shapes[e.Source] || !shapes[e.Target] {
			fail(fmt.Sprintf("connector %d binds %d -> %d", e.ID, e.Source, e.Target), e.ID)
		}
	}

	if len(problems) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidRender, "%s", strings.Join(problems, "; ")).WithSubjects(subjects...)
	}

	var ws []diagram.Warning
	for i := 1; i < len(elements); i++ {
		prev, cur := elements[i-1], elements[i]
		if cur.Tier >= prev.Tier {
			continue
		}
		ws = append(ws, diagram.Warning{
			Stage:   diagram.StageRender,
			Code:    diagram.WarnPaintOrder,
			Subject: strconv.Itoa(cur.ID),
			Message: fmt.Sprintf("%s painted after %s", cur.Tier, prev.Tier),
		})
	}
	return ws, nil
}
