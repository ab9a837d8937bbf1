package verify

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
	"github.com/matzehuels/placard/pkg/layout"
)

// DefaultFontFloor is the smallest shape font size, in hundredths of a
// point, accepted without a warning.
const DefaultFontFloor = 900

// Options tunes the layout checks. Zero fields take their defaults.
type Options struct {
	FontFloor int `json:"font_floor" toml:"font_floor"`
	// Tolerance is the allowed geometry drift in length units.
	Tolerance int `json:"tolerance" toml:"tolerance"`
}

func (o Options) withDefaults() Options {
	if o.FontFloor <= 0 {
		o.FontFloor = DefaultFontFloor
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 1
	}
	return o
}

// Layout checks l. Duplicate identifiers and dangling references are
// fatal. Text overflow, small fonts, overlap, out-of-bounds shapes,
// degenerate connectors and connector drift are returned as warnings.
//
// Shape warnings name the shape key; connector warnings name the
// connector id.
func Layout(l *layout.Layout, opts Options) ([]diagram.Warning, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout is nil")
	}
	opts = opts.withDefaults()
	if err := structural(l); err != nil {
		return nil, err
	}

	var ws []diagram.Warning
	ws = append(ws, checkText(l, opts)...)
	ws = append(ws, checkPlacement(l)...)
	ws = append(ws, checkConnectors(l, opts)...)
	return ws, nil
}

func layoutWarning(code diagram.WarningCode, subject, format string, args ...any) diagram.Warning {
	return diagram.Warning{
		Stage:   diagram.StageLayout,
		Code:    code,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

// structural reports duplicate ids and references that do not resolve.
func structural(l *layout.Layout) error {
	seen := make(map[int]bool)
	var dups []string
	for _, p := range l.Primitives() {
		if seen[p.ID] {
			dups = append(dups, strconv.Itoa(p.ID))
		}
		seen[p.ID] = true
	}
	if len(dups) > 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "duplicate primitive ids").WithSubjects(dups...)
	}

	shapes := make(map[int]bool, len(l.Shapes))
	for _, s := range l.Shapes {
		shapes[s.ID] = true
	}
	conns := make(map[int]bool, len(l.Connectors))
	var dangling []string
	for _, c := range l.Connectors {
		conns[c.ID] = true
		if !shapes[c.SourceID] || !shapes[c.TargetID] {
			dangling = append(dangling, strconv.Itoa(c.ID))
		}
	}
	for _, lb := range l.Labels {
		if !conns[lb.ConnectorID] {
			dangling = append(dangling, strconv.Itoa(lb.ID))
		}
	}
	if len(dangling) > 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "references to missing primitives").WithSubjects(dangling...)
	}
	return nil
}

func checkText(l *layout.Layout, opts Options) []diagram.Warning {
	var ws []diagram.Warning
	for _, s := range l.Shapes {
		if s.Text != "" && !layout.Fits(s.Text, s.FontSize, s.Rect) {
			uw, _ := layout.Usable(s.Rect)
			ws = append(ws, layoutWarning(diagram.WarnTextOverflow, s.Key,
				"text needs %d units at %s but the box offers %d",
				layout.TextWidth(s.Text, s.FontSize), pointSize(s.FontSize), uw))
		}
		if s.FontSize < opts.FontFloor {
			ws = append(ws, layoutWarning(diagram.WarnFontBelowFloor, s.Key,
				"font size %s is below %s", pointSize(s.FontSize), pointSize(opts.FontFloor)))
		}
	}
	if t := l.Title; t != nil && !layout.Fits(t.Text, t.FontSize, t.Rect) {
		ws = append(ws, layoutWarning(diagram.WarnTextOverflow, layout.KindTitle,
			"title overflows at %s", pointSize(t.FontSize)))
	}
	return ws
}

func checkPlacement(l *layout.Layout) []diagram.Warning {
	var ws []diagram.Warning
	canvas := l.CanvasRect()
	for i, s := range l.Shapes {
		if !s.Rect.Within(canvas) {
			ws = append(ws, layoutWarning(diagram.WarnOutOfBounds, s.Key, "shape %v exceeds canvas %v", s.Rect, canvas))
		}
		for _, o := range l.Shapes[i+1:] {
			if s.Rect.Overlaps(o.Rect) {
				ws = append(ws, layoutWarning(diagram.WarnShapeOverlap, s.Key, "overlaps %s", o.Key))
			}
		}
	}
	if l.Legend != nil && !l.Legend.Rect.Within(canvas) {
		ws = append(ws, layoutWarning(diagram.WarnOutOfBounds, layout.KindLegend, "legend %v exceeds canvas %v", l.Legend.Rect, canvas))
	}
	return ws
}

// checkConnectors re-derives each connector's anchor points from the
// shapes it binds and compares them with the recorded rect and flips.
func checkConnectors(l *layout.Layout, opts Options) []diagram.Warning {
	var ws []diagram.Warning
	for _, c := range l.Connectors {
		id := strconv.Itoa(c.ID)
		if c.Rect.CX <= opts.Tolerance && c.Rect.CY <= opts.Tolerance {
			ws = append(ws, layoutWarning(diagram.WarnDegenerateConnector, id, "%s has an empty bounding box", c.Key))
		}

		src, _ := l.Shape(c.SourceID)
		tgt, _ := l.Shape(c.TargetID)
		if !c.SourceAnchor.Valid() || !c.TargetAnchor.Valid() {
			ws = append(ws, layoutWarning(diagram.WarnConnectorDrift, id, "%s has anchors %d/%d", c.Key, c.SourceAnchor, c.TargetAnchor))
			continue
		}
		a, b := src.Rect.Anchor(c.SourceAnchor), tgt.Rect.Anchor(c.TargetAnchor)
		want := geom.Bounds(spanPoints(a, b, c.Waypoints)...)
		if !near(want, c.Rect, opts.Tolerance) {
			ws = append(ws, layoutWarning(diagram.WarnConnectorDrift, id, "%s rect %v, anchors span %v", c.Key, c.Rect, want))
		}
		if c.FlipH != (b.X < a.X) || c.FlipV != (b.Y < a.Y) {
			ws = append(ws, layoutWarning(diagram.WarnConnectorDrift, id, "%s flips %t/%t disagree with %v -> %v", c.Key, c.FlipH, c.FlipV, a, b))
		}
	}
	return ws
}

// spanPoints is the re-derived endpoints a and b with the interior
// waypoints of a routed path between them.
func spanPoints(a, b geom.Point, waypoints []geom.Point) []geom.Point {
	pts := []geom.Point{a}
	if n := len(waypoints); n > 2 {
		pts = append(pts, waypoints[1:n-1]...)
	}
	return append(pts, b)
}

func near(a, b geom.Rect, tol int) bool {
	return geom.Abs(a.X-b.X) <= tol && geom.Abs(a.Y-b.Y) <= tol &&
		geom.Abs(a.CX-b.CX) <= tol && geom.Abs(a.CY-b.CY) <= tol
}

func pointSize(size int) string {
	return strconv.FormatFloat(float64(size)/100, 'f', -1, 64) + "pt"
}
