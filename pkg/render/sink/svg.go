package sink

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/layout/route"
	"github.com/matzehuels/placard/pkg/render"
)

// unitsPerPixel converts length units to CSS pixels at 96 dpi.
const unitsPerPixel = geom.UnitsPerInch / 96

const fontFamily = "Calibri, Arial, sans-serif"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	icons  render.IconResolver
	grid   bool
	logger *log.Logger
}

// WithIcons resolves shape icons through r. Without it icons are skipped.
func WithIcons(r render.IconResolver) SVGOption { return func(s *svgRenderer) { s.icons = r } }

// WithGrid draws a one-inch guide grid over the background.
func WithGrid() SVGOption { return func(s *svgRenderer) { s.grid = true } }

// WithLogger reports dropped icons to logger at debug level.
func WithLogger(logger *log.Logger) SVGOption { return func(s *svgRenderer) { s.logger = logger } }

// SVG is the reference [render.Emitter].
type SVG struct {
	opts []SVGOption
}

// NewSVG returns an SVG emitter.
func NewSVG(opts ...SVGOption) *SVG { return &SVG{opts: opts} }

// Emit implements render.Emitter.
func (s *SVG) Emit(ctx context.Context, l *layout.Layout) ([]byte, error) {
	return RenderSVG(ctx, l, s.opts...)
}

// RenderSVG renders l as a standalone SVG document.
func RenderSVG(ctx context.Context, l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout is nil")
	}
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return r.render(ctx, l)
}

// index maps primitive ids back to the placed elements.
type index struct {
	lanes    map[int]*layout.LaneBackground
	shapes   map[int]*layout.PlacedShape
	conns    map[int]*layout.PlacedConnector
	labels   map[int]*layout.PlacedLabel
	swatches map[int]*layout.LegendSwatch
}

func newIndex(l *layout.Layout) index {
	ix := index{
		lanes:    make(map[int]*layout.LaneBackground, len(l.Lanes)),
		shapes:   make(map[int]*layout.PlacedShape, len(l.Shapes)),
		conns:    make(map[int]*layout.PlacedConnector, len(l.Connectors)),
		labels:   make(map[int]*layout.PlacedLabel, len(l.Labels)),
		swatches: make(map[int]*layout.LegendSwatch),
	}
	for i := range l.Lanes {
		ix.lanes[l.Lanes[i].ID] = &l.Lanes[i]
	}
	for i := range l.Shapes {
		ix.shapes[l.Shapes[i].ID] = &l.Shapes[i]
	}
	for i := range l.Connectors {
		ix.conns[l.Connectors[i].ID] = &l.Connectors[i]
	}
	for i := range l.Labels {
		ix.labels[l.Labels[i].ID] = &l.Labels[i]
	}
	if l.Legend != nil {
		for i := range l.Legend.Entries {
			ix.swatches[l.Legend.Entries[i].ID] = &l.Legend.Entries[i]
		}
	}
	return ix
}

func (r *svgRenderer) render(ctx context.Context, l *layout.Layout) ([]byte, error) {
	icons, err := r.resolveIcons(ctx, l)
	if err != nil {
		return nil, err
	}
	ix := newIndex(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Canvas.W, l.Canvas.H, l.Canvas.W/unitsPerPixel, l.Canvas.H/unitsPerPixel)
	writeDefs(&buf, l)

	for _, p := range l.Primitives() {
		openGroup(&buf, p)
		switch p.Kind {
		case layout.KindBackground:
			writeRect(&buf, l.Background.Rect, 0, fmt.Sprintf(`fill="#%s"`, l.Background.Fill))
		case layout.KindLane:
			writeLane(&buf, ix.lanes[p.ID])
		case layout.KindTitle:
			t := l.Title
			writeText(&buf, t.Text, t.Rect.Center(), t.FontSize, t.Color, "middle", true)
		case layout.KindConnector:
			writeConnector(&buf, ix.conns[p.ID])
		case layout.KindShape:
			s := ix.shapes[p.ID]
			writeShape(&buf, s, icons[s.ID])
		case layout.KindLabel:
			writeLabel(&buf, ix.labels[p.ID], l.Background.Fill)
		case layout.KindLegend:
			lg := l.Legend
			writeRect(&buf, lg.Rect, 0, fmt.Sprintf(`fill="#%s" stroke="#%s" stroke-width="%d"`, lg.Fill, lg.Border, 9525))
		case layout.KindSwatch:
			writeSwatch(&buf, ix.swatches[p.ID], l.Legend.FontSize)
		}
		buf.WriteString("  </g>\n")

		if p.Kind == layout.KindBackground && r.grid {
			writeGrid(&buf, l.Canvas)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// resolveIcons looks up every shape icon once. Lookups that fail are
// dropped; only cancellation aborts the render.
func (r *svgRenderer) resolveIcons(ctx context.Context, l *layout.Layout) (map[int]string, error) {
	out := make(map[int]string)
	if r.icons == nil {
		return out, nil
	}
	for _, s := range l.Shapes {
		if s.Icon == "" {
			continue
		}
		href, err := r.icons.Resolve(ctx, s.Icon)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			if r.logger != nil {
				r.logger.Debug("icon dropped", "shape", s.Key, "icon", s.Icon, "err", err)
			}
			continue
		}
		out[s.ID] = href
	}
	return out, nil
}

func openGroup(buf *bytes.Buffer, p layout.Primitive) {
	fmt.Fprintf(buf, `  <g id="p-%d" data-id="%d" data-kind="%s" data-tier="%s"`, p.ID, p.ID, p.Kind, p.ZLayer)
	if p.Kind == layout.KindConnector {
		fmt.Fprintf(buf, ` data-source="%d" data-target="%d"`, p.Source, p.Target)
	}
	buf.WriteString(">\n")
}

// =============================================================================
// Definitions
// =============================================================================

type marker struct {
	arrow layout.Arrow
	color string
}

func (m marker) id() string { return fmt.Sprintf("m-%s-%s", m.arrow, m.color) }

func markersFor(l *layout.Layout) []marker {
	seen := make(map[marker]bool)
	var out []marker
	for _, c := range l.Connectors {
		for _, a := range []layout.Arrow{c.HeadArrow, c.TailArrow} {
			m := marker{a, c.Color}
			if a == layout.ArrowNone || a == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b marker) int { return strings.Compare(a.id(), b.id()) })
	return out
}

func writeDefs(buf *bytes.Buffer, l *layout.Layout) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <filter id="shadow" x="-10%%" y="-10%%" width="130%%" height="130%%"><feDropShadow dx="%d" dy="%d" stdDeviation="%d" flood-opacity="0.25"/></filter>`+"\n",
		25400, 25400, 19050)
	for _, m := range markersFor(l) {
		d := "M0,0 L10,5 L0,10 z"
		if m.arrow == layout.ArrowStealth {
			d = "M0,0 L10,5 L0,10 L3,5 z"
		}
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="5" markerHeight="5" orient="auto-start-reverse"><path d="%s" fill="#%s"/></marker>`+"\n",
			m.id(), d, m.color)
	}
	buf.WriteString("  </defs>\n")
}

func writeGrid(buf *bytes.Buffer, canvas geom.Size) {
	buf.WriteString(`  <g class="grid" stroke="#D9D9D9" stroke-width="3175">` + "\n")
	for x := geom.UnitsPerInch; x < canvas.W; x += geom.UnitsPerInch {
		fmt.Fprintf(buf, `    <line x1="%d" y1="0" x2="%d" y2="%d"/>`+"\n", x, x, canvas.H)
	}
	for y := geom.UnitsPerInch; y < canvas.H; y += geom.UnitsPerInch {
		fmt.Fprintf(buf, `    <line x1="0" y1="%d" x2="%d" y2="%d"/>`+"\n", y, canvas.W, y)
	}
	buf.WriteString("  </g>\n")
}

// =============================================================================
// Primitives
// =============================================================================

func writeLane(buf *bytes.Buffer, ln *layout.LaneBackground) {
	writeRect(buf, ln.Rect, 0, fmt.Sprintf(`fill="#%s" stroke="#%s" stroke-width="%d"`, ln.Fill, ln.Border, 9525))
	if ln.Label == "" {
		return
	}
	size := layout.DefaultLabelFontSize
	at := geom.Point{
		X: ln.Rect.X + layout.TextInsetX,
		Y: ln.Rect.Y + layout.TextInsetY + emUnits(size)/2,
	}
	writeText(buf, ln.Label, at, size, ln.Border, "start", true)
}

func writeShape(buf *bytes.Buffer, s *layout.PlacedShape, icon string) {
	style := fmt.Sprintf(`fill="#%s" stroke="#%s" stroke-width="%d"`, s.Fill, s.Border, 12700)
	if s.Shadow {
		style += ` filter="url(#shadow)"`
	}
	writeOutline(buf, s.Kind.Renderable(), s.Rect, style)

	center := s.Rect.Center()
	if icon != "" {
		side := min(s.Rect.CY-2*layout.TextInsetY, s.Rect.CX/3)
		if side > 0 {
			x := s.Rect.X + layout.TextInsetX
			fmt.Fprintf(buf, `    <image href="%s" x="%d" y="%d" width="%d" height="%d"/>`+"\n",
				escape(icon), x, center.Y-side/2, side, side)
			center.X += (side + layout.TextInsetX) / 2
		}
	}
	writeText(buf, s.Text, center, s.FontSize, s.TextColor, "middle", s.Bold)
}

func writeConnector(buf *bytes.Buffer, c *layout.PlacedConnector) {
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="#%s" stroke-width="%d"`, pathData(c.Path), c.Color, c.LineWidth)
	switch c.Dash {
	case layout.DashDash:
		fmt.Fprintf(buf, ` stroke-dasharray="%d %d"`, 4*c.LineWidth, 3*c.LineWidth)
	case layout.DashDot:
		fmt.Fprintf(buf, ` stroke-dasharray="%d %d"`, c.LineWidth, 2*c.LineWidth)
	}
	if c.HeadArrow != layout.ArrowNone && c.HeadArrow != "" {
		fmt.Fprintf(buf, ` marker-start="url(#%s)"`, marker{c.HeadArrow, c.Color}.id())
	}
	if c.TailArrow != layout.ArrowNone && c.TailArrow != "" {
		fmt.Fprintf(buf, ` marker-end="url(#%s)"`, marker{c.TailArrow, c.Color}.id())
	}
	buf.WriteString("/>\n")
}

// pathData converts a bounds-relative route to absolute SVG path data.
// Arcs are quarter circles; a positive swing turns clockwise on screen.
func pathData(p route.Path) string {
	ox, oy := p.Bounds.X, p.Bounds.Y
	parts := make([]string, 0, len(p.Commands))
	for _, c := range p.Commands {
		x, y := ox+c.X, oy+c.Y
		switch c.Op {
		case route.MoveTo:
			parts = append(parts, fmt.Sprintf("M%d %d", x, y))
		case route.LineTo:
			parts = append(parts, fmt.Sprintf("L%d %d", x, y))
		case route.ArcTo:
			sweep := 0
			if c.Swing > 0 {
				sweep = 1
			}
			parts = append(parts, fmt.Sprintf("A%d %d 0 0 %d %d %d", c.WR, c.HR, sweep, x, y))
		}
	}
	return strings.Join(parts, " ")
}

func writeLabel(buf *bytes.Buffer, lb *layout.PlacedLabel, backdrop string) {
	writeRect(buf, lb.Rect, lb.Rect.CY/4, fmt.Sprintf(`fill="#%s" fill-opacity="0.85"`, backdrop))
	writeText(buf, lb.Text, lb.Rect.Center(), lb.FontSize, lb.Color, "middle", false)
}

func writeSwatch(buf *bytes.Buffer, e *layout.LegendSwatch, size int) {
	writeRect(buf, e.Swatch, 0, fmt.Sprintf(`fill="#%s"`, e.Color))
	at := geom.Point{X: e.TextRect.X, Y: e.TextRect.Center().Y}
	writeText(buf, e.Label, at, size, diagram.LabelColor, "start", false)
}

// =============================================================================
// Outlines
// =============================================================================

func writeRect(buf *bytes.Buffer, r geom.Rect, rx int, style string) {
	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d"`, r.X, r.Y, r.CX, r.CY)
	if rx > 0 {
		fmt.Fprintf(buf, ` rx="%d"`, rx)
	}
	fmt.Fprintf(buf, " %s/>\n", style)
}

func writePolygon(buf *bytes.Buffer, style string, pts ...geom.Point) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	fmt.Fprintf(buf, `    <polygon points="%s" %s/>`+"\n", strings.Join(coords, " "), style)
}

func writePath(buf *bytes.Buffer, d, style string) {
	fmt.Fprintf(buf, `    <path d="%s" %s/>`+"\n", d, style)
}

// writeOutline draws the silhouette of kind inside r.
func writeOutline(buf *bytes.Buffer, kind diagram.PresetKind, r geom.Rect, style string) {
	x, y, w, h := r.X, r.Y, r.CX, r.CY
	c := r.Center()
	switch kind {
	case diagram.PresetRect:
		writeRect(buf, r, 0, style)
	case diagram.PresetTerminator:
		writeRect(buf, r, h/2, style)
	case diagram.PresetEllipse:
		fmt.Fprintf(buf, `    <ellipse cx="%d" cy="%d" rx="%d" ry="%d" %s/>`+"\n", c.X, c.Y, w/2, h/2, style)
	case diagram.PresetDiamond:
		writePolygon(buf, style, geom.Point{X: c.X, Y: y}, geom.Point{X: x + w, Y: c.Y},
			geom.Point{X: c.X, Y: y + h}, geom.Point{X: x, Y: c.Y})
	case diagram.PresetHexagon:
		d := w / 4
		writePolygon(buf, style, geom.Point{X: x + d, Y: y}, geom.Point{X: x + w - d, Y: y},
			geom.Point{X: x + w, Y: c.Y}, geom.Point{X: x + w - d, Y: y + h},
			geom.Point{X: x + d, Y: y + h}, geom.Point{X: x, Y: c.Y})
	case diagram.PresetParallelogram:
		d := w / 6
		writePolygon(buf, style, geom.Point{X: x + d, Y: y}, geom.Point{X: x + w, Y: y},
			geom.Point{X: x + w - d, Y: y + h}, geom.Point{X: x, Y: y + h})
	case diagram.PresetCylinder:
		rx, ry := w/2, h/8
		writePath(buf, fmt.Sprintf("M%d %d A%d %d 0 0 0 %d %d V%d A%d %d 0 0 1 %d %d Z",
			x, y+ry, rx, ry, x+w, y+ry, y+h-ry, rx, ry, x, y+h-ry), style)
		fmt.Fprintf(buf, `    <ellipse cx="%d" cy="%d" rx="%d" ry="%d" %s/>`+"\n", c.X, y+ry, rx, ry, style)
	case diagram.PresetDocument:
		d := h / 10
		writePath(buf, fmt.Sprintf("M%d %d H%d V%d C%d %d %d %d %d %d Z",
			x, y, x+w, y+h-d, x+3*w/4, y+h-3*d, x+w/4, y+h+d, x, y+h-d), style)
	case diagram.PresetCloud:
		writePath(buf, cloudPath(r), style)
	default:
		writeRect(buf, r, min(w, h)/6, style)
	}
}

// cloudPath approximates a cloud with arcs between points on the
// inscribed ellipse.
func cloudPath(r geom.Rect) string {
	const bumps = 8
	c := r.Center()
	rx, ry := float64(r.CX)/2*0.85, float64(r.CY)/2*0.8
	pts := make([]geom.Point, bumps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / bumps
		pts[i] = geom.Point{
			X: c.X + int(math.Round(rx*math.Cos(a))),
			Y: c.Y + int(math.Round(ry*math.Sin(a))),
		}
	}
	parts := []string{fmt.Sprintf("M%d %d", pts[0].X, pts[0].Y)}
	for i := range pts {
		next := pts[(i+1)%bumps]
		rad := int(math.Round(geom.Distance(pts[i], next) * 0.6))
		parts = append(parts, fmt.Sprintf("A%d %d 0 0 1 %d %d", rad, rad, next.X, next.Y))
	}
	return strings.Join(parts, " ") + " Z"
}

// =============================================================================
// Text
// =============================================================================

func emUnits(size int) int { return size * geom.UnitsPerPoint / 100 }

// writeText writes text with its lines centered vertically on at.
func writeText(buf *bytes.Buffer, text string, at geom.Point, size int, color, anchor string, bold bool) {
	lines := strings.Split(text, "\n")
	fs := emUnits(size)
	lh := int(float64(fs) * layout.LineHeightFactor)

	fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="%s" font-size="%d" fill="#%s" text-anchor="%s" dominant-baseline="central"`,
		at.X, at.Y, fontFamily, fs, color, anchor)
	if bold {
		buf.WriteString(` font-weight="bold"`)
	}
	buf.WriteString(">")
	for i, ln := range lines {
		dy := lh
		if i == 0 {
			dy = -(len(lines) - 1) * lh / 2
		}
		fmt.Fprintf(buf, `<tspan x="%d" dy="%d">%s</tspan>`, at.X, dy, escape(ln))
	}
	buf.WriteString("</text>\n")
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
