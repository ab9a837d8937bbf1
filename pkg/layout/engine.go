package layout

import (
	"strings"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
	"github.com/matzehuels/placard/pkg/layout/route"
)

// placement is a shape positioned by an archetype planner.
type placement struct {
	spec diagram.ShapeSpec
	rect geom.Rect
	// band is the lane index or tree level.
	band int
}

// lanePlan is a lane band to draw behind its shapes.
type lanePlan struct {
	spec  diagram.LaneSpec
	index int
	rect  geom.Rect
}

// connectFunc chooses anchors and waypoints for a connection.
type connectFunc func(src, tgt *placement) (sa, ta geom.Anchor, pts []geom.Point)

// plan is an archetype's placement result.
type plan struct {
	lanes   []lanePlan
	shapes  []placement
	connect connectFunc
}

// engine holds the state of one Compute call.
type engine struct {
	def    *diagram.Definition
	opts   Options
	canvas geom.Size
	ids    *Allocator
	out    *Layout
}

// Compute places def on a canvas and routes its connections.
//
// def must have passed diagram validation: Compute assumes every connection
// endpoint resolves. Routing precondition failures are returned as
// INVALID_ROUTE errors naming the connection.
func Compute(def *diagram.Definition, opts Options) (*Layout, error) {
	opts.SetDefaults()
	canvas := opts.Canvas
	if canvas.W <= 0 || canvas.H <= 0 {
		c, err := def.CanvasSize()
		if err != nil {
			return nil, err
		}
		canvas = c
	}

	e := &engine{
		def:    def,
		opts:   opts,
		canvas: canvas,
		ids:    NewAllocator(opts.IDBase),
		out: &Layout{
			Canvas:    canvas,
			Archetype: def.ArchetypeOrDefault(),
		},
	}
	if err := e.run(); err != nil {
		return nil, err
	}
	return e.out, nil
}

func (e *engine) run() error {
	e.out.Background = Background{
		ID:     e.ids.Next(),
		Rect:   geom.Rect{CX: e.canvas.W, CY: e.canvas.H},
		Fill:   diagram.BackgroundColor,
		ZLayer: ZBackground,
	}

	var p plan
	switch e.def.ArchetypeOrDefault() {
	case diagram.ArchetypeRadial:
		p = e.planRadial()
	case diagram.ArchetypeTree:
		p = e.planTree()
	case diagram.ArchetypeLanes:
		p = e.planLanes()
	default:
		return errors.New(errors.ErrCodeInvalidDefinition, "unknown archetype %q", e.def.Archetype)
	}

	e.emitLanes(p.lanes)
	e.emitTitle()
	byKey := e.emitShapes(p.shapes)
	if err := e.emitConnectors(p, byKey); err != nil {
		return err
	}
	e.emitLabels()
	e.emitLegend()
	e.out.NextID = e.ids.Peek()
	return nil
}

// usable returns the area below the title allowance and inside margins.
func (e *engine) usable() geom.Rect {
	top := e.opts.MarginY
	if e.def.Title != "" {
		top = e.opts.TitleHeight + e.opts.TitleGap
	}
	return geom.Rect{
		X:  e.opts.MarginX,
		Y:  top,
		CX: e.canvas.W - 2*e.opts.MarginX,
		CY: e.canvas.H - top - e.opts.MarginY,
	}
}

func (e *engine) emitLanes(lanes []lanePlan) {
	for _, lp := range lanes {
		sw := diagram.LaneSwatch(lp.index)
		label := lp.spec.Label
		if label == "" {
			label = lp.spec.ID
		}
		e.out.Lanes = append(e.out.Lanes, LaneBackground{
			ID:     e.ids.Next(),
			Key:    lp.spec.ID,
			Label:  label,
			Rect:   lp.rect,
			Fill:   errors.SanitizeHex(lp.spec.Fill, sw.Fill),
			Border: errors.SanitizeHex(lp.spec.Border, sw.Border),
			ZLayer: ZLane,
		})
	}
}

func (e *engine) emitTitle() {
	if e.def.Title == "" {
		return
	}
	r := geom.Rect{X: e.opts.MarginX, Y: 0, CX: e.canvas.W - 2*e.opts.MarginX, CY: e.opts.TitleHeight}
	e.out.Title = &TitleBar{
		ID:       e.ids.Next(),
		Text:     e.def.Title,
		Rect:     r,
		FontSize: FitFontSize(e.def.Title, r, e.opts.TitleFont),
		Color:    diagram.TitleColor,
		ZLayer:   ZTitle,
	}
}

func (e *engine) emitShapes(ps []placement) map[string]*placement {
	byKey := make(map[string]*placement, len(ps))
	for i := range ps {
		pl := &ps[i]
		byKey[pl.spec.ID] = pl
		sw := diagram.StyleOrDefault(pl.spec.Style)
		text := pl.spec.Label()
		e.out.Shapes = append(e.out.Shapes, PlacedShape{
			ID:        e.ids.Next(),
			Key:       pl.spec.ID,
			Text:      text,
			Kind:      pl.spec.Kind(),
			Rect:      pl.rect,
			Fill:      sw.Fill,
			Border:    sw.Border,
			TextColor: sw.Text,
			FontSize:  FitFontSize(text, pl.rect, e.opts.Font),
			Bold:      pl.spec.Bold,
			Shadow:    !e.opts.NoShadow,
			Icon:      pl.spec.Icon,
			ZLayer:    ZShape,
		})
	}
	return byKey
}

func (e *engine) emitConnectors(p plan, byKey map[string]*placement) error {
	shapeID := make(map[string]int, len(e.out.Shapes))
	for _, s := range e.out.Shapes {
		shapeID[s.Key] = s.ID
	}

	for _, c := range e.def.Connections {
		src, tgt := byKey[c.Source], byKey[c.Target]
		if src == nil || tgt == nil {
			return errors.New(errors.ErrCodeInvalidDefinition, "connection references an unplaced shape").WithSubjects(c.Key())
		}

		var (
			sa, ta geom.Anchor
			pts    []geom.Point
		)
		if src == tgt {
			sa, ta, pts = selfLoop(src.rect, e.opts.LoopOffset)
		} else {
			sa, ta, pts = p.connect(src, tgt)
		}

		path, kind, err := e.route(pts)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidRoute, "route connection %s: %s", c.Key(), errors.UserMessage(err)).WithSubjects(c.Key())
		}

		a, b := pts[0], pts[len(pts)-1]
		dash, _ := ParseDash(c.Dash)
		tail, _ := ParseArrow(c.Arrow)
		e.out.Connectors = append(e.out.Connectors, PlacedConnector{
			ID:           e.ids.Next(),
			Key:          c.Key(),
			SourceID:     shapeID[c.Source],
			SourceAnchor: sa,
			TargetID:     shapeID[c.Target],
			TargetAnchor: ta,
			Rect:         path.Bounds,
			FlipH:        b.X < a.X,
			FlipV:        b.Y < a.Y,
			Color:        errors.SanitizeHex(c.Color, diagram.ConnectorColor),
			LineWidth:    e.opts.LineWidth,
			Route:        kind,
			Dash:         dash,
			HeadArrow:    ArrowNone,
			TailArrow:    tail,
			Waypoints:    pts,
			Path:         path,
			ZLayer:       ZConnector,
		})
	}
	return nil
}

// route builds the path for pts. Two-point diagonals are drawn as straight
// lines, and touching anchors as an empty one for the layout checks to
// flag. Everything else goes through the orthogonal router.
func (e *engine) route(pts []geom.Point) (route.Path, RouteKind, error) {
	if len(pts) == 2 {
		a, b := pts[0], pts[1]
		if a == b || (a.X != b.X && a.Y != b.Y) {
			return route.Straight(a, b), RouteStraight, nil
		}
		p, err := route.Build(pts, e.opts.CornerRadius)
		return p, RouteStraight, err
	}
	p, err := route.Build(pts, e.opts.CornerRadius)
	return p, RouteElbow, err
}

func (e *engine) emitLabels() {
	for i, c := range e.def.Connections {
		text := strings.TrimSpace(c.Label)
		if text == "" {
			continue
		}
		pc := e.out.Connectors[i]
		size := e.opts.LabelFont
		e.out.Labels = append(e.out.Labels, PlacedLabel{
			ID:          e.ids.Next(),
			ConnectorID: pc.ID,
			Text:        text,
			Rect:        labelRect(pc.Waypoints, text, size, e.opts.LanePadding),
			FontSize:    size,
			Color:       diagram.LabelColor,
			ZLayer:      ZLabel,
		})
	}
}

// labelRect positions a caption on the middle segment of a route: above
// horizontal segments, to the right of vertical and diagonal ones.
func labelRect(pts []geom.Point, text string, size, gap int) geom.Rect {
	k := (len(pts) - 2) / 2
	a, b := pts[k], pts[k+1]
	mid := geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	w := TextWidth(text, size) + 2*TextInsetX
	h := TextHeight(text, size) + 2*TextInsetY
	if a.Y == b.Y {
		return geom.Rect{X: mid.X - w/2, Y: mid.Y - h - gap, CX: w, CY: h}
	}
	return geom.Rect{X: mid.X + gap, Y: mid.Y - h/2, CX: w, CY: h}
}
