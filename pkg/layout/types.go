package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/geom"
	"github.com/matzehuels/placard/pkg/layout/route"
)

// ZLayer is a paint-order tier, painted low to high.
type ZLayer int

// Paint-order tiers.
const (
	ZBackground ZLayer = iota
	ZLane
	ZTitle
	ZConnector
	ZShape
	ZLabel
)

var zNames = [...]string{"background", "lane", "title", "connector", "shape", "label"}

func (z ZLayer) String() string {
	if z < ZBackground || z > ZLabel {
		return "unknown"
	}
	return zNames[z]
}

// ParseZLayer resolves a tier name.
func ParseZLayer(s string) (ZLayer, bool) {
	for i, n := range zNames {
		if n == s {
			return ZLayer(i), true
		}
	}
	return 0, false
}

// RouteKind distinguishes single-segment connectors from elbow routes.
type RouteKind string

// Route kinds.
const (
	RouteStraight RouteKind = "straight"
	RouteElbow    RouteKind = "elbow"
)

// Arrow is a line-end marker.
type Arrow string

// Line-end markers.
const (
	ArrowNone     Arrow = "none"
	ArrowTriangle Arrow = "triangle"
	ArrowStealth  Arrow = "stealth"
)

// ParseArrow resolves a marker name; empty means triangle.
func ParseArrow(s string) (Arrow, bool) {
	switch Arrow(s) {
	case "", ArrowTriangle:
		return ArrowTriangle, true
	case ArrowNone, ArrowStealth:
		return Arrow(s), true
	}
	return ArrowTriangle, false
}

// Dash is a line pattern.
type Dash string

// Line patterns.
const (
	DashSolid Dash = "solid"
	DashDash  Dash = "dash"
	DashDot   Dash = "dot"
)

// ParseDash resolves a pattern name; empty means solid.
func ParseDash(s string) (Dash, bool) {
	switch Dash(s) {
	case "", DashSolid:
		return DashSolid, true
	case DashDash, DashDot:
		return Dash(s), true
	}
	return DashSolid, false
}

// Background fills the whole canvas.
type Background struct {
	ID     int       `json:"id"`
	Rect   geom.Rect `json:"rect"`
	Fill   string    `json:"fill"`
	ZLayer ZLayer    `json:"z"`
}

// LaneBackground is the band behind one lane.
type LaneBackground struct {
	ID     int       `json:"id"`
	Key    string    `json:"key"`
	Label  string    `json:"label,omitempty"`
	Rect   geom.Rect `json:"rect"`
	Fill   string    `json:"fill"`
	Border string    `json:"border"`
	ZLayer ZLayer    `json:"z"`
}

// TitleBar is the diagram heading.
type TitleBar struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	Rect     geom.Rect `json:"rect"`
	FontSize int       `json:"font_size"`
	Color    string    `json:"color"`
	ZLayer   ZLayer    `json:"z"`
}

// PlacedShape is a positioned, styled shape.
type PlacedShape struct {
	ID        int                `json:"id"`
	Key       string             `json:"key"`
	Text      string             `json:"text"`
	Kind      diagram.PresetKind `json:"kind"`
	Rect      geom.Rect          `json:"rect"`
	Fill      string             `json:"fill"`
	Border    string             `json:"border"`
	TextColor string             `json:"text_color"`
	FontSize  int                `json:"font_size"`
	Bold      bool               `json:"bold,omitempty"`
	Shadow    bool               `json:"shadow,omitempty"`
	Icon      string             `json:"icon,omitempty"`
	ZLayer    ZLayer             `json:"z"`
}

// PlacedConnector is a routed connection between two placed shapes.
//
// HeadArrow marks the source end and TailArrow the target end. FlipH and
// FlipV are set when the target anchor lies left of or above the source
// anchor. Waypoints are absolute; Path is relative to Path.Bounds, which
// equals Rect.
type PlacedConnector struct {
	ID           int          `json:"id"`
	Key          string       `json:"key"`
	SourceID     int          `json:"source_id"`
	SourceAnchor geom.Anchor  `json:"source_anchor"`
	TargetID     int          `json:"target_id"`
	TargetAnchor geom.Anchor  `json:"target_anchor"`
	Rect         geom.Rect    `json:"rect"`
	FlipH        bool         `json:"flip_h,omitempty"`
	FlipV        bool         `json:"flip_v,omitempty"`
	Color        string       `json:"color"`
	LineWidth    int          `json:"line_width"`
	Route        RouteKind    `json:"route"`
	Dash         Dash         `json:"dash"`
	HeadArrow    Arrow        `json:"head_arrow"`
	TailArrow    Arrow        `json:"tail_arrow"`
	Waypoints    []geom.Point `json:"waypoints"`
	Path         route.Path   `json:"path"`
	ZLayer       ZLayer       `json:"z"`
}

// PlacedLabel is a connector caption.
type PlacedLabel struct {
	ID          int       `json:"id"`
	ConnectorID int       `json:"connector_id"`
	Text        string    `json:"text"`
	Rect        geom.Rect `json:"rect"`
	FontSize    int       `json:"font_size"`
	Color       string    `json:"color"`
	ZLayer      ZLayer    `json:"z"`
}

// LegendSwatch is one legend row.
type LegendSwatch struct {
	ID       int       `json:"id"`
	Label    string    `json:"label"`
	Color    string    `json:"color"`
	Swatch   geom.Rect `json:"swatch"`
	TextRect geom.Rect `json:"text_rect"`
	ZLayer   ZLayer    `json:"z"`
}

// PlacedLegend is the legend box and its rows.
type PlacedLegend struct {
	ID       int            `json:"id"`
	Rect     geom.Rect      `json:"rect"`
	Fill     string         `json:"fill"`
	Border   string         `json:"border"`
	FontSize int            `json:"font_size"`
	Entries  []LegendSwatch `json:"entries"`
	ZLayer   ZLayer         `json:"z"`
}

// Layout is the complete set of placed primitives for one diagram.
type Layout struct {
	Canvas     geom.Size         `json:"canvas"`
	Archetype  diagram.Archetype `json:"archetype"`
	Background Background        `json:"background"`
	Lanes      []LaneBackground  `json:"lanes,omitempty"`
	Title      *TitleBar         `json:"title,omitempty"`
	Shapes     []PlacedShape     `json:"shapes"`
	Connectors []PlacedConnector `json:"connectors"`
	Labels     []PlacedLabel     `json:"labels,omitempty"`
	Legend     *PlacedLegend     `json:"legend,omitempty"`
	// NextID is the first id the allocator did not hand out.
	NextID int `json:"next_id"`
}

// CanvasRect returns the canvas as a rectangle at the origin.
func (l *Layout) CanvasRect() geom.Rect {
	return geom.Rect{CX: l.Canvas.W, CY: l.Canvas.H}
}

// Shape returns the placed shape with the given id.
func (l *Layout) Shape(id int) (*PlacedShape, bool) {
	for i := range l.Shapes {
		if l.Shapes[i].ID == id {
			return &l.Shapes[i], true
		}
	}
	return nil, false
}

// ShapeByKey returns the placed shape for a definition id.
func (l *Layout) ShapeByKey(key string) (*PlacedShape, bool) {
	for i := range l.Shapes {
		if l.Shapes[i].Key == key {
			return &l.Shapes[i], true
		}
	}
	return nil, false
}

// Primitive kinds reported by Primitives.
const (
	KindBackground = "background"
	KindLane       = "lane"
	KindTitle      = "title"
	KindConnector  = "connector"
	KindShape      = "shape"
	KindLabel      = "label"
	KindLegend     = "legend"
	KindSwatch     = "swatch"
)

// Primitive is the paint-order view of one placed element. Source and
// Target are set for connectors only.
type Primitive struct {
	ID     int
	Kind   string
	ZLayer ZLayer
	Source int
	Target int
}

// Primitives lists every primitive in paint order: by tier, then by id.
func (l *Layout) Primitives() []Primitive {
	ps := make([]Primitive, 0, l.Count())
	ps = append(ps, Primitive{ID: l.Background.ID, Kind: KindBackground, ZLayer: l.Background.ZLayer})
	for _, ln := range l.Lanes {
		ps = append(ps, Primitive{ID: ln.ID, Kind: KindLane, ZLayer: ln.ZLayer})
	}
	if l.Title != nil {
		ps = append(ps, Primitive{ID: l.Title.ID, Kind: KindTitle, ZLayer: l.Title.ZLayer})
	}
	for _, s := range l.Shapes {
		ps = append(ps, Primitive{ID: s.ID, Kind: KindShape, ZLayer: s.ZLayer})
	}
	for _, c := range l.Connectors {
		ps = append(ps, Primitive{ID: c.ID, Kind: KindConnector, ZLayer: c.ZLayer, Source: c.SourceID, Target: c.TargetID})
	}
	for _, lb := range l.Labels {
		ps = append(ps, Primitive{ID: lb.ID, Kind: KindLabel, ZLayer: lb.ZLayer})
	}
	if l.Legend != nil {
		ps = append(ps, Primitive{ID: l.Legend.ID, Kind: KindLegend, ZLayer: l.Legend.ZLayer})
		for _, e := range l.Legend.Entries {
			ps = append(ps, Primitive{ID: e.ID, Kind: KindSwatch, ZLayer: e.ZLayer})
		}
	}
	slices.SortStableFunc(ps, func(a, b Primitive) int {
		return cmp.Or(cmp.Compare(a.ZLayer, b.ZLayer), cmp.Compare(a.ID, b.ID))
	})
	return ps
}

// Count returns the number of primitives a faithful emitter produces.
func (l *Layout) Count() int {
	n := 1 + len(l.Lanes) + len(l.Shapes) + len(l.Connectors) + len(l.Labels)
	if l.Title != nil {
		n++
	}
	if l.Legend != nil {
		n += 1 + len(l.Legend.Entries)
	}
	return n
}
