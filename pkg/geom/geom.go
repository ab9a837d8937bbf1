package geom

import (
	"fmt"
	"math"
)

// Length unit conversions.
const (
	UnitsPerInch  = 914400
	UnitsPerPoint = 12700
)

// Inches converts inches to length units, rounded to the nearest unit.
func Inches(in float64) int { return int(math.Round(in * UnitsPerInch)) }

// Points converts typographic points to length units.
func Points(pt float64) int { return int(math.Round(pt * UnitsPerPoint)) }

// Point is a position in layout space.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// String returns "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is a canvas or box extent.
type Size struct {
	W int `json:"width" yaml:"width" toml:"width"`
	H int `json:"height" yaml:"height" toml:"height"`
}

// Canvas presets (16:9 at 10in and 13.333in wide).
var (
	CanvasStandard   = Size{W: 9144000, H: 5143500}
	CanvasWidescreen = Size{W: 12192000, H: 6858000}
)

// Rect is an axis-aligned rectangle addressed by its top-left corner.
type Rect struct {
	X  int `json:"x"`
	Y  int `json:"y"`
	CX int `json:"cx"`
	CY int `json:"cy"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.CX }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.CY }

// Center returns the rectangle's center, rounded down.
func (r Rect) Center() Point { return Point{X: r.X + r.CX/2, Y: r.Y + r.CY/2} }

// Anchor returns the attachment point of the given side.
func (r Rect) Anchor(a Anchor) Point {
	switch a {
	case AnchorTop:
		return Point{X: r.X + r.CX/2, Y: r.Y}
	case AnchorRight:
		return Point{X: r.Right(), Y: r.Y + r.CY/2}
	case AnchorBottom:
		return Point{X: r.X + r.CX/2, Y: r.Bottom()}
	default:
		return Point{X: r.X, Y: r.Y + r.CY/2}
	}
}

// Overlaps reports whether r and o share interior area. Touching edges do
// not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Within reports whether r lies entirely inside o.
func (r Rect) Within(o Rect) bool {
	return r.X >= o.X && r.Y >= o.Y && r.Right() <= o.Right() && r.Bottom() <= o.Bottom()
}

// Inset shrinks r by dx on the left and right and dy on the top and bottom.
func (r Rect) Inset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, CX: r.CX - 2*dx, CY: r.CY - 2*dy}
}

// Empty reports whether r has no positive extent.
func (r Rect) Empty() bool { return r.CX <= 0 || r.CY <= 0 }

// String returns "[x,y cx×cy]".
func (r Rect) String() string { return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.CX, r.CY) }

// CenteredAt returns a w×h rectangle centered on p.
func CenteredAt(p Point, w, h int) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, CX: w, CY: h}
}

// Bounds returns the minimal rectangle spanning pts. Each side is at least 1
// so that straight horizontal or vertical paths keep a positive extent.
func Bounds(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{CX: 1, CY: 1}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, CX: max(maxX-minX, 1), CY: max(maxY-minY, 1)}
}

// Anchor identifies one of the four side midpoints of a rectangle.
type Anchor int

// Anchor indices, clockwise from the top.
const (
	AnchorTop Anchor = iota
	AnchorRight
	AnchorBottom
	AnchorLeft
)

var anchorNames = [...]string{"top", "right", "bottom", "left"}

// String returns the lower-case side name.
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// Valid reports whether a is one of the four known anchors.
func (a Anchor) Valid() bool { return a >= AnchorTop && a <= AnchorLeft }

// Opposite returns the anchor on the other side.
func (a Anchor) Opposite() Anchor { return (a + 2) % 4 }

// Abs returns |v|.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
