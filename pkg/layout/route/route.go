package route

import (
	"fmt"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
)

// Direction is the heading of an axis-aligned segment.
type Direction int

// Segment headings.
const (
	Right Direction = iota
	Left
	Down
	Up
)

var directionNames = [...]string{"right", "left", "down", "up"}

func (d Direction) String() string {
	if d < Right || d > Up {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// unit returns the unit step of d.
func (d Direction) unit() (int, int) {
	switch d {
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	case Down:
		return 0, 1
	default:
		return 0, -1
	}
}

// Angle units.
const (
	Degree      = 60000
	QuarterTurn = 90 * Degree
)

// Arc is the start and sweep angle of a rounded corner.
type Arc struct {
	Start int `json:"start"`
	Swing int `json:"swing"`
}

type turn struct{ in, out Direction }

// arcs holds the eight 90° turns. Built once, read-only.
var arcs = map[turn]Arc{
	{Right, Down}: {Start: 270 * Degree, Swing: QuarterTurn},
	{Right, Up}:   {Start: 90 * Degree, Swing: -QuarterTurn},
	{Left, Down}:  {Start: 270 * Degree, Swing: -QuarterTurn},
	{Left, Up}:    {Start: 90 * Degree, Swing: QuarterTurn},
	{Down, Right}: {Start: 180 * Degree, Swing: -QuarterTurn},
	{Down, Left}:  {Start: 0, Swing: QuarterTurn},
	{Up, Right}:   {Start: 180 * Degree, Swing: QuarterTurn},
	{Up, Left}:    {Start: 0, Swing: -QuarterTurn},
}

// ArcFor returns the arc for a turn from in to out.
func ArcFor(in, out Direction) (Arc, bool) {
	a, ok := arcs[turn{in, out}]
	return a, ok
}

// Op is a path command opcode.
type Op string

// Path opcodes.
const (
	MoveTo Op = "moveTo"
	LineTo Op = "lineTo"
	ArcTo  Op = "arcTo"
)

// Command is one path step. X and Y are the point reached by the step,
// relative to the path bounds. Arc steps also carry the radii and angles.
type Command struct {
	Op    Op  `json:"op"`
	X     int `json:"x"`
	Y     int `json:"y"`
	WR    int `json:"wr,omitempty"`
	HR    int `json:"hr,omitempty"`
	Start int `json:"start,omitempty"`
	Swing int `json:"swing,omitempty"`
}

// Path is a routed connector in bounds-relative coordinates.
type Path struct {
	Bounds   geom.Rect `json:"bounds"`
	Commands []Command `json:"commands"`
	// Radii is the corner radius used at each interior waypoint.
	Radii []int `json:"radii,omitempty"`
}

// Classify returns the heading from a to b. The segment must be purely
// horizontal or purely vertical and have non-zero length.
func Classify(a, b geom.Point) (Direction, error) {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 0 && dy == 0:
		return 0, errors.New(errors.ErrCodeInvalidRoute, "zero-length segment at %v", a)
	case dx != 0 && dy != 0:
		return 0, errors.New(errors.ErrCodeInvalidRoute, "diagonal segment %v -> %v", a, b)
	case dx > 0:
		return Right, nil
	case dx < 0:
		return Left, nil
	case dy > 0:
		return Down, nil
	default:
		return Up, nil
	}
}

// Build routes pts with corners rounded to at most radius.
func Build(pts []geom.Point, radius int) (Path, error) {
	if len(pts) < 2 {
		return Path{}, errors.New(errors.ErrCodeInvalidRoute, "route needs at least 2 waypoints, got %d", len(pts))
	}
	bounds := geom.Bounds(pts...)
	rel := make([]geom.Point, len(pts))
	for i, p := range pts {
		rel[i] = geom.Point{X: p.X - bounds.X, Y: p.Y - bounds.Y}
	}

	dirs := make([]Direction, len(rel)-1)
	for i := range dirs {
		d, err := Classify(rel[i], rel[i+1])
		if err != nil {
			return Path{}, errors.New(errors.ErrCodeInvalidRoute, "segment %d: %s", i, errors.UserMessage(err))
		}
		dirs[i] = d
	}

	path := Path{
		Bounds:   bounds,
		Commands: []Command{{Op: MoveTo, X: rel[0].X, Y: rel[0].Y}},
	}
	for i := 1; i < len(rel)-1; i++ {
		in, out := dirs[i-1], dirs[i]
		arc, ok := ArcFor(in, out)
		if !ok {
			return Path{}, errors.New(errors.ErrCodeInvalidRoute, "unsupported turn %s -> %s at waypoint %d", in, out, i)
		}
		r := ClampRadius(radius, segLen(rel[i-1], rel[i]), segLen(rel[i], rel[i+1]))
		path.Radii = append(path.Radii, r)

		c := rel[i]
		if r == 0 {
			path.Commands = append(path.Commands, Command{Op: LineTo, X: c.X, Y: c.Y})
			continue
		}
		ix, iy := in.unit()
		ox, oy := out.unit()
		path.Commands = append(path.Commands,
			Command{Op: LineTo, X: c.X - ix*r, Y: c.Y - iy*r},
			Command{Op: ArcTo, X: c.X + ox*r, Y: c.Y + oy*r, WR: r, HR: r, Start: arc.Start, Swing: arc.Swing},
		)
	}
	last := rel[len(rel)-1]
	path.Commands = append(path.Commands, Command{Op: LineTo, X: last.X, Y: last.Y})
	return path, nil
}

// Straight returns a single-segment path from a to b. Unlike Build it
// accepts diagonal segments.
func Straight(a, b geom.Point) Path {
	bounds := geom.Bounds(a, b)
	return Path{
		Bounds: bounds,
		Commands: []Command{
			{Op: MoveTo, X: a.X - bounds.X, Y: a.Y - bounds.Y},
			{Op: LineTo, X: b.X - bounds.X, Y: b.Y - bounds.Y},
		},
	}
}

// ClampRadius limits radius to half of each adjacent segment.
func ClampRadius(radius, before, after int) int {
	return max(0, min(radius, before/2, after/2))
}

func segLen(a, b geom.Point) int {
	return geom.Abs(b.X-a.X) + geom.Abs(b.Y-a.Y)
}
