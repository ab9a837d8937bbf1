package geom

import "math"

// CenterRow centers n items of width w separated by gap g on an axis of
// length l and returns each item's start offset from the axis origin.
func CenterRow(n, w, g, l int) []int {
	if n <= 0 {
		return nil
	}
	total := n*w + (n-1)*g
	start := (l - total) / 2
	out := make([]int, n)
	for i := range out {
		out[i] = start + i*(w+g)
	}
	return out
}

// RowSpan returns the extent of n items of width w with gap g.
func RowSpan(n, w, g int) int {
	if n <= 0 {
		return 0
	}
	return n*w + (n-1)*g
}

// Radial places n points evenly on a circle of the given radius around c,
// the first at 12 o'clock and proceeding clockwise in screen coordinates.
func Radial(c Point, radius, n int) []Point {
	if n <= 0 {
		return nil
	}
	out := make([]Point, n)
	for i := range out {
		a := RadialAngle(i, n) * math.Pi / 180
		out[i] = Point{
			X: c.X + int(math.Round(float64(radius)*math.Cos(a))),
			Y: c.Y + int(math.Round(float64(radius)*math.Sin(a))),
		}
	}
	return out
}

// RadialAngle returns the angle in degrees of item i of n.
func RadialAngle(i, n int) float64 {
	return -90 + float64(i)*360/float64(n)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}
