// Package geom provides the integer geometry shared by the layout engine and
// the validators.
//
// All lengths are integer length units (914400 per inch, 12700 per point).
// Rectangles are value types addressed by their top-left corner and size;
// anchors are the midpoints of a rectangle's four sides.
//
// # Placement helpers
//
// [CenterRow] centers n equal items with a fixed gap on an axis and
// [Radial] distributes n points evenly on a circle starting at 12 o'clock:
//
//	xs := geom.CenterRow(3, 1371600, 304800, 9144000)
//	spokes := geom.Radial(geom.Point{X: 4572000, Y: 2800000}, 1828800, 6)
package geom
