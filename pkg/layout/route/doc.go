// Package route turns orthogonal waypoint lists into connector paths with
// rounded elbows.
//
// [Build] computes the bounding box of the waypoints, expresses every
// coordinate relative to its top-left corner, and replaces each interior
// corner by a line to the corner minus the radius followed by a quarter arc.
// Arc start and sweep angles come from a fixed table keyed by the incoming
// and outgoing directions, in 60000ths of a degree, clockwise from the
// positive x axis with y pointing down.
//
// Consecutive waypoints must differ along exactly one axis. Diagonal and
// zero-length segments, U-turns and straight-through corners are rejected
// with an INVALID_ROUTE error.
package route
