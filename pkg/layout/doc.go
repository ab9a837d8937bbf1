// Package layout computes placed layouts from validated diagram definitions.
//
// [Compute] is a pure function: identical definitions and options always
// produce identical layouts. It assigns every primitive a numeric id from a
// per-call [Allocator], places shapes according to the definition's
// archetype, fits font sizes to boxes and routes connectors through the
// route package.
//
// # Archetypes
//
//   - lanes: shapes grouped into equal bands, centered inside their band.
//     Same-lane connectors run along the band, cross-lane connectors across.
//   - radial: one hub at the center of the usable area and spokes evenly
//     spaced on a circle, starting at 12 o'clock.
//   - tree: levels derived from the connections, one centered row per level.
//
// # Identifiers
//
// Ids are allocated in a fixed order: background, lanes, title, shapes,
// connectors, connector labels, legend, legend entries. Changing this order
// changes every id downstream of the change.
//
// # Paint order
//
// Each primitive carries a [ZLayer]. [Layout.Primitives] lists all
// primitives back to front, which is the order render emitters must keep.
package layout
