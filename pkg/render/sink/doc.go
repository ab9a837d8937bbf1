// Package sink serializes placed layouts.
//
// # Formats
//
//   - SVG ([RenderSVG], [SVG]): the reference output. Every primitive is a
//     top-level <g> carrying its id, kind, paint tier and, for connectors,
//     the ids of the shapes it binds, so [ParseSVG] can recover the
//     primitive list for render verification.
//   - JSON ([RenderJSON], [JSON]): the layout itself, indented.
//   - PNG and PDF ([RenderPNG], [RenderPDF]): SVG converted with
//     rsvg-convert.
//
// Coordinates are written in layout length units; the SVG viewBox spans
// the canvas and the width and height attributes give its size in pixels
// at 96 dpi.
//
// # Round Trip
//
//	data, _ := sink.RenderSVG(ctx, l)
//	els, _ := sink.ParseSVG(data)
//	warnings, err := verify.Render(els, l.Count())
package sink
