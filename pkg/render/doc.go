// Package render turns placed layouts into documents.
//
// # Overview
//
// Rendering is the last step of the pipeline. An [Emitter] consumes a
// [layout.Layout] and serializes it; the emitters live in subpackages:
//
//   - [sink]: SVG, JSON, PNG and PDF output of a placed layout
//   - [nodelink]: Graphviz topology view of a definition, ignoring geometry
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := sink.NewSVG().Emit(ctx, l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Icons
//
// Shapes may name an icon. Emitters look icons up through an
// [IconResolver]; [DirIconResolver] serves them from a directory and
// [URLIconResolver] from an http(s) base URL. A failed
// lookup drops the icon and never fails the render.
//
// [sink]: github.com/matzehuels/placard/pkg/render/sink
// [nodelink]: github.com/matzehuels/placard/pkg/render/nodelink
package render
