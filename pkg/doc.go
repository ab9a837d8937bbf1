// Package pkg provides the core libraries for Placard slide diagrams.
//
// # Overview
//
// Placard turns a declarative diagram definition (shapes, connections,
// lanes, a legend) into a placed, routed and checked slide diagram. The pkg
// directory is organized into four areas:
//
//  1. Model - [diagram] definitions and [geom] coordinates
//  2. Engine - [layout] placement and [layout/route] connector geometry
//  3. Checks - [verify] layout and render validation
//  4. Orchestration - [pipeline], [server], [cache] and [config]
//
// # Architecture
//
// The data flow through Placard:
//
//	JSON / YAML / TOML definition
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [diagram] package (definition validation)
//	         ↓
//	    [layout] package (ids, placement, font fit, routing, legend)
//	         ↓
//	    [verify] package (layout validation)
//	         ↓
//	    [render/sink] package (SVG, JSON) → [verify] (render validation)
//	         ↓
//	    SVG/JSON/PNG/PDF output
//
// Every coordinate is an integer in EMU (914400 per inch) and every font
// size is in hundredths of a point.
//
// # Quick Start
//
//	def, _ := io.ReadDefinition("checkout.yaml")
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, def, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//	if err != nil {
//	    // errors.Subjects(err) names the offending shapes or connectors
//	}
//	for _, w := range res.Report.All() {
//	    fmt.Println(w)
//	}
//
// # Main Packages
//
// [io] - Definition readers and writers for JSON, YAML and TOML. Unknown
// keys are rejected in every format.
//
// [diagram] - Definition model, presets, palette and the definition
// validator. Structural problems are errors; cosmetic ones are warnings.
//
// [layout] - Deterministic layout engine. Lanes, radial and tree archetypes,
// largest-fitting font search, orthogonal routing with rounded elbows, and
// the legend.
//
// [verify] - Layout validator (text overflow, font floor, overlaps,
// connector drift) and render validator (id coverage, paint order).
//
// [render] - Emitters, icon resolvers and rsvg-convert conversion.
// [render/sink] writes SVG and JSON and parses them back for checking;
// [render/nodelink] draws a Graphviz topology preview.
//
// [pipeline] - validate → layout → verify → render with caching, hooks and
// batch execution. Used by the CLI and the HTTP API.
//
// [cache] - File, Redis, MongoDB and null backends behind one interface.
//
// [server] - chi-based HTTP API over the pipeline.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB backends
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/diagram
// [geom]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/geom
// [io]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/layout
// [layout/route]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/layout/route
// [verify]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/verify
// [render]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/placard/pkg/server
package pkg
