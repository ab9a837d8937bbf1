// Package nodelink renders diagram definitions as node-link graphs.
//
// # Overview
//
// This package ignores placement and hands the definition's topology to
// Graphviz: shapes become nodes, connections become edges and lanes become
// clusters. It is a quick way to eyeball a definition before tuning its
// layout.
//
// # Usage
//
//	dot := nodelink.RenderDOT(def, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include the shape id, preset and style
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
