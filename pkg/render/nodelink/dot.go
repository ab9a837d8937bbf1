package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the shape id, preset and style to node labels.
	// When false, only the display text is shown.
	Detailed bool
}

var dotShapes = map[diagram.PresetKind]string{
	diagram.PresetRect:          "box",
	diagram.PresetRoundRect:     "box",
	diagram.PresetEllipse:       "ellipse",
	diagram.PresetDiamond:       "diamond",
	diagram.PresetHexagon:       "hexagon",
	diagram.PresetTerminator:    "box",
	diagram.PresetCylinder:      "cylinder",
	diagram.PresetParallelogram: "parallelogram",
	diagram.PresetDocument:      "note",
	diagram.PresetCloud:         "ellipse",
}

// RenderDOT converts a definition to Graphviz DOT. Lanes become clusters
// in declaration order; shapes outside any lane follow at the top level.
// Horizontal lanes lay the graph out left to right.
func RenderDOT(def *diagram.Definition, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	rankdir := "TB"
	if def.ArchetypeOrDefault() == diagram.ArchetypeLanes && def.OrientationOrDefault() == diagram.Horizontal {
		rankdir = "LR"
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if def.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", def.Title)
	}
	buf.WriteString("\n")

	inLane := make(map[string]bool)
	for i, ln := range def.Lanes {
		sw := diagram.LaneSwatch(i)
		label := ln.Label
		if label == "" {
			label = ln.ID
		}
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+ln.ID)
		fmt.Fprintf(&buf, "    label=%q;\n    style=filled;\n    fillcolor=\"#%s\";\n    color=\"#%s\";\n",
			label, errors.SanitizeHex(ln.Fill, sw.Fill), errors.SanitizeHex(ln.Border, sw.Border))
		for _, s := range def.Shapes {
			if s.Group == ln.ID {
				inLane[s.ID] = true
				fmt.Fprintf(&buf, "    %q [%s];\n", s.ID, strings.Join(fmtAttrs(s, opts.Detailed), ", "))
			}
		}
		buf.WriteString("  }\n")
	}
	for _, s := range def.Shapes {
		if !inLane[s.ID] {
			fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(fmtAttrs(s, opts.Detailed), ", "))
		}
	}

	buf.WriteString("\n")
	for _, c := range def.Connections {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.Source, c.Target, strings.Join(fmtEdgeAttrs(c), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s diagram.ShapeSpec, detailed bool) string {
	if !detailed {
		return s.Label()
	}
	parts := []string{"id: " + s.ID, "preset: " + s.Kind().String()}
	if s.Style != "" {
		parts = append(parts, "style: "+s.Style)
	}
	return s.Label() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(s diagram.ShapeSpec, detailed bool) []string {
	sw := diagram.StyleOrDefault(s.Style)
	kind := s.Kind().Renderable()
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(s, detailed)),
		"shape=" + dotShapes[kind],
		fmt.Sprintf("fillcolor=\"#%s\"", sw.Fill),
		fmt.Sprintf("color=\"#%s\"", sw.Border),
		fmt.Sprintf("fontcolor=\"#%s\"", sw.Text),
	}
	if kind == diagram.PresetRect || kind == diagram.PresetCylinder || kind == diagram.PresetDocument {
		attrs = append(attrs, "style=filled")
	}
	if s.Bold {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func fmtEdgeAttrs(c diagram.ConnectionSpec) []string {
	attrs := []string{fmt.Sprintf("color=\"#%s\"", errors.SanitizeHex(c.Color, diagram.ConnectorColor))}
	if l := strings.TrimSpace(c.Label); l != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", l))
	}
	switch c.Dash {
	case "dash":
		attrs = append(attrs, "style=dashed")
	case "dot":
		attrs = append(attrs, "style=dotted")
	}
	if c.Arrow == "none" {
		attrs = append(attrs, "arrowhead=none")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// The viewBox is rebased to the origin so the preview scales cleanly.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
