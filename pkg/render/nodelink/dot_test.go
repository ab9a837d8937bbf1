package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
)

func testDefinition() *diagram.Definition {
	return &diagram.Definition{
		Title: "Billing",
		Lanes: []diagram.LaneSpec{{ID: "front", Label: "Frontend"}},
		Shapes: []diagram.ShapeSpec{
			{ID: "ui", Text: "Web UI", Group: "front"},
			{ID: "db", Text: "Ledger", Preset: "cylinder", Style: "accent"},
		},
		Connections: []diagram.ConnectionSpec{
			{Source: "ui", Target: "db", Label: "writes", Dash: "dash"},
		},
	}
}

func TestRenderDOT(t *testing.T) {
	dot := RenderDOT(testDefinition(), Options{})

	wants := []string{
		"digraph G",
		"rankdir=LR",
		`label="Billing"`,
		`subgraph "cluster_front"`,
		`label="Frontend"`,
		`"ui" [label="Web UI"`,
		"shape=cylinder",
		`"ui" -> "db"`,
		`label="writes"`,
		"style=dashed",
	}
	for _, w := range wants {
		if !strings.Contains(dot, w) {
			t.Errorf("RenderDOT() output missing %q", w)
		}
	}

	cluster := dot[strings.Index(dot, "subgraph"):strings.Index(dot, "  }\n")]
	if strings.Contains(cluster, `"db"`) {
		t.Error("RenderDOT() put an ungrouped shape inside a cluster")
	}
}

func TestRenderDOT_Orientation(t *testing.T) {
	def := testDefinition()
	def.Orientation = diagram.Vertical
	if dot := RenderDOT(def, Options{}); !strings.Contains(dot, "rankdir=TB") {
		t.Error("vertical lanes should lay out top to bottom")
	}

	def = testDefinition()
	def.Archetype = diagram.ArchetypeTree
	if dot := RenderDOT(def, Options{}); !strings.Contains(dot, "rankdir=TB") {
		t.Error("trees should lay out top to bottom")
	}
}

func TestFmtLabel(t *testing.T) {
	s := diagram.ShapeSpec{ID: "svc", Text: "Service", Preset: "diamond", Style: "danger"}

	if got := fmtLabel(s, false); got != "Service" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", got, "Service")
	}

	label := fmtLabel(s, true)
	if !strings.HasPrefix(label, "Service\n") {
		t.Errorf("fmtLabel() detailed should start with text: %q", label)
	}
	for _, w := range []string{"id: svc", "preset: diamond", "style: danger"} {
		if !strings.Contains(label, w) {
			t.Errorf("fmtLabel() detailed missing %q: %q", w, label)
		}
	}

	if got := fmtLabel(diagram.ShapeSpec{ID: "bare"}, false); got != "bare" {
		t.Errorf("fmtLabel() without text = %q, want id", got)
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		preset string
		shape  string
	}{
		{"", "shape=box"},
		{"ellipse", "shape=ellipse"},
		{"document", "shape=note"},
		{"no-such-preset", "shape=box"},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			attrs := fmtAttrs(diagram.ShapeSpec{ID: "x", Preset: tt.preset}, false)
			if !strings.Contains(strings.Join(attrs, " "), tt.shape) {
				t.Errorf("fmtAttrs() = %v, want %s", attrs, tt.shape)
			}
		})
	}
}

func TestFmtEdgeAttrs(t *testing.T) {
	attrs := strings.Join(fmtEdgeAttrs(diagram.ConnectionSpec{Color: "#ed7d31", Dash: "dot", Arrow: "none", Label: "  "}), " ")
	for _, w := range []string{`color="#ED7D31"`, "style=dotted", "arrowhead=none"} {
		if !strings.Contains(attrs, w) {
			t.Errorf("fmtEdgeAttrs() = %s, missing %s", attrs, w)
		}
	}
	if strings.Contains(attrs, "label=") {
		t.Error("blank label emitted")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), RenderDOT(testDefinition(), Options{Detailed: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Fatal("RenderSVG() should return error for invalid DOT")
	}
	if errors.GetCode(err) == "" {
		t.Errorf("RenderSVG() error = %v, want a coded error", err)
	}
}
