package sink

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/layout/route"
	"github.com/matzehuels/placard/pkg/render"
	"github.com/matzehuels/placard/pkg/verify"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	def := &diagram.Definition{
		Title: "R&D <platform>",
		Lanes: []diagram.LaneSpec{{ID: "edge", Label: "Edge"}, {ID: "core", Label: "Core"}},
		Shapes: []diagram.ShapeSpec{
			{ID: "lb", Text: "Load balancer", Group: "edge", Icon: "lb"},
			{ID: "api", Text: "API", Group: "edge", Preset: "hexagon"},
			{ID: "db", Text: "Primary\nreplica", Group: "core", Preset: "cylinder", Icon: "missing"},
			{ID: "q", Text: "Queue", Group: "core", Preset: "blob"},
		},
		Connections: []diagram.ConnectionSpec{
			{Source: "lb", Target: "api", Label: "https"},
			{Source: "api", Target: "db", Dash: "dot", Arrow: "stealth"},
			{Source: "api", Target: "q", Color: "ED7D31"},
		},
		Legend: &diagram.LegendSpec{Entries: []diagram.LegendEntry{{Label: "async", Color: "ED7D31"}}},
	}
	l, err := layout.Compute(def, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return l
}

type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, key string) (string, error) {
	if href, ok := m[key]; ok {
		return href, nil
	}
	return "", errors.New(errors.ErrCodeFileNotFound, "icon %q not found", key)
}

func TestSVGRoundTrip(t *testing.T) {
	l := testLayout(t)
	data, err := NewSVG().Emit(context.Background(), l)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	els, err := ParseSVG(data)
	if err != nil {
		t.Fatalf("ParseSVG() error = %v", err)
	}
	if diff := cmp.Diff(verify.Elements(l), els); diff != "" {
		t.Errorf("ParseSVG() mismatch (-want +got):\n%s", diff)
	}
	ws, err := verify.Render(els, l.Count())
	if err != nil {
		t.Fatalf("verify.Render() error = %v", err)
	}
	if len(ws) != 0 {
		t.Errorf("verify.Render() warnings = %v", ws)
	}
}

func TestSVGContent(t *testing.T) {
	l := testLayout(t)
	data, err := RenderSVG(context.Background(), l)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(data)

	wants := []string{
		`viewBox="0 0 9144000 5143500" width="960" height="540"`,
		"R&amp;D &lt;platform&gt;",
		`<polygon points=`,
		`marker-end="url(#m-stealth-7F8C8D)"`,
		`<marker id="m-triangle-ED7D31"`,
		`stroke-dasharray="19050 38100"`,
		`filter="url(#shadow)"`,
		`<tspan`,
		`data-kind="connector" data-tier="connector" data-source=`,
	}
	for _, w := range wants {
		if !strings.Contains(svg, w) {
			t.Errorf("RenderSVG() output missing %q", w)
		}
	}
	if strings.Contains(svg, "<image") {
		t.Error("icons rendered without a resolver")
	}
	if strings.Contains(svg, `class="grid"`) {
		t.Error("grid rendered without WithGrid")
	}
}

func TestSVGShapeWeight(t *testing.T) {
	tests := []struct {
		name string
		bold bool
		want int
	}{
		{"regular", false, 0},
		{"bold", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &diagram.Definition{Shapes: []diagram.ShapeSpec{{ID: "a", Text: "Gateway", Bold: tt.bold}}}
			l, err := layout.Compute(def, layout.DefaultOptions())
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			data, err := RenderSVG(context.Background(), l)
			if err != nil {
				t.Fatalf("RenderSVG() error = %v", err)
			}
			if got := strings.Count(string(data), `font-weight="bold"`); got != tt.want {
				t.Errorf("bold text count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSVGElbowArcs(t *testing.T) {
	l := testLayout(t)
	var elbow *layout.PlacedConnector
	for i := range l.Connectors {
		if l.Connectors[i].Route == layout.RouteElbow {
			elbow = &l.Connectors[i]
		}
	}
	if elbow == nil {
		t.Fatal("no elbow connector in test layout")
	}
	if d := pathData(elbow.Path); !strings.Contains(d, "A") {
		t.Errorf("pathData() = %q, want arc commands", d)
	}
}

func TestPathData(t *testing.T) {
	p, err := route.Build([]geom.Point{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 400}}, 50)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "M100 100 L250 100 A50 50 0 0 1 300 150 L300 400"
	if got := pathData(p); got != want {
		t.Errorf("pathData() = %q, want %q", got, want)
	}

	p, err = route.Build([]geom.Point{{X: 300, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 400}}, 50)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want = "M300 100 L150 100 A50 50 0 0 0 100 150 L100 400"
	if got := pathData(p); got != want {
		t.Errorf("pathData() = %q, want %q", got, want)
	}
}

func TestSVGIcons(t *testing.T) {
	l := testLayout(t)
	icons := mapResolver{"lb": "data:image/png;base64,AAAA"}
	data, err := RenderSVG(context.Background(), l, WithIcons(icons))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if n := strings.Count(string(data), "<image"); n != 1 {
		t.Errorf("rendered %d icons, want 1", n)
	}

	els, err := ParseSVG(data)
	if err != nil {
		t.Fatalf("ParseSVG() error = %v", err)
	}
	if len(els) != l.Count() {
		t.Errorf("len(ParseSVG()) = %d, want %d", len(els), l.Count())
	}
}

func TestSVGIconsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderSVG(ctx, testLayout(t), WithIcons(mapResolver{})); err == nil {
		t.Error("RenderSVG() with canceled context error = nil")
	}
}

func TestSVGGrid(t *testing.T) {
	l := testLayout(t)
	data, err := RenderSVG(context.Background(), l, WithGrid())
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(data), `class="grid"`) {
		t.Error("grid missing")
	}
	els, err := ParseSVG(data)
	if err != nil {
		t.Fatalf("ParseSVG() error = %v", err)
	}
	if len(els) != l.Count() {
		t.Errorf("grid changed the element count: %d, want %d", len(els), l.Count())
	}
}

func TestRenderNil(t *testing.T) {
	if _, err := RenderSVG(context.Background(), nil); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("RenderSVG(nil) error = %v, want INVALID_LAYOUT", err)
	}
	if _, err := RenderJSON(nil); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("RenderJSON(nil) error = %v, want INVALID_LAYOUT", err)
	}
}

func TestParseSVG(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []verify.Element
		wantErr bool
	}{
		{
			name:  "ignores plain groups",
			input: `<svg><g class="grid"></g><g data-id="2" data-kind="background" data-tier="background"></g></svg>`,
			want:  []verify.Element{{ID: 2, Kind: "background", Tier: layout.ZBackground}},
		},
		{
			name:  "connector refs",
			input: `<svg><g data-id="7" data-kind="connector" data-tier="connector" data-source="3" data-target="4"/></svg>`,
			want:  []verify.Element{{ID: 7, Kind: "connector", Tier: layout.ZConnector, Source: 3, Target: 4}},
		},
		{name: "bad id", input: `<svg><g data-id="x"/></svg>`, wantErr: true},
		{name: "bad tier", input: `<svg><g data-id="1" data-tier="sky"/></svg>`, wantErr: true},
		{name: "malformed", input: `<svg><g data-id="1">`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSVG([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("ParseSVG() error = %v, want INVALID_FORMAT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSVG() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSVG() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	l := testLayout(t)
	data, err := JSON{}.Emit(context.Background(), l)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	got, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("ParseJSON() mismatch (-want +got):\n%s", diff)
	}

	els, err := ParseJSONElements(data)
	if err != nil {
		t.Fatalf("ParseJSONElements() error = %v", err)
	}
	if _, err := verify.Render(els, l.Count()); err != nil {
		t.Errorf("verify.Render() error = %v", err)
	}

	if _, err := ParseJSON([]byte("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseJSON() error = %v, want INVALID_FORMAT", err)
	}
}

func TestRasterRequiresLibrsvg(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert installed")
	}
	_, err := PNG{}.Emit(context.Background(), testLayout(t))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("PNG.Emit() error = %v, want UNSUPPORTED", err)
	}
}
