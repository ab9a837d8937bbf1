package pipeline

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/diagram"
	perrors "github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/observability"
	"github.com/matzehuels/placard/pkg/render"
)

func sampleDefinition() *diagram.Definition {
	return &diagram.Definition{
		Title: "Checkout",
		Lanes: []diagram.LaneSpec{{ID: "web", Label: "Web"}, {ID: "api", Label: "API"}},
		Shapes: []diagram.ShapeSpec{
			{ID: "ui", Text: "Storefront", Group: "web"},
			{ID: "orders", Text: "Orders", Group: "api"},
			{ID: "queue", Text: "Queue", Group: "api", Preset: "blob"},
		},
		Connections: []diagram.ConnectionSpec{
			{Source: "ui", Target: "orders", Label: "checkout"},
			{Source: "orders", Target: "queue", Dash: "dash"},
		},
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"topology", false},
		{"SVG", true},
		{"pptx", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, perrors.GetCode(err), perrors.ErrCodeInvalidInput)
		}
	}

	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("ValidateFormats() = %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("ValidateFormats() with gif = nil, want error")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Formats: []string{"svg", "json", "svg"}, IconDir: "/icons"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if diff := cmp.Diff([]string{"svg", "json"}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if r, ok := opts.Icons.(render.DirIconResolver); !ok || r.Dir != "/icons" {
		t.Errorf("Icons = %#v, want DirIconResolver{/icons}", opts.Icons)
	}
	if opts.Logger == nil || opts.Layout.ShapeWidth == 0 {
		t.Error("defaults not applied")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error: %v", err)
	}

	empty := Options{}
	if err := empty.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{FormatSVG}, empty.Formats); diff != "" {
		t.Errorf("default Formats mismatch (-want +got):\n%s", diff)
	}

	bad := Options{Scale: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative scale accepted")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Grid: true, IconDir: "/i", Scale: 3, Detailed: true}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 3 || !got.Grid {
		t.Errorf("ArtifactKeyOpts(png) = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatSVG); got.Scale != 0 {
		t.Errorf("ArtifactKeyOpts(svg).Scale = %v, want 0", got.Scale)
	}
	got := opts.ArtifactKeyOpts(FormatDOT)
	if got.Grid || got.Icons != "" || got.Format != "dot+detailed" {
		t.Errorf("ArtifactKeyOpts(dot) = %+v", got)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}}

	res, err := r.Execute(ctx, sampleDefinition(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"shapes"`) {
		t.Error("json artifact has no shapes")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact is not a digraph")
	}
	if !diagram.Has(res.Report.Definition, diagram.WarnUnknownPreset, "queue") {
		t.Errorf("Report.Definition = %v, want unknown_preset for queue", res.Report.Definition)
	}
	if len(res.Report.Render) != 0 {
		t.Errorf("Report.Render = %v, want none", res.Report.Render)
	}
	if res.Stats.Shapes != 3 || res.Stats.Connectors != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Stats.Primitives != res.Layout.Count() {
		t.Errorf("Stats.Primitives = %d, want %d", res.Stats.Primitives, res.Layout.Count())
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", res.CacheInfo)
	}
	if res.DefinitionHash == "" {
		t.Error("DefinitionHash is empty")
	}

	again, err := r.Execute(ctx, sampleDefinition(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", again.CacheInfo)
	}
	if again.RunID == res.RunID {
		t.Error("RunID repeated across runs")
	}
	if diff := cmp.Diff(res.Layout, again.Layout); diff != "" {
		t.Errorf("cached layout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Artifacts, again.Artifacts); diff != "" {
		t.Errorf("cached artifacts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Report.Layout, again.Report.Layout); diff != "" {
		t.Errorf("cached layout warnings mismatch (-want +got):\n%s", diff)
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, sampleDefinition(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.LayoutHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", fresh.CacheInfo)
	}
}

func TestExecuteDeterministicWithoutCache(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}
	a, err := r.Execute(context.Background(), sampleDefinition(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), sampleDefinition(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Artifacts, b.Artifacts); diff != "" {
		t.Errorf("artifacts differ between runs (-first +second):\n%s", diff)
	}
	if b.CacheInfo.LayoutHit {
		t.Error("NullCache reported a hit")
	}
}

func TestExecuteErrors(t *testing.T) {
	dup := sampleDefinition()
	dup.Shapes = append(dup.Shapes, diagram.ShapeSpec{ID: "ui"})

	dangling := sampleDefinition()
	dangling.Connections = append(dangling.Connections, diagram.ConnectionSpec{Source: "ui", Target: "ghost"})

	tests := []struct {
		name     string
		def      *diagram.Definition
		opts     Options
		code     perrors.Code
		subjects []string
	}{
		{"nil definition", nil, Options{}, perrors.ErrCodeInvalidInput, nil},
		{"duplicate ids", dup, Options{}, perrors.ErrCodeInvalidDefinition, []string{"ui"}},
		{"dangling connection", dangling, Options{}, perrors.ErrCodeInvalidDefinition, []string{"ghost"}},
		{"bad format", sampleDefinition(), Options{Formats: []string{"gif"}}, perrors.ErrCodeInvalidInput, nil},
	}
	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.def, tt.opts)
			if !perrors.Is(err, tt.code) {
				t.Fatalf("Execute() error = %v, want %s", err, tt.code)
			}
			if diff := cmp.Diff(tt.subjects, perrors.Subjects(err)); diff != "" {
				t.Errorf("Subjects mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, sampleDefinition(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteLayoutSkipsRender(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).ExecuteLayout(context.Background(), sampleDefinition(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Layout == nil {
		t.Fatal("Layout is nil")
	}
	if len(res.Artifacts) != 0 {
		t.Errorf("Artifacts = %d entries, want none", len(res.Artifacts))
	}
}

func TestRenderRasterWithoutLibrsvg(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert installed")
	}
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), sampleDefinition(), Options{Formats: []string{FormatPNG}})
	if !perrors.Is(err, perrors.ErrCodeUnsupported) {
		t.Errorf("Execute(png) error = %v, want %s", err, perrors.ErrCodeUnsupported)
	}
}

func TestExecuteBatch(t *testing.T) {
	bad := sampleDefinition()
	bad.Connections = append(bad.Connections, diagram.ConnectionSpec{Source: "x", Target: "ui"})
	radial := &diagram.Definition{
		Archetype: diagram.ArchetypeRadial,
		Shapes: []diagram.ShapeSpec{
			{ID: "hub", Text: "Hub", Hub: true},
			{ID: "a", Text: "A"},
			{ID: "b", Text: "B"},
		},
		Connections: []diagram.ConnectionSpec{{Source: "hub", Target: "a"}, {Source: "hub", Target: "b"}},
	}

	r := NewRunner(nil, nil, nil)
	results, err := r.ExecuteBatch(context.Background(), []*diagram.Definition{sampleDefinition(), bad, radial}, Options{}, 2)
	if err != nil {
		t.Fatalf("ExecuteBatch() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Err != nil || results[0].Result == nil {
		t.Errorf("results[0] = %+v, want success", results[0])
	}
	if !perrors.Is(results[1].Err, perrors.ErrCodeInvalidDefinition) {
		t.Errorf("results[1].Err = %v, want %s", results[1].Err, perrors.ErrCodeInvalidDefinition)
	}
	if results[2].Err != nil || results[2].Result.Layout.Archetype != diagram.ArchetypeRadial {
		t.Errorf("results[2] = %+v, want radial layout", results[2])
	}
}

func TestReport(t *testing.T) {
	rep := Report{
		Definition: []diagram.Warning{{Code: diagram.WarnSelfLoop}},
		Layout:     []diagram.Warning{{Code: diagram.WarnTextOverflow}},
		Render:     []diagram.Warning{{Code: diagram.WarnPaintOrder}},
	}
	if rep.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rep.Len())
	}
	var codes []diagram.WarningCode
	for _, w := range rep.All() {
		codes = append(codes, w.Code)
	}
	want := []diagram.WarningCode{diagram.WarnSelfLoop, diagram.WarnTextOverflow, diagram.WarnPaintOrder}
	if !slices.Equal(codes, want) {
		t.Errorf("All() codes = %v, want %v", codes, want)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnValidateComplete(context.Context, int, int, time.Duration, error) {
	h.add("validate")
}

func (h *recordingHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
	h.add("layout")
}

func (h *recordingHooks) OnVerifyComplete(_ context.Context, stage string, _ int, _ error) {
	h.add("verify:" + stage)
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.add("render")
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.add("hit:" + keyType)
}

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := newFileRunner(t)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), sampleDefinition(), Options{}); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"validate", "layout", "verify:layout", "render", "verify:render",
		"validate", "hit:layout", "hit:artifact", "hit:artifact",
	}
	if diff := cmp.Diff(want, hooks.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}
