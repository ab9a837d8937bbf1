package diagram

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/placard/pkg/errors"
)

func TestValidateDuplicateIDs(t *testing.T) {
	shapes := []ShapeSpec{{ID: "x"}, {ID: "x"}}

	_, err := Validate(shapes, nil)
	if !errors.Is(err, errors.ErrCodeInvalidDefinition) {
		t.Fatalf("Validate() error = %v, want INVALID_DEFINITION", err)
	}
	if got := errors.Subjects(err); !slices.Equal(got, []string{"x"}) {
		t.Errorf("Subjects() = %v, want [x]", got)
	}
}

func TestValidateDanglingReference(t *testing.T) {
	shapes := []ShapeSpec{{ID: "p", Text: "P"}}
	conns := []ConnectionSpec{{Source: "p", Target: "q"}}

	_, err := Validate(shapes, conns)
	if !errors.Is(err, errors.ErrCodeInvalidDefinition) {
		t.Fatalf("Validate() error = %v, want INVALID_DEFINITION", err)
	}
	if got := errors.Subjects(err); !slices.Equal(got, []string{"q"}) {
		t.Errorf("Subjects() = %v, want [q]", got)
	}
}

func TestValidateReportsAllOffenders(t *testing.T) {
	shapes := []ShapeSpec{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "b"}, {ID: "c"}}
	_, err := Validate(shapes, nil)
	if got := errors.Subjects(err); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("duplicate Subjects() = %v, want [a b]", got)
	}

	shapes = []ShapeSpec{{ID: "a"}}
	conns := []ConnectionSpec{{Source: "z", Target: "a"}, {Source: "a", Target: "y"}, {Source: "z", Target: "y"}}
	_, err = Validate(shapes, conns)
	if got := errors.Subjects(err); !slices.Equal(got, []string{"y", "z"}) {
		t.Errorf("dangling Subjects() = %v, want [y z]", got)
	}
}

func TestValidateInvalidID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		subjects []string
	}{
		{"blank", " ", nil},
		{"control", "a\tb", []string{"a\tb"}},
		{"too long", strings.Repeat("ü", 129), []string{strings.Repeat("ü", 32) + "..."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate([]ShapeSpec{{ID: tt.id}}, nil)
			if !errors.Is(err, errors.ErrCodeInvalidDefinition) {
				t.Fatalf("Validate() error = %v, want INVALID_DEFINITION", err)
			}
			if got := errors.Subjects(err); !slices.Equal(got, tt.subjects) {
				t.Errorf("Subjects() = %q, want %q", got, tt.subjects)
			}
			if n := strings.Count(err.Error(), string(errors.ErrCodeInvalidDefinition)); n != 1 {
				t.Errorf("error %q repeats its code %d times", err, n)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	shapes := []ShapeSpec{
		{ID: "a", Text: "A"},
		{ID: "b", Text: "B", Preset: "starburst"},
		{ID: "c", Text: "   ", Style: "sparkly"},
	}
	conns := []ConnectionSpec{
		{Source: "a", Target: "a"},
		{Source: "a", Target: "b", Label: "  "},
		{Source: "b", Target: "c", Color: "blue"},
	}

	ws, err := Validate(shapes, conns)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		code    WarningCode
		subject string
	}{
		{WarnSelfLoop, "a->a"},
		{WarnEmptyLabel, "a->b"},
		{WarnEmptyLabel, "c"},
		{WarnUnknownPreset, "b"},
		{WarnUnknownStyle, "c"},
		{WarnInvalidColor, "b->c"},
	}
	for _, tt := range tests {
		if !Has(ws, tt.code, tt.subject) {
			t.Errorf("missing warning %s for %s in %v", tt.code, tt.subject, ws)
		}
	}
	if len(ws) != len(tests) {
		t.Errorf("len(warnings) = %d, want %d: %v", len(ws), len(tests), ws)
	}
	for _, w := range ws {
		if w.Stage != StageDefinition {
			t.Errorf("warning stage = %s, want %s", w.Stage, StageDefinition)
		}
	}
}

func TestValidateClean(t *testing.T) {
	shapes := []ShapeSpec{{ID: "a", Text: "A"}, {ID: "b", Text: "B", Preset: "diamond", Style: "accent"}}
	conns := []ConnectionSpec{{Source: "a", Target: "b", Label: "yes", Color: "#ed7d31"}}

	ws, err := Validate(shapes, conns)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(ws) != 0 {
		t.Errorf("Validate() warnings = %v, want none", ws)
	}
}

func TestDefinitionValidate(t *testing.T) {
	base := func() Definition {
		return Definition{
			Shapes: []ShapeSpec{{ID: "a", Text: "A", Group: "l1"}, {ID: "b", Text: "B", Group: "l2"}},
			Lanes:  []LaneSpec{{ID: "l1", Label: "One"}},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*Definition)
		wantErr  bool
		wantWarn WarningCode
	}{
		{"unknown group", func(d *Definition) {}, false, WarnUnknownGroup},
		{"bad archetype", func(d *Definition) { d.Archetype = "spiral" }, true, ""},
		{"bad orientation", func(d *Definition) { d.Orientation = "diagonal" }, true, ""},
		{"bad canvas", func(d *Definition) { d.Canvas = "a4" }, true, ""},
		{"half canvas", func(d *Definition) { d.Width = 100 }, true, ""},
		{"duplicate lanes", func(d *Definition) { d.Lanes = append(d.Lanes, LaneSpec{ID: "l1"}) }, true, ""},
		{"two hubs", func(d *Definition) {
			d.Archetype = ArchetypeRadial
			d.Shapes[0].Hub, d.Shapes[1].Hub = true, true
		}, true, ""},
		{"empty radial", func(d *Definition) {
			d.Archetype = ArchetypeRadial
			d.Shapes = nil
		}, true, ""},
		{"bad lane color", func(d *Definition) { d.Lanes[0].Fill = "nope" }, false, WarnInvalidColor},
		{"bad legend color", func(d *Definition) {
			d.Legend = &LegendSpec{Entries: []LegendEntry{{Label: "x", Color: "zz"}}}
		}, false, WarnInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(&d)
			ws, err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantWarn != "" && !Has(ws, tt.wantWarn, "") {
				t.Errorf("Validate() warnings = %v, want %s", ws, tt.wantWarn)
			}
		})
	}
}

func TestCanvasSize(t *testing.T) {
	d := Definition{Canvas: CanvasWidescreen}
	got, err := d.CanvasSize()
	if err != nil || got.W != 12192000 || got.H != 6858000 {
		t.Errorf("CanvasSize() = %v, %v, want widescreen", got, err)
	}

	d = Definition{Canvas: CanvasWidescreen, Width: 100, Height: 50}
	got, _ = d.CanvasSize()
	if got.W != 100 || got.H != 50 {
		t.Errorf("CanvasSize() = %v, want explicit 100x50", got)
	}
}
