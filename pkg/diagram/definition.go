package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
)

// Archetype selects the placement strategy.
type Archetype string

// Supported archetypes.
const (
	ArchetypeLanes  Archetype = "lanes"  // shapes in horizontal or vertical bands
	ArchetypeRadial Archetype = "radial" // one hub, evenly spaced spokes
	ArchetypeTree   Archetype = "tree"   // levels derived from connections
)

// ValidArchetypes is the set of supported archetypes.
var ValidArchetypes = map[Archetype]bool{
	ArchetypeLanes:  true,
	ArchetypeRadial: true,
	ArchetypeTree:   true,
}

// Orientation of lane bands.
type Orientation string

// Lane orientations.
const (
	Horizontal Orientation = "horizontal" // bands stacked top to bottom
	Vertical   Orientation = "vertical"   // bands side by side
)

// Canvas presets accepted by Definition.Canvas.
const (
	CanvasDefault    = "default"
	CanvasWidescreen = "widescreen"
)

// ShapeSpec describes one shape without position.
type ShapeSpec struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty" toml:"preset,omitempty"`
	Group  string `json:"group,omitempty" yaml:"group,omitempty" toml:"group,omitempty"`
	Style  string `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Bold   bool   `json:"bold,omitempty" yaml:"bold,omitempty" toml:"bold,omitempty"`
	Hub    bool   `json:"hub,omitempty" yaml:"hub,omitempty" toml:"hub,omitempty"`
}

// Kind resolves the preset name. Empty presets default to a rounded
// rectangle; unrecognized names resolve to PresetUnknown.
func (s ShapeSpec) Kind() PresetKind {
	k, _ := ParsePreset(s.Preset)
	return k
}

// Label returns the display text, falling back to the id.
func (s ShapeSpec) Label() string {
	if strings.TrimSpace(s.Text) == "" {
		return s.ID
	}
	return s.Text
}

// ConnectionSpec links two shapes by id.
type ConnectionSpec struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Target string `json:"target" yaml:"target" toml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Dash   string `json:"dash,omitempty" yaml:"dash,omitempty" toml:"dash,omitempty"`
	Arrow  string `json:"arrow,omitempty" yaml:"arrow,omitempty" toml:"arrow,omitempty"`
}

// Key returns "source->target".
func (c ConnectionSpec) Key() string { return c.Source + "->" + c.Target }

// LaneSpec declares a lane (group) and its presentation.
type LaneSpec struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Fill   string `json:"fill,omitempty" yaml:"fill,omitempty" toml:"fill,omitempty"`
	Border string `json:"border,omitempty" yaml:"border,omitempty" toml:"border,omitempty"`
}

// LegendEntry is one legend row.
type LegendEntry struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Color string `json:"color" yaml:"color" toml:"color"`
}

// LegendSpec declares an optional legend box.
type LegendSpec struct {
	Entries  []LegendEntry `json:"entries" yaml:"entries" toml:"entries"`
	Position *geom.Point   `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
}

// Definition is a complete diagram description.
type Definition struct {
	Title       string           `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Archetype   Archetype        `json:"archetype,omitempty" yaml:"archetype,omitempty" toml:"archetype,omitempty"`
	Orientation Orientation      `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	Canvas      string           `json:"canvas,omitempty" yaml:"canvas,omitempty" toml:"canvas,omitempty"`
	Width       int              `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height      int              `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Shapes      []ShapeSpec      `json:"shapes" yaml:"shapes" toml:"shapes"`
	Connections []ConnectionSpec `json:"connections,omitempty" yaml:"connections,omitempty" toml:"connections,omitempty"`
	Lanes       []LaneSpec       `json:"lanes,omitempty" yaml:"lanes,omitempty" toml:"lanes,omitempty"`
	Legend      *LegendSpec      `json:"legend,omitempty" yaml:"legend,omitempty" toml:"legend,omitempty"`
}

// ArchetypeOrDefault returns the archetype, defaulting to lanes.
func (d *Definition) ArchetypeOrDefault() Archetype {
	if d.Archetype == "" {
		return ArchetypeLanes
	}
	return d.Archetype
}

// OrientationOrDefault returns the lane orientation, defaulting to horizontal.
func (d *Definition) OrientationOrDefault() Orientation {
	if d.Orientation == "" {
		return Horizontal
	}
	return d.Orientation
}

// CanvasSize resolves the canvas. Explicit width and height win over the
// named preset; an empty preset is the standard 16:9 canvas.
func (d *Definition) CanvasSize() (geom.Size, error) {
	if d.Width > 0 || d.Height > 0 {
		if d.Width <= 0 || d.Height <= 0 {
			return geom.Size{}, errors.New(errors.ErrCodeInvalidDefinition, "canvas needs both width and height, got %dx%d", d.Width, d.Height)
		}
		return geom.Size{W: d.Width, H: d.Height}, nil
	}
	switch d.Canvas {
	case "", CanvasDefault:
		return geom.CanvasStandard, nil
	case CanvasWidescreen:
		return geom.CanvasWidescreen, nil
	default:
		return geom.Size{}, errors.New(errors.ErrCodeInvalidDefinition, "unknown canvas %q (must be one of: default, widescreen)", d.Canvas)
	}
}

// Shape returns the shape with the given id.
func (d *Definition) Shape(id string) (ShapeSpec, bool) {
	for _, s := range d.Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return ShapeSpec{}, false
}

// Validate runs the structural checks of [Validate] plus definition-level
// checks on archetype, canvas, lanes and legend.
func (d *Definition) Validate() ([]Warning, error) {
	arch := d.ArchetypeOrDefault()
	if !ValidArchetypes[arch] {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "unknown archetype %q (must be one of: lanes, radial, tree)", arch)
	}
	if o := d.OrientationOrDefault(); o != Horizontal && o != Vertical {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "unknown orientation %q (must be horizontal or vertical)", o)
	}
	if _, err := d.CanvasSize(); err != nil {
		return nil, err
	}
	if arch == ArchetypeRadial && len(d.Shapes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "radial diagram needs at least a hub shape")
	}
	if err := validateLanes(d.Lanes); err != nil {
		return nil, err
	}
	if arch == ArchetypeRadial {
		if hubs := d.hubs(); len(hubs) > 1 {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "radial diagram has %d hubs, want at most 1", len(hubs)).WithSubjects(hubs...)
		}
	}

	warnings, err := Validate(d.Shapes, d.Connections)
	if err != nil {
		return warnings, err
	}

	if len(d.Lanes) > 0 && arch == ArchetypeLanes {
		declared := make(map[string]bool, len(d.Lanes))
		for _, l := range d.Lanes {
			declared[l.ID] = true
		}
		for _, s := range d.Shapes {
			if !declared[s.Group] {
				warnings = append(warnings, definitionWarning(WarnUnknownGroup, s.ID,
					fmt.Sprintf("group %q is not a declared lane; shape placed in a trailing lane", s.Group)))
			}
		}
	}
	for _, l := range d.Lanes {
		warnings = appendColorWarnings(warnings, "lane "+l.ID, l.Fill, l.Border)
	}
	if d.Legend != nil {
		for _, e := range d.Legend.Entries {
			warnings = appendColorWarnings(warnings, "legend "+e.Label, e.Color)
		}
	}
	return warnings, nil
}

func (d *Definition) hubs() []string {
	var ids []string
	for _, s := range d.Shapes {
		if s.Hub {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func validateLanes(lanes []LaneSpec) error {
	seen := make(map[string]bool, len(lanes))
	var dups []string
	for _, l := range lanes {
		if seen[l.ID] {
			dups = append(dups, l.ID)
		}
		seen[l.ID] = true
	}
	if len(dups) > 0 {
		return errors.New(errors.ErrCodeInvalidDefinition, "duplicate lane ids").WithSubjects(dups...)
	}
	return nil
}

func appendColorWarnings(ws []Warning, subject string, colors ...string) []Warning {
	for _, c := range colors {
		if c != "" && errors.ValidateHexColor(c) != nil {
			ws = append(ws, definitionWarning(WarnInvalidColor, subject,
				fmt.Sprintf("color %q is not a 6-digit hex value; default used", c)))
		}
	}
	return ws
}
