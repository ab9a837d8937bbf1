// Package pipeline runs a diagram definition through every stage.
//
// The stages are:
//
//  1. Validate: structural checks on the definition (fatal errors, warnings)
//  2. Layout: place shapes, route connectors, then check the placed layout
//  3. Render: emit the requested formats, then check the emitted document
//
// The CLI and the HTTP server both drive the pipeline through a [Runner],
// which adds caching, hooks and logging around the pure core packages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, def, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//	for _, w := range result.Report.All() {
//	    fmt.Println(w)
//	}
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/render"
	"github.com/matzehuels/placard/pkg/verify"
)

// =============================================================================
// Formats
// =============================================================================

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	// FormatDOT is the Graphviz source of the topology preview.
	FormatDOT = "dot"
	// FormatTopology is the topology preview rendered to SVG by Graphviz.
	FormatTopology = "topology"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatDOT:      true,
	FormatTopology: true,
}

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	Layout layout.Options `json:"layout"`
	Verify verify.Options `json:"verify"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Grid    bool     `json:"grid,omitempty"`
	// IconDir resolves shape icons from <dir>/<key>.svg|png.
	IconDir string `json:"icon_dir,omitempty"`
	// IconURL resolves shape icons from <url>/<key>.svg|png. Fetched
	// icons are cached. It excludes IconDir.
	IconURL string  `json:"icon_url,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	// Detailed adds ids to topology preview labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger         `json:"-"`
	Icons  render.IconResolver `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = compactFormats(o.Formats)
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.IconDir != "" && o.IconURL != "" {
		return errors.New(errors.ErrCodeInvalidInput, "icon_dir and icon_url are mutually exclusive")
	}
	if o.Icons == nil {
		switch {
		case o.IconDir != "":
			o.Icons = render.DirIconResolver{Dir: o.IconDir}
		case o.IconURL != "":
			r, err := render.NewURLIconResolver(o.IconURL)
			if err != nil {
				return err
			}
			o.Icons = r
		}
	}
	o.Layout.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// compactFormats drops repeated formats, keeping first occurrences.
func compactFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	h, err := cache.HashJSON(o.Layout)
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	return cache.LayoutKeyOpts{
		OptionsHash: h,
		FontFloor:   o.Verify.FontFloor,
		Tolerance:   o.Verify.Tolerance,
	}, nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Grid: o.Grid, Icons: o.iconSource()}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatDOT, FormatTopology:
		k.Grid, k.Icons = false, ""
		if o.Detailed {
			k.Format += "+detailed"
		}
	}
	return k
}

// iconSource names where icons come from, for cache keys.
func (o *Options) iconSource() string {
	if o.IconURL != "" {
		return o.IconURL
	}
	return o.IconDir
}

// =============================================================================
// Results
// =============================================================================

// Report collects the warnings of every stage.
type Report struct {
	Definition []diagram.Warning `json:"definition"`
	Layout     []diagram.Warning `json:"layout"`
	Render     []diagram.Warning `json:"render"`
}

// All returns every warning in stage order.
func (r Report) All() []diagram.Warning {
	out := make([]diagram.Warning, 0, r.Len())
	out = append(out, r.Definition...)
	out = append(out, r.Layout...)
	return append(out, r.Render...)
}

// Len returns the total number of warnings.
func (r Report) Len() int {
	return len(r.Definition) + len(r.Layout) + len(r.Render)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID uuid.UUID

	// DefinitionHash is the content hash of the definition.
	DefinitionHash string

	// Layout is the placed diagram.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Report holds the warnings of every stage.
	Report Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes       int
	Connectors   int
	Primitives   int
	ValidateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool // layout and its warnings came from cache
	RenderHit bool // every artifact came from cache
}
