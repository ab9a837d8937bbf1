package layout

import "github.com/matzehuels/placard/pkg/geom"

// Default geometry, in length units.
const (
	DefaultIDBase       = 2
	DefaultShapeWidth   = 1371600
	DefaultShapeHeight  = 800100
	DefaultGap          = 304800
	DefaultTitleHeight  = 500000
	DefaultTitleGap     = 91440
	DefaultMarginX      = 137160
	DefaultMarginY      = 91440
	DefaultLanePadding  = 45720
	DefaultLaneLabel    = 1097280
	DefaultLaneHeader   = 320040
	DefaultCornerRadius = 120000
	DefaultLineWidth    = 19050
	DefaultLoopOffset   = 300000

	DefaultHubWidth     = 1828800
	DefaultHubHeight    = 914400
	DefaultSpokeWidth   = 1371600
	DefaultSpokeHeight  = 685800
	DefaultRadialRadius = 1828800

	DefaultLegendWidth  = 1828800
	DefaultLegendRow    = 228600
	DefaultLegendPad    = 91440
	DefaultLegendSwatch = 137160

	DefaultLabelFontSize  = 1000
	DefaultLegendFontSize = 900
	DefaultLabelGap       = 45720
)

// FontRange bounds font fitting, in hundredths of a point.
type FontRange struct {
	Min  int `json:"min" toml:"min"`
	Max  int `json:"max" toml:"max"`
	Step int `json:"step" toml:"step"`
}

// Default font ranges.
var (
	DefaultFontRange  = FontRange{Min: 800, Max: 1800, Step: 100}
	DefaultTitleRange = FontRange{Min: 1400, Max: 2800, Step: 200}
)

// Options configures Compute. Zero fields take their defaults.
type Options struct {
	// Canvas overrides the definition's canvas when non-zero.
	Canvas geom.Size `json:"canvas"`

	ShapeWidth   int `json:"shape_width"`
	ShapeHeight  int `json:"shape_height"`
	Gap          int `json:"gap"`
	TitleHeight  int `json:"title_height"`
	TitleGap     int `json:"title_gap"`
	MarginX      int `json:"margin_x"`
	MarginY      int `json:"margin_y"`
	LanePadding  int `json:"lane_padding"`
	LaneLabel    int `json:"lane_label"`
	LaneHeader   int `json:"lane_header"`
	CornerRadius int `json:"corner_radius"`
	LineWidth    int `json:"line_width"`

	// LoopOffset is how far loop-backs and self-loops clear the shapes
	// they go around.
	LoopOffset int `json:"loop_offset"`

	HubWidth     int `json:"hub_width"`
	HubHeight    int `json:"hub_height"`
	SpokeWidth   int `json:"spoke_width"`
	SpokeHeight  int `json:"spoke_height"`
	RadialRadius int `json:"radial_radius"`

	Font       FontRange `json:"font"`
	TitleFont  FontRange `json:"title_font"`
	LabelFont  int       `json:"label_font"`
	LegendFont int       `json:"legend_font"`

	// NoShadow disables shape shadows.
	NoShadow bool `json:"no_shadow"`

	IDBase int `json:"id_base"`
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills zero fields with their defaults. It is idempotent.
func (o *Options) SetDefaults() {
	setDefault(&o.ShapeWidth, DefaultShapeWidth)
	setDefault(&o.ShapeHeight, DefaultShapeHeight)
	setDefault(&o.Gap, DefaultGap)
	setDefault(&o.TitleHeight, DefaultTitleHeight)
	setDefault(&o.TitleGap, DefaultTitleGap)
	setDefault(&o.MarginX, DefaultMarginX)
	setDefault(&o.MarginY, DefaultMarginY)
	setDefault(&o.LanePadding, DefaultLanePadding)
	setDefault(&o.LaneLabel, DefaultLaneLabel)
	setDefault(&o.LaneHeader, DefaultLaneHeader)
	setDefault(&o.CornerRadius, DefaultCornerRadius)
	setDefault(&o.LineWidth, DefaultLineWidth)
	setDefault(&o.LoopOffset, DefaultLoopOffset)
	setDefault(&o.HubWidth, DefaultHubWidth)
	setDefault(&o.HubHeight, DefaultHubHeight)
	setDefault(&o.SpokeWidth, DefaultSpokeWidth)
	setDefault(&o.SpokeHeight, DefaultSpokeHeight)
	setDefault(&o.RadialRadius, DefaultRadialRadius)
	setDefault(&o.LabelFont, DefaultLabelFontSize)
	setDefault(&o.LegendFont, DefaultLegendFontSize)
	setDefault(&o.IDBase, DefaultIDBase)
	if o.Font == (FontRange{}) {
		o.Font = DefaultFontRange
	}
	if o.TitleFont == (FontRange{}) {
		o.TitleFont = DefaultTitleRange
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
