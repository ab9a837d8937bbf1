package diagram

// Swatch is a fill/border/text color triple (6-digit upper-case hex).
type Swatch struct {
	Fill   string `json:"fill"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

// Style keys.
const (
	StylePrimary    = "primary"
	StyleSecondary  = "secondary"
	StyleAccent     = "accent"
	StyleSuccess    = "success"
	StyleNeutral    = "neutral"
	StyleDanger     = "danger"
	StyleTerminator = "terminator"
)

// DefaultStyle is applied to shapes without a style.
const DefaultStyle = StylePrimary

// palette is built once and never mutated.
var palette = map[string]Swatch{
	StylePrimary:    {Fill: "4472C4", Border: "2E4FA3", Text: "FFFFFF"},
	StyleSecondary:  {Fill: "5B9BD5", Border: "2E75B6", Text: "FFFFFF"},
	StyleAccent:     {Fill: "ED7D31", Border: "C05C13", Text: "FFFFFF"},
	StyleSuccess:    {Fill: "70AD47", Border: "507C32", Text: "FFFFFF"},
	StyleNeutral:    {Fill: "5D6D7E", Border: "2C3E50", Text: "FFFFFF"},
	StyleDanger:     {Fill: "C0392B", Border: "922B21", Text: "FFFFFF"},
	StyleTerminator: {Fill: "1F3864", Border: "16294A", Text: "FFFFFF"},
}

// LookupStyle resolves a style key. Empty keys resolve to DefaultStyle.
func LookupStyle(key string) (Swatch, bool) {
	if key == "" {
		key = DefaultStyle
	}
	s, ok := palette[key]
	return s, ok
}

// StyleOrDefault resolves a style key, falling back to DefaultStyle.
func StyleOrDefault(key string) Swatch {
	if s, ok := LookupStyle(key); ok {
		return s
	}
	return palette[DefaultStyle]
}

// LaneSwatch returns the i-th lane color pair; lanes cycle through three.
func LaneSwatch(i int) Swatch {
	return lanePalette[i%len(lanePalette)]
}

var lanePalette = [...]Swatch{
	{Fill: "EBF3FB", Border: "C5D9F1", Text: "1F3864"},
	{Fill: "E8F8E8", Border: "C5E8B0", Text: "375623"},
	{Fill: "FEF9E7", Border: "F9E3A6", Text: "7F6000"},
}

// Fixed colors for non-shape primitives.
const (
	BackgroundColor = "F5F6FA"
	TitleColor      = "1F3864"
	ConnectorColor  = "7F8C8D"
	LegendFill      = "FFFFFF"
	LegendBorder    = "BFBFBF"
	LabelColor      = "404040"
)
