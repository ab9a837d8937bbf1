package diagram

import "strings"

// PresetKind is a recognized shape silhouette.
type PresetKind int

// Recognized presets. PresetUnknown keeps unrecognized names renderable.
const (
	PresetUnknown PresetKind = iota
	PresetRect
	PresetRoundRect
	PresetEllipse
	PresetDiamond
	PresetHexagon
	PresetTerminator
	PresetCylinder
	PresetParallelogram
	PresetDocument
	PresetCloud
)

var presetNames = map[PresetKind]string{
	PresetUnknown:       "unknown",
	PresetRect:          "rect",
	PresetRoundRect:     "roundRect",
	PresetEllipse:       "ellipse",
	PresetDiamond:       "diamond",
	PresetHexagon:       "hexagon",
	PresetTerminator:    "terminator",
	PresetCylinder:      "cylinder",
	PresetParallelogram: "parallelogram",
	PresetDocument:      "document",
	PresetCloud:         "cloud",
}

// presetAliases maps lower-cased names, including common drawing-tool
// spellings, to a preset.
var presetAliases = map[string]PresetKind{
	"rect":                  PresetRect,
	"rectangle":             PresetRect,
	"flowchartprocess":      PresetRect,
	"roundrect":             PresetRoundRect,
	"roundedrect":           PresetRoundRect,
	"rounded":               PresetRoundRect,
	"ellipse":               PresetEllipse,
	"oval":                  PresetEllipse,
	"circle":                PresetEllipse,
	"diamond":               PresetDiamond,
	"decision":              PresetDiamond,
	"flowchartdecision":     PresetDiamond,
	"hexagon":               PresetHexagon,
	"terminator":            PresetTerminator,
	"flowchartterminator":   PresetTerminator,
	"cylinder":              PresetCylinder,
	"can":                   PresetCylinder,
	"database":              PresetCylinder,
	"flowchartmagneticdisk": PresetCylinder,
	"parallelogram":         PresetParallelogram,
	"flowchartinputoutput":  PresetParallelogram,
	"document":              PresetDocument,
	"flowchartdocument":     PresetDocument,
	"cloud":                 PresetCloud,

	"flowchartalternateprocess": PresetRoundRect,
}

// ParsePreset resolves a preset name. An empty name is a rounded rectangle.
// Unrecognized names return PresetUnknown and false.
func ParsePreset(name string) (PresetKind, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return PresetRoundRect, true
	}
	if k, ok := presetAliases[n]; ok {
		return k, true
	}
	return PresetUnknown, false
}

// String returns the canonical preset name.
func (k PresetKind) String() string {
	if s, ok := presetNames[k]; ok {
		return s
	}
	return presetNames[PresetUnknown]
}

// Renderable returns the preset an emitter should draw. Unknown presets
// fall back to a rounded rectangle.
func (k PresetKind) Renderable() PresetKind {
	if k == PresetUnknown {
		return PresetRoundRect
	}
	return k
}

// MarshalText encodes the canonical name.
func (k PresetKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a name; unknown names decode to PresetUnknown.
func (k *PresetKind) UnmarshalText(b []byte) error {
	*k, _ = ParsePreset(string(b))
	return nil
}
