package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/placard/pkg/geom"
)

// Text metrics used for fitting. Sizes are hundredths of a point.
const (
	// AvgGlyphWidth is the average advance of a glyph, in ems.
	AvgGlyphWidth = 0.55
	// LineHeightFactor is the line pitch, in ems.
	LineHeightFactor = 1.2
	// TextInsetX and TextInsetY are the box padding on each side.
	TextInsetX = 91440
	TextInsetY = 45720
)

func emUnits(size int) float64 {
	return float64(size) / 100 * geom.UnitsPerPoint
}

func lines(text string) []string {
	return strings.Split(text, "\n")
}

// TextWidth estimates the rendered width of the longest line of text.
func TextWidth(text string, size int) int {
	longest := 0
	for _, ln := range lines(text) {
		longest = max(longest, utf8.RuneCountInString(ln))
	}
	return int(math.Ceil(float64(longest) * emUnits(size) * AvgGlyphWidth))
}

// TextHeight estimates the rendered height of text.
func TextHeight(text string, size int) int {
	return int(math.Ceil(float64(len(lines(text))) * emUnits(size) * LineHeightFactor))
}

// Usable returns the interior of a box available to text.
func Usable(box geom.Rect) (w, h int) {
	return box.CX - 2*TextInsetX, box.CY - 2*TextInsetY
}

// Fits reports whether text at size fits inside box.
func Fits(text string, size int, box geom.Rect) bool {
	w, h := Usable(box)
	return TextWidth(text, size) <= w && TextHeight(text, size) <= h
}

// FitFontSize returns the largest size in fr, searched from Max down in
// Step decrements, at which text fits in box. When nothing fits it returns
// fr.Min; the box is never enlarged.
func FitFontSize(text string, box geom.Rect, fr FontRange) int {
	step := fr.Step
	if step <= 0 {
		step = 100
	}
	for size := fr.Max; size >= fr.Min; size -= step {
		if Fits(text, size, box) {
			return size
		}
	}
	return fr.Min
}
