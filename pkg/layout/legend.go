package layout

import (
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
)

// LegendSize returns the legend box size for n entries.
func LegendSize(n int) geom.Size {
	return geom.Size{W: DefaultLegendWidth, H: n*DefaultLegendRow + 2*DefaultLegendPad}
}

func (e *engine) emitLegend() {
	spec := e.def.Legend
	if spec == nil || len(spec.Entries) == 0 {
		return
	}
	size := LegendSize(len(spec.Entries))
	pos := geom.Point{
		X: e.canvas.W - e.opts.MarginX - size.W,
		Y: e.canvas.H - e.opts.MarginY - size.H,
	}
	if spec.Position != nil {
		pos = *spec.Position
	}
	box := geom.Rect{X: pos.X, Y: pos.Y, CX: size.W, CY: size.H}

	lg := &PlacedLegend{
		ID:       e.ids.Next(),
		Rect:     box,
		Fill:     diagram.LegendFill,
		Border:   diagram.LegendBorder,
		FontSize: e.opts.LegendFont,
		ZLayer:   ZLabel,
	}
	const pad, row, sw = DefaultLegendPad, DefaultLegendRow, DefaultLegendSwatch
	for i, en := range spec.Entries {
		y := box.Y + pad + i*row
		swatch := geom.Rect{X: box.X + pad, Y: y + (row-sw)/2, CX: sw, CY: sw}
		textX := swatch.Right() + pad
		lg.Entries = append(lg.Entries, LegendSwatch{
			ID:       e.ids.Next(),
			Label:    en.Label,
			Color:    errors.SanitizeHex(en.Color, diagram.ConnectorColor),
			Swatch:   swatch,
			TextRect: geom.Rect{X: textX, Y: y, CX: box.Right() - pad - textX, CY: row},
			ZLayer:   ZLabel,
		})
	}
	e.out.Legend = lg
}
