package sink

import (
	"context"

	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the layout as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, l *layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg, err := RenderSVG(ctx, l, r.svgOpts...)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, r.scale)
}

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(ctx, l, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// PNG is a [render.Emitter] for PNG output.
type PNG struct {
	Opts []PNGOption
}

// Emit implements render.Emitter.
func (p PNG) Emit(ctx context.Context, l *layout.Layout) ([]byte, error) {
	return RenderPNG(ctx, l, p.Opts...)
}

// PDF is a [render.Emitter] for PDF output.
type PDF struct {
	Opts []SVGOption
}

// Emit implements render.Emitter.
func (p PDF) Emit(ctx context.Context, l *layout.Layout) ([]byte, error) {
	return RenderPDF(ctx, l, p.Opts...)
}

var (
	_ render.Emitter = (*SVG)(nil)
	_ render.Emitter = JSON{}
	_ render.Emitter = PNG{}
	_ render.Emitter = PDF{}
)
