package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/observability"
	"github.com/matzehuels/placard/pkg/render"
	"github.com/matzehuels/placard/pkg/render/nodelink"
	"github.com/matzehuels/placard/pkg/render/sink"
	"github.com/matzehuels/placard/pkg/verify"
)

// reportFormat keys the cached render warnings next to the artifacts.
const reportFormat = "render-report"

// Render emits every requested format and checks each verifiable document
// (SVG and JSON) against the layout. PNG and PDF are converted from the
// verified SVG. DOT and topology previews are drawn from the definition.
func Render(ctx context.Context, def *diagram.Definition, l *layout.Layout, opts Options) (map[string][]byte, []diagram.Warning, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	if l == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidLayout, "layout is nil")
	}

	svgOpts := []sink.SVGOption{sink.WithLogger(opts.Logger)}
	if opts.Grid {
		svgOpts = append(svgOpts, sink.WithGrid())
	}
	if opts.Icons != nil {
		svgOpts = append(svgOpts, sink.WithIcons(opts.Icons))
	}

	var (
		svg      []byte
		warnings []diagram.Warning
		seen     = make(map[diagram.Warning]bool)
	)
	check := func(elements []verify.Element, err error) error {
		if err != nil {
			return err
		}
		ws, err := verify.Render(elements, l.Count())
		if err != nil {
			return err
		}
		for _, w := range ws {
			if !seen[w] {
				seen[w] = true
				warnings = append(warnings, w)
			}
		}
		return nil
	}
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		data, err := sink.RenderSVG(ctx, l, svgOpts...)
		if err != nil {
			return nil, err
		}
		if err := check(sink.ParseSVG(data)); err != nil {
			return nil, err
		}
		svg = data
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = needSVG()
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			if data, err = sink.RenderJSON(l); err == nil {
				err = check(sink.ParseJSONElements(data))
			}
		case FormatDOT:
			data = []byte(nodelink.RenderDOT(def, nodelink.Options{Detailed: opts.Detailed}))
		case FormatTopology:
			data, err = nodelink.RenderSVG(ctx, nodelink.RenderDOT(def, nodelink.Options{Detailed: opts.Detailed}))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, warnings, nil
}

// RenderWithCacheInfo renders with caching and reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, def *diagram.Definition, l *layout.Layout, opts Options) (map[string][]byte, []diagram.Warning, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	if l == nil {
		return nil, nil, false, errors.New(errors.ErrCodeInvalidLayout, "layout is nil")
	}

	layoutData, err := json.Marshal(l)
	if err != nil {
		return nil, nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)
	reportKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(reportFormat))

	if artifacts, warnings, ok := r.cachedRender(ctx, layoutHash, reportKey, opts); ok {
		return artifacts, warnings, true, nil
	}

	if opts.IconURL != "" && opts.Icons != nil {
		opts.Icons = &cachedIcons{inner: opts.Icons, runner: r, source: opts.IconURL, refresh: opts.Refresh}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, warnings, err := Render(ctx, def, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	hooks.OnVerifyComplete(ctx, string(diagram.StageRender), len(warnings), err)
	if err != nil {
		return nil, nil, false, err
	}

	for format, data := range artifacts {
		r.cacheSet(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), "artifact", data, cache.TTLArtifact)
	}
	if data, err := json.Marshal(warnings); err == nil {
		r.cacheSet(ctx, reportKey, "artifact", data, cache.TTLArtifact)
	}
	return artifacts, warnings, false, nil
}

// cachedRender returns the artifacts and warnings when all are cached.
func (r *Runner) cachedRender(ctx context.Context, layoutHash, reportKey string, opts Options) (map[string][]byte, []diagram.Warning, bool) {
	raw, hit := r.cacheGet(ctx, reportKey, "artifact", opts.Refresh)
	if !hit {
		return nil, nil, false
	}
	var warnings []diagram.Warning
	if err := json.Unmarshal(raw, &warnings); err != nil {
		return nil, nil, false
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit := r.cacheGet(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), "artifact", false)
		if !hit {
			return nil, nil, false
		}
		artifacts[format] = data
	}
	return artifacts, warnings, true
}
