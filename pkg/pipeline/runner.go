package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can use the
// same Runner with different definitions and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs validate → layout → render with caching.
func (r *Runner) Execute(ctx context.Context, def *diagram.Definition, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := r.ExecuteLayout(ctx, def, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, warnings, hit, err := r.RenderWithCacheInfo(ctx, def, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Report.Render = warnings
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"run", result.RunID,
		"formats", opts.Formats,
		"warnings", len(warnings),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteLayout runs validate → layout and stops before rendering.
func (r *Runner) ExecuteLayout(ctx context.Context, def *diagram.Definition, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "definition is nil")
	}

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Validate
	validateStart := time.Now()
	warnings, err := r.Validate(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	result.Report.Definition = warnings
	result.Stats.ValidateTime = time.Since(validateStart)
	result.Stats.Shapes = len(def.Shapes)
	result.Stats.Connectors = len(def.Connections)

	r.Logger.Debug("validated definition",
		"run", result.RunID,
		"shapes", result.Stats.Shapes,
		"connections", result.Stats.Connectors,
		"warnings", len(warnings))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defHash, err := cache.HashJSON(def)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash definition")
	}
	result.DefinitionHash = defHash

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutWarnings, hit, err := r.ComputeLayoutWithCacheInfo(ctx, def, defHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Report.Layout = layoutWarnings
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Primitives = l.Count()
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"run", result.RunID,
		"archetype", l.Archetype,
		"primitives", result.Stats.Primitives,
		"warnings", len(layoutWarnings),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Validate runs the definition validator.
func (r *Runner) Validate(ctx context.Context, def *diagram.Definition) ([]diagram.Warning, error) {
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "definition is nil")
	}
	start := time.Now()
	warnings, err := def.Validate()
	observability.Pipeline().OnValidateComplete(ctx, len(def.Shapes), len(warnings), time.Since(start), err)
	return warnings, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet reads key unless refresh is set and reports the lookup.
func (r *Runner) cacheGet(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

// cacheSet writes key. Cache failures never fail a run.
func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
