package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/observability"
	"github.com/matzehuels/placard/pkg/verify"
)

// layoutEntry is the cached form of a verified layout.
type layoutEntry struct {
	Layout   *layout.Layout    `json:"layout"`
	Warnings []diagram.Warning `json:"warnings"`
}

// ComputeLayout places def and checks the result. def must already have
// passed validation.
func ComputeLayout(def *diagram.Definition, opts Options) (*layout.Layout, []diagram.Warning, error) {
	l, err := layout.Compute(def, opts.Layout)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := verify.Layout(l, opts.Verify)
	if err != nil {
		return nil, nil, err
	}
	return l, warnings, nil
}

// ComputeLayoutWithCacheInfo computes and verifies a layout with caching
// and reports whether it came from the cache. defHash is the content hash
// of def.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, def *diagram.Definition, defHash string, opts Options) (*layout.Layout, []diagram.Warning, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	keyOpts, err := opts.LayoutKeyOpts()
	if err != nil {
		return nil, nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash layout options")
	}
	key := r.Keyer.LayoutKey(defHash, keyOpts)

	if data, hit := r.cacheGet(ctx, key, "layout", opts.Refresh); hit {
		var entry layoutEntry
		if err := json.Unmarshal(data, &entry); err == nil && entry.Layout != nil {
			return entry.Layout, entry.Warnings, true, nil
		}
		r.Logger.Debug("discarding undecodable layout cache entry", "key", key)
	}

	archetype := string(def.ArchetypeOrDefault())
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, archetype, len(def.Shapes))
	start := time.Now()

	l, err := layout.Compute(def, opts.Layout)
	primitives := 0
	if l != nil {
		primitives = l.Count()
	}
	hooks.OnLayoutComplete(ctx, archetype, primitives, time.Since(start), err)
	if err != nil {
		return nil, nil, false, err
	}

	warnings, err := verify.Layout(l, opts.Verify)
	hooks.OnVerifyComplete(ctx, string(diagram.StageLayout), len(warnings), err)
	if err != nil {
		return nil, nil, false, err
	}

	if data, err := json.Marshal(layoutEntry{Layout: l, Warnings: warnings}); err == nil {
		r.cacheSet(ctx, key, "layout", data, cache.TTLLayout)
	}
	return l, warnings, false, nil
}
