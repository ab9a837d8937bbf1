package pipeline

import (
	"context"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/render"
)

// cachedIcons memoizes a remote icon resolver in the runner's cache.
type cachedIcons struct {
	inner   render.IconResolver
	runner  *Runner
	source  string
	refresh bool
}

// Resolve implements render.IconResolver.
func (c *cachedIcons) Resolve(ctx context.Context, key string) (string, error) {
	k := c.runner.Keyer.IconKey(c.source, key)
	if data, hit := c.runner.cacheGet(ctx, k, "icon", c.refresh); hit {
		return string(data), nil
	}
	ref, err := c.inner.Resolve(ctx, key)
	if err != nil {
		return "", err
	}
	c.runner.cacheSet(ctx, k, "icon", []byte(ref), cache.TTLIcon)
	return ref, nil
}
