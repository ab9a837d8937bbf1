package render

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
)

// Emitter serializes a placed layout. Emitters must keep paint order and
// primitive ids, and must not drop or merge primitives.
type Emitter interface {
	Emit(ctx context.Context, l *layout.Layout) ([]byte, error)
}

// EmitterFunc adapts a function to [Emitter].
type EmitterFunc func(ctx context.Context, l *layout.Layout) ([]byte, error)

// Emit calls f.
func (f EmitterFunc) Emit(ctx context.Context, l *layout.Layout) ([]byte, error) {
	return f(ctx, l)
}

// IconResolver maps an icon key to an image reference usable as an SVG
// href.
type IconResolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}

// DirIconResolver resolves icons from files named <key>.svg or <key>.png
// in Dir and returns them as data URIs, so documents stay self-contained.
type DirIconResolver struct {
	Dir string
}

var iconTypes = []struct {
	ext, mime string
}{
	{".svg", "image/svg+xml"},
	{".png", "image/png"},
}

// Resolve implements IconResolver.
func (r DirIconResolver) Resolve(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := errors.ValidateKey(key); err != nil {
		return "", err
	}
	if filepath.Base(key) != key {
		return "", errors.New(errors.ErrCodeInvalidPath, "icon key %q is not a file name", key)
	}
	for _, t := range iconTypes {
		data, err := os.ReadFile(filepath.Join(r.Dir, key+t.ext))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "read icon %s", key)
		}
		return "data:" + t.mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	}
	return "", errors.New(errors.ErrCodeFileNotFound, "icon %q not found in %s", key, r.Dir)
}
