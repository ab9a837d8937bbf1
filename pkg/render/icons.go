package render

import (
	"context"
	"encoding/base64"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/httputil"
)

// URLIconResolver fetches icons from <BaseURL>/<key>.svg or .png and
// returns them as data URIs.
type URLIconResolver struct {
	BaseURL string
	Client  *httputil.Client
}

// NewURLIconResolver validates base and returns a resolver using a default
// client.
func NewURLIconResolver(base string) (*URLIconResolver, error) {
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "icon url must be an absolute http(s) url").WithSubjects(base)
	}
	return &URLIconResolver{BaseURL: strings.TrimSuffix(base, "/"), Client: httputil.NewClient(nil)}, nil
}

// Resolve implements IconResolver.
func (r *URLIconResolver) Resolve(ctx context.Context, key string) (string, error) {
	if err := errors.ValidateKey(key); err != nil {
		return "", err
	}
	if filepath.Base(key) != key {
		return "", errors.New(errors.ErrCodeInvalidPath, "icon key %q is not a file name", key)
	}
	for _, t := range iconTypes {
		resp, err := r.Client.Fetch(ctx, r.BaseURL+"/"+url.PathEscape(key)+t.ext)
		if errors.Is(err, errors.ErrCodeNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		return "data:" + t.mime + ";base64," + base64.StdEncoding.EncodeToString(resp.Data), nil
	}
	return "", errors.New(errors.ErrCodeFileNotFound, "icon %q not found at %s", key, r.BaseURL)
}
