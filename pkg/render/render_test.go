package render

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/httputil"
)

const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg"/>`

func dataURI(mime, body string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString([]byte(body))
}

func TestDirIconResolver(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "db.svg"), []byte(iconSVG), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "queue.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := DirIconResolver{Dir: dir}
	ctx := context.Background()

	tests := []struct {
		key      string
		want     string
		wantCode errors.Code
	}{
		{"db", dataURI("image/svg+xml", iconSVG), ""},
		{"queue", dataURI("image/png", "png"), ""},
		{"missing", "", errors.ErrCodeFileNotFound},
		{"../etc/passwd", "", errors.ErrCodeInvalidPath},
		{"", "", errors.ErrCodeInvalidDefinition},
	}

	for _, tt := range tests {
		got, err := r.Resolve(ctx, tt.key)
		if tt.wantCode != "" {
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Resolve(%q) error = %v, want %s", tt.key, err, tt.wantCode)
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestURLIconResolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/icons/db.svg":
			w.Write([]byte(iconSVG))
		case "/icons/queue.png":
			w.Write([]byte("png"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	r, err := NewURLIconResolver(server.URL + "/icons/")
	if err != nil {
		t.Fatalf("NewURLIconResolver() error = %v", err)
	}
	r.Client = httputil.NewClient(nil).WithHTTPClient(server.Client())
	ctx := context.Background()

	if got, err := r.Resolve(ctx, "db"); err != nil || got != dataURI("image/svg+xml", iconSVG) {
		t.Errorf("Resolve(db) = %q, %v", got, err)
	}
	if got, err := r.Resolve(ctx, "queue"); err != nil || got != dataURI("image/png", "png") {
		t.Errorf("Resolve(queue) = %q, %v", got, err)
	}
	if _, err := r.Resolve(ctx, "missing"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Resolve(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := r.Resolve(ctx, "a/b"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Resolve(a/b) error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestNewURLIconResolverRejectsBadURLs(t *testing.T) {
	for _, base := range []string{"", "icons", "ftp://host/icons", "file:///tmp/icons", "https://"} {
		if _, err := NewURLIconResolver(base); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("NewURLIconResolver(%q) error = %v, want %s", base, err, errors.ErrCodeInvalidInput)
		}
	}
	r, err := NewURLIconResolver("https://assets.example.com/icons/")
	if err != nil {
		t.Fatalf("NewURLIconResolver() error = %v", err)
	}
	if strings.HasSuffix(r.BaseURL, "/") {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", r.BaseURL)
	}
}

func TestToPNGWithoutLibrsvg(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	if _, err := ToPNG(context.Background(), []byte(iconSVG), 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}
