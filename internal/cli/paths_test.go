package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output, input string
		want          string
	}{
		{"", "diagrams/flow.yaml", "diagrams/flow"},
		{"", "flow.json", "flow"},
		{"out/flow.svg", "flow.yaml", "out/flow"},
		{"out/flow.pdf", "flow.yaml", "out/flow"},
		{"out/flow.v2", "flow.yaml", "out/flow.v2"},
		{"out/flow", "flow.yaml", "out/flow"},
	}

	for _, tt := range tests {
		if got := outputBase(tt.output, tt.input); got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"svg", "flow.svg"},
		{"json", "flow.layout.json"},
		{"png", "flow.png"},
		{"pdf", "flow.pdf"},
		{"dot", "flow.dot"},
		{"topology", "flow.topology.svg"},
	}

	for _, tt := range tests {
		if got := artifactPath("flow", tt.format); got != tt.want {
			t.Errorf("artifactPath(flow, %q) = %q, want %q", tt.format, got, tt.want)
		}
	}
	for f := range artifactExt {
		if !strings.HasPrefix(artifactExt[f], ".") {
			t.Errorf("artifactExt[%q] = %q, want leading dot", f, artifactExt[f])
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}
