package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/placard/pkg/errors"
)

// Format is a definition file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ValidFormats lists the supported formats.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatTOML: true,
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported definition file %q (want .json, .yaml, .yml or .toml)", filepath.Base(path))
}

// ParseFormat resolves a format name such as "yml" or "JSON".
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "yml":
		return FormatYAML, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported format %q", name)
}
