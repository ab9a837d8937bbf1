package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
)

// MaxDefinitionSize caps how much of a definition is read.
const MaxDefinitionSize = 4 << 20

// Read decodes a definition in format f from r. Read does not close r.
func Read(r io.Reader, f Format) (*diagram.Definition, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDefinitionSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read definition")
	}
	if len(data) > MaxDefinitionSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "definition exceeds %d bytes", MaxDefinitionSize)
	}
	return Decode(data, f)
}

// Decode decodes a definition in format f. Unknown keys are rejected in
// every format.
func Decode(data []byte, f Format) (*diagram.Definition, error) {
	var def diagram.Definition
	var err error
	switch f {
	case FormatJSON:
		err = decodeJSON(data, &def)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&def)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &def)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown toml keys").WithSubjects(keys...)
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s definition", f)
	}
	return &def, nil
}

// decodeJSON decodes exactly one JSON value into v.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after definition")
	}
	return nil
}

// ReadJSON decodes a JSON definition from r.
func ReadJSON(r io.Reader) (*diagram.Definition, error) { return Read(r, FormatJSON) }

// ReadYAML decodes a YAML definition from r.
func ReadYAML(r io.Reader) (*diagram.Definition, error) { return Read(r, FormatYAML) }

// ReadTOML decodes a TOML definition from r.
func ReadTOML(r io.Reader) (*diagram.Definition, error) { return Read(r, FormatTOML) }

// ReadDefinition reads the definition file at path, choosing the decoder
// from its extension.
func ReadDefinition(path string) (*diagram.Definition, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	def, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return def, nil
}
