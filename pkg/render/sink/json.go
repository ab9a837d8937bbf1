package sink

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/verify"
)

// JSON is a [render.Emitter] writing the layout as indented JSON.
type JSON struct{}

// Emit implements render.Emitter.
func (JSON) Emit(_ context.Context, l *layout.Layout) ([]byte, error) {
	return RenderJSON(l)
}

// RenderJSON encodes l as indented JSON.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout is nil")
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes a layout written by [RenderJSON].
func ParseJSON(data []byte) (*layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return &l, nil
}

// ParseJSONElements decodes a layout written by [RenderJSON] and lists
// its primitives for render verification.
func ParseJSONElements(data []byte) ([]verify.Element, error) {
	l, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return verify.Elements(l), nil
}
