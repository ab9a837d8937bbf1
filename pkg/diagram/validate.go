package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/placard/pkg/errors"
)

// Validate checks shapes and connections for structural defects.
//
// It returns an *errors.Error with code INVALID_DEFINITION when shape ids are
// empty or duplicated, or when a connection endpoint does not resolve; the
// error's Subjects list every offending id. Otherwise it returns the
// non-fatal warnings in definition order.
func Validate(shapes []ShapeSpec, conns []ConnectionSpec) ([]Warning, error) {
	ids := make(map[string]bool, len(shapes))
	var dups []string
	for i, s := range shapes {
		if err := errors.ValidateKey(s.ID); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "shape %d: %s", i, errors.UserMessage(err)).
				WithSubjects(errors.Subjects(err)...)
		}
		if ids[s.ID] {
			dups = append(dups, s.ID)
		}
		ids[s.ID] = true
	}
	if len(dups) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "duplicate shape ids").WithSubjects(dups...)
	}

	var dangling []string
	for _, c := range conns {
		if !ids[c.Source] {
			dangling = append(dangling, c.Source)
		}
		if !ids[c.Target] {
			dangling = append(dangling, c.Target)
		}
	}
	if len(dangling) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "connections reference unknown shapes").WithSubjects(dangling...)
	}

	var ws []Warning
	for _, s := range shapes {
		if strings.TrimSpace(s.Text) == "" {
			ws = append(ws, definitionWarning(WarnEmptyLabel, s.ID, "shape has no text; id is shown instead"))
		}
		if _, ok := ParsePreset(s.Preset); !ok {
			ws = append(ws, definitionWarning(WarnUnknownPreset, s.ID,
				fmt.Sprintf("preset %q is not recognized; rendered as %s", s.Preset, PresetRoundRect)))
		}
		if _, ok := LookupStyle(s.Style); !ok {
			ws = append(ws, definitionWarning(WarnUnknownStyle, s.ID,
				fmt.Sprintf("style %q is not in the palette; %s used", s.Style, DefaultStyle)))
		}
	}
	for _, c := range conns {
		key := c.Key()
		if c.Source == c.Target {
			ws = append(ws, definitionWarning(WarnSelfLoop, key, "connection starts and ends on the same shape"))
		}
		if c.Label != "" && strings.TrimSpace(c.Label) == "" {
			ws = append(ws, definitionWarning(WarnEmptyLabel, key, "connection label is blank"))
		}
		ws = appendColorWarnings(ws, key, c.Color)
	}
	return ws, nil
}
