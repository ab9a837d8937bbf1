// Package io reads and writes diagram definitions.
//
// # Overview
//
// A definition can be authored as JSON, YAML or TOML. All three carry the
// same fields; the format is chosen from the file extension:
//
//	.json          encoding/json
//	.yaml, .yml    gopkg.in/yaml.v3
//	.toml          github.com/BurntSushi/toml
//
// # Example (YAML)
//
//	title: Order flow
//	lanes:
//	  - id: web
//	    label: Web
//	shapes:
//	  - id: ui
//	    text: Storefront
//	    group: web
//	  - id: db
//	    text: Orders DB
//	    preset: cylinder
//	connections:
//	  - source: ui
//	    target: db
//	    label: writes
//
// # Fields
//
// Top level: title, archetype (lanes, radial, tree), orientation
// (horizontal, vertical), canvas (default, widescreen) or width and
// height in length units, shapes, connections, lanes and legend.
//
// Readers only decode. They do not validate: pass the result to
// [diagram.Definition.Validate] and [diagram.Validate].
//
// [diagram.Definition.Validate]: github.com/matzehuels/placard/pkg/diagram.Definition.Validate
// [diagram.Validate]: github.com/matzehuels/placard/pkg/diagram.Validate
package io
