// Package diagram defines the declarative, coordinate-free diagram model and
// its structural validator.
//
// A [Definition] names shapes, the lanes they belong to and the connections
// between them. It carries no geometry: the layout package turns a validated
// definition into placed primitives.
//
// # Validation
//
// [Validate] and [Definition.Validate] separate two severities. Structural
// defects that make any layout meaningless (duplicate ids, dangling
// connection endpoints) are returned as an error carrying the offending ids:
//
//	warnings, err := def.Validate()
//	if err != nil {
//	    fmt.Println(errors.Subjects(err))
//	}
//
// Quality issues (self loops, unknown presets, blank labels) are returned as
// [Warning] values and never abort a run.
package diagram
