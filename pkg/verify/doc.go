// Package verify re-checks a placed layout and its rendered form.
//
// [Layout] runs after the layout engine and re-derives connector geometry
// from the placed shapes, so drift between shape placement and routing is
// caught before anything is emitted. [Render] runs on the primitives parsed
// back out of an emitted document and confirms nothing was dropped,
// duplicated or reordered.
//
// Both checks distinguish fatal defects, returned as *errors.Error with
// the offending identifiers in Subjects, from quality findings returned as
// warnings. Neither mutates its input.
package verify
