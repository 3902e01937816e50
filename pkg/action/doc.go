// Package action implements the reversible mutation algebra over a
// levelmap.Map, per spec.md §4.6: every MapAction and RoomAction, when
// applied, produces the precise inverse action that undoes it.
//
// Every variant is a small struct implementing a marker method, following
// the same sum-type-via-interface idiom used by binel.AttrValue,
// expr.Expression, and render.Directive elsewhere in this module. Actions
// are made absolute during Apply (an unset "idx: None" becomes the actual
// insertion position) so an undo stack can coalesce same-phase edits
// without re-deriving position information.
package action
