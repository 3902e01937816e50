// Package session holds the single aggregate the editor's UI talks to:
// the open map set, the active content-pack palette, open tabs, per-tool
// ephemeral state, and the undo/redo history, per spec.md §4.9.
//
// Every mutation — a tool drag, a menu command, a background worker
// delivering a loaded map — funnels through Session.Apply, which is the
// only code in this module that calls action.Apply on a map. That
// inversion of control is what lets undo/redo stay correct: the session,
// not the caller, decides what history entry a given edit produces and
// what follow-up events (like re-selecting a neighboring room after a
// delete) fire as a result.
package session
