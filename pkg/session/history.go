package session

import (
	"errors"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

// errNoHistory is returned by Undo/Redo when the relevant stack is empty.
var errNoHistory = errors.New("session: nothing to undo")

// historyEntry is one undo step: Forward replays it (redo), Inverse
// reverts it (undo). Both directions are recorded at the time of the
// original edit rather than derived from one another later, since
// deriving the forward action from re-applying a merged Inverse would
// require the merge order to commute with action.Apply — true for
// per-action inverses in general, but not guaranteed once several edits
// have been folded into one Batched step.
type historyEntry struct {
	Phase   action.EventPhase
	Forward action.MapAction
	Inverse action.MapAction
}

// history is one map's undo/redo timeline: entries holds every recorded
// step and pos is how many of them are currently "done" (applied).
// Undo decrements pos (applying entries[pos-1].Inverse); Redo increments
// it (applying entries[pos].Forward). A fresh edit after some undoing
// truncates everything past pos, the usual "new edit kills the redo
// line" rule.
type history struct {
	entries []historyEntry
	pos     int
}

func newHistory() *history {
	return &history{}
}

// record appends (forward, inverse) as a new undo step, or merges it into
// the current step when phase matches the step most recently recorded —
// per spec.md §4.6/§4.9's phased merge rule: a drag gesture shares one
// phase, so its intermediate edits collapse into a single undo step that
// goes straight from pre-gesture to post-gesture state in either
// direction.
func (h *history) record(phase action.EventPhase, forward, inverse action.MapAction) {
	h.entries = h.entries[:h.pos]
	if h.pos > 0 && h.entries[h.pos-1].Phase == phase {
		top := &h.entries[h.pos-1]
		top.Forward = appendBatched(top.Forward, forward)
		top.Inverse = prependBatched(inverse, top.Inverse)
		return
	}
	h.entries = append(h.entries, historyEntry{Phase: phase, Forward: forward, Inverse: inverse})
	h.pos++
}

// appendBatched returns a MapAction that applies existing's effect then
// next's, in that order.
func appendBatched(existing, next action.MapAction) action.MapAction {
	if b, ok := existing.(action.Batched); ok {
		return action.Batched{Events: append(append([]action.MapAction{}, b.Events...), next)}
	}
	return action.Batched{Events: []action.MapAction{existing, next}}
}

// prependBatched returns a MapAction that applies next's effect then
// existing's, in that order — used to build Inverse chains, which must
// undo the most recently applied sub-edit first.
func prependBatched(next, existing action.MapAction) action.MapAction {
	if b, ok := existing.(action.Batched); ok {
		return action.Batched{Events: append([]action.MapAction{next}, b.Events...)}
	}
	return action.Batched{Events: []action.MapAction{next, existing}}
}

func (h *history) canUndo() bool { return h.pos > 0 }
func (h *history) canRedo() bool { return h.pos < len(h.entries) }

// undoOnce reverts m by the most recently applied entry.
func (h *history) undoOnce(m *levelmap.Map) error {
	if !h.canUndo() {
		return errNoHistory
	}
	entry := h.entries[h.pos-1]
	if _, err := action.Apply(m, entry.Inverse); err != nil {
		return err
	}
	h.pos--
	return nil
}

// redoOnce reapplies the most recently undone entry.
func (h *history) redoOnce(m *levelmap.Map) error {
	if !h.canRedo() {
		return errNoHistory
	}
	entry := h.entries[h.pos]
	if _, err := action.Apply(m, entry.Forward); err != nil {
		return err
	}
	h.pos++
	return nil
}
