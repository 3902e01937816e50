package action

import "sync/atomic"

// EventPhase groups a batch of actions submitted as one undo step, per
// spec.md §4.6's phasing rule: a drag gesture uses a single phase for its
// entire duration, and same-phase merge groups supersede one another so
// continuous dragging compresses to one history entry.
type EventPhase uint64

var phaseCounter uint64

// NewEventPhase mints a fresh phase id, unique within the process.
func NewEventPhase() EventPhase {
	return EventPhase(atomic.AddUint64(&phaseCounter, 1))
}
