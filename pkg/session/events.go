package session

import (
	"fmt"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/render"
	"github.com/levelsmith/levelsmith/pkg/selection"
)

// Event is one input to Session.Apply, per spec.md §4.9: "all UI and tool
// inputs funnel through it". Every concrete variant is a plain struct, so
// tests and worker goroutines can construct one and hand it straight to
// Apply.
type Event interface {
	isEvent()
}

// OpenMap loads data (an encoded binary element tree) and opens a map tab
// for it. If path matches an already-open map, that map is focused instead
// of being loaded a second time.
type OpenMap struct {
	Path string
	Data []byte
}

// CloseMap closes a map and every tab that views it.
type CloseMap struct{ Map MapID }

// SelectTab focuses the tab at Index. Selecting the log tab clears the
// status banner, per spec.md §7.
type SelectTab struct{ Index int }

// CloseTab closes the tab at Index.
type CloseTab struct{ Index int }

// SelectPicker records the active pick for one picker category.
type SelectPicker struct {
	Kind PickerKind
	Name string
}

// BeginGesture starts a new undo phase for a contiguous tool interaction
// (a drag, a single click-edit) against one room's selection, capturing
// the reference snapshots Nudge/Resize measure their delta against.
type BeginGesture struct {
	Map       MapID
	Room      int
	Selection selection.Set
}

// Nudge moves the current tool selection by delta, relative to the
// reference points BeginGesture captured.
type Nudge struct{ Delta levelmap.Point }

// BeginResize starts a resize gesture, recording which edges/corner the
// pointer grabbed.
type BeginResize struct {
	Map       MapID
	Room      int
	Selection selection.Set
	Side      selection.ResizeSide
}

// Resize grows or shrinks the current tool selection by delta along its
// captured Side.
type Resize struct{ Delta levelmap.Point }

// Lift converts the current tool selection's tiles into a floating
// region, so subsequent Nudge events move them as a unit.
type Lift struct{}

// Drop commits the current room's floating tile regions back into the
// fixed tile grids.
type Drop struct{}

// Copy serializes the current tool selection to the clipboard, lifting
// any unfloated tile selections first (so a copy never mutates the
// selection in a way the user didn't ask for beyond the implicit lift).
type Copy struct{}

// Paste reads the clipboard and adds its contents to the current room,
// centered in the room per pkg/selection.Paste's placement rule.
type Paste struct{
	Map  MapID
	Room int
}

// RoomEdit is the general-purpose entry point for a tool-produced batch of
// room-scoped mutations (tile painting, entity/decal add or remove, misc
// field updates) that don't need Nudge/Resize's reference-snapshot
// bookkeeping.
type RoomEdit struct {
	Map     MapID
	Room    int
	Phase   action.EventPhase
	Actions []action.RoomAction
}

// MapEdit is the general-purpose entry point for a map-scoped mutation
// (styleground add/update/remove/move, room add) that isn't one of the
// dedicated events below.
type MapEdit struct {
	Map    MapID
	Phase  action.EventPhase
	Action action.MapAction
}

// DeleteRoom removes the room at Room from Map and emits a follow-up
// SelectRoom naming a neighbor, per spec.md §4.9's example of apply's
// inversion of control.
type DeleteRoom struct {
	Map   MapID
	Room  int
	Phase action.EventPhase
}

// SelectRoom focuses Room within Map for subsequent tool events.
type SelectRoom struct {
	Map  MapID
	Room int
}

// Undo reverts Map's most recent undo-stack entry.
type Undo struct{ Map MapID }

// Redo reapplies Map's most recently undone entry.
type Redo struct{ Map MapID }

func (OpenMap) isEvent()      {}
func (CloseMap) isEvent()     {}
func (SelectTab) isEvent()    {}
func (CloseTab) isEvent()     {}
func (SelectPicker) isEvent() {}
func (BeginGesture) isEvent() {}
func (Nudge) isEvent()        {}
func (BeginResize) isEvent()  {}
func (Resize) isEvent()       {}
func (Lift) isEvent()         {}
func (Drop) isEvent()         {}
func (Copy) isEvent()         {}
func (Paste) isEvent()        {}
func (RoomEdit) isEvent()     {}
func (MapEdit) isEvent()      {}
func (DeleteRoom) isEvent()   {}
func (SelectRoom) isEvent()   {}
func (Undo) isEvent()         {}
func (Redo) isEvent()         {}

// Apply dispatches ev and drains every follow-up event it produces,
// applying each in turn, so that by the time Apply returns every effect —
// including inversion-of-control follow-ups like DeleteRoom's neighbor
// reselection — has already happened. It returns the full sequence of
// events actually applied (ev first), for tests and for an embedding UI
// that wants to mirror the session's derived state changes.
//
// An error from ev itself aborts immediately with no state change beyond
// what had already committed before the failing call, per spec.md §7's
// "action errors ... cause no state change". An error from a follow-up
// event is logged and does not unwind the events already applied.
func (s *Session) Apply(ev Event) ([]Event, error) {
	follow, err := s.dispatch(ev)
	if err != nil {
		return nil, err
	}
	applied := []Event{ev}
	queue := follow
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		more, err := s.dispatch(cur)
		if err != nil {
			s.Log.Warn("follow-up event failed", "error", err)
			continue
		}
		applied = append(applied, cur)
		queue = append(queue, more...)
	}
	return applied, nil
}

func (s *Session) dispatch(ev Event) ([]Event, error) {
	switch e := ev.(type) {
	case OpenMap:
		return s.dispatchOpenMap(e)
	case CloseMap:
		s.removeMap(e.Map)
		s.closeTabsFor(e.Map)
		return nil, nil
	case SelectTab:
		return s.dispatchSelectTab(e)
	case CloseTab:
		return s.dispatchCloseTab(e)
	case SelectPicker:
		s.Pickers.set(e.Kind, e.Name)
		return nil, nil
	case BeginGesture:
		return s.dispatchBeginGesture(e)
	case Nudge:
		return nil, s.dispatchNudge(e)
	case BeginResize:
		return s.dispatchBeginResize(e)
	case Resize:
		return nil, s.dispatchResize(e)
	case Lift:
		return nil, s.dispatchLift()
	case Drop:
		return nil, s.dispatchDrop()
	case Copy:
		return nil, s.dispatchCopy()
	case Paste:
		return nil, s.dispatchPaste(e)
	case RoomEdit:
		return nil, s.applyRoomActions(e.Map, e.Room, e.Phase, e.Actions)
	case MapEdit:
		return nil, s.applyMapAction(e.Map, e.Phase, e.Action)
	case DeleteRoom:
		return s.dispatchDeleteRoom(e)
	case SelectRoom:
		s.Tool.Map, s.Tool.Room = e.Map, e.Room
		s.Tool.Selection = nil
		s.Tool.RefPoints, s.Tool.RefSizes = nil, nil
		return nil, nil
	case Undo:
		return nil, s.dispatchUndo(e.Map)
	case Redo:
		return nil, s.dispatchRedo(e.Map)
	default:
		return nil, fmt.Errorf("session: unknown event type %T", ev)
	}
}

func (s *Session) dispatchOpenMap(e OpenMap) ([]Event, error) {
	if e.Path != "" {
		if slot, ok := s.MapByPath(e.Path); ok {
			s.focusMapTab(slot.ID)
			return nil, nil
		}
	}
	m, err := levelmap.Decode(e.Data)
	if err != nil {
		return nil, fmt.Errorf("session: decoding map: %w", err)
	}
	id := s.addMap(e.Path, m)
	s.Tabs = append(s.Tabs, MapTab{Map: id})
	s.SelectedTab = len(s.Tabs) - 1
	s.Tool = ToolState{Map: id}
	return nil, nil
}

// focusMapTab selects an already-open map's tab, opening one if none of
// the open tabs currently view it.
func (s *Session) focusMapTab(id MapID) {
	for i, t := range s.Tabs {
		if mt, ok := t.(MapTab); ok && mt.Map == id {
			s.SelectedTab = i
			return
		}
	}
	s.Tabs = append(s.Tabs, MapTab{Map: id})
	s.SelectedTab = len(s.Tabs) - 1
}

func (s *Session) closeTabsFor(id MapID) {
	kept := s.Tabs[:0]
	for _, t := range s.Tabs {
		switch tt := t.(type) {
		case MapTab:
			if tt.Map == id {
				continue
			}
		case MapMetaTab:
			if tt.Map == id {
				continue
			}
		}
		kept = append(kept, t)
	}
	s.Tabs = kept
	if s.SelectedTab >= len(s.Tabs) {
		s.SelectedTab = len(s.Tabs) - 1
	}
}

func (s *Session) dispatchSelectTab(e SelectTab) ([]Event, error) {
	if e.Index < 0 || e.Index >= len(s.Tabs) {
		return nil, fmt.Errorf("session: tab index %d out of range", e.Index)
	}
	s.SelectedTab = e.Index
	if _, ok := s.Tabs[e.Index].(LogTab); ok {
		s.Log.ClearBanner()
	}
	return nil, nil
}

func (s *Session) dispatchCloseTab(e CloseTab) ([]Event, error) {
	if e.Index < 0 || e.Index >= len(s.Tabs) {
		return nil, fmt.Errorf("session: tab index %d out of range", e.Index)
	}
	s.Tabs = append(s.Tabs[:e.Index], s.Tabs[e.Index+1:]...)
	if s.SelectedTab >= len(s.Tabs) {
		s.SelectedTab = len(s.Tabs) - 1
	}
	return nil, nil
}

func (s *Session) dispatchBeginGesture(e BeginGesture) ([]Event, error) {
	room, err := s.room(e.Map, e.Room)
	if err != nil {
		return nil, err
	}
	s.Tool = ToolState{
		Map:       e.Map,
		Room:      e.Room,
		Selection: e.Selection,
		RefPoints: snapshotPoints(room, e.Selection),
		Phase:     action.NewEventPhase(),
	}
	return nil, nil
}

func (s *Session) dispatchBeginResize(e BeginResize) ([]Event, error) {
	room, err := s.room(e.Map, e.Room)
	if err != nil {
		return nil, err
	}
	s.Tool = ToolState{
		Map:       e.Map,
		Room:      e.Room,
		Selection: e.Selection,
		RefSizes:  snapshotSizes(room, e.Selection),
		Side:      e.Side,
		Phase:     action.NewEventPhase(),
	}
	return nil, nil
}

func (s *Session) dispatchNudge(e Nudge) error {
	room, err := s.room(s.Tool.Map, s.Tool.Room)
	if err != nil {
		return err
	}
	acts := selection.Nudge(room, s.Tool.Selection, s.Tool.RefPoints, e.Delta)
	return s.applyRoomActions(s.Tool.Map, s.Tool.Room, s.Tool.Phase, acts)
}

func (s *Session) dispatchResize(e Resize) error {
	room, err := s.room(s.Tool.Map, s.Tool.Room)
	if err != nil {
		return err
	}
	acts := selection.Resize(room, s.Tool.Selection, s.Tool.Side, s.Tool.RefSizes, e.Delta, s.entityMinSize, s.atlas())
	return s.applyRoomActions(s.Tool.Map, s.Tool.Room, s.Tool.Phase, acts)
}

func (s *Session) dispatchLift() error {
	room, err := s.room(s.Tool.Map, s.Tool.Room)
	if err != nil {
		return err
	}
	acts, consumed := selection.Lift(room, s.Tool.Selection)
	if err := s.applyRoomActions(s.Tool.Map, s.Tool.Room, action.NewEventPhase(), acts); err != nil {
		return err
	}
	sel := s.Tool.Selection.Clone()
	for item := range consumed {
		sel.Remove(item)
		switch item.(type) {
		case selection.FgTile:
			sel.Add(selection.FgTileFloat{})
		case selection.BgTile:
			sel.Add(selection.BgTileFloat{})
		case selection.ObjectTile:
			sel.Add(selection.ObjTileFloat{})
		}
	}
	s.Tool.Selection = sel
	return nil
}

func (s *Session) dispatchDrop() error {
	room, err := s.room(s.Tool.Map, s.Tool.Room)
	if err != nil {
		return err
	}
	acts := selection.Drop(room)
	return s.applyRoomActions(s.Tool.Map, s.Tool.Room, action.NewEventPhase(), acts)
}

func (s *Session) dispatchCopy() error {
	room, err := s.room(s.Tool.Map, s.Tool.Room)
	if err != nil {
		return err
	}
	bundle, acts := selection.Copy(room, s.Tool.Selection)
	if err := s.applyRoomActions(s.Tool.Map, s.Tool.Room, action.NewEventPhase(), acts); err != nil {
		return err
	}
	text, err := bundle.Marshal()
	if err != nil {
		return fmt.Errorf("session: marshaling clipboard: %w", err)
	}
	return s.Clipboard.Set(text)
}

func (s *Session) dispatchPaste(e Paste) error {
	room, err := s.room(e.Map, e.Room)
	if err != nil {
		return err
	}
	text, err := s.Clipboard.Get()
	if err != nil {
		return fmt.Errorf("session: reading clipboard: %w", err)
	}
	bundle, err := selection.ParseClipboardBundle(text)
	if err != nil {
		return fmt.Errorf("session: parsing clipboard: %w", err)
	}
	acts := selection.Paste(room, bundle, s.atlas())
	return s.applyRoomActions(e.Map, e.Room, action.NewEventPhase(), acts)
}

func (s *Session) dispatchDeleteRoom(e DeleteRoom) ([]Event, error) {
	slot, ok := s.maps[e.Map]
	if !ok {
		return nil, fmt.Errorf("session: no such open map")
	}
	if e.Room < 0 || e.Room >= len(slot.Map.Rooms) {
		return nil, fmt.Errorf("session: room index %d out of range", e.Room)
	}
	if err := s.applyMapAction(e.Map, e.Phase, action.RoomDelete{Idx: e.Room}); err != nil {
		return nil, err
	}
	n := len(slot.Map.Rooms)
	switch {
	case n == 0:
		return nil, nil
	case e.Room < n:
		return []Event{SelectRoom{Map: e.Map, Room: e.Room}}, nil
	default:
		return []Event{SelectRoom{Map: e.Map, Room: n - 1}}, nil
	}
}

func (s *Session) dispatchUndo(mapID MapID) error {
	slot, ok := s.maps[mapID]
	if !ok {
		return fmt.Errorf("session: no such open map")
	}
	h, ok := s.history[mapID]
	if !ok {
		return errNoHistory
	}
	if err := h.undoOnce(slot.Map); err != nil {
		return err
	}
	s.invalidateAllRooms(slot)
	return nil
}

func (s *Session) dispatchRedo(mapID MapID) error {
	slot, ok := s.maps[mapID]
	if !ok {
		return fmt.Errorf("session: no such open map")
	}
	h, ok := s.history[mapID]
	if !ok {
		return errNoHistory
	}
	if err := h.redoOnce(slot.Map); err != nil {
		return err
	}
	s.invalidateAllRooms(slot)
	return nil
}

func (s *Session) invalidateAllRooms(slot *MapSlot) {
	for _, r := range slot.Map.Rooms {
		r.InvalidateRenderCache()
	}
}

// atlas returns the active palette's sprite atlas, or nil if no palette
// (or no atlas) is loaded; several selection helpers accept a nil atlas
// and fall back to a default tile size.
func (s *Session) atlas() render.SpriteAtlas {
	if s.Palette == nil {
		return nil
	}
	return s.Palette.Atlas
}

// applyRoomActions wraps acts into a single MapAction addressed to
// roomIdx and applies it through action.Apply, the map's sole mutation
// gateway, recording the result into mapID's undo history and
// invalidating the room's render cache, per the generic "after any
// RoomAction" rule.
func (s *Session) applyRoomActions(mapID MapID, roomIdx int, phase action.EventPhase, acts []action.RoomAction) error {
	if len(acts) == 0 {
		return nil
	}
	wrapped := wrapRoomActions(roomIdx, acts)
	return s.applyMapAction(mapID, phase, wrapped)
}

func wrapRoomActions(roomIdx int, acts []action.RoomAction) action.MapAction {
	if len(acts) == 1 {
		return action.RoomEvent{Idx: roomIdx, Event: acts[0]}
	}
	events := make([]action.MapAction, len(acts))
	for i, a := range acts {
		events[i] = action.RoomEvent{Idx: roomIdx, Event: a}
	}
	return action.Batched{Events: events}
}

// applyMapAction is the single call site of action.Apply, per spec.md
// §4.9's "apply is the only code that calls action::apply on a map".
func (s *Session) applyMapAction(mapID MapID, phase action.EventPhase, a action.MapAction) error {
	slot, ok := s.maps[mapID]
	if !ok {
		return fmt.Errorf("session: no such open map")
	}
	inv, err := action.Apply(slot.Map, a)
	if err != nil {
		return err
	}
	s.history[mapID].record(phase, a, inv)
	slot.Dirty = true
	for _, idx := range roomIndices(a) {
		if idx >= 0 && idx < len(slot.Map.Rooms) {
			slot.Map.Rooms[idx].InvalidateRenderCache()
		}
	}
	return nil
}

// roomIndices walks a (forward) MapAction and collects every room index a
// RoomEvent within it addresses, so applyMapAction knows which rooms'
// render caches to invalidate.
func roomIndices(a action.MapAction) []int {
	switch v := a.(type) {
	case action.RoomEvent:
		return []int{v.Idx}
	case action.Batched:
		var out []int
		for _, e := range v.Events {
			out = append(out, roomIndices(e)...)
		}
		return out
	default:
		return nil
	}
}

// snapshotPoints captures each selected item's current live position, the
// reference a drag gesture's Nudge measures its delta against (per
// spec.md §4.7, avoiding cumulative drift across repeated Nudge calls
// within the same gesture).
func snapshotPoints(room *levelmap.Room, sel selection.Set) map[selection.AppSelection]levelmap.Point {
	out := make(map[selection.AppSelection]levelmap.Point, len(sel))
	for item := range sel {
		switch v := item.(type) {
		case selection.EntityBody:
			if e, ok := room.Entity(v.ID, v.Trigger); ok {
				out[item] = levelmap.Point{X: e.X, Y: e.Y}
			}
		case selection.EntityNode:
			if e, ok := room.Entity(v.ID, v.Trigger); ok && v.Index >= 0 && v.Index < len(e.Nodes) {
				out[item] = e.Nodes[v.Index]
			}
		case selection.Decal:
			if d, ok := room.Decal(v.ID, v.FG); ok {
				out[item] = levelmap.Point{X: int(d.X), Y: int(d.Y)}
			}
		}
	}
	return out
}

// snapshotSizes captures each selected entity's current live bounds, the
// reference a resize gesture measures its delta against.
func snapshotSizes(room *levelmap.Room, sel selection.Set) map[selection.AppSelection]levelmap.Rect {
	out := make(map[selection.AppSelection]levelmap.Rect, len(sel))
	for item := range sel {
		if v, ok := item.(selection.EntityBody); ok {
			if e, ok := room.Entity(v.ID, v.Trigger); ok {
				out[item] = e.Bounds()
			}
		}
	}
	return out
}
