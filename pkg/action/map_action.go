package action

import "github.com/levelsmith/levelsmith/pkg/levelmap"

// MapAction is one mutation scoped to a whole map, per spec.md §4.6's
// MapAction variant list.
type MapAction interface {
	isMapAction()
	apply(m *levelmap.Map) (MapAction, error)
}

func stylegroundSlice(m *levelmap.Map, fg bool) *[]*levelmap.Styleground {
	if fg {
		return &m.FgStyles
	}
	return &m.BgStyles
}

// StylegroundAdd inserts a styleground at loc.Idx in the fg or bg list.
type StylegroundAdd struct {
	Loc   levelmap.StylegroundLoc
	Style *levelmap.Styleground
}

func (StylegroundAdd) isMapAction() {}

func (a StylegroundAdd) apply(m *levelmap.Map) (MapAction, error) {
	slice := stylegroundSlice(m, a.Loc.FG)
	if a.Loc.Idx > len(*slice) {
		return nil, &OutOfRangeError{What: "styleground index"}
	}
	*slice = append(*slice, nil)
	copy((*slice)[a.Loc.Idx+1:], (*slice)[a.Loc.Idx:])
	(*slice)[a.Loc.Idx] = a.Style
	return StylegroundRemove{Loc: a.Loc}, nil
}

// StylegroundUpdate replaces a styleground's full contents in place.
type StylegroundUpdate struct {
	Loc   levelmap.StylegroundLoc
	Style *levelmap.Styleground
}

func (StylegroundUpdate) isMapAction() {}

func (a StylegroundUpdate) apply(m *levelmap.Map) (MapAction, error) {
	slice := stylegroundSlice(m, a.Loc.FG)
	if a.Loc.Idx >= len(*slice) {
		return nil, &OutOfRangeError{What: "styleground index"}
	}
	old := (*slice)[a.Loc.Idx]
	(*slice)[a.Loc.Idx] = a.Style
	return StylegroundUpdate{Loc: a.Loc, Style: old}, nil
}

// StylegroundRemove deletes the styleground at loc.
type StylegroundRemove struct {
	Loc levelmap.StylegroundLoc
}

func (StylegroundRemove) isMapAction() {}

func (a StylegroundRemove) apply(m *levelmap.Map) (MapAction, error) {
	slice := stylegroundSlice(m, a.Loc.FG)
	if a.Loc.Idx >= len(*slice) {
		return nil, &OutOfRangeError{What: "styleground index"}
	}
	style := (*slice)[a.Loc.Idx]
	*slice = append((*slice)[:a.Loc.Idx], (*slice)[a.Loc.Idx+1:]...)
	return StylegroundAdd{Loc: a.Loc, Style: style}, nil
}

// StylegroundMove relocates the styleground at Loc to Target, which may name
// a different (fg/bg) list. If Target.Idx is out of range for its list, the
// move is clamped to Loc (a no-op), mirroring the reference engine's
// out-of-range fallback.
type StylegroundMove struct {
	Loc, Target levelmap.StylegroundLoc
}

func (StylegroundMove) isMapAction() {}

func (a StylegroundMove) apply(m *levelmap.Map) (MapAction, error) {
	srcSlice := stylegroundSlice(m, a.Loc.FG)
	if a.Loc.Idx >= len(*srcSlice) {
		return nil, &OutOfRangeError{What: "styleground index"}
	}
	style := (*srcSlice)[a.Loc.Idx]
	*srcSlice = append((*srcSlice)[:a.Loc.Idx], (*srcSlice)[a.Loc.Idx+1:]...)

	dstSlice := stylegroundSlice(m, a.Target.FG)
	target := a.Target
	if target.Idx > len(*dstSlice) {
		target = a.Loc
		dstSlice = stylegroundSlice(m, target.FG)
	}
	*dstSlice = append(*dstSlice, nil)
	copy((*dstSlice)[target.Idx+1:], (*dstSlice)[target.Idx:])
	(*dstSlice)[target.Idx] = style

	return StylegroundMove{Loc: target, Target: a.Loc}, nil
}

// RoomAdd inserts room at Idx, or appends it if Idx is nil (the
// absoluteness rule makes this concrete during apply). An empty or
// colliding room name is replaced with a freshly picked one.
type RoomAdd struct {
	Idx  *int
	Room *levelmap.Room
}

func (RoomAdd) isMapAction() {}

func (a RoomAdd) apply(m *levelmap.Map) (MapAction, error) {
	idx := len(m.Rooms)
	if a.Idx != nil {
		idx = *a.Idx
	}
	if idx > len(m.Rooms) {
		return nil, &OutOfRangeError{What: "room index"}
	}
	room := a.Room
	if room.Name == "" {
		room.Name = m.NewRoomName()
	} else if _, collides := m.Room(room.Name); collides {
		room.Name = m.NewRoomName()
	}
	m.Rooms = append(m.Rooms, nil)
	copy(m.Rooms[idx+1:], m.Rooms[idx:])
	m.Rooms[idx] = room
	return RoomDelete{Idx: idx}, nil
}

// RoomDelete removes the room at Idx.
type RoomDelete struct {
	Idx int
}

func (RoomDelete) isMapAction() {}

func (a RoomDelete) apply(m *levelmap.Map) (MapAction, error) {
	if a.Idx >= len(m.Rooms) {
		return nil, &OutOfRangeError{What: "room index"}
	}
	room := m.Rooms[a.Idx]
	m.Rooms = append(m.Rooms[:a.Idx], m.Rooms[a.Idx+1:]...)
	idx := a.Idx
	return RoomAdd{Idx: &idx, Room: room}, nil
}

// RoomEvent wraps a RoomAction addressed to the room at Idx.
type RoomEvent struct {
	Idx   int
	Event RoomAction
}

func (RoomEvent) isMapAction() {}

func (a RoomEvent) apply(m *levelmap.Map) (MapAction, error) {
	if a.Idx >= len(m.Rooms) {
		return nil, &OutOfRangeError{What: "room index"}
	}
	inv, err := a.Event.apply(m.Rooms[a.Idx])
	if err != nil {
		return nil, err
	}
	return RoomEvent{Idx: a.Idx, Event: inv}, nil
}

// Batched applies each sub-action in order. Its inverse is the component-wise
// inverse list in the SAME order (not reversed): spec.md §4.6 requires this
// because every sub-action is already absolute, so undoing Batched([A,B,C])
// is Batched([A⁻¹,B⁻¹,C⁻¹]), applied in original order. If any sub-action
// fails, the actions already applied are rolled back via their own inverses
// so the map is left unchanged — no partial commit.
type Batched struct {
	Events []MapAction
}

func (Batched) isMapAction() {}

func (a Batched) apply(m *levelmap.Map) (MapAction, error) {
	applied := make([]MapAction, 0, len(a.Events))
	for _, ev := range a.Events {
		inv, err := ev.apply(m)
		if err != nil {
			for i := len(applied) - 1; i >= 0; i-- {
				applied[i].apply(m) //nolint:errcheck // rollback of an already-validated inverse cannot fail
			}
			return nil, err
		}
		applied = append(applied, inv)
	}
	return Batched{Events: applied}, nil
}

// Apply is the single entry point for mutating a map: it dispatches to a's
// own apply method and returns the precise inverse action.
func Apply(m *levelmap.Map, a MapAction) (MapAction, error) {
	return a.apply(m)
}
