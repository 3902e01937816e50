package action

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

func newTestMap() *levelmap.Map {
	return levelmap.NewMap("X")
}

func defaultRoomBounds() levelmap.Rect {
	return levelmap.Rect{X: 0, Y: 0, W: 320, H: 184}
}

// TestCreateAndDeleteRoom is spec.md §8 scenario 1.
func TestCreateAndDeleteRoom(t *testing.T) {
	m := newTestMap()
	add := RoomAdd{Room: levelmap.NewRoom("", defaultRoomBounds())}

	inv, err := Apply(m, add)
	if err != nil {
		t.Fatalf("Apply(AddRoom): %v", err)
	}
	if len(m.Rooms) != 1 || m.Rooms[0].Name != "a-00" {
		t.Fatalf("expected a single room named a-00, got %+v", m.Rooms)
	}
	del, ok := inv.(RoomDelete)
	if !ok || del.Idx != 0 {
		t.Fatalf("inverse = %#v, want RoomDelete{Idx: 0}", inv)
	}

	if _, err := Apply(m, inv); err != nil {
		t.Fatalf("Apply(inverse): %v", err)
	}
	if len(m.Rooms) != 0 {
		t.Fatalf("expected empty map after undo, got %d rooms", len(m.Rooms))
	}
}

// TestNameCollisionPicksNextName is spec.md §8 scenario 2.
func TestNameCollisionPicksNextName(t *testing.T) {
	m := newTestMap()
	if _, err := Apply(m, RoomAdd{Room: levelmap.NewRoom("a-00", defaultRoomBounds())}); err != nil {
		t.Fatalf("Apply(first AddRoom): %v", err)
	}
	if _, err := Apply(m, RoomAdd{Room: levelmap.NewRoom("", defaultRoomBounds())}); err != nil {
		t.Fatalf("Apply(second AddRoom): %v", err)
	}
	if m.Rooms[1].Name != "a-01" {
		t.Fatalf("second room name = %q, want a-01", m.Rooms[1].Name)
	}
}

// TestPaintAndUndo is spec.md §8 scenario 3.
func TestPaintAndUndo(t *testing.T) {
	m := newTestMap()
	room := levelmap.NewRoom("a-00", defaultRoomBounds())
	m.Rooms = append(m.Rooms, room)

	data := levelmap.TileGrid[byte]{Tiles: []byte{'9'}, Stride: 1}
	paint := RoomEvent{Idx: 0, Event: TilePaint{FG: true, Offset: levelmap.Point{X: 5, Y: 5}, Data: data}}

	inv, err := Apply(m, paint)
	if err != nil {
		t.Fatalf("Apply(paint): %v", err)
	}
	if got, _ := room.Tile(levelmap.Point{X: 5, Y: 5}, true); got != '9' {
		t.Fatalf("tile(5,5) = %q, want '9'", got)
	}

	if _, err := Apply(m, inv); err != nil {
		t.Fatalf("Apply(undo paint): %v", err)
	}
	if got, _ := room.Tile(levelmap.Point{X: 5, Y: 5}, true); got != '0' {
		t.Fatalf("tile(5,5) after undo = %q, want '0'", got)
	}
}

// TestPaintSentinelLeavesGridUnchanged exercises the §8 "paint sentinel"
// property: an all-sentinel overlay is a complete no-op whose inverse is
// itself all-sentinel.
func TestPaintSentinelLeavesGridUnchanged(t *testing.T) {
	room := levelmap.NewRoom("a-00", defaultRoomBounds())
	before := room.Solids.Clone()

	data := levelmap.TileGrid[byte]{Tiles: []byte{0, 0, 0, 0}, Stride: 2}
	paint := TilePaint{FG: true, Offset: levelmap.Point{X: 1, Y: 1}, Data: data}
	inv, err := paint.apply(room)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(room.Solids, before) {
		t.Fatalf("all-sentinel paint mutated the grid")
	}
	tp := inv.(TilePaint)
	for _, b := range tp.Data.Tiles {
		if b != 0 {
			t.Fatalf("inverse of an all-sentinel paint should itself be all-sentinel, got %v", tp.Data.Tiles)
		}
	}
}

// TestStylegroundMove is spec.md §8 scenario 4.
func TestStylegroundMove(t *testing.T) {
	m := newTestMap()
	f0 := &levelmap.Styleground{Type: "f0"}
	f1 := &levelmap.Styleground{Type: "f1"}
	b0 := &levelmap.Styleground{Type: "b0"}
	m.FgStyles = []*levelmap.Styleground{f0, f1}
	m.BgStyles = []*levelmap.Styleground{b0}

	move := StylegroundMove{
		Loc:    levelmap.StylegroundLoc{FG: true, Idx: 1},
		Target: levelmap.StylegroundLoc{FG: false, Idx: 0},
	}
	inv, err := Apply(m, move)
	if err != nil {
		t.Fatalf("Apply(move): %v", err)
	}
	if len(m.FgStyles) != 1 || m.FgStyles[0] != f0 {
		t.Fatalf("fg styles = %v, want [f0]", m.FgStyles)
	}
	if len(m.BgStyles) != 2 || m.BgStyles[0] != f1 || m.BgStyles[1] != b0 {
		t.Fatalf("bg styles = %v, want [f1 b0]", m.BgStyles)
	}

	if _, err := Apply(m, inv); err != nil {
		t.Fatalf("Apply(undo move): %v", err)
	}
	if len(m.FgStyles) != 2 || m.FgStyles[0] != f0 || m.FgStyles[1] != f1 {
		t.Fatalf("fg styles after undo = %v, want [f0 f1]", m.FgStyles)
	}
	if len(m.BgStyles) != 1 || m.BgStyles[0] != b0 {
		t.Fatalf("bg styles after undo = %v, want [b0]", m.BgStyles)
	}
}

// TestFloatRoundTrip is spec.md §8 scenario 5: lift a tile into a float,
// nudge it, drop it, then undo the whole gesture as one phase.
func TestFloatRoundTrip(t *testing.T) {
	m := newTestMap()
	room := levelmap.NewRoom("a-00", defaultRoomBounds())
	room.Solids.Set(3, 3, '9')
	m.Rooms = append(m.Rooms, room)

	var undoLog []MapAction

	// Lift: paint '0' at the source cell, then set the float.
	liftPaint := RoomEvent{Idx: 0, Event: TilePaint{
		FG: true, Offset: levelmap.Point{X: 3, Y: 3},
		Data: levelmap.TileGrid[byte]{Tiles: []byte{'0'}, Stride: 1},
	}}
	inv, err := Apply(m, liftPaint)
	if err != nil {
		t.Fatalf("Apply(lift paint): %v", err)
	}
	undoLog = append(undoLog, inv)

	float := &levelmap.Float{Origin: levelmap.Point{X: 3, Y: 3}, Grid: levelmap.TileGrid[byte]{Tiles: []byte{'9'}, Stride: 1}}
	setFloat := RoomEvent{Idx: 0, Event: SetTileFloat{FG: true, Float: float}}
	inv, err = Apply(m, setFloat)
	if err != nil {
		t.Fatalf("Apply(set float): %v", err)
	}
	undoLog = append(undoLog, inv)

	// Drop at (4,3): clear the float, paint '9' at the new location.
	clearFloat := RoomEvent{Idx: 0, Event: SetTileFloat{FG: true, Float: nil}}
	inv, err = Apply(m, clearFloat)
	if err != nil {
		t.Fatalf("Apply(clear float): %v", err)
	}
	undoLog = append(undoLog, inv)

	dropPaint := RoomEvent{Idx: 0, Event: TilePaint{
		FG: true, Offset: levelmap.Point{X: 4, Y: 3},
		Data: levelmap.TileGrid[byte]{Tiles: []byte{'9'}, Stride: 1},
	}}
	inv, err = Apply(m, dropPaint)
	if err != nil {
		t.Fatalf("Apply(drop paint): %v", err)
	}
	undoLog = append(undoLog, inv)

	if got, _ := room.Tile(levelmap.Point{X: 3, Y: 3}, true); got != '0' {
		t.Fatalf("tile(3,3) = %q, want '0'", got)
	}
	if got, _ := room.Tile(levelmap.Point{X: 4, Y: 3}, true); got != '9' {
		t.Fatalf("tile(4,3) = %q, want '9'", got)
	}
	if room.FgFloat != nil {
		t.Fatalf("expected no float after drop, got %+v", room.FgFloat)
	}

	for i := len(undoLog) - 1; i >= 0; i-- {
		if _, err := Apply(m, undoLog[i]); err != nil {
			t.Fatalf("Apply(undo[%d]): %v", i, err)
		}
	}

	if got, _ := room.Tile(levelmap.Point{X: 3, Y: 3}, true); got != '9' {
		t.Fatalf("after full undo tile(3,3) = %q, want '9'", got)
	}
	if got, _ := room.Tile(levelmap.Point{X: 4, Y: 3}, true); got != '0' {
		t.Fatalf("after full undo tile(4,3) = %q, want '0'", got)
	}
	if room.FgFloat != nil {
		t.Fatalf("expected no float after full undo, got %+v", room.FgFloat)
	}
}

// TestBatchedInversionIsNotReversed pins spec.md §4.6's explicitly
// counterintuitive rule: Batched([A,B,C])'s inverse is
// Batched([A⁻¹,B⁻¹,C⁻¹]) in the SAME order, not reversed, because each
// sub-action is already absolute.
func TestBatchedInversionIsNotReversed(t *testing.T) {
	m := newTestMap()
	batch := Batched{Events: []MapAction{
		RoomAdd{Room: levelmap.NewRoom("a-00", defaultRoomBounds())},
		RoomAdd{Room: levelmap.NewRoom("a-01", defaultRoomBounds())},
	}}
	inv, err := Apply(m, batch)
	if err != nil {
		t.Fatalf("Apply(batch): %v", err)
	}
	invBatch, ok := inv.(Batched)
	if !ok || len(invBatch.Events) != 2 {
		t.Fatalf("inverse = %#v, want a 2-element Batched", inv)
	}
	first, ok := invBatch.Events[0].(RoomDelete)
	if !ok || first.Idx != 0 {
		t.Fatalf("first inverse event = %#v, want RoomDelete{Idx:0} (same order as forward batch)", invBatch.Events[0])
	}
	second, ok := invBatch.Events[1].(RoomDelete)
	if !ok || second.Idx != 1 {
		t.Fatalf("second inverse event = %#v, want RoomDelete{Idx:1}", invBatch.Events[1])
	}
}

// TestEntityRemoveInversePreservesID guards against the upstream quirk
// where removing an entity and undoing the removal would mint a fresh id
// instead of restoring the original one; spec.md §4.6 requires bit-for-bit
// restoration, so the inverse of EntityRemove must not regenerate.
func TestEntityRemoveInversePreservesID(t *testing.T) {
	room := levelmap.NewRoom("a-00", defaultRoomBounds())
	room.Entities = []*levelmap.Entity{{ID: 5, Type: "spring"}, {ID: 9, Type: "gem"}}

	remove := EntityRemove{ID: 5, Trigger: false}
	inv, err := remove.apply(room)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	add, ok := inv.(EntityAdd)
	if !ok || add.GenID {
		t.Fatalf("inverse = %#v, want EntityAdd with GenID=false", inv)
	}
	if _, err := add.apply(room); err != nil {
		t.Fatalf("apply(re-add): %v", err)
	}
	if _, ok := room.Entity(5, false); !ok {
		t.Fatalf("expected entity id 5 restored exactly, got %+v", room.Entities)
	}
}

// TestEntityAddDuplicateRejected checks the Duplicate error path never
// mutates the room.
func TestEntityAddDuplicateRejected(t *testing.T) {
	room := levelmap.NewRoom("a-00", defaultRoomBounds())
	room.Entities = []*levelmap.Entity{{ID: 1, Type: "spring"}}
	before := len(room.Entities)

	add := EntityAdd{Entity: &levelmap.Entity{ID: 1, Type: "spring"}, GenID: false}
	_, err := add.apply(room)
	if err == nil {
		t.Fatalf("expected a Duplicate error")
	}
	if _, ok := err.(*DuplicateError); !ok {
		t.Fatalf("err = %#v, want *DuplicateError", err)
	}
	if len(room.Entities) != before {
		t.Fatalf("a failed EntityAdd must not mutate the room")
	}
}

// TestRoomEventOutOfRangeLeavesMapUntouched checks a failing RoomEvent
// surfaces OutOfRangeError and never panics or mutates the map.
func TestRoomEventOutOfRangeLeavesMapUntouched(t *testing.T) {
	m := newTestMap()
	_, err := Apply(m, RoomEvent{Idx: 3, Event: RoomMove{Bounds: defaultRoomBounds()}})
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Fatalf("err = %#v, want *OutOfRangeError", err)
	}
}

// genRoomAction is a tiny closed set of RoomAction constructors a rapid
// generator can pick among for the reversibility property below.
func genRoomAction(rt *rapid.T, room *levelmap.Room) RoomAction {
	switch rapid.IntRange(0, 2).Draw(rt, "kind") {
	case 0:
		x := rapid.IntRange(0, room.Solids.Stride-1).Draw(rt, "x")
		y := rapid.IntRange(0, room.Solids.Height()-1).Draw(rt, "y")
		v := rapid.SampledFrom([]byte{'1', '9', 'a'}).Draw(rt, "v")
		return TilePaint{FG: true, Offset: levelmap.Point{X: x, Y: y}, Data: levelmap.TileGrid[byte]{Tiles: []byte{v}, Stride: 1}}
	case 1:
		name := rapid.StringMatching(`[a-z][a-z0-9]{0,4}`).Draw(rt, "name")
		return EntityAdd{Entity: &levelmap.Entity{Type: name, X: 0, Y: 0, Width: 8, Height: 8}, GenID: true}
	default:
		if len(room.Entities) == 0 {
			return TilePaint{FG: true, Offset: levelmap.Point{}, Data: levelmap.TileGrid[byte]{Tiles: []byte{0}, Stride: 1}}
		}
		id := room.Entities[rapid.IntRange(0, len(room.Entities)-1).Draw(rt, "idx")].ID
		return EntityRemove{ID: id}
	}
}

// TestActionReversibilityProperty is the §8 "action reversibility" property:
// applying a random sequence of actions and then their inverses in reverse
// order restores the room to its starting state.
func TestActionReversibilityProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		room := levelmap.NewRoom("a-00", levelmap.Rect{X: 0, Y: 0, W: 24, H: 24})
		before := cloneRoomForTest(room)

		n := rapid.IntRange(0, 6).Draw(rt, "n")
		var inverses []RoomAction
		for i := 0; i < n; i++ {
			act := genRoomAction(rt, room)
			inv, err := act.apply(room)
			if err != nil {
				continue
			}
			inverses = append(inverses, inv)
		}
		for i := len(inverses) - 1; i >= 0; i-- {
			if _, err := inverses[i].apply(room); err != nil {
				rt.Fatalf("applying inverse failed: %v", err)
			}
		}
		if !reflect.DeepEqual(before, cloneRoomForTest(room)) {
			rt.Fatalf("room not restored: before=%+v after=%+v", before, room)
		}
	})
}

// cloneRoomForTest takes a structural snapshot sufficient for the
// reversibility property's equality check. The render-cache fields are
// copied as they are and compared too; no action touches them.
func cloneRoomForTest(r *levelmap.Room) levelmap.Room {
	out := *r
	out.Solids = r.Solids.Clone()
	out.Bg = r.Bg.Clone()
	out.ObjectTiles = r.ObjectTiles.Clone()
	clones := make([]*levelmap.Entity, len(r.Entities))
	for i, e := range r.Entities {
		clones[i] = e.Clone()
	}
	out.Entities = clones
	return out
}
