package selection_test

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/selection"
)

func TestLiftDoesNotMutateRoomDirectly(t *testing.T) {
	_, room := newTestRoom()
	room.Solids.Set(2, 2, '1')
	room.Solids.Set(3, 2, '1')

	sel := selection.NewSet(
		selection.FgTile{P: levelmap.Point{X: 2, Y: 2}},
		selection.FgTile{P: levelmap.Point{X: 3, Y: 2}},
	)
	acts, consumed := selection.Lift(room, sel)
	if len(acts) == 0 {
		t.Fatalf("Lift returned no actions")
	}
	if room.FgFloat != nil {
		t.Fatalf("Lift mutated room.FgFloat before actions were applied")
	}
	if !consumed.Contains(selection.FgTile{P: levelmap.Point{X: 2, Y: 2}}) || !consumed.Contains(selection.FgTile{P: levelmap.Point{X: 3, Y: 2}}) {
		t.Fatalf("consumed = %v, want both lifted tiles", consumed.Slice())
	}
}

func TestLiftThenDropRoundTrips(t *testing.T) {
	m, room := newTestRoom()
	room.Solids.Set(2, 2, '1')
	room.Solids.Set(3, 2, '1')

	sel := selection.NewSet(
		selection.FgTile{P: levelmap.Point{X: 2, Y: 2}},
		selection.FgTile{P: levelmap.Point{X: 3, Y: 2}},
	)
	acts, _ := selection.Lift(room, sel)
	for _, a := range acts {
		apply(t, m, 0, a)
	}

	if got, _ := room.Tile(levelmap.Point{X: 2, Y: 2}, true); got != '0' {
		t.Fatalf("tile(2,2) after lift = %q, want cleared to '0'", got)
	}
	if room.FgFloat == nil {
		t.Fatalf("room.FgFloat is nil after applying Lift's actions")
	}

	drop := selection.Drop(room)
	if len(drop) == 0 {
		t.Fatalf("Drop returned no actions for a floating room")
	}
	for _, a := range drop {
		apply(t, m, 0, a)
	}

	if room.FgFloat != nil {
		t.Fatalf("room.FgFloat still set after Drop")
	}
	if got, _ := room.Tile(levelmap.Point{X: 2, Y: 2}, true); got != '1' {
		t.Fatalf("tile(2,2) after drop = %q, want restored to '1'", got)
	}
	if got, _ := room.Tile(levelmap.Point{X: 3, Y: 2}, true); got != '1' {
		t.Fatalf("tile(3,2) after drop = %q, want restored to '1'", got)
	}
}

func TestLiftUndoRestoresOriginalTiles(t *testing.T) {
	m, room := newTestRoom()
	room.Solids.Set(2, 2, '1')

	sel := selection.NewSet(selection.FgTile{P: levelmap.Point{X: 2, Y: 2}})
	acts, _ := selection.Lift(room, sel)

	var inverses []action.RoomAction
	for _, a := range acts {
		inverses = append(inverses, apply(t, m, 0, a))
	}
	// Undo in reverse order, mirroring how a real undo stack would replay
	// this batch's inverses.
	for i := len(inverses) - 1; i >= 0; i-- {
		apply(t, m, 0, inverses[i])
	}

	if room.FgFloat != nil {
		t.Fatalf("room.FgFloat still set after full undo")
	}
	if got, _ := room.Tile(levelmap.Point{X: 2, Y: 2}, true); got != '1' {
		t.Fatalf("tile(2,2) after undo = %q, want restored to '1'", got)
	}
}

func TestNudgeFloatOriginsShiftsByWholeTiles(t *testing.T) {
	m, room := newTestRoom()
	room.FgFloat = &levelmap.Float{
		Origin: levelmap.Point{X: 5, Y: 5},
		Grid:   levelmap.TileGrid[byte]{Tiles: []byte{'1'}, Stride: 1},
	}

	acts := selection.NudgeFloatOrigins(room, levelmap.Point{X: 16, Y: -8})
	for _, a := range acts {
		apply(t, m, 0, a)
	}

	if room.FgFloat.Origin != (levelmap.Point{X: 7, Y: 4}) {
		t.Fatalf("FgFloat.Origin after nudge = %v, want {7,4}", room.FgFloat.Origin)
	}
}
