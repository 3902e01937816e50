package selection_test

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/selection"
)

func TestRectSelectablesFindsTilesAndEntities(t *testing.T) {
	_, room := newTestRoom()
	room.Solids.Set(2, 2, '1')
	room.Bg.Set(2, 2, '2')
	room.ObjectTiles.Set(2, 2, 5)
	room.Entities = append(room.Entities, &levelmap.Entity{ID: 1, Type: "spring", X: 16, Y: 16, Width: 8, Height: 8})

	got := selection.RectSelectables(room, selection.LayerAll, levelmap.Rect{X: 0, Y: 0, W: 32, H: 32}, nil)

	want := []selection.AppSelection{
		selection.FgTile{P: levelmap.Point{X: 2, Y: 2}},
		selection.BgTile{P: levelmap.Point{X: 2, Y: 2}},
		selection.ObjectTile{P: levelmap.Point{X: 2, Y: 2}},
		selection.EntityBody{ID: 1},
	}
	for _, w := range want {
		if !got.Contains(w) {
			t.Fatalf("RectSelectables missing %v, got %v", w, got.Slice())
		}
	}
}

func TestRectSelectablesLayerFilter(t *testing.T) {
	_, room := newTestRoom()
	room.Solids.Set(2, 2, '1')
	room.Entities = append(room.Entities, &levelmap.Entity{ID: 1, Type: "spring", X: 16, Y: 16, Width: 8, Height: 8})

	got := selection.RectSelectables(room, selection.LayerEntities, levelmap.Rect{X: 0, Y: 0, W: 32, H: 32}, nil)
	if got.Contains(selection.FgTile{P: levelmap.Point{X: 2, Y: 2}}) {
		t.Fatalf("LayerEntities query returned a tile: %v", got.Slice())
	}
	if !got.Contains(selection.EntityBody{ID: 1}) {
		t.Fatalf("LayerEntities query missing the entity: %v", got.Slice())
	}
}

func TestPointSelectablePrefersFrontLayer(t *testing.T) {
	_, room := newTestRoom()
	room.Solids.Set(2, 2, '1')
	room.Entities = append(room.Entities, &levelmap.Entity{ID: 1, Type: "spring", X: 40, Y: 40, Width: 8, Height: 8})
	// Entity 2 overlaps the fg tile at (2,2); the fg tile is in front of it.
	room.Entities = append(room.Entities, &levelmap.Entity{ID: 2, Type: "spring", X: 16, Y: 16, Width: 8, Height: 8})

	sel, ok := selection.PointSelectable(room, selection.LayerAll, levelmap.Point{X: 42, Y: 42}, nil)
	if !ok || sel != (selection.AppSelection)(selection.EntityBody{ID: 1}) {
		t.Fatalf("PointSelectable on entity = %v, %v; want EntityBody{1}", sel, ok)
	}

	sel, ok = selection.PointSelectable(room, selection.LayerAll, levelmap.Point{X: 18, Y: 18}, nil)
	if !ok || sel != (selection.AppSelection)(selection.FgTile{P: levelmap.Point{X: 2, Y: 2}}) {
		t.Fatalf("PointSelectable at (18,18) = %v, %v; want FgTile{2,2}", sel, ok)
	}

	if _, ok := selection.PointSelectable(room, selection.LayerAll, levelmap.Point{X: 70, Y: 70}, nil); ok {
		t.Fatalf("PointSelectable on empty ground returned a hit")
	}
}
