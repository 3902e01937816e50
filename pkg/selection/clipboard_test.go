package selection_test

import (
	"strings"
	"testing"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/selection"
)

func TestClipboardBundleYAMLRoundTrip(t *testing.T) {
	_, room := newTestRoom()
	room.Entities = append(room.Entities, &levelmap.Entity{ID: 1, Type: "spring", X: 10, Y: 10, Width: 8, Height: 8})

	sel := selection.NewSet(selection.EntityBody{ID: 1})
	bundle, _ := selection.Copy(room, sel)

	text, err := bundle.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(text, "spring") {
		t.Fatalf("marshaled bundle missing entity type: %s", text)
	}

	parsed, err := selection.ParseClipboardBundle(text)
	if err != nil {
		t.Fatalf("ParseClipboardBundle: %v", err)
	}
	if len(parsed.Items) != 1 || parsed.Items[0].Entity == nil || parsed.Items[0].Entity.Type != "spring" {
		t.Fatalf("round-tripped bundle = %+v", parsed.Items)
	}
}

func TestCopyLiftsUnfloatedTilesExactlyOnce(t *testing.T) {
	_, room := newTestRoom()
	room.Solids.Set(2, 2, '1')

	sel := selection.NewSet(selection.FgTile{P: levelmap.Point{X: 2, Y: 2}})
	bundle, acts := selection.Copy(room, sel)

	fgItems := 0
	for _, it := range bundle.Items {
		if it.FgTiles != nil {
			fgItems++
		}
	}
	if fgItems != 1 {
		t.Fatalf("bundle has %d fg-tile items, want exactly 1", fgItems)
	}
	setFloatCount := 0
	for _, a := range acts {
		if stf, ok := a.(action.SetTileFloat); ok && stf.FG {
			setFloatCount++
		}
	}
	if setFloatCount != 1 {
		t.Fatalf("Lift actions set the fg float %d times, want 1", setFloatCount)
	}
}

func TestCopyDoesNotDoubleAddAlreadyFloatingLayer(t *testing.T) {
	_, room := newTestRoom()
	room.FgFloat = &levelmap.Float{
		Origin: levelmap.Point{X: 1, Y: 1},
		Grid:   levelmap.TileGrid[byte]{Tiles: []byte{'1'}, Stride: 1},
	}

	sel := selection.NewSet(selection.FgTileFloat{})
	bundle, acts := selection.Copy(room, sel)
	if len(acts) != 0 {
		t.Fatalf("Copy of an already-floating selection produced lift actions: %v", acts)
	}
	fgItems := 0
	for _, it := range bundle.Items {
		if it.FgTiles != nil {
			fgItems++
		}
	}
	if fgItems != 1 {
		t.Fatalf("bundle has %d fg-tile items, want exactly 1", fgItems)
	}
}

func TestPasteTranslatesToRoomCenter(t *testing.T) {
	_, src := newTestRoom() // 80x80 px -> 10x10 tiles
	src.Entities = append(src.Entities, &levelmap.Entity{ID: 7, Type: "spring", X: 0, Y: 0, Width: 8, Height: 8})
	bundle, _ := selection.Copy(src, selection.NewSet(selection.EntityBody{ID: 7}))

	dstMap, dst := newTestRoom() // same size, center at tile (5,5) = pixel (40,40)
	acts := selection.Paste(dst, bundle, nil)
	if len(acts) != 1 {
		t.Fatalf("Paste returned %d actions, want 1", len(acts))
	}
	for _, a := range acts {
		apply(t, dstMap, 0, a)
	}
	if len(dst.Entities) != 1 {
		t.Fatalf("Paste did not add the entity")
	}
	e := dst.Entities[0]
	// The copied entity's own bbox in tiles is [0,1)x[0,1), centered at
	// tile (0,0); the room's center is tile (5,5), pixel (40,40), so the
	// pasted entity lands at pixel (40,40).
	if e.X != 40 || e.Y != 40 {
		t.Fatalf("pasted entity at (%d,%d), want (40,40)", e.X, e.Y)
	}
	if e.ID == 7 {
		t.Fatalf("pasted entity kept the copied id instead of being freshly generated")
	}
}
