package selection_test

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/idgen"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/selection"
)

func TestRectsOfTile(t *testing.T) {
	_, room := newTestRoom()
	cases := []struct {
		name string
		sel  selection.AppSelection
	}{
		{"fg", selection.FgTile{P: levelmap.Point{X: 3, Y: 4}}},
		{"bg", selection.BgTile{P: levelmap.Point{X: 3, Y: 4}}},
		{"obj", selection.ObjectTile{P: levelmap.Point{X: 3, Y: 4}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rects := selection.RectsOf(c.sel, room, nil)
			if len(rects) != 1 || rects[0] != (levelmap.Rect{X: 24, Y: 32, W: 8, H: 8}) {
				t.Fatalf("RectsOf(%v) = %v, want one 24,32,8,8 rect", c.sel, rects)
			}
		})
	}
}

func TestRectsOfEmptyFloatIsNil(t *testing.T) {
	_, room := newTestRoom()
	for _, sel := range []selection.AppSelection{selection.FgTileFloat{}, selection.BgTileFloat{}, selection.ObjTileFloat{}} {
		if got := selection.RectsOf(sel, room, nil); got != nil {
			t.Fatalf("RectsOf(%v) with no float = %v, want nil", sel, got)
		}
	}
}

func TestRectsOfEntityBody(t *testing.T) {
	_, room := newTestRoom()
	room.Entities = append(room.Entities, &levelmap.Entity{ID: 1, Type: "spring", X: 10, Y: 20, Width: 16, Height: 8})

	rects := selection.RectsOf(selection.EntityBody{ID: 1}, room, nil)
	if len(rects) != 1 || rects[0] != (levelmap.Rect{X: 10, Y: 20, W: 16, H: 8}) {
		t.Fatalf("RectsOf(EntityBody) = %v, want {10,20,16,8}", rects)
	}

	if got := selection.RectsOf(selection.EntityBody{ID: 99}, room, nil); got != nil {
		t.Fatalf("RectsOf(missing entity) = %v, want nil", got)
	}
}

func TestRectsOfEntityNode(t *testing.T) {
	_, room := newTestRoom()
	room.Entities = append(room.Entities, &levelmap.Entity{
		ID: 1, Type: "zipline", X: 0, Y: 0,
		Nodes: []levelmap.Point{{X: 40, Y: 40}},
	})

	rects := selection.RectsOf(selection.EntityNode{ID: 1, Index: 0}, room, nil)
	if len(rects) != 1 || rects[0] != (levelmap.Rect{X: 36, Y: 36, W: 8, H: 8}) {
		t.Fatalf("RectsOf(EntityNode) = %v, want {36,36,8,8}", rects)
	}
	if got := selection.RectsOf(selection.EntityNode{ID: 1, Index: 5}, room, nil); got != nil {
		t.Fatalf("RectsOf(out-of-range node) = %v, want nil", got)
	}
}

func TestRectsOfDecalFallsBackWithoutAtlas(t *testing.T) {
	_, room := newTestRoom()
	id := idgen.NewGenerator().Next()
	room.FgDecals = append(room.FgDecals, &levelmap.Decal{ID: id, X: 100, Y: 100, ScaleX: 1, ScaleY: 1, Texture: "flag.png"})

	rects := selection.RectsOf(selection.Decal{ID: id, FG: true}, room, nil)
	if len(rects) != 1 || rects[0] != (levelmap.Rect{X: 92, Y: 92, W: 16, H: 16}) {
		t.Fatalf("RectsOf(decal, nil atlas) = %v, want 16x16 box centered at (100,100)", rects)
	}
}

func TestRectsOfDecalUsesAtlasDimensions(t *testing.T) {
	_, room := newTestRoom()
	id := idgen.NewGenerator().Next()
	room.FgDecals = append(room.FgDecals, &levelmap.Decal{ID: id, X: 100, Y: 100, ScaleX: 1, ScaleY: 1, Texture: "flag.png"})

	rects := selection.RectsOf(selection.Decal{ID: id, FG: true}, room, fakeAtlas{})
	want := levelmap.Rect{X: 100 - 8, Y: 100 - 12, W: 16, H: 24}
	if len(rects) != 1 || rects[0] != want {
		t.Fatalf("RectsOf(decal, fakeAtlas) = %v, want %v", rects, want)
	}
}

func TestDecalTextureKeyStripsExtension(t *testing.T) {
	if got := selection.DecalTextureKey("flag.png"); got != "decals/flag" {
		t.Fatalf("DecalTextureKey = %q, want decals/flag", got)
	}
	if got := selection.DecalTextureKey("vegetation/plant"); got != "decals/vegetation/plant" {
		t.Fatalf("DecalTextureKey = %q, want decals/vegetation/plant", got)
	}
}
