package selection_test

import (
	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/render"
)

func newTestRoom() (*levelmap.Map, *levelmap.Room) {
	m := levelmap.NewMap("X")
	room := levelmap.NewRoom("a-00", levelmap.Rect{X: 0, Y: 0, W: 80, H: 80})
	m.Rooms = append(m.Rooms, room)
	return m, room
}

// apply runs ra against m's room at idx and returns its inverse, failing the
// test on error.
func apply(t interface{ Fatalf(string, ...any) }, m *levelmap.Map, idx int, ra action.RoomAction) action.RoomAction {
	inv, err := action.Apply(m, action.RoomEvent{Idx: idx, Event: ra})
	if err != nil {
		t.Fatalf("apply %#v: %v", ra, err)
	}
	return inv.(action.RoomEvent).Event
}

// fakeAtlas is a minimal render.SpriteAtlas stub giving every decal texture
// a fixed 16x24 natural size, so decal hitbox tests are deterministic.
type fakeAtlas struct{}

func (fakeAtlas) Lookup(name string) (render.TextureID, bool) { return 0, false }
func (fakeAtlas) Dimensions(name string) (render.Size, bool)  { return render.Size{W: 16, H: 24}, true }
func (fakeAtlas) DrawSprite(render.Canvas, string, render.Point, *render.Rect, render.Justify, render.Point, render.Paint, float64) {
}
func (fakeAtlas) DrawTile(render.Canvas, byte, int32, int32, float64, float64, render.Paint) {}
