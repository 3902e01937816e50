package svgcanvas

import (
	"fmt"

	"github.com/levelsmith/levelsmith/pkg/render"
)

// Atlas is a minimal render.SpriteAtlas backed by a static name->size
// table, sufficient for rendering directive output as placeholder SVG
// shapes without a real image decoder (out of scope per spec.md §6 — atlas
// image decoding is an external collaborator).
type Atlas struct {
	sizes map[string]render.Size
	next  render.TextureID
	ids   map[string]render.TextureID
}

// NewAtlas builds an Atlas from a name->size table.
func NewAtlas(sizes map[string]render.Size) *Atlas {
	ids := make(map[string]render.TextureID, len(sizes))
	var id render.TextureID = 1
	for name := range sizes {
		ids[name] = id
		id++
	}
	return &Atlas{sizes: sizes, ids: ids, next: id}
}

func (a *Atlas) Lookup(name string) (render.TextureID, bool) {
	id, ok := a.ids[name]
	return id, ok
}

func (a *Atlas) Dimensions(name string) (render.Size, bool) {
	s, ok := a.sizes[name]
	return s, ok
}

func (a *Atlas) DrawSprite(c render.Canvas, name string, pos render.Point, src *render.Rect, justify render.Justify, scale render.Point, color render.Paint, rot float64) {
	size, ok := a.sizes[name]
	if !ok {
		return
	}
	w, h := float64(size.W)*scale.X, float64(size.H)*scale.Y
	dst := render.Rect{
		X: pos.X - w*justify.X,
		Y: pos.Y - h*justify.Y,
		W: w,
		H: h,
	}
	id := a.ids[name]
	c.Blit(id, dst, src)
}

func (a *Atlas) DrawTile(c render.Canvas, tilesetID byte, tx, ty int32, x, y float64, color render.Paint) {
	name := fmt.Sprintf("tileset:%c", tilesetID)
	id, ok := a.ids[name]
	if !ok {
		id = 0
	}
	c.Blit(id, render.Rect{X: x, Y: y, W: 8, H: 8}, &render.Rect{X: float64(tx * 8), Y: float64(ty * 8), W: 8, H: 8})
}
