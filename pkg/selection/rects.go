package selection

import (
	"path"
	"strings"

	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/render"
)

// nodeHitboxRadius is the half-width of the square hit region drawn around
// an entity node, matching the reference editor's small fixed node handles.
const nodeHitboxRadius = 4

// DecalTextureKey maps a decal's stored texture name to the atlas lookup
// key: "decals/" plus the texture name with its extension stripped.
func DecalTextureKey(texture string) string {
	base := strings.TrimSuffix(texture, path.Ext(texture))
	return path.Join("decals", base)
}

// decalRect computes a decal's hitbox: centered at (d.X, d.Y), sized by the
// atlas sprite's natural dimensions scaled by (ScaleX, ScaleY).
func decalRect(d *levelmap.Decal, atlas render.SpriteAtlas) levelmap.Rect {
	w, h := 16, 16
	if atlas != nil {
		if size, ok := atlas.Dimensions(DecalTextureKey(d.Texture)); ok {
			w, h = size.W, size.H
		}
	}
	sx, sy := d.ScaleX, d.ScaleY
	if sx < 0 {
		sx = -sx
	}
	if sy < 0 {
		sy = -sy
	}
	fw, fh := int(float32(w)*sx), int(float32(h)*sy)
	return levelmap.Rect{X: int(d.X) - fw/2, Y: int(d.Y) - fh/2, W: fw, H: fh}
}

func floatRects[T comparable](origin levelmap.Point, grid levelmap.TileGrid[T], sentinel T) []levelmap.Rect {
	var out []levelmap.Rect
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Stride; x++ {
			if grid.Get(x, y, sentinel) == sentinel {
				continue
			}
			out = append(out, levelmap.Rect{
				X: (origin.X + x) * 8, Y: (origin.Y + y) * 8, W: 8, H: 8,
			})
		}
	}
	return out
}

// RectsOf returns sel's hitbox rectangles in room space. atlas is consulted
// only for Decal selections (nil is safe and falls back to a 16x16 box, per
// spec.md §6's "external serializer/atlas is an injected collaborator").
func RectsOf(sel AppSelection, room *levelmap.Room, atlas render.SpriteAtlas) []levelmap.Rect {
	switch s := sel.(type) {
	case FgTile:
		return []levelmap.Rect{{X: s.P.X * 8, Y: s.P.Y * 8, W: 8, H: 8}}
	case BgTile:
		return []levelmap.Rect{{X: s.P.X * 8, Y: s.P.Y * 8, W: 8, H: 8}}
	case ObjectTile:
		return []levelmap.Rect{{X: s.P.X * 8, Y: s.P.Y * 8, W: 8, H: 8}}
	case FgTileFloat:
		if room.FgFloat == nil {
			return nil
		}
		return floatRects(room.FgFloat.Origin, room.FgFloat.Grid, '\x00')
	case BgTileFloat:
		if room.BgFloat == nil {
			return nil
		}
		return floatRects(room.BgFloat.Origin, room.BgFloat.Grid, '\x00')
	case ObjTileFloat:
		if room.ObjFloat == nil {
			return nil
		}
		return floatRects(room.ObjFloat.Origin, room.ObjFloat.Grid, int32(-2))
	case EntityBody:
		e, ok := room.Entity(s.ID, s.Trigger)
		if !ok {
			return nil
		}
		return []levelmap.Rect{e.Bounds()}
	case EntityNode:
		e, ok := room.Entity(s.ID, s.Trigger)
		if !ok || s.Index < 0 || s.Index >= len(e.Nodes) {
			return nil
		}
		n := e.Nodes[s.Index]
		return []levelmap.Rect{{
			X: n.X - nodeHitboxRadius, Y: n.Y - nodeHitboxRadius,
			W: 2 * nodeHitboxRadius, H: 2 * nodeHitboxRadius,
		}}
	case Decal:
		d, ok := room.Decal(s.ID, s.FG)
		if !ok {
			return nil
		}
		return []levelmap.Rect{decalRect(d, atlas)}
	default:
		return nil
	}
}

// intersectsAny reports whether needle intersects any rect in haystack.
func intersectsAny(haystack []levelmap.Rect, needle levelmap.Rect) bool {
	for _, r := range haystack {
		if r.Intersects(needle) {
			return true
		}
	}
	return false
}
