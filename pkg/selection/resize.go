package selection

import (
	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/render"
)

// resizeInset is the sentinel border width (in room-space pixels) that
// marks a selection rectangle's edge as the active resize handle, per
// spec.md §4.7.
const resizeInset = 2

// ResizeSide names which edge(s) of a selection's bounding rectangle a
// resize gesture is dragging.
type ResizeSide struct{ Top, Bottom, Left, Right bool }

// NoResize is the zero ResizeSide: no active edge, resizing is not in
// progress.
var NoResize = ResizeSide{}

// None reports whether s names no edge at all.
func (s ResizeSide) None() bool { return s == ResizeSide{} }

func resizeSideFrom(top, bottom, left, right bool) ResizeSide {
	// Corners and single edges are meaningful; any other combination (e.g.
	// top+bottom at once) isn't a resize handle.
	switch {
	case top && !bottom && !left && !right,
		!top && bottom && !left && !right,
		!top && !bottom && left && !right,
		!top && !bottom && !left && right,
		top && !bottom && left && !right,
		top && !bottom && !left && right,
		!top && bottom && left && !right,
		!top && bottom && !left && right:
		return ResizeSide{Top: top, Bottom: bottom, Left: left, Right: right}
	default:
		return NoResize
	}
}

func (s ResizeSide) filterOutTopBottom() ResizeSide {
	return resizeSideFrom(false, false, s.Left, s.Right)
}

func (s ResizeSide) filterOutLeftRight() ResizeSide {
	return resizeSideFrom(s.Top, s.Bottom, false, false)
}

// EntityResizable reports whether entities of the given type may be
// resized at all, per their content-pack config's Resizable flag.
type EntityResizable func(entityType string) bool

// CanResize determines which edge, if any, a resize gesture starting at
// pointer (room space) would drag, given the currently selected items.
// Resizing is disallowed entirely (NoResize) when any selected item is a
// tile, a float, an entity node, or a non-resizable entity, per spec.md
// §4.7.
func CanResize(room *levelmap.Room, sel Set, atlas render.SpriteAtlas, resizable EntityResizable, pointer levelmap.Point) ResizeSide {
	side := NoResize
outer:
	for s := range sel {
		for _, r := range RectsOf(s, room, atlas) {
			if !r.Contains(pointer) {
				continue
			}
			inner := levelmap.Rect{
				X: r.X + resizeInset, Y: r.Y + resizeInset,
				W: r.W - 2*resizeInset, H: r.H - 2*resizeInset,
			}
			side = resizeSideFrom(
				pointer.Y < inner.Y, pointer.Y >= inner.Y+inner.H,
				pointer.X < inner.X, pointer.X >= inner.X+inner.W,
			)
			break outer
		}
	}
	if side.None() {
		return side
	}
	for s := range sel {
		switch t := s.(type) {
		case FgTile, BgTile, ObjectTile, FgTileFloat, BgTileFloat, ObjTileFloat, EntityNode:
			return NoResize
		case EntityBody:
			e, ok := room.Entity(t.ID, t.Trigger)
			if ok && resizable != nil && !resizable(e.Type) {
				return NoResize
			}
		}
	}
	return side
}

// Resize applies an in-progress resize gesture: delta is the pointer's
// total displacement (room space) from the gesture's start. refSizes
// records each selected item's bounding rectangle at gesture start, so
// repeated calls during one drag don't accumulate drift, mirroring Nudge.
// minSize looks up an entity's minimum width/height from its content-pack
// config; a nil minSize imposes no floor.
func Resize(room *levelmap.Room, sel Set, side ResizeSide, refSizes map[AppSelection]levelmap.Rect, delta levelmap.Point, minSize func(entityType string) (int, int), atlas render.SpriteAtlas) []action.RoomAction {
	posVec := levelmap.Point{}
	if side.Left {
		posVec.X = delta.X
	}
	if side.Top {
		posVec.Y = delta.Y
	}
	sizeVec := levelmap.Point{}
	switch {
	case side.Left:
		sizeVec.X = -delta.X
	case side.Right:
		sizeVec.X = delta.X
	}
	switch {
	case side.Top:
		sizeVec.Y = -delta.Y
	case side.Bottom:
		sizeVec.Y = delta.Y
	}

	var out []action.RoomAction
	for s := range sel {
		switch t := s.(type) {
		case EntityBody:
			e, ok := room.Entity(t.ID, t.Trigger)
			if !ok {
				continue
			}
			e = e.Clone()
			start, hasStart := refSizes[s]
			if !hasStart {
				start = levelmap.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
			}
			minW, minH := 0, 0
			if minSize != nil {
				minW, minH = minSize(e.Type)
			}
			e.X, e.Y = start.X+posVec.X, start.Y+posVec.Y
			e.Width = max(start.W+sizeVec.X, minW)
			e.Height = max(start.H+sizeVec.Y, minH)
			out = append(out, action.EntityUpdate{Entity: e, Trigger: t.Trigger})
		case Decal:
			d, ok := room.Decal(t.ID, t.FG)
			if !ok {
				continue
			}
			d = d.Clone()
			start, hasStart := refSizes[s]
			if !hasStart {
				start = decalRect(d, atlas)
			}
			newRect := levelmap.Rect{X: start.X + posVec.X, Y: start.Y + posVec.Y, W: start.W + sizeVec.X, H: start.H + sizeVec.Y}
			texW, texH := 16, 16
			if atlas != nil {
				if size, ok := atlas.Dimensions(DecalTextureKey(d.Texture)); ok {
					texW, texH = size.W, size.H
				}
			}
			d.X = float32(newRect.X + newRect.W/2)
			d.Y = float32(newRect.Y + newRect.H/2)
			if texW != 0 {
				d.ScaleX = float32(newRect.W) / float32(texW)
			}
			if texH != 0 {
				d.ScaleY = float32(newRect.H) / float32(texH)
			}
			out = append(out, action.DecalUpdate{FG: t.FG, Decal: d})
		}
	}
	return out
}
