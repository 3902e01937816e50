package selection

import (
	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

// growFloat returns a (possibly regrown) origin/grid pair with value
// written at pt, expanding the grid's bounding box to cover pt if pt falls
// outside the current one. Mirrors the reference engine's add_to_float.
func growFloat[T comparable](origin levelmap.Point, grid levelmap.TileGrid[T], pt levelmap.Point, value, sentinel T) (levelmap.Point, levelmap.TileGrid[T]) {
	oldW, oldH := grid.Stride, grid.Height()
	if oldW == 0 {
		origin, grid = pt, levelmap.NewTileGrid(1, 1, sentinel)
		oldW, oldH = 1, 1
	}
	minX, minY := min(origin.X, pt.X), min(origin.Y, pt.Y)
	maxX, maxY := max(origin.X+oldW, pt.X+1), max(origin.Y+oldH, pt.Y+1)
	newW, newH := maxX-minX, maxY-minY

	if newW != oldW || newH != oldH {
		grown := levelmap.NewTileGrid(newW, newH, sentinel)
		dx, dy := origin.X-minX, origin.Y-minY
		for y := 0; y < oldH; y++ {
			for x := 0; x < oldW; x++ {
				grown.Set(x+dx, y+dy, grid.Get(x, y, sentinel))
			}
		}
		origin, grid = levelmap.Point{X: minX, Y: minY}, grown
	}
	grid.Set(pt.X-origin.X, pt.Y-origin.Y, value)
	return origin, grid
}

// Lift computes the RoomActions that move every single-tile member of sel
// out of room's backing grids and into the room's fg/bg/obj float, folding
// into whichever float already exists (if any) rather than replacing it.
// It does not mutate room: callers apply the returned actions through
// pkg/action, which is what actually installs the new float and makes the
// lift undoable (its inverse clears the float and restores the tiles).
//
// consumed is the subset of sel that was lifted; callers should replace
// each of these, in their own copy of the selection, with the
// corresponding *TileFloat member.
func Lift(room *levelmap.Room, sel Set) (actions []action.RoomAction, consumed Set) {
	consumed = Set{}

	var fgOrigin, bgOrigin, objOrigin levelmap.Point
	var fgGrid, bgGrid levelmap.TileGrid[byte]
	var objGrid levelmap.TileGrid[int32]
	var fgTouched, bgTouched, objTouched bool
	if room.FgFloat != nil {
		fgOrigin, fgGrid = room.FgFloat.Origin, room.FgFloat.Grid
	}
	if room.BgFloat != nil {
		bgOrigin, bgGrid = room.BgFloat.Origin, room.BgFloat.Grid
	}
	if room.ObjFloat != nil {
		objOrigin, objGrid = room.ObjFloat.Origin, room.ObjFloat.Grid
	}

	for s := range sel {
		switch t := s.(type) {
		case FgTile:
			v := room.Solids.Get(t.P.X, t.P.Y, '0')
			fgOrigin, fgGrid = growFloat(fgOrigin, fgGrid, t.P, v, '\x00')
			fgTouched = true
			actions = append(actions, action.TilePaint{
				FG: true, Offset: t.P,
				Data: levelmap.TileGrid[byte]{Tiles: []byte{'0'}, Stride: 1},
			})
			consumed.Add(s)
		case BgTile:
			v := room.Bg.Get(t.P.X, t.P.Y, '0')
			bgOrigin, bgGrid = growFloat(bgOrigin, bgGrid, t.P, v, '\x00')
			bgTouched = true
			actions = append(actions, action.TilePaint{
				FG: false, Offset: t.P,
				Data: levelmap.TileGrid[byte]{Tiles: []byte{'0'}, Stride: 1},
			})
			consumed.Add(s)
		case ObjectTile:
			v := room.ObjectTiles.Get(t.P.X, t.P.Y, -1)
			objOrigin, objGrid = growFloat(objOrigin, objGrid, t.P, v, int32(-2))
			objTouched = true
			actions = append(actions, action.ObjectTilePaint{
				Offset: t.P,
				Data:   levelmap.TileGrid[int32]{Tiles: []int32{-1}, Stride: 1},
			})
			consumed.Add(s)
		}
	}
	if fgTouched {
		actions = append(actions, action.SetTileFloat{FG: true, Float: &levelmap.Float{Origin: fgOrigin, Grid: fgGrid}})
	}
	if bgTouched {
		actions = append(actions, action.SetTileFloat{FG: false, Float: &levelmap.Float{Origin: bgOrigin, Grid: bgGrid}})
	}
	if objTouched {
		actions = append(actions, action.SetObjectFloat{Float: &levelmap.ObjectFloat{Origin: objOrigin, Grid: objGrid}})
	}
	return actions, consumed
}

// Drop commits every currently floating layer back into the room via
// TilePaint/ObjectTilePaint RoomActions, and clears the float fields via
// SetTileFloat/SetObjectFloat. Callers apply the returned actions in order
// through pkg/action so the commit is undoable.
func Drop(room *levelmap.Room) []action.RoomAction {
	var out []action.RoomAction
	if room.FgFloat != nil {
		out = append(out,
			action.TilePaint{FG: true, Offset: room.FgFloat.Origin, Data: room.FgFloat.Grid},
			action.SetTileFloat{FG: true, Float: nil},
		)
	}
	if room.BgFloat != nil {
		out = append(out,
			action.TilePaint{FG: false, Offset: room.BgFloat.Origin, Data: room.BgFloat.Grid},
			action.SetTileFloat{FG: false, Float: nil},
		)
	}
	if room.ObjFloat != nil {
		out = append(out,
			action.ObjectTilePaint{Offset: room.ObjFloat.Origin, Data: room.ObjFloat.Grid},
			action.SetObjectFloat{Float: nil},
		)
	}
	return out
}

// NudgeFloatOrigins returns SetTileFloat/SetObjectFloat RoomActions that
// translate room's currently floating layers by delta (room-space pixels,
// rounded to whole tiles), leaving their contents untouched. Used when a
// drag or arrow-key nudge moves a selection that includes a float.
func NudgeFloatOrigins(room *levelmap.Room, delta levelmap.Point) []action.RoomAction {
	tileDelta := levelmap.Point{X: delta.X / 8, Y: delta.Y / 8}
	var out []action.RoomAction
	if room.FgFloat != nil {
		out = append(out, action.SetTileFloat{FG: true, Float: &levelmap.Float{
			Origin: levelmap.Point{X: room.FgFloat.Origin.X + tileDelta.X, Y: room.FgFloat.Origin.Y + tileDelta.Y},
			Grid:   room.FgFloat.Grid,
		}})
	}
	if room.BgFloat != nil {
		out = append(out, action.SetTileFloat{FG: false, Float: &levelmap.Float{
			Origin: levelmap.Point{X: room.BgFloat.Origin.X + tileDelta.X, Y: room.BgFloat.Origin.Y + tileDelta.Y},
			Grid:   room.BgFloat.Grid,
		}})
	}
	if room.ObjFloat != nil {
		out = append(out, action.SetObjectFloat{Float: &levelmap.ObjectFloat{
			Origin: levelmap.Point{X: room.ObjFloat.Origin.X + tileDelta.X, Y: room.ObjFloat.Origin.Y + tileDelta.Y},
			Grid:   room.ObjFloat.Grid,
		}})
	}
	return out
}
