package selection

import (
	"gopkg.in/yaml.v3"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/render"
)

// clipboardItem is one member of a ClipboardBundle: exactly one of its
// fields is set, mirroring the reference engine's AppInRoomSelectable enum
// (Go has no sum-type literal, so this is a struct of optional fields
// rather than an interface — every member is plain data with no apply
// behavior, unlike AppSelection/RoomAction, so the extra indirection of an
// interface buys nothing here).
type clipboardItem struct {
	Entity  *levelmap.Entity `yaml:"entity,omitempty"`
	Trigger bool             `yaml:"trigger,omitempty"`

	Decal   *levelmap.Decal `yaml:"decal,omitempty"`
	DecalFG bool            `yaml:"decal_fg,omitempty"`

	FgTiles *floatPayload `yaml:"fg_tiles,omitempty"`
	BgTiles *floatPayload `yaml:"bg_tiles,omitempty"`
	ObjTiles *objFloatPayload `yaml:"obj_tiles,omitempty"`
}

// floatPayload is the YAML wire shape of a lifted fg/bg tile region.
type floatPayload struct {
	OriginX, OriginY int
	Stride           int
	Tiles            string
}

// objFloatPayload is the object-tile-layer analogue of floatPayload.
type objFloatPayload struct {
	OriginX, OriginY int
	Stride           int
	Tiles            []int32
}

func toFloatPayload(origin levelmap.Point, grid levelmap.TileGrid[byte]) *floatPayload {
	return &floatPayload{OriginX: origin.X, OriginY: origin.Y, Stride: grid.Stride, Tiles: string(grid.Tiles)}
}

func (p *floatPayload) toFloat() (levelmap.Point, levelmap.TileGrid[byte]) {
	return levelmap.Point{X: p.OriginX, Y: p.OriginY}, levelmap.TileGrid[byte]{Tiles: []byte(p.Tiles), Stride: p.Stride}
}

func toObjFloatPayload(origin levelmap.Point, grid levelmap.TileGrid[int32]) *objFloatPayload {
	return &objFloatPayload{OriginX: origin.X, OriginY: origin.Y, Stride: grid.Stride, Tiles: append([]int32(nil), grid.Tiles...)}
}

func (p *objFloatPayload) toFloat() (levelmap.Point, levelmap.TileGrid[int32]) {
	return levelmap.Point{X: p.OriginX, Y: p.OriginY}, levelmap.TileGrid[int32]{Tiles: p.Tiles, Stride: p.Stride}
}

// ClipboardBundle is the clipboard's wire format: an ordered list of
// copied in-room items, serialized as YAML, per spec.md §4.7's "general-
// purpose structured-text format the core treats opaquely".
type ClipboardBundle struct {
	Items []clipboardItem `yaml:"items"`
}

// Marshal renders b as the YAML text that would be placed on the system
// clipboard.
func (b ClipboardBundle) Marshal() (string, error) {
	out, err := yaml.Marshal(b)
	return string(out), err
}

// ParseClipboardBundle parses the YAML text previously produced by
// Marshal. An error means the clipboard holds something this editor didn't
// put there (or nothing at all); callers treat that as "nothing to
// paste", not a fatal error.
func ParseClipboardBundle(data string) (ClipboardBundle, error) {
	var b ClipboardBundle
	err := yaml.Unmarshal([]byte(data), &b)
	return b, err
}

// Copy builds a ClipboardBundle from sel's entities, triggers, decals, and
// floated tile regions. Tile-kind selections that are not yet floating are
// first lifted (the returned actions must be applied before room's float
// fields reflect this call's lift).
func Copy(room *levelmap.Room, sel Set) (ClipboardBundle, []action.RoomAction) {
	lift, consumed := Lift(room, sel)
	working := sel.Clone()
	for s := range consumed {
		working.Remove(s)
	}

	var bundle ClipboardBundle
	for s := range working {
		switch t := s.(type) {
		case EntityBody:
			if e, ok := room.Entity(t.ID, t.Trigger); ok {
				bundle.Items = append(bundle.Items, clipboardItem{Entity: e.Clone(), Trigger: t.Trigger})
			}
		case Decal:
			if d, ok := room.Decal(t.ID, t.FG); ok {
				bundle.Items = append(bundle.Items, clipboardItem{Decal: d.Clone(), DecalFG: t.FG})
			}
		}
	}
	// Floats reflect the state AFTER lift is applied: the caller applies
	// `lift` before committing to the returned bundle. Prefer the
	// lift-produced value for a layer (it already folds in any pre-existing
	// float); only fall back to the room's current float when this call's
	// lift didn't touch that layer.
	fgDone, bgDone, objDone := false, false, false
	for _, a := range lift {
		switch act := a.(type) {
		case action.SetTileFloat:
			if act.Float == nil {
				continue
			}
			if act.FG {
				bundle.Items = append(bundle.Items, clipboardItem{FgTiles: toFloatPayload(act.Float.Origin, act.Float.Grid)})
				fgDone = true
			} else {
				bundle.Items = append(bundle.Items, clipboardItem{BgTiles: toFloatPayload(act.Float.Origin, act.Float.Grid)})
				bgDone = true
			}
		case action.SetObjectFloat:
			if act.Float != nil {
				bundle.Items = append(bundle.Items, clipboardItem{ObjTiles: toObjFloatPayload(act.Float.Origin, act.Float.Grid)})
				objDone = true
			}
		}
	}
	if !fgDone && room.FgFloat != nil && working.Contains(FgTileFloat{}) {
		bundle.Items = append(bundle.Items, clipboardItem{FgTiles: toFloatPayload(room.FgFloat.Origin, room.FgFloat.Grid)})
	}
	if !bgDone && room.BgFloat != nil && working.Contains(BgTileFloat{}) {
		bundle.Items = append(bundle.Items, clipboardItem{BgTiles: toFloatPayload(room.BgFloat.Origin, room.BgFloat.Grid)})
	}
	if !objDone && room.ObjFloat != nil && working.Contains(ObjTileFloat{}) {
		bundle.Items = append(bundle.Items, clipboardItem{ObjTiles: toObjFloatPayload(room.ObjFloat.Origin, room.ObjFloat.Grid)})
	}
	return bundle, lift
}

// Paste translates b by the vector from its bounding box's tile-space
// center to room's viewport-independent center (room.Bounds' own center,
// snapped to tile), per spec.md §4.7, and returns the RoomActions that add
// the translated entities/decals/floats. Every added entity and decal is
// assigned a fresh id (GenID: true), since pasted copies are new objects.
func Paste(room *levelmap.Room, b ClipboardBundle, atlas render.SpriteAtlas) []action.RoomAction {
	if len(b.Items) == 0 {
		return nil
	}
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	maxX, maxY := -minX-1, -minY-1
	extend := func(x0, y0, x1, y1 int) {
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	for _, it := range b.Items {
		switch {
		case it.FgTiles != nil:
			extend(it.FgTiles.OriginX, it.FgTiles.OriginY, it.FgTiles.OriginX+it.FgTiles.Stride, it.FgTiles.OriginY+len(it.FgTiles.Tiles)/max(it.FgTiles.Stride, 1))
		case it.BgTiles != nil:
			extend(it.BgTiles.OriginX, it.BgTiles.OriginY, it.BgTiles.OriginX+it.BgTiles.Stride, it.BgTiles.OriginY+len(it.BgTiles.Tiles)/max(it.BgTiles.Stride, 1))
		case it.ObjTiles != nil:
			extend(it.ObjTiles.OriginX, it.ObjTiles.OriginY, it.ObjTiles.OriginX+it.ObjTiles.Stride, it.ObjTiles.OriginY+len(it.ObjTiles.Tiles)/max(it.ObjTiles.Stride, 1))
		case it.Entity != nil:
			b := it.Entity.Bounds()
			extend(b.X/8, b.Y/8, (b.X+b.W)/8, (b.Y+b.H)/8)
		case it.Decal != nil:
			r := decalRect(it.Decal, atlas)
			extend(r.X/8, r.Y/8, (r.X+r.W)/8, (r.Y+r.H)/8)
		}
	}
	center := levelmap.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	w, h := room.Bounds.TileSize()
	roomCenter := levelmap.Point{X: w / 2, Y: h / 2}
	offsetTile := levelmap.Point{X: roomCenter.X - center.X, Y: roomCenter.Y - center.Y}
	offsetPx := levelmap.Point{X: offsetTile.X * 8, Y: offsetTile.Y * 8}

	var out []action.RoomAction
	for _, it := range b.Items {
		switch {
		case it.Entity != nil:
			e := it.Entity.Clone()
			e.X += offsetPx.X
			e.Y += offsetPx.Y
			for i, n := range e.Nodes {
				e.Nodes[i] = levelmap.Point{X: n.X + offsetPx.X, Y: n.Y + offsetPx.Y}
			}
			out = append(out, action.EntityAdd{Entity: e, Trigger: it.Trigger, GenID: true})
		case it.Decal != nil:
			d := it.Decal.Clone()
			d.X += float32(offsetPx.X)
			d.Y += float32(offsetPx.Y)
			out = append(out, action.DecalAdd{FG: it.DecalFG, Decal: d, GenID: true})
		case it.FgTiles != nil:
			origin, grid := it.FgTiles.toFloat()
			out = append(out, action.SetTileFloat{FG: true, Float: &levelmap.Float{
				Origin: levelmap.Point{X: origin.X + offsetTile.X, Y: origin.Y + offsetTile.Y}, Grid: grid,
			}})
		case it.BgTiles != nil:
			origin, grid := it.BgTiles.toFloat()
			out = append(out, action.SetTileFloat{FG: false, Float: &levelmap.Float{
				Origin: levelmap.Point{X: origin.X + offsetTile.X, Y: origin.Y + offsetTile.Y}, Grid: grid,
			}})
		case it.ObjTiles != nil:
			origin, grid := it.ObjTiles.toFloat()
			out = append(out, action.SetObjectFloat{Float: &levelmap.ObjectFloat{
				Origin: levelmap.Point{X: origin.X + offsetTile.X, Y: origin.Y + offsetTile.Y}, Grid: grid,
			}})
		}
	}
	return out
}
