package selection

import (
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/render"
)

// Layer restricts a hit-test to one kind of room content, or All of them.
type Layer int

const (
	LayerAll Layer = iota
	LayerFgTiles
	LayerBgTiles
	LayerObjectTiles
	LayerEntities
	LayerTriggers
	LayerFgDecals
	LayerBgDecals
)

func tileRectCropped(rect levelmap.Rect, room *levelmap.Room) (levelmap.Rect, bool) {
	w, h := room.Bounds.TileSize()
	bounds := levelmap.Rect{X: 0, Y: 0, W: w * 8, H: h * 8}
	if !rect.Intersects(bounds) {
		return levelmap.Rect{}, false
	}
	x0, y0 := max(rect.X, bounds.X), max(rect.Y, bounds.Y)
	x1, y1 := min(rect.X+rect.W, bounds.X+bounds.W), min(rect.Y+rect.H, bounds.Y+bounds.H)
	return levelmap.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// RectSelectables returns every selectable of the given layer(s) whose
// RectsOf intersects rect (room space).
func RectSelectables(room *levelmap.Room, layer Layer, rect levelmap.Rect, atlas render.SpriteAtlas) Set {
	out := Set{}
	cropped, hasTiles := tileRectCropped(rect, room)

	addIfHit := func(sel AppSelection) {
		if intersectsAny(RectsOf(sel, room, atlas), rect) {
			out.Add(sel)
		}
	}

	if layer == LayerAll || layer == LayerFgDecals {
		for i := len(room.FgDecals) - 1; i >= 0; i-- {
			addIfHit(Decal{ID: room.FgDecals[i].ID, FG: true})
		}
	}
	if hasTiles && (layer == LayerAll || layer == LayerObjectTiles) {
		forEachTile(cropped, func(tx, ty int) {
			if room.ObjectTiles.Get(tx, ty, -1) != -1 {
				out.Add(ObjectTile{P: levelmap.Point{X: tx, Y: ty}})
			}
		})
	}
	if hasTiles && (layer == LayerAll || layer == LayerFgTiles) {
		forEachTile(cropped, func(tx, ty int) {
			if room.Solids.Get(tx, ty, '0') != '0' {
				out.Add(FgTile{P: levelmap.Point{X: tx, Y: ty}})
			}
		})
	}
	if layer == LayerAll || layer == LayerEntities {
		for i := len(room.Entities) - 1; i >= 0; i-- {
			e := room.Entities[i]
			for idx := range e.Nodes {
				addIfHit(EntityNode{ID: e.ID, Index: idx, Trigger: false})
			}
			addIfHit(EntityBody{ID: e.ID, Trigger: false})
		}
	}
	if layer == LayerAll || layer == LayerTriggers {
		for i := len(room.Triggers) - 1; i >= 0; i-- {
			e := room.Triggers[i]
			for idx := range e.Nodes {
				addIfHit(EntityNode{ID: e.ID, Index: idx, Trigger: true})
			}
			addIfHit(EntityBody{ID: e.ID, Trigger: true})
		}
	}
	if layer == LayerAll || layer == LayerBgDecals {
		for i := len(room.BgDecals) - 1; i >= 0; i-- {
			addIfHit(Decal{ID: room.BgDecals[i].ID, FG: false})
		}
	}
	if hasTiles && (layer == LayerAll || layer == LayerBgTiles) {
		forEachTile(cropped, func(tx, ty int) {
			if room.Bg.Get(tx, ty, '0') != '0' {
				out.Add(BgTile{P: levelmap.Point{X: tx, Y: ty}})
			}
		})
	}
	if layer == LayerAll {
		addIfHit(FgTileFloat{})
		addIfHit(BgTileFloat{})
		addIfHit(ObjTileFloat{})
	}
	return out
}

func forEachTile(cropped levelmap.Rect, fn func(tx, ty int)) {
	for py := cropped.Y; py < cropped.Y+cropped.H; py += 8 {
		for px := cropped.X; px < cropped.X+cropped.W; px += 8 {
			fn(px/8, py/8)
		}
	}
}

// PointSelectable returns the topmost selectable covering pt (room space),
// scanning layers in the same front-to-back order RectSelectables does.
func PointSelectable(room *levelmap.Room, layer Layer, pt levelmap.Point, atlas render.SpriteAtlas) (AppSelection, bool) {
	hit := RectSelectables(room, layer, levelmap.Rect{X: pt.X, Y: pt.Y, W: 1, H: 1}, atlas)
	for _, ordered := range []Layer{LayerFgDecals, LayerObjectTiles, LayerFgTiles, LayerEntities, LayerTriggers, LayerBgDecals, LayerBgTiles} {
		if layer != LayerAll && layer != ordered {
			continue
		}
		for sel := range hit {
			if selLayer(sel) == ordered {
				return sel, true
			}
		}
	}
	return nil, false
}

func selLayer(sel AppSelection) Layer {
	switch s := sel.(type) {
	case FgTile:
		return LayerFgTiles
	case BgTile:
		return LayerBgTiles
	case ObjectTile:
		return LayerObjectTiles
	case EntityBody:
		if s.Trigger {
			return LayerTriggers
		}
		return LayerEntities
	case EntityNode:
		if s.Trigger {
			return LayerTriggers
		}
		return LayerEntities
	case Decal:
		if s.FG {
			return LayerFgDecals
		}
		return LayerBgDecals
	default:
		return LayerAll
	}
}
