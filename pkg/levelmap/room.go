package levelmap

import (
	"github.com/levelsmith/levelsmith/pkg/binel"
	"github.com/levelsmith/levelsmith/pkg/idgen"
)

// Room is one room of a Map: its bounds, its three tile grids, its entities,
// triggers, and decals, and a handful of scalar presentation properties.
type Room struct {
	Name   string
	Bounds Rect

	Solids      TileGrid[byte]
	Bg          TileGrid[byte]
	ObjectTiles TileGrid[int32]

	Entities []*Entity
	Triggers []*Entity

	FgDecals []*Decal
	BgDecals []*Decal

	Music     string
	Ambience  string
	CameraOffsetX, CameraOffsetY int
	DashesOverride                int // -1 means "inherit from map default"

	Dark                  bool
	Underwater            bool
	Space                 bool
	Whisper               bool
	DisableDownTransition bool

	// Misc holds any room attribute not promoted to a named field above,
	// preserved verbatim so the codec round-trips lossily-unmodeled data.
	Misc map[string]binel.AttrValue

	// FgFloat, BgFloat, and ObjFloat hold the currently lifted tile region
	// for each layer, if any, per spec.md §4.7: at most one float per
	// layer, disjoint from the grid it was lifted from.
	FgFloat  *Float
	BgFloat  *Float
	ObjFloat *ObjectFloat

	renderCacheValid bool
	// Cache is an opaque, render-package-owned value recomputed whenever
	// renderCacheValid is false. The action algebra never reads or writes
	// it directly; only InvalidateRenderCache and MarkRenderCacheValid touch
	// renderCacheValid.
	Cache any
}

// NewRoom returns an empty room sized to bounds, with fresh zero-filled tile
// grids matching spec.md §3's bounds/8 sizing invariant.
func NewRoom(name string, bounds Rect) *Room {
	w, h := bounds.TileSize()
	return &Room{
		Name:           name,
		Bounds:         bounds,
		Solids:         NewTileGrid(w, h, byte('0')),
		Bg:             NewTileGrid(w, h, byte('0')),
		ObjectTiles:    NewTileGrid(w, h, int32(-1)),
		DashesOverride: -1,
	}
}

// InvalidateRenderCache marks the room's render cache stale. It must be
// called by the session after any RoomAction completes, per spec.md §9; the
// action algebra itself never calls this.
func (r *Room) InvalidateRenderCache() {
	r.renderCacheValid = false
	r.Cache = nil
}

// RenderCacheValid reports whether the cached render data (if any) is still
// current.
func (r *Room) RenderCacheValid() bool {
	return r.renderCacheValid
}

// MarkRenderCacheValid is called by the render path once it has recomputed
// and stored a fresh Cache value.
func (r *Room) MarkRenderCacheValid() {
	r.renderCacheValid = true
}

// Tile samples the fg (if fg) or bg tile grid at point p in tile space,
// returning ('0', false) if out of bounds.
func (r *Room) Tile(p Point, fg bool) (byte, bool) {
	grid := r.Bg
	if fg {
		grid = r.Solids
	}
	if p.X < 0 || p.Y < 0 || p.X >= grid.Stride || p.Y >= grid.Height() {
		return '0', false
	}
	return grid.Get(p.X, p.Y, '0'), true
}

// entities returns the entity or trigger slice selected by trigger.
func (r *Room) entities(trigger bool) []*Entity {
	if trigger {
		return r.Triggers
	}
	return r.Entities
}

func (r *Room) setEntities(trigger bool, es []*Entity) {
	if trigger {
		r.Triggers = es
	} else {
		r.Entities = es
	}
}

// Entity looks up an entity or trigger by id.
func (r *Room) Entity(id int32, trigger bool) (*Entity, bool) {
	for _, e := range r.entities(trigger) {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// EntityIndex returns the slice index of the entity/trigger with id, or -1.
func (r *Room) EntityIndex(id int32, trigger bool) int {
	for i, e := range r.entities(trigger) {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// NextID returns max(existing id)+1, minimum 1, for the given kind
// (entities vs. triggers are numbered independently per spec.md §3).
func (r *Room) NextID(trigger bool) int32 {
	max := int32(0)
	for _, e := range r.entities(trigger) {
		if e.ID > max {
			max = e.ID
		}
	}
	if max < 1 {
		return 1
	}
	return max + 1
}

// decals returns the decal slice selected by fg.
func (r *Room) decals(fg bool) []*Decal {
	if fg {
		return r.FgDecals
	}
	return r.BgDecals
}

func (r *Room) setDecals(fg bool, ds []*Decal) {
	if fg {
		r.FgDecals = ds
	} else {
		r.BgDecals = ds
	}
}

// Decal looks up a decal by id within the fg or bg layer.
func (r *Room) Decal(id idgen.UUID, fg bool) (*Decal, bool) {
	for _, d := range r.decals(fg) {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// Float is a lifted fg or bg tile-layer region, held separately from its
// source grid while the selection engine drags it, per spec.md §4.7 and the
// GLOSSARY's "Float" entry.
type Float struct {
	Origin Point
	Grid   TileGrid[byte]
}

// ObjectFloat is the object-tile-layer analogue of Float.
type ObjectFloat struct {
	Origin Point
	Grid   TileGrid[int32]
}

// Occupant classifies what, if anything, fills a tile cell for the purposes
// of drawing the editor's occupancy overlay.
type Occupant byte

const (
	OccupantEmpty Occupant = iota
	OccupantFg
	OccupantEntity
)

// Occupancy computes a per-tile occupancy grid: a cell is OccupantFg if the
// solids layer is non-empty there, else OccupantEntity if some entity whose
// type isSolid reports true covers it, else OccupantEmpty. isSolid is
// injected so this package never needs to import the content-pack layer
// that knows which entity types block movement.
func (r *Room) Occupancy(isSolid func(entityType string) bool) TileGrid[Occupant] {
	w, h := r.Solids.Stride, r.Solids.Height()
	out := NewTileGrid(w, h, OccupantEmpty)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Solids.Get(x, y, '0') != '0' {
				out.Set(x, y, OccupantFg)
			}
		}
	}
	for _, e := range r.Entities {
		if !isSolid(e.Type) {
			continue
		}
		b := e.Bounds()
		x0, y0 := b.X/8, b.Y/8
		x1, y1 := (b.X+b.W)/8, (b.Y+b.H)/8
		for y := y0; y < y1 && y < h; y++ {
			for x := x0; x < x1 && x < w; x++ {
				if x < 0 || y < 0 {
					continue
				}
				if out.Get(x, y, OccupantEmpty) == OccupantEmpty {
					out.Set(x, y, OccupantEntity)
				}
			}
		}
	}
	return out
}
