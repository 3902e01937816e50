package action

import (
	"strconv"

	"github.com/levelsmith/levelsmith/pkg/binel"
	"github.com/levelsmith/levelsmith/pkg/idgen"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

func idFmt(id int32) string { return strconv.FormatInt(int64(id), 10) }

// RoomAction is one mutation scoped to a single room, per spec.md §4.6's
// RoomAction variant list. Each concrete type's apply method returns its
// own precise inverse.
type RoomAction interface {
	isRoomAction()
	apply(room *levelmap.Room) (RoomAction, error)
}

// RoomMove repositions and/or resizes the room. If the size changes, the
// three tile grids are resized (content outside the new bounds is
// discarded), mirroring the reference engine's CelesteMapLevel
// resize-on-bounds-change behavior. The render cache is left to the session.
type RoomMove struct {
	Bounds levelmap.Rect
}

func (RoomMove) isRoomAction() {}

func (a RoomMove) apply(room *levelmap.Room) (RoomAction, error) {
	if room.Bounds.W != a.Bounds.W || room.Bounds.H != a.Bounds.H {
		w, h := a.Bounds.TileSize()
		room.Solids = room.Solids.Resize(w, h, '0')
		room.Bg = room.Bg.Resize(w, h, '0')
		room.ObjectTiles = room.ObjectTiles.Resize(w, h, -1)
	}
	room.Bounds, a.Bounds = a.Bounds, room.Bounds
	return RoomMove{Bounds: a.Bounds}, nil
}

// RoomMiscFields carries the "set" options for RoomMiscUpdate: a nil pointer
// leaves the corresponding room field untouched, per spec.md §4.6's "bulk
// update misc scalar properties... with per-field set options".
type RoomMiscFields struct {
	Name                  *string
	Music                 *string
	Ambience              *string
	CameraOffsetX         *int
	CameraOffsetY         *int
	DashesOverride        *int
	Dark                  *bool
	Underwater            *bool
	Space                 *bool
	Whisper               *bool
	DisableDownTransition *bool

	// Misc sets (non-nil value) or clears (nil value) an entry of the
	// room's unpromoted-attribute bag.
	Misc map[string]*binel.AttrValue
}

// RoomMiscUpdate bulk-updates a room's scalar presentation properties.
type RoomMiscUpdate struct {
	Update RoomMiscFields
}

func (RoomMiscUpdate) isRoomAction() {}

func swapPtr[T any](cur *T, incoming *T) *T {
	if incoming == nil {
		return nil
	}
	prev := *cur
	*cur = *incoming
	return &prev
}

func (a RoomMiscUpdate) apply(room *levelmap.Room) (RoomAction, error) {
	u := a.Update
	inv := RoomMiscFields{
		Name:                  swapPtr(&room.Name, u.Name),
		Music:                 swapPtr(&room.Music, u.Music),
		Ambience:              swapPtr(&room.Ambience, u.Ambience),
		CameraOffsetX:         swapPtr(&room.CameraOffsetX, u.CameraOffsetX),
		CameraOffsetY:         swapPtr(&room.CameraOffsetY, u.CameraOffsetY),
		DashesOverride:        swapPtr(&room.DashesOverride, u.DashesOverride),
		Dark:                  swapPtr(&room.Dark, u.Dark),
		Underwater:            swapPtr(&room.Underwater, u.Underwater),
		Space:                 swapPtr(&room.Space, u.Space),
		Whisper:               swapPtr(&room.Whisper, u.Whisper),
		DisableDownTransition: swapPtr(&room.DisableDownTransition, u.DisableDownTransition),
	}
	if len(u.Misc) > 0 {
		if room.Misc == nil {
			room.Misc = map[string]binel.AttrValue{}
		}
		inv.Misc = make(map[string]*binel.AttrValue, len(u.Misc))
		for k, v := range u.Misc {
			if old, ok := room.Misc[k]; ok {
				inv.Misc[k] = &old
			} else {
				inv.Misc[k] = nil
			}
			if v == nil {
				delete(room.Misc, k)
			} else {
				room.Misc[k] = *v
			}
		}
	}
	return RoomMiscUpdate{Update: inv}, nil
}

// TilePaint overlays data onto the fg (solids) or bg tile grid at offset,
// per spec.md §4.6's paint semantics: '\0' cells are "don't touch".
type TilePaint struct {
	FG     bool
	Offset levelmap.Point
	Data   levelmap.TileGrid[byte]
}

func (TilePaint) isRoomAction() {}

func (a TilePaint) apply(room *levelmap.Room) (RoomAction, error) {
	target := &room.Bg
	if a.FG {
		target = &room.Solids
	}
	applyTiles(a.Offset, a.Data, *target, '\x00')
	return TilePaint{FG: a.FG, Offset: a.Offset, Data: a.Data}, nil
}

// ObjectTilePaint is the object-tile-grid analogue of TilePaint, using -2 as
// its "don't touch" sentinel.
type ObjectTilePaint struct {
	Offset levelmap.Point
	Data   levelmap.TileGrid[int32]
}

func (ObjectTilePaint) isRoomAction() {}

func (a ObjectTilePaint) apply(room *levelmap.Room) (RoomAction, error) {
	applyTiles(a.Offset, a.Data, room.ObjectTiles, -2)
	return ObjectTilePaint{Offset: a.Offset, Data: a.Data}, nil
}

// entitySlice returns a pointer to the room's entity or trigger slice, so
// callers can splice it in place.
func entitySlice(room *levelmap.Room, trigger bool) *[]*levelmap.Entity {
	if trigger {
		return &room.Triggers
	}
	return &room.Entities
}

func entityKind(trigger bool) string {
	if trigger {
		return "trigger"
	}
	return "entity"
}

// EntityAdd adds an entity or trigger to the room. If GenID is set, the
// entity's id is overwritten with a freshly allocated one (the absoluteness
// rule); otherwise the supplied id must not already be in use.
type EntityAdd struct {
	Entity  *levelmap.Entity
	Trigger bool
	GenID   bool
}

func (EntityAdd) isRoomAction() {}

func (a EntityAdd) apply(room *levelmap.Room) (RoomAction, error) {
	entity := a.Entity
	if a.GenID {
		entity.ID = room.NextID(a.Trigger)
	} else if _, exists := room.Entity(entity.ID, a.Trigger); exists {
		return nil, &DuplicateError{Kind: entityKind(a.Trigger), ID: idFmt(entity.ID)}
	}
	slice := entitySlice(room, a.Trigger)
	*slice = append(*slice, entity)
	return EntityRemove{ID: entity.ID, Trigger: a.Trigger}, nil
}

// EntityUpdate replaces an existing entity/trigger's full contents.
type EntityUpdate struct {
	Entity  *levelmap.Entity
	Trigger bool
}

func (EntityUpdate) isRoomAction() {}

func (a EntityUpdate) apply(room *levelmap.Room) (RoomAction, error) {
	slice := entitySlice(room, a.Trigger)
	idx := room.EntityIndex(a.Entity.ID, a.Trigger)
	if idx < 0 {
		return nil, &NotFoundError{Kind: entityKind(a.Trigger), ID: idFmt(a.Entity.ID)}
	}
	old := (*slice)[idx]
	(*slice)[idx] = a.Entity
	return EntityUpdate{Entity: old, Trigger: a.Trigger}, nil
}

// EntityRemove removes an entity/trigger by id. Its inverse preserves the
// exact removed id (GenID: false) rather than re-minting one, so undo
// restores the model bit-for-bit per spec.md §4.6's contract.
type EntityRemove struct {
	ID      int32
	Trigger bool
}

func (EntityRemove) isRoomAction() {}

func (a EntityRemove) apply(room *levelmap.Room) (RoomAction, error) {
	slice := entitySlice(room, a.Trigger)
	idx := room.EntityIndex(a.ID, a.Trigger)
	if idx < 0 {
		return nil, &NotFoundError{Kind: entityKind(a.Trigger), ID: idFmt(a.ID)}
	}
	removed := (*slice)[idx]
	*slice = append((*slice)[:idx], (*slice)[idx+1:]...)
	return EntityAdd{Entity: removed, Trigger: a.Trigger, GenID: false}, nil
}

func decalSlice(room *levelmap.Room, fg bool) *[]*levelmap.Decal {
	if fg {
		return &room.FgDecals
	}
	return &room.BgDecals
}

// DecalAdd adds a decal to the fg or bg decal layer, minting a fresh uuid
// when GenID is set.
type DecalAdd struct {
	FG    bool
	Decal *levelmap.Decal
	GenID bool
}

func (DecalAdd) isRoomAction() {}

func (a DecalAdd) apply(room *levelmap.Room) (RoomAction, error) {
	decal := a.Decal
	if a.GenID {
		decal.ID = idgen.NewGenerator().Next()
	} else if _, exists := room.Decal(decal.ID, a.FG); exists {
		return nil, &DuplicateError{Kind: "decal", ID: decal.ID.String()}
	}
	slice := decalSlice(room, a.FG)
	*slice = append(*slice, decal)
	return DecalRemove{FG: a.FG, ID: decal.ID}, nil
}

// DecalUpdate replaces an existing decal's full contents.
type DecalUpdate struct {
	FG    bool
	Decal *levelmap.Decal
}

func (DecalUpdate) isRoomAction() {}

func (a DecalUpdate) apply(room *levelmap.Room) (RoomAction, error) {
	slice := decalSlice(room, a.FG)
	for i, d := range *slice {
		if d.ID == a.Decal.ID {
			old := (*slice)[i]
			(*slice)[i] = a.Decal
			return DecalUpdate{FG: a.FG, Decal: old}, nil
		}
	}
	return nil, &NotFoundError{Kind: "decal", ID: a.Decal.ID.String()}
}

// DecalRemove removes a decal from the fg or bg layer by id.
type DecalRemove struct {
	FG bool
	ID idgen.UUID
}

func (DecalRemove) isRoomAction() {}

func (a DecalRemove) apply(room *levelmap.Room) (RoomAction, error) {
	slice := decalSlice(room, a.FG)
	for i, d := range *slice {
		if d.ID == a.ID {
			removed := (*slice)[i]
			*slice = append((*slice)[:i], (*slice)[i+1:]...)
			return DecalAdd{FG: a.FG, Decal: removed, GenID: false}, nil
		}
	}
	return nil, &NotFoundError{Kind: "decal", ID: a.ID.String()}
}

// SetTileFloat sets (non-nil Float) or clears (nil) the room's fg or bg
// lifted tile region, per spec.md §4.6's "set or clear the per-room float
// for each layer".
type SetTileFloat struct {
	FG    bool
	Float *levelmap.Float
}

func (SetTileFloat) isRoomAction() {}

func (a SetTileFloat) apply(room *levelmap.Room) (RoomAction, error) {
	target := &room.BgFloat
	if a.FG {
		target = &room.FgFloat
	}
	prev := *target
	*target = a.Float
	return SetTileFloat{FG: a.FG, Float: prev}, nil
}

// SetObjectFloat is the object-tile-layer analogue of SetTileFloat.
type SetObjectFloat struct {
	Float *levelmap.ObjectFloat
}

func (SetObjectFloat) isRoomAction() {}

func (a SetObjectFloat) apply(room *levelmap.Room) (RoomAction, error) {
	prev := room.ObjFloat
	room.ObjFloat = a.Float
	return SetObjectFloat{Float: prev}, nil
}
