package selection

import (
	"github.com/levelsmith/levelsmith/pkg/idgen"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

// AppSelection is one tagged reference a selection set can hold, per
// spec.md §4.7's variant list. Every concrete variant is a plain comparable
// struct, so AppSelection values can be used directly as Set/map keys.
type AppSelection interface {
	isAppSelection()
}

// FgTile names a single foreground tile, addressed in tile space.
type FgTile struct{ P levelmap.Point }

// BgTile names a single background tile, addressed in tile space.
type BgTile struct{ P levelmap.Point }

// ObjectTile names a single object-layer tile, addressed in tile space.
type ObjectTile struct{ P levelmap.Point }

// FgTileFloat selects the room's currently lifted foreground tile region,
// if any.
type FgTileFloat struct{}

// BgTileFloat selects the room's currently lifted background tile region.
type BgTileFloat struct{}

// ObjTileFloat selects the room's currently lifted object-tile region.
type ObjTileFloat struct{}

// EntityBody names an entity or trigger's body (as opposed to one of its
// nodes).
type EntityBody struct {
	ID      int32
	Trigger bool
}

// EntityNode names one node of an entity or trigger.
type EntityNode struct {
	ID      int32
	Index   int
	Trigger bool
}

// Decal names a decal in the fg or bg decal layer.
type Decal struct {
	ID idgen.UUID
	FG bool
}

func (FgTile) isAppSelection()      {}
func (BgTile) isAppSelection()      {}
func (ObjectTile) isAppSelection()  {}
func (FgTileFloat) isAppSelection() {}
func (BgTileFloat) isAppSelection() {}
func (ObjTileFloat) isAppSelection() {}
func (EntityBody) isAppSelection()  {}
func (EntityNode) isAppSelection()  {}
func (Decal) isAppSelection()       {}

// Set is an unordered collection of AppSelection values.
type Set map[AppSelection]struct{}

// NewSet returns a Set containing items.
func NewSet(items ...AppSelection) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts sel into s.
func (s Set) Add(sel AppSelection) { s[sel] = struct{}{} }

// Remove deletes sel from s, if present.
func (s Set) Remove(sel AppSelection) { delete(s, sel) }

// Contains reports whether sel is in s.
func (s Set) Contains(sel AppSelection) bool {
	_, ok := s[sel]
	return ok
}

// Slice returns s's members in no particular order.
func (s Set) Slice() []AppSelection {
	out := make([]AppSelection, 0, len(s))
	for sel := range s {
		out = append(out, sel)
	}
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for sel := range s {
		out[sel] = struct{}{}
	}
	return out
}

// Union returns a new Set containing every member of s and other.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for sel := range other {
		out[sel] = struct{}{}
	}
	return out
}
