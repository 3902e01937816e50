package autotile

import "github.com/levelsmith/levelsmith/pkg/idgen"

// TileCoord is a sub-tile coordinate within a tileset's atlas texture.
type TileCoord struct {
	X, Y uint32
}

// Slot is a (possibly empty) list of candidate tile coordinates; one
// candidate is chosen deterministically per sampled point.
type Slot []TileCoord

// TileFunc samples the tile character at (x, y) in tile space. ok is false
// only when the point lies entirely outside the sampled surface; per the
// reference engine, that counts as filled, distinct from an in-bounds but
// empty cell ('0'), which does not.
type TileFunc func(x, y int32) (ch byte, ok bool)

// Tileset holds the edge/center/padding candidate tables and ignore rules
// for one tile character.
type Tileset struct {
	ID         byte
	Texture    string
	Edges      [256]Slot
	Padding    Slot
	Center     Slot
	Ignores    map[byte]bool
	IgnoresAll bool
}

// Select computes the 8-bit neighborhood mask at (x, y) and returns the
// chosen candidate tile, or ok=false if no candidate exists for that mask.
func (ts *Tileset) Select(x, y int32, tf TileFunc) (TileCoord, bool) {
	mask := 0
	if ts.filled(tf, x-1, y-1) {
		mask |= 1 << 0 // NW
	}
	if ts.filled(tf, x, y-1) {
		mask |= 1 << 1 // N
	}
	if ts.filled(tf, x+1, y-1) {
		mask |= 1 << 2 // NE
	}
	if ts.filled(tf, x-1, y) {
		mask |= 1 << 3 // W
	}
	if ts.filled(tf, x+1, y) {
		mask |= 1 << 4 // E
	}
	if ts.filled(tf, x-1, y+1) {
		mask |= 1 << 5 // SW
	}
	if ts.filled(tf, x, y+1) {
		mask |= 1 << 6 // S
	}
	if ts.filled(tf, x+1, y+1) {
		mask |= 1 << 7 // SE
	}

	var slot Slot
	if mask == 0xff {
		if ts.filled(tf, x-2, y) && ts.filled(tf, x+2, y) && ts.filled(tf, x, y-2) && ts.filled(tf, x, y+2) {
			slot = ts.Center
		} else {
			slot = ts.Padding
		}
	} else {
		slot = ts.Edges[mask]
	}

	if len(slot) == 0 {
		return TileCoord{}, false
	}
	h := idgen.StableHash(x, y)
	return slot[h%uint64(len(slot))], true
}

// filled implements the "filled" rule: a sampled neighbor counts as filled
// iff it equals this tileset's id, or (it is not '0' and this tileset does
// not ignore it). A point outside the sampled surface always counts as
// filled.
func (ts *Tileset) filled(tf TileFunc, x, y int32) bool {
	ch, ok := tf(x, y)
	if !ok {
		return true
	}
	if ch == ts.ID {
		return true
	}
	if ch == '0' {
		return false
	}
	return !ts.ignoresChar(ch)
}

func (ts *Tileset) ignoresChar(ch byte) bool {
	return ts.IgnoresAll || ts.Ignores[ch]
}

// clone returns a value copy of ts suitable as the starting point for a
// tileset that inherits from it via the config's `copy` attribute. Slices
// are shared with the original until a <set> entry overrides them, and the
// Ignores set is copied, matching the reference loader's "copy then
// override" semantics without mutating the source tileset.
func (ts *Tileset) clone() *Tileset {
	out := *ts
	if ts.Ignores != nil {
		out.Ignores = make(map[byte]bool, len(ts.Ignores))
		for ch, ignored := range ts.Ignores {
			out.Ignores[ch] = ignored
		}
	}
	return &out
}
