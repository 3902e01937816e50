package levelmap

import (
	"fmt"

	"github.com/levelsmith/levelsmith/pkg/binel"
	"github.com/levelsmith/levelsmith/pkg/idgen"
)

// Map is a whole level package: its rooms, filler rectangles, stylegrounds,
// and package-level metadata.
type Map struct {
	Package  string
	Metadata map[string]binel.AttrValue

	Rooms  []*Room
	Filler []Rect

	FgStyles []*Styleground
	BgStyles []*Styleground

	DefaultDashes int

	ids  idgen.Generator
	next int32
}

// NewMap returns an empty map named pkg.
func NewMap(pkg string) *Map {
	return &Map{Package: pkg, Metadata: map[string]binel.AttrValue{}, DefaultDashes: 1, next: 1}
}

// Styles returns the foreground or background styleground list.
func (m *Map) Styles(fg bool) []*Styleground {
	if fg {
		return m.FgStyles
	}
	return m.BgStyles
}

func (m *Map) setStyles(fg bool, s []*Styleground) {
	if fg {
		m.FgStyles = s
	} else {
		m.BgStyles = s
	}
}

// Room looks up a room by name.
func (m *Map) Room(name string) (*Room, bool) {
	for _, r := range m.Rooms {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// RoomIndex returns the index of the room named name, or -1.
func (m *Map) RoomIndex(name string) int {
	for i, r := range m.Rooms {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Entity looks up an entity or trigger by id across all rooms, returning the
// owning room alongside it.
func (m *Map) Entity(id int32, trigger bool) (*Room, *Entity, bool) {
	for _, r := range m.Rooms {
		if e, ok := r.Entity(id, trigger); ok {
			return r, e, true
		}
	}
	return nil, nil, false
}

// Decal looks up a decal by id across all rooms.
func (m *Map) Decal(id idgen.UUID, fg bool) (*Room, *Decal, bool) {
	for _, r := range m.Rooms {
		if d, ok := r.Decal(id, fg); ok {
			return r, d, true
		}
	}
	return nil, nil, false
}

// Tile samples the tile grid of whichever room contains p (in map pixel
// space), translating to that room's local tile coordinates.
func (m *Map) Tile(p Point, fg bool) (byte, bool) {
	for _, r := range m.Rooms {
		if !r.Bounds.Contains(p) {
			continue
		}
		local := Point{X: (p.X - r.Bounds.X) / 8, Y: (p.Y - r.Bounds.Y) / 8}
		return r.Tile(local, fg)
	}
	return '0', false
}

// NextUUID allocates a fresh, monotone decal id.
func (m *Map) NextUUID() idgen.UUID {
	return m.ids.Next()
}

// NextEntityID allocates a fresh, map-wide entity or trigger id: the highest
// id in use across every room, plus one, minimum one. Entities and triggers
// share this single counter in the reference engine, so a trigger can never
// collide with an entity id even though they're stored separately.
func (m *Map) NextEntityID() int32 {
	max := int32(0)
	for _, r := range m.Rooms {
		for _, e := range r.Entities {
			if e.ID > max {
				max = e.ID
			}
		}
		for _, e := range r.Triggers {
			if e.ID > max {
				max = e.ID
			}
		}
	}
	if max < 1 {
		return 1
	}
	return max + 1
}

// roomNameLetters is the alphabet NewRoomName cycles through for the
// "<letter>-<NN>" auto-naming scheme; once every letter's 00..99 names are
// taken it falls back to lvl_N.
const roomNameLetters = "abcdefghijklmnopqrstuvwxyz"

// NewRoomName returns a room name not already in use, following the
// reference editor's pick_new_name policy: try "<letter>-<00..99>" for each
// letter in turn, and if every combination collides, fall back to the first
// free "lvl_<n>".
func (m *Map) NewRoomName() string {
	used := make(map[string]bool, len(m.Rooms))
	for _, r := range m.Rooms {
		used[r.Name] = true
	}
	for _, c := range roomNameLetters {
		for n := 0; n < 100; n++ {
			name := fmt.Sprintf("%c-%02d", c, n)
			if !used[name] {
				return name
			}
		}
	}
	for n := 0; ; n++ {
		name := fmt.Sprintf("lvl_%d", n)
		if !used[name] {
			return name
		}
	}
}
