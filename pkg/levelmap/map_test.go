package levelmap

import (
	"fmt"
	"testing"
)

func TestMapNewRoomNameAvoidsCollisions(t *testing.T) {
	m := NewMap("Pack/1")
	m.Rooms = append(m.Rooms, &Room{Name: "a-00"}, &Room{Name: "a-01"})
	got := m.NewRoomName()
	if got != "a-02" {
		t.Fatalf("NewRoomName = %q, want a-02", got)
	}
}

func TestMapNewRoomNameFallsBackToLvlN(t *testing.T) {
	m := NewMap("Pack/1")
	for _, c := range roomNameLetters {
		for n := 0; n < 100; n++ {
			m.Rooms = append(m.Rooms, &Room{Name: fmt.Sprintf("%c-%02d", c, n)})
		}
	}
	got := m.NewRoomName()
	if got != "lvl_0" {
		t.Fatalf("NewRoomName = %q, want lvl_0", got)
	}
}

func TestMapEntityLookupAcrossRooms(t *testing.T) {
	m := NewMap("Pack/1")
	r1 := NewRoom("a-00", Rect{W: 8, H: 8})
	r2 := NewRoom("a-01", Rect{W: 8, H: 8})
	e := &Entity{ID: 7, Type: "spring"}
	r2.Entities = append(r2.Entities, e)
	m.Rooms = append(m.Rooms, r1, r2)

	room, got, ok := m.Entity(7, false)
	if !ok || got != e || room != r2 {
		t.Fatalf("Entity(7, false) = %v, %v, %v", room, got, ok)
	}
}

func TestMapNextEntityIDSharedAcrossEntitiesAndTriggers(t *testing.T) {
	m := NewMap("Pack/1")
	r := NewRoom("a-00", Rect{W: 8, H: 8})
	r.Entities = append(r.Entities, &Entity{ID: 4})
	r.Triggers = append(r.Triggers, &Entity{ID: 9})
	m.Rooms = append(m.Rooms, r)

	if got := m.NextEntityID(); got != 10 {
		t.Fatalf("NextEntityID = %d, want 10", got)
	}
}

func TestMapTileTranslatesToRoomLocalSpace(t *testing.T) {
	m := NewMap("Pack/1")
	r := NewRoom("a-00", Rect{X: 80, Y: 0, W: 16, H: 8})
	r.Solids.Set(1, 0, '3')
	m.Rooms = append(m.Rooms, r)

	got, ok := m.Tile(Point{X: 88, Y: 0}, true)
	if !ok || got != '3' {
		t.Fatalf("Tile = %q, %v, want '3', true", got, ok)
	}

	if _, ok := m.Tile(Point{X: 500, Y: 500}, true); ok {
		t.Fatalf("expected miss outside any room")
	}
}

func TestMapNextUUIDMonotone(t *testing.T) {
	m := NewMap("Pack/1")
	a := m.NextUUID()
	b := m.NextUUID()
	if a == b {
		t.Fatalf("expected distinct uuids")
	}
	if b.String() <= a.String() {
		t.Fatalf("expected %s to follow %s", b, a)
	}
}
