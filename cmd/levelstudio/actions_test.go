package main

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

func TestParseActionFile(t *testing.T) {
	doc := []byte(`
actions:
  - room: 0
    entity_add:
      type: spring
      x: 10
      y: 20
      width: 8
      height: 8
      attributes:
        flipped: true
  - room_add:
      name: b-00
      width: 320
      height: 184
  - room: 0
    room_delete: true
`)
	specs, err := parseActionFile(doc)
	if err != nil {
		t.Fatalf("parseActionFile: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("len(specs) = %d, want 3", len(specs))
	}
	if specs[0].EntityAdd == nil || specs[0].EntityAdd.Type != "spring" {
		t.Fatalf("specs[0].EntityAdd = %+v", specs[0].EntityAdd)
	}
	if specs[1].RoomAdd == nil || specs[1].RoomAdd.Name != "b-00" {
		t.Fatalf("specs[1].RoomAdd = %+v", specs[1].RoomAdd)
	}
	if !specs[2].RoomDelete || specs[2].Room == nil || *specs[2].Room != 0 {
		t.Fatalf("specs[2] = %+v", specs[2])
	}
}

func TestToMapActionEntityAdd(t *testing.T) {
	room := 0
	spec := actionSpec{
		Room: &room,
		EntityAdd: &entityAddSpec{
			Type: "spring", X: 10, Y: 20, Width: 8, Height: 8,
			Attributes: map[string]interface{}{"flipped": true, "count": 3, "ratio": 1.5, "name": "x"},
		},
	}
	act, err := toMapAction(spec)
	if err != nil {
		t.Fatalf("toMapAction: %v", err)
	}
	evt, ok := act.(action.RoomEvent)
	if !ok || evt.Idx != 0 {
		t.Fatalf("act = %#v, want a RoomEvent addressed at room 0", act)
	}
	add, ok := evt.Event.(action.EntityAdd)
	if !ok || add.Entity.Type != "spring" || !add.GenID {
		t.Fatalf("evt.Event = %#v", evt.Event)
	}
	if len(add.Entity.Attributes) != 4 {
		t.Fatalf("len(Attributes) = %d, want 4", len(add.Entity.Attributes))
	}
}

func TestToMapActionRequiresRoomForRoomScopedActions(t *testing.T) {
	spec := actionSpec{EntityRemove: &entityRemoveSpec{ID: 1}}
	if _, err := toMapAction(spec); err == nil {
		t.Fatalf("expected an error when room is nil for a room-scoped action")
	}
}

func TestToMapActionRoomAdd(t *testing.T) {
	spec := actionSpec{RoomAdd: &roomAddSpec{Name: "a-01", Width: 320, Height: 184}}
	act, err := toMapAction(spec)
	if err != nil {
		t.Fatalf("toMapAction: %v", err)
	}
	add, ok := act.(action.RoomAdd)
	if !ok || add.Room.Name != "a-01" || add.Room.Bounds.W != 320 {
		t.Fatalf("act = %#v", act)
	}
}

func TestParseUUIDRoundTrips(t *testing.T) {
	id, err := parseUUID("0102030405060708090a0b0c0d0e0f10")
	if err != nil {
		t.Fatalf("parseUUID: %v", err)
	}
	if id.String() != "0102030405060708090a0b0c0d0e0f10" {
		t.Fatalf("round trip = %s", id.String())
	}
}

func TestParseUUIDRejectsWrongLength(t *testing.T) {
	if _, err := parseUUID("abc"); err == nil {
		t.Fatalf("expected an error for a too-short id")
	}
}

func TestApplyActionFileAppliesInOrder(t *testing.T) {
	m := levelmap.NewMap("Celeste/1-Forsaken/0")
	m.Rooms = append(m.Rooms, levelmap.NewRoom("a-00", levelmap.Rect{W: 40, H: 24}))

	doc := []byte(`
actions:
  - room: 0
    entity_add:
      type: spring
      x: 0
      y: 0
      width: 8
      height: 8
  - room: 0
    entity_add:
      type: gem
      x: 8
      y: 0
      width: 8
      height: 8
`)
	specs, err := parseActionFile(doc)
	if err != nil {
		t.Fatalf("parseActionFile: %v", err)
	}
	for _, spec := range specs {
		act, err := toMapAction(spec)
		if err != nil {
			t.Fatalf("toMapAction: %v", err)
		}
		if _, err := action.Apply(m, act); err != nil {
			t.Fatalf("action.Apply: %v", err)
		}
	}
	if len(m.Rooms[0].Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(m.Rooms[0].Entities))
	}
	if m.Rooms[0].Entities[0].Type != "spring" || m.Rooms[0].Entities[1].Type != "gem" {
		t.Fatalf("entity order = [%s %s], want [spring gem]", m.Rooms[0].Entities[0].Type, m.Rooms[0].Entities[1].Type)
	}
}
