package main

import (
	"fmt"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/binel"
	"github.com/levelsmith/levelsmith/pkg/idgen"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"gopkg.in/yaml.v3"
)

// actionFile is the top-level shape of a -actions YAML document: a flat,
// ordered batch applied one entry at a time, mirroring dungeongen's single
// generation config in spirit but addressed at a sequence of edits instead
// of a generator seed.
type actionFile struct {
	Actions []actionSpec `yaml:"actions"`
}

// actionSpec is one batch entry. Exactly one of the action fields must be
// set; Room selects the target room for the room-scoped ones and is ignored
// by RoomAdd (which picks its own slot) and required by RoomDelete.
type actionSpec struct {
	Room *int `yaml:"room"`

	EntityAdd      *entityAddSpec    `yaml:"entity_add"`
	EntityRemove   *entityRemoveSpec `yaml:"entity_remove"`
	DecalAdd       *decalAddSpec     `yaml:"decal_add"`
	DecalRemove    *decalRemoveSpec  `yaml:"decal_remove"`
	RoomMiscUpdate *roomMiscSpec     `yaml:"room_misc_update"`
	RoomAdd        *roomAddSpec      `yaml:"room_add"`
	RoomDelete     bool              `yaml:"room_delete"`
}

type entityAddSpec struct {
	Trigger    bool                   `yaml:"trigger"`
	Type       string                 `yaml:"type"`
	X          int                    `yaml:"x"`
	Y          int                    `yaml:"y"`
	Width      int                    `yaml:"width"`
	Height     int                    `yaml:"height"`
	Attributes map[string]interface{} `yaml:"attributes"`
}

type entityRemoveSpec struct {
	ID      int32 `yaml:"id"`
	Trigger bool  `yaml:"trigger"`
}

type decalAddSpec struct {
	FG      bool    `yaml:"fg"`
	Texture string  `yaml:"texture"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	ScaleX  float32 `yaml:"scale_x"`
	ScaleY  float32 `yaml:"scale_y"`
}

type decalRemoveSpec struct {
	FG bool   `yaml:"fg"`
	ID string `yaml:"id"`
}

type roomMiscSpec struct {
	Name  *string `yaml:"name"`
	Music *string `yaml:"music"`
	Dark  *bool   `yaml:"dark"`
}

type roomAddSpec struct {
	Idx    *int   `yaml:"idx"`
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// parseActionFile reads and unmarshals a -actions YAML document.
func parseActionFile(data []byte) ([]actionSpec, error) {
	var f actionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing action file: %w", err)
	}
	return f.Actions, nil
}

// toMapAction converts one actionSpec into the action.MapAction it
// describes, wrapping room-scoped variants in a RoomEvent addressed at
// spec.Room.
func toMapAction(spec actionSpec) (action.MapAction, error) {
	switch {
	case spec.EntityAdd != nil:
		return wrapRoom(spec.Room, func() (action.RoomAction, error) {
			return entityAddAction(spec.EntityAdd)
		})
	case spec.EntityRemove != nil:
		return wrapRoom(spec.Room, func() (action.RoomAction, error) {
			return action.EntityRemove{ID: spec.EntityRemove.ID, Trigger: spec.EntityRemove.Trigger}, nil
		})
	case spec.DecalAdd != nil:
		return wrapRoom(spec.Room, func() (action.RoomAction, error) {
			return decalAddAction(spec.DecalAdd), nil
		})
	case spec.DecalRemove != nil:
		return wrapRoom(spec.Room, func() (action.RoomAction, error) {
			id, err := parseUUID(spec.DecalRemove.ID)
			if err != nil {
				return nil, err
			}
			return action.DecalRemove{FG: spec.DecalRemove.FG, ID: id}, nil
		})
	case spec.RoomMiscUpdate != nil:
		return wrapRoom(spec.Room, func() (action.RoomAction, error) {
			u := spec.RoomMiscUpdate
			return action.RoomMiscUpdate{Update: action.RoomMiscFields{
				Name:  u.Name,
				Music: u.Music,
				Dark:  u.Dark,
			}}, nil
		})
	case spec.RoomAdd != nil:
		r := spec.RoomAdd
		room := levelmap.NewRoom(r.Name, levelmap.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height})
		return action.RoomAdd{Idx: r.Idx, Room: room}, nil
	case spec.RoomDelete:
		if spec.Room == nil {
			return nil, fmt.Errorf("room_delete requires a room index")
		}
		return action.RoomDelete{Idx: *spec.Room}, nil
	default:
		return nil, fmt.Errorf("action entry names no recognized operation")
	}
}

// wrapRoom builds a RoomAction via build and addresses it at roomIdx, the
// one indirection every room-scoped action in this file shares.
func wrapRoom(roomIdx *int, build func() (action.RoomAction, error)) (action.MapAction, error) {
	if roomIdx == nil {
		return nil, fmt.Errorf("this action requires a room index")
	}
	ra, err := build()
	if err != nil {
		return nil, err
	}
	return action.RoomEvent{Idx: *roomIdx, Event: ra}, nil
}

func entityAddAction(spec *entityAddSpec) (action.RoomAction, error) {
	attrs := make(map[string]binel.AttrValue, len(spec.Attributes))
	for k, v := range spec.Attributes {
		av, err := toAttrValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs[k] = av
	}
	entity := &levelmap.Entity{
		Type:       spec.Type,
		X:          spec.X,
		Y:          spec.Y,
		Width:      spec.Width,
		Height:     spec.Height,
		Attributes: attrs,
	}
	return action.EntityAdd{Entity: entity, Trigger: spec.Trigger, GenID: true}, nil
}

func decalAddAction(spec *decalAddSpec) action.RoomAction {
	scaleX, scaleY := spec.ScaleX, spec.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	decal := &levelmap.Decal{X: spec.X, Y: spec.Y, ScaleX: scaleX, ScaleY: scaleY, Texture: spec.Texture}
	return action.DecalAdd{FG: spec.FG, Decal: decal, GenID: true}
}

// toAttrValue converts a YAML-decoded scalar (bool, int, float64, or string)
// to the binel.AttrValue it names.
func toAttrValue(v interface{}) (binel.AttrValue, error) {
	switch t := v.(type) {
	case bool:
		return binel.Bool(t), nil
	case int:
		return binel.Int(int32(t)), nil
	case float64:
		return binel.Float(float32(t)), nil
	case string:
		return binel.Text(t), nil
	default:
		return binel.AttrValue{}, fmt.Errorf("unsupported attribute value %v (%T)", v, v)
	}
}

// parseUUID decodes a 32-character hex string (idgen.UUID.String()'s
// format) back into a UUID.
func parseUUID(s string) (idgen.UUID, error) {
	var u idgen.UUID
	if len(s) != 32 {
		return u, fmt.Errorf("invalid decal id %q: want 32 hex characters", s)
	}
	for i := 0; i < 16; i++ {
		var b byte
		if _, err := fmt.Sscanf(s[i*2:i*2+2], "%02x", &b); err != nil {
			return u, fmt.Errorf("invalid decal id %q: %w", s, err)
		}
		u[i] = b
	}
	return u, nil
}
