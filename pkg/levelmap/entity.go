package levelmap

import "github.com/levelsmith/levelsmith/pkg/binel"

// Entity is an entity or a trigger: the two share an identical shape and are
// only distinguished by which of Room.Entities / Room.Triggers holds them.
type Entity struct {
	ID         int32
	Type       string
	X, Y       int
	Width      int
	Height     int
	Nodes      []Point
	Attributes map[string]binel.AttrValue
}

// Clone returns a deep copy of e.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	out := *e
	out.Nodes = append([]Point(nil), e.Nodes...)
	out.Attributes = make(map[string]binel.AttrValue, len(e.Attributes))
	for k, v := range e.Attributes {
		out.Attributes[k] = v
	}
	return &out
}

// Bounds returns e's axis-aligned rectangle in room space.
func (e *Entity) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}
