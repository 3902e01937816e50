package action

import "fmt"

// OutOfRangeError reports an index (room, styleground, tile offset) outside
// the bounds of the container it addresses.
type OutOfRangeError struct {
	What string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("action: %s out of range", e.What)
}

// NotFoundError reports that an action referenced an entity, trigger, decal,
// or room that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("action: no such %s", e.Kind)
	}
	return fmt.Sprintf("action: no such %s (id %s)", e.Kind, e.ID)
}

// DuplicateError reports that an action tried to add an entity, trigger, or
// decal whose id already exists in its target room/layer.
type DuplicateError struct {
	Kind string
	ID   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("action: %s already exists (id %s)", e.Kind, e.ID)
}
