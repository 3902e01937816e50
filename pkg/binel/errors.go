package binel

import "fmt"

// ParseError describes a malformed binary stream.
type ParseError struct {
	Description string
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %s", e.Description) }

// MissingChild is returned when type-driven serialization expects a child
// element that is not present.
type MissingChild struct {
	Parent string
	Child  string
}

func (e *MissingChild) Error() string {
	return fmt.Sprintf("element %q: missing child %q", e.Parent, e.Child)
}

// MissingAttribute is returned when type-driven serialization expects an
// attribute that is not present and has no tabulated default.
type MissingAttribute struct {
	Element string
	Attr    string
}

func (e *MissingAttribute) Error() string {
	return fmt.Sprintf("element %q: missing attribute %q", e.Element, e.Attr)
}

// BadAttrType is returned when an attribute is present but holds the wrong
// AttrValue variant for the field it is being projected to.
type BadAttrType struct {
	Element string
	Attr    string
	Want    Kind
	Got     Kind
}

func (e *BadAttrType) Error() string {
	return fmt.Sprintf("element %q: attribute %q: want %s, got %s", e.Element, e.Attr, e.Want, e.Got)
}
