package binel

import "strings"

// attr is one ordered (key, value) pair of an Element.
type attr struct {
	key   string
	value AttrValue
}

// Element is a named node in the binary element tree: an ordered-by-insertion
// set of attributes plus an ordered list of child elements. Order within a
// child name is significant, so children are kept as a single flat ordered
// slice rather than grouped by name.
type Element struct {
	Name     string
	attrs    []attr
	index    map[string]int
	Children []*Element
}

// NewElement returns an empty element with the given name.
func NewElement(name string) *Element {
	return &Element{Name: name, index: make(map[string]int)}
}

// Get returns the attribute value for key and whether it was present.
func (e *Element) Get(key string) (AttrValue, bool) {
	if e.index == nil {
		return AttrValue{}, false
	}
	i, ok := e.index[key]
	if !ok {
		return AttrValue{}, false
	}
	return e.attrs[i].value, true
}

// Set assigns key to value, preserving the position of an existing key or
// appending a new one at the end.
func (e *Element) Set(key string, value AttrValue) {
	if e.index == nil {
		e.index = make(map[string]int)
	}
	if i, ok := e.index[key]; ok {
		e.attrs[i].value = value
		return
	}
	e.index[key] = len(e.attrs)
	e.attrs = append(e.attrs, attr{key: key, value: value})
}

// Delete removes key if present.
func (e *Element) Delete(key string) {
	i, ok := e.index[key]
	if !ok {
		return
	}
	e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
	delete(e.index, key)
	for k, idx := range e.index {
		if idx > i {
			e.index[k] = idx - 1
		}
	}
}

// Attrs returns the attributes in insertion order. The returned slice is a
// copy; mutating it does not affect e.
func (e *Element) Attrs() []struct {
	Key   string
	Value AttrValue
} {
	out := make([]struct {
		Key   string
		Value AttrValue
	}, len(e.attrs))
	for i, a := range e.attrs {
		out[i].Key = a.key
		out[i].Value = a.value
	}
	return out
}

// AddChild appends child to e's ordered child list.
func (e *Element) AddChild(child *Element) {
	e.Children = append(e.Children, child)
}

// ChildrenNamed returns every direct child named name, in insertion order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first direct child named name, if any.
func (e *Element) FirstChild(name string) (*Element, bool) {
	for _, c := range e.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// NestedChild walks a "/"-separated path of child names, as used by the
// type-driven serialization mapping of spec.md §4.1.
func NestedChild(e *Element, path string) (*Element, bool) {
	cur := e
	for {
		slash := strings.IndexByte(path, '/')
		if slash < 0 {
			return cur.FirstChild(path)
		}
		next, ok := cur.FirstChild(path[:slash])
		if !ok {
			return nil, false
		}
		cur = next
		path = path[slash+1:]
	}
}
