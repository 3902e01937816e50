package binel

import "strconv"

// Kind identifies which variant of AttrValue is populated.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// AttrValue is the tagged union carried by every element attribute:
// bool | int32 | float32 | text. Only the field matching Kind is meaningful.
type AttrValue struct {
	kind Kind
	b    bool
	i    int32
	f    float32
	s    string
}

// Bool constructs a boolean AttrValue.
func Bool(v bool) AttrValue { return AttrValue{kind: KindBool, b: v} }

// Int constructs an int32 AttrValue.
func Int(v int32) AttrValue { return AttrValue{kind: KindInt, i: v} }

// Float constructs a float32 AttrValue.
func Float(v float32) AttrValue { return AttrValue{kind: KindFloat, f: v} }

// Text constructs a text AttrValue.
func Text(v string) AttrValue { return AttrValue{kind: KindText, s: v} }

// Kind reports which variant is populated.
func (v AttrValue) Kind() Kind { return v.kind }

// AsBool returns the boolean value and whether v is actually a KindBool.
func (v AttrValue) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the int32 value and whether v is actually a KindInt.
func (v AttrValue) AsInt() (int32, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float32 value and whether v is actually a KindFloat.
func (v AttrValue) AsFloat() (float32, bool) { return v.f, v.kind == KindFloat }

// AsText returns the text value and whether v is actually a KindText.
func (v AttrValue) AsText() (string, bool) { return v.s, v.kind == KindText }

// Display renders v in the textual form used by the expression language's
// string-concatenation coercion and by the fuzzy-equal oracle's int/text
// coercion rule.
func (v AttrValue) Display() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(int64(v.i), 10)
	case KindFloat:
		return strconv.FormatFloat(float64(v.f), 'g', -1, 32)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// Equal reports strict equality: same kind and same value.
func (v AttrValue) Equal(other AttrValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	default:
		return true
	}
}
