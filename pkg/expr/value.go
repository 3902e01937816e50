package expr

import (
	"math"
	"strconv"
)

// Value is the result of evaluating an Expression: either a number or a
// string, matching spec.md §4.3's Number(f64) | String result type.
type Value struct {
	isNumber bool
	num      float64
	str      string
}

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{isNumber: true, num: n} }

// String constructs a string Value.
func String(s string) Value { return Value{str: s} }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.isNumber }

// Num returns the numeric value; meaningful only when IsNumber is true.
func (v Value) Num() float64 { return v.num }

// Display renders v in the textual form used by string concatenation.
// Equality (`==`/`!=`) does not use it; see Equal.
func (v Value) Display() string {
	if v.isNumber {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}

// Equal implements the language's equality rule: NaN is considered equal to
// NaN (unlike ordinary float64 comparison), and a number is never equal to a
// string even if their displayed forms match.
func (v Value) Equal(other Value) bool {
	if v.isNumber != other.isNumber {
		return false
	}
	if v.isNumber {
		if math.IsNaN(v.num) && math.IsNaN(other.num) {
			return true
		}
		return v.num == other.num
	}
	return v.str == other.str
}

func boolToNumber(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}
