package table

import (
	"math"
	"strconv"
	"strings"
)

// ValueType represents the type of a Value.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeString
)

var typeNames = map[ValueType]string{
	TypeNull:   "NULL",
	TypeInt:    "INTEGER",
	TypeFloat:  "DOUBLE",
	TypeBool:   "BOOLEAN",
	TypeString: "STRING",
}

func (t ValueType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsNumeric reports whether the type is INTEGER or DOUBLE.
func (t ValueType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Promote returns the least upper bound of two types in the inference lattice.
// Null is the identity, INTEGER and DOUBLE meet at DOUBLE, everything else at STRING.
func Promote(a, b ValueType) ValueType {
	switch {
	case a == TypeNull:
		return b
	case b == TypeNull:
		return a
	case a == b:
		return a
	case a.IsNumeric() && b.IsNumeric():
		return TypeFloat
	default:
		return TypeString
	}
}

// Value is a dynamically-typed cell in a table.
// Values are comparable and may be used as map keys.
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Null returns a null value.
func Null() Value {
	return Value{Type: TypeNull}
}

// IntVal creates an integer value.
func IntVal(v int64) Value {
	return Value{Type: TypeInt, Int: v}
}

// FloatVal creates a float value.
func FloatVal(v float64) Value {
	return Value{Type: TypeFloat, Float: v}
}

// StrVal creates a string value.
func StrVal(v string) Value {
	return Value{Type: TypeString, Str: v}
}

// BoolVal creates a boolean value.
func BoolVal(v bool) Value {
	return Value{Type: TypeBool, Bool: v}
}

// Infer assigns a variant to a cell. The text must already be trimmed.
func Infer(s string) Value {
	if s == "" {
		return Null()
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntVal(v)
	}

	if isDecimal(s) {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return FloatVal(v)
		}
	}

	switch strings.ToLower(s) {
	case "true":
		return BoolVal(true)
	case "false":
		return BoolVal(false)
	}

	return StrVal(s)
}

// isDecimal rejects the forms ParseFloat accepts beyond plain decimal
// notation: hex mantissas, underscores, "inf" and "nan".
func isDecimal(s string) bool {
	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '+' || r == '-' || r == '.' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return digits
}

// IsNull returns true if the value is null.
func (v Value) IsNull() bool {
	return v.Type == TypeNull
}

// IsNumeric returns true for integer and float values.
func (v Value) IsNumeric() bool {
	return v.Type.IsNumeric()
}

// AsFloat attempts to coerce to float64 for arithmetic.
func (v Value) AsFloat() (float64, bool) {
	switch v.Type {
	case TypeInt:
		return float64(v.Int), true
	case TypeFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// SafeFloat converts any value to a float64 without failing: numbers yield
// their value, null yields 0, anything else is parsed from its text form
// and yields 0 unless that text is plain decimal notation.
func (v Value) SafeFloat() float64 {
	if f, ok := v.AsFloat(); ok {
		return f
	}
	if v.IsNull() {
		return 0
	}
	s := strings.TrimSpace(v.String())
	if !isDecimal(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.Type == TypeBool {
		return v.Bool, true
	}
	return false, false
}

// String returns the text form of the value. Null renders as the empty
// string so that serialised rows infer back to null.
func (v Value) String() string {
	switch v.Type {
	case TypeNull:
		return ""
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return FormatFloat(v.Float)
	case TypeString:
		return v.Str
	case TypeBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "?"
	}
}

// AsString returns the display representation, using "null" for null.
func (v Value) AsString() string {
	if v.IsNull() {
		return "null"
	}
	return v.String()
}

// FormatFloat renders a float so that it always reads back as a float:
// whole numbers keep a trailing ".0".
func FormatFloat(f float64) string {
	var s string
	if math.Abs(f) < 1e21 {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// Equal compares two values. Integers and floats compare numerically,
// other variants only equal values of the same variant. Two nulls are equal;
// predicates handle null separately.
func Equal(a, b Value) bool {
	if a.Type == TypeInt && b.Type == TypeInt {
		return a.Int == b.Int
	}
	if af, ok := a.AsFloat(); ok {
		bf, ok := b.AsFloat()
		return ok && af == bf
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNull:
		return true
	case TypeString:
		return a.Str == b.Str
	case TypeBool:
		return a.Bool == b.Bool
	}
	return false
}
