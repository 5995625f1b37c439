package lang

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Type identifies the dynamic type of a [Value].
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeList
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed runtime value. The zero value is null.
// Values are cheap to copy; lists share their backing slice, which
// callers must not mutate after handing it to a Value.
type Value struct {
	typ  Type
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	fn   Function
}

// NewNull returns the null value.
func NewNull() Value { return Value{} }

// NewBool returns a boolean value.
func NewBool(b bool) Value { return Value{typ: TypeBool, b: b} }

// NewInt returns an integer value.
func NewInt(i int64) Value { return Value{typ: TypeInt, i: i} }

// NewFloat returns a floating-point value.
func NewFloat(f float64) Value { return Value{typ: TypeFloat, f: f} }

// NewString returns a string value.
func NewString(s string) Value { return Value{typ: TypeString, s: s} }

// NewList returns a list value backed by items.
func NewList(items []Value) Value { return Value{typ: TypeList, list: items} }

// NewFunction returns a first-class function value. The name is used
// when the value is stringified.
func NewFunction(name string, fn Function) Value {
	return Value{typ: TypeFunction, s: name, fn: fn}
}

// Type returns the dynamic type of the value.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Bool returns the boolean payload; zero unless Type is TypeBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; zero unless Type is TypeInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; zero unless Type is TypeFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload; empty unless Type is TypeString.
func (v Value) Str() string { return v.s }

// List returns the list payload; nil unless Type is TypeList.
func (v Value) List() []Value { return v.list }

// Func returns the function payload; nil unless Type is TypeFunction.
func (v Value) Func() Function { return v.fn }

// FuncName returns the name of a function value; empty otherwise.
func (v Value) FuncName() string {
	if v.typ != TypeFunction {
		return ""
	}
	return v.s
}

// LogValue implements [slog.LogValuer].
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", v.typ.String()),
		slog.String("value", v.AsString()),
	)
}

// asNumeric coerces v to an Int or Float value. Numeric strings coerce
// to the narrowest type that represents them; all other types fail.
func (v Value) asNumeric() (Value, bool) {
	switch v.typ {
	case TypeInt, TypeFloat:
		return v, true
	case TypeString:
		s := strings.TrimSpace(v.s)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return NewInt(i), true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NewFloat(f), true
		}
	}
	return Value{}, false
}

// asFloat returns the numeric value widened to float64.
func (v Value) asFloat() (float64, bool) {
	n, ok := v.asNumeric()
	if !ok {
		return 0, false
	}
	if n.typ == TypeInt {
		return float64(n.i), true
	}
	return n.f, true
}

// AsBool coerces v to a boolean: booleans are themselves, null is
// false, and numbers are true when nonzero. Strings, lists, and
// functions do not coerce.
func (v Value) AsBool() (bool, bool) {
	switch v.typ {
	case TypeBool:
		return v.b, true
	case TypeNull:
		return false, true
	case TypeInt:
		return v.i != 0, true
	case TypeFloat:
		return v.f != 0, true
	default:
		return false, false
	}
}

// AsString renders v as text. Every type stringifies; this conversion
// never fails.
func (v Value) AsString() string {
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case TypeString:
		return v.s
	case TypeList:
		var sb strings.Builder
		sb.WriteString("[")
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.AsString())
		}
		sb.WriteString("]")
		return sb.String()
	case TypeFunction:
		return "<function " + v.s + ">"
	default:
		return ""
	}
}

// LooseEqual compares two values under permissive semantics: numbers
// compare across Int and Float, numeric strings compare against
// numbers, strings compare case-insensitively, lists compare
// element-wise, and null equals only null. Values that cannot be
// compared are unequal; loose comparison never fails.
func LooseEqual(a, b Value) bool {
	switch {
	case a.typ == TypeNull || b.typ == TypeNull:
		return a.typ == b.typ
	case a.typ == TypeList || b.typ == TypeList:
		if a.typ != b.typ || len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !LooseEqual(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case a.typ == TypeBool || b.typ == TypeBool:
		return a.typ == b.typ && a.b == b.b
	case a.typ == TypeString && b.typ == TypeString:
		return strings.EqualFold(a.s, b.s)
	default:
		x, okx := a.asNumeric()
		y, oky := b.asNumeric()
		if !okx || !oky {
			return false
		}
		if x.typ == TypeInt && y.typ == TypeInt {
			return x.i == y.i
		}
		xf, _ := x.asFloat()
		yf, _ := y.asFloat()
		return xf == yf
	}
}

// ExactEqual compares two values strictly: the types must be identical
// and the payloads equal, with strings case-sensitive. Int and Float
// never compare equal under exact semantics, and function values are
// never exactly equal.
func ExactEqual(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeNull:
		return true
	case TypeBool:
		return a.b == b.b
	case TypeInt:
		return a.i == b.i
	case TypeFloat:
		return a.f == b.f
	case TypeString:
		return a.s == b.s
	case TypeList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !ExactEqual(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// compareOrder orders two values, returning a negative, zero, or
// positive result. Two strings order lexicographically; everything else
// must coerce to a number.
func compareOrder(a, b Value) (int, error) {
	if a.typ == TypeString && b.typ == TypeString {
		return strings.Compare(a.s, b.s), nil
	}
	af, okx := a.asFloat()
	bf, oky := b.asFloat()
	if !okx || !oky {
		return 0, ErrInvalidOperands.Wrapf(
			"cannot order %s against %s", a.typ, b.typ)
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

// applyMath evaluates op over two operands. Integer operands stay
// integral except when division or exponentiation cannot represent the
// result exactly, in which case the result widens to float.
func applyMath(op MathOp, a, b Value) (Value, error) {
	x, okx := a.asNumeric()
	y, oky := b.asNumeric()
	if !okx || !oky {
		return Value{}, ErrInvalidOperands.Wrapf(
			"operator %q requires numeric operands, got %s and %s", op, a.typ, b.typ)
	}
	if x.typ == TypeFloat || y.typ == TypeFloat {
		xf, _ := x.asFloat()
		yf, _ := y.asFloat()
		return applyMathFloat(op, xf, yf)
	}
	return applyMathInt(op, x.i, y.i)
}

func applyMathFloat(op MathOp, x, y float64) (Value, error) {
	switch op {
	case OpAdd:
		return NewFloat(x + y), nil
	case OpSubtract:
		return NewFloat(x - y), nil
	case OpMultiply:
		return NewFloat(x * y), nil
	case OpDivide:
		return NewFloat(x / y), nil
	case OpModulo:
		return NewFloat(math.Mod(x, y)), nil
	case OpPower:
		return NewFloat(math.Pow(x, y)), nil
	default:
		return Value{}, ErrInvalidOperands.Wrapf("unknown operator %q", op)
	}
}

func applyMathInt(op MathOp, x, y int64) (Value, error) {
	switch op {
	case OpAdd:
		return NewInt(x + y), nil
	case OpSubtract:
		return NewInt(x - y), nil
	case OpMultiply:
		return NewInt(x * y), nil
	case OpDivide:
		if y == 0 {
			return Value{}, ErrDivisionByZero
		}
		if x%y == 0 {
			return NewInt(x / y), nil
		}
		return NewFloat(float64(x) / float64(y)), nil
	case OpModulo:
		if y == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewInt(x % y), nil
	case OpPower:
		if y < 0 {
			return NewFloat(math.Pow(float64(x), float64(y))), nil
		}
		return NewInt(intPow(x, y)), nil
	default:
		return Value{}, ErrInvalidOperands.Wrapf("unknown operator %q", op)
	}
}

// intPow raises base to a non-negative exponent by squaring.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// negate arithmetically negates a numeric value.
func negate(v Value) (Value, error) {
	n, ok := v.asNumeric()
	if !ok {
		return Value{}, ErrInvalidOperands.Wrapf("cannot negate %s", v.typ)
	}
	if n.typ == TypeInt {
		return NewInt(-n.i), nil
	}
	return NewFloat(-n.f), nil
}
