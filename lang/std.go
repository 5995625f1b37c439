package lang

import "sync"

// StandardRegistry returns a new registry populated with the built-in
// functions. Callers may register additional functions on the result.
func StandardRegistry() *Registry {
	return NewRegistry().
		Register("range", rangeFunction{}).
		Register("str", strFunction{})
}

// defaultRegistry returns the shared read-only standard registry used
// when an evaluation does not select one explicitly.
//
//nolint:gochecknoglobals
var defaultRegistry = sync.OnceValue(StandardRegistry)

// rangeFunction produces a list of consecutive integers.
type rangeFunction struct{}

func (rangeFunction) Parameters() []Parameter {
	return []Parameter{
		{Name: "start", Description: "first value of the range (inclusive)", Required: true, Type: TypeOf(TypeInt)},
		{Name: "end", Description: "last value of the range (inclusive)", Required: true, Type: TypeOf(TypeInt)},
	}
}

func (rangeFunction) PrimaryResult() bool { return false }

func (rangeFunction) Call(_ Environment, args []Value) (Value, error) {
	start, end := args[0].Int(), args[1].Int()
	if end < start {
		return NewList(nil), nil
	}
	items := make([]Value, 0, end-start+1)
	for i := start; i <= end; i++ {
		items = append(items, NewInt(i))
	}
	return NewList(items), nil
}

// strFunction stringifies its argument, defaulting to null.
type strFunction struct{}

func (strFunction) Parameters() []Parameter {
	return []Parameter{
		{Name: "input", Description: "value to stringify", Required: false},
	}
}

func (strFunction) PrimaryResult() bool { return true }

func (strFunction) Call(_ Environment, args []Value) (Value, error) {
	v := NewNull()
	if len(args) > 0 {
		v = args[0]
	}
	return NewString(v.AsString()), nil
}
