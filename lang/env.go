package lang

// Environment supplies the names an expression may reference. Any of
// the three maps may be nil or empty.
//
// Static variables resolve first and are read once per reference. Live
// variables resolve when no static variable matches; their supplier is
// invoked on every reference, so repeated mentions of the same name may
// observe different values. Functions are consulted only for call
// syntax and shadow the standard registry.
type Environment interface {
	Functions() map[string]Function
	LiveVariables() map[string]func() Value
	StaticVariables() map[string]Value
}

// MapEnvironment is a map-backed [Environment]. The zero value is an
// empty environment.
type MapEnvironment struct {
	Funcs  map[string]Function
	Live   map[string]func() Value
	Static map[string]Value
}

func (e *MapEnvironment) Functions() map[string]Function         { return e.Funcs }
func (e *MapEnvironment) LiveVariables() map[string]func() Value { return e.Live }
func (e *MapEnvironment) StaticVariables() map[string]Value      { return e.Static }

// EmptyEnvironment returns an environment with no names defined.
func EmptyEnvironment() Environment { return &MapEnvironment{} }
