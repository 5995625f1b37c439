package lang

import (
	"slices"
	"strings"
)

// Function is a callable exposed to expressions, either through an
// [Environment] or a [Registry]. Arguments are validated against the
// declared parameters before Call is invoked.
type Function interface {
	// Call invokes the function with already-validated arguments.
	Call(env Environment, args []Value) (Value, error)

	// Parameters declares the accepted arguments in positional order.
	// Optional parameters must follow required ones.
	Parameters() []Parameter

	// PrimaryResult reports whether the function's main purpose is the
	// value it returns, as opposed to a side effect on its arguments or
	// environment. Hosts may use this to warn about discarded results.
	PrimaryResult() bool
}

// Parameter documents one positional argument of a [Function].
// A nil Type accepts any value.
type Parameter struct {
	Name        string
	Description string
	Required    bool
	Type        *Type
}

// TypeOf returns a pointer to t, convenient when declaring typed
// parameters in composite literals.
func TypeOf(t Type) *Type { return &t }

// FunctionFunc adapts an ordinary function and a parameter contract
// into a [Function].
type FunctionFunc struct {
	Params  []Parameter
	Primary bool
	Fn      func(env Environment, args []Value) (Value, error)
}

func (f *FunctionFunc) Call(env Environment, args []Value) (Value, error) {
	return f.Fn(env, args)
}

func (f *FunctionFunc) Parameters() []Parameter { return f.Params }
func (f *FunctionFunc) PrimaryResult() bool     { return f.Primary }

// Registry is an explicit set of named functions. It is not safe for
// concurrent mutation; populate it before sharing.
type Registry struct {
	funcs map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Function)}
}

// Register adds or replaces a function and returns the registry for
// chaining.
func (r *Registry) Register(name string, fn Function) *Registry {
	r.funcs[name] = fn
	return r
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// checkArguments validates args against the declared parameters of the
// function called name, coercing each argument to its parameter's type
// where a lossless coercion exists. It returns the coerced arguments.
func checkArguments(name string, params []Parameter, args []Value) ([]Value, error) {
	if len(args) > len(params) {
		return nil, ErrInvalidArguments.Wrapf(
			"%s expects at most %d argument(s), got %d: %s%s",
			name, len(params), len(args), name, describeContract(params))
	}
	out := make([]Value, len(args))
	for i, param := range params {
		if i >= len(args) {
			if param.Required {
				return nil, ErrInvalidArguments.Wrapf(
					"%s is missing required argument %q: %s%s",
					name, param.Name, name, describeContract(params))
			}
			break
		}
		coerced, ok := coerceArgument(args[i], param.Type)
		if !ok {
			return nil, ErrInvalidArguments.Wrapf(
				"%s argument %q expects %s, got %s (%s): %s%s",
				name, param.Name, *param.Type, args[i].Type(), args[i].AsString(),
				name, describeContract(params))
		}
		out[i] = coerced
	}
	return out, nil
}

// coerceArgument converts v to the declared parameter type. Numeric
// strings convert to numbers, integers widen to float, and an integral
// float narrows to int. A nil type accepts anything.
func coerceArgument(v Value, t *Type) (Value, bool) {
	if t == nil || v.Type() == *t {
		return v, true
	}
	switch *t {
	case TypeInt:
		n, ok := v.asNumeric()
		if !ok {
			return Value{}, false
		}
		if n.Type() == TypeInt {
			return n, true
		}
		if f := n.Float(); f == float64(int64(f)) {
			return NewInt(int64(f)), true
		}
		return Value{}, false
	case TypeFloat:
		f, ok := v.asFloat()
		if !ok {
			return Value{}, false
		}
		return NewFloat(f), true
	default:
		return Value{}, false
	}
}

// describeContract renders a parameter list as "(name: type, ...)",
// marking optional parameters with a trailing question mark.
func describeContract(params []Parameter) string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if !p.Required {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		if p.Type == nil {
			sb.WriteString("any")
		} else {
			sb.WriteString(p.Type.String())
		}
	}
	sb.WriteString(")")
	return sb.String()
}
