package lang

import (
	"slices"
	"strings"
	"testing"
)

func TestStandardRegistryNames(t *testing.T) {
	names := StandardRegistry().Names()
	want := []string{"range", "str"}
	if !slices.Equal(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry().Register("f", strFunction{})
	override := &FunctionFunc{
		Fn: func(_ Environment, _ []Value) (Value, error) { return NewInt(1), nil },
	}
	reg.Register("f", override)
	fn, ok := reg.Lookup("f")
	if !ok || fn != Function(override) {
		t.Error("Register did not replace the existing function")
	}
}

func TestFunctionContracts(t *testing.T) {
	rng, ok := StandardRegistry().Lookup("range")
	if !ok {
		t.Fatal("range not registered")
	}
	params := rng.Parameters()
	if len(params) != 2 {
		t.Fatalf("range declares %d parameters, want 2", len(params))
	}
	for _, p := range params {
		if !p.Required || p.Type == nil || *p.Type != TypeInt {
			t.Errorf("parameter %q: want required int", p.Name)
		}
		if p.Description == "" {
			t.Errorf("parameter %q: missing description", p.Name)
		}
	}
	if rng.PrimaryResult() {
		t.Error("range should not report a primary result")
	}

	str, _ := StandardRegistry().Lookup("str")
	if !str.PrimaryResult() {
		t.Error("str should report a primary result")
	}
	if p := str.Parameters(); len(p) != 1 || p[0].Required || p[0].Type != nil {
		t.Error("str should declare one optional untyped parameter")
	}
}

func TestDescribeContract(t *testing.T) {
	params := []Parameter{
		{Name: "start", Required: true, Type: TypeOf(TypeInt)},
		{Name: "label", Required: false},
	}
	got := describeContract(params)
	want := "(start: int, label?: any)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCheckArgumentsCoercion(t *testing.T) {
	params := []Parameter{
		{Name: "n", Required: true, Type: TypeOf(TypeInt)},
		{Name: "scale", Required: false, Type: TypeOf(TypeFloat)},
	}
	out, err := checkArguments("f", params, []Value{NewString("7"), NewInt(2)})
	if err != nil {
		t.Fatalf("checkArguments: %v", err)
	}
	if !ExactEqual(out[0], NewInt(7)) {
		t.Errorf("arg 0: got %s %s", out[0].Type(), out[0].AsString())
	}
	if !ExactEqual(out[1], NewFloat(2)) {
		t.Errorf("arg 1: got %s %s", out[1].Type(), out[1].AsString())
	}

	_, err = checkArguments("f", params, []Value{NewFloat(1.5)})
	if err == nil {
		t.Fatal("fractional float should not coerce to int")
	}
	if !strings.Contains(err.Error(), "f(") && !strings.Contains(err.Error(), "f ") {
		t.Errorf("error does not name the function: %v", err)
	}
}
