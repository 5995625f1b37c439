package cmd

import (
	"strings"
	"testing"

	"github.com/ardnew/forma/lang"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		raw  string
		want lang.Value
	}{
		{"null", lang.NewNull()},
		{"true", lang.NewBool(true)},
		{"false", lang.NewBool(false)},
		{"42", lang.NewInt(42)},
		{"-7", lang.NewInt(-7)},
		{"2.5", lang.NewFloat(2.5)},
		{"hello", lang.NewString("hello")},
		{"", lang.NewString("")},
	}
	for _, tt := range tests {
		got := parseBinding(tt.raw)
		if !lang.ExactEqual(got, tt.want) {
			t.Errorf("parseBinding(%q): got %s %s, want %s %s",
				tt.raw, got.Type(), got.AsString(), tt.want.Type(), tt.want.AsString())
		}
	}
}

func TestEnviron(t *testing.T) {
	env := environ(map[string]string{"count": "4"})
	if v, ok := env.StaticVariables()["count"]; !ok || !lang.ExactEqual(v, lang.NewInt(4)) {
		t.Error("static binding not applied")
	}
	for _, name := range []string{"now", "rand"} {
		if _, ok := env.LiveVariables()[name]; !ok {
			t.Errorf("live variable %q not defined", name)
		}
	}
	now := env.LiveVariables()["now"]()
	if now.Type() != lang.TypeInt || now.Int() <= 0 {
		t.Errorf("now: got %s %s", now.Type(), now.AsString())
	}
}

func TestRender(t *testing.T) {
	v := lang.NewList([]lang.Value{lang.NewInt(1), lang.NewString("a")})
	tests := []struct {
		format string
		want   string
	}{
		{"text", "[1, a]\n"},
		{"json", "[\n  1,\n  \"a\"\n]\n"},
		{"yaml", "- 1\n- a\n"},
	}
	for _, tt := range tests {
		out, err := render(v, tt.format)
		if err != nil {
			t.Fatalf("render(%s): %v", tt.format, err)
		}
		if string(out) != tt.want {
			t.Errorf("render(%s): got %q, want %q", tt.format, out, tt.want)
		}
	}
}

func TestReadExpression(t *testing.T) {
	x, err := readExpression("1 + 2", nil)
	if err != nil {
		t.Fatalf("readExpression: %v", err)
	}
	if x.Source() != "1 + 2" {
		t.Errorf("source: %q", x.Source())
	}
	x, err = readExpression("-", strings.NewReader("3 * 4"))
	if err != nil {
		t.Fatalf("readExpression from stdin: %v", err)
	}
	got, err := x.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !lang.ExactEqual(got, lang.NewInt(12)) {
		t.Errorf("got %s, want 12", got.AsString())
	}
}
