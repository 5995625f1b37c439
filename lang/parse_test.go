package lang

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string) *Expression {
	t.Helper()
	x, err := ParseString(source)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", source, err)
	}
	return x
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 ^ 2 parses as 1 + (2 * (3 ^ 2))
	x := mustParse(t, "1 + 2 * 3 ^ 2")
	add, ok := x.Root().(*Math)
	if !ok || add.Op != OpAdd {
		t.Fatalf("root: got %T, want addition", x.Root())
	}
	mul, ok := add.RHS.(*Math)
	if !ok || mul.Op != OpMultiply {
		t.Fatalf("rhs of +: got %T, want multiplication", add.RHS)
	}
	pow, ok := mul.RHS.(*Math)
	if !ok || pow.Op != OpPower {
		t.Fatalf("rhs of *: got %T, want exponentiation", mul.RHS)
	}
}

func TestParseConcatBindsLoosest(t *testing.T) {
	// "x" & 1 == 1 parses as "x" & (1 == 1)
	x := mustParse(t, `"x" & 1 == 1`)
	cat, ok := x.Root().(*Concat)
	if !ok {
		t.Fatalf("root: got %T, want concat", x.Root())
	}
	if _, ok := cat.RHS.(*Comparison); !ok {
		t.Fatalf("rhs of &: got %T, want comparison", cat.RHS)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 3 - 2 parses as (10 - 3) - 2
	x := mustParse(t, "10 - 3 - 2")
	outer, ok := x.Root().(*Math)
	if !ok || outer.Op != OpSubtract {
		t.Fatalf("root: got %T, want subtraction", x.Root())
	}
	if _, ok := outer.LHS.(*Math); !ok {
		t.Fatalf("lhs: got %T, want nested subtraction", outer.LHS)
	}
	if lit, ok := outer.RHS.(*IntLiteral); !ok || lit.Value != 2 {
		t.Fatalf("rhs: got %v, want literal 2", outer.RHS)
	}
}

func TestParseNegativeLiterals(t *testing.T) {
	x := mustParse(t, "-5")
	if lit, ok := x.Root().(*IntLiteral); !ok || lit.Value != -5 {
		t.Fatalf("got %v, want int literal -5", x.Root())
	}
	x = mustParse(t, "-2.5")
	if lit, ok := x.Root().(*FloatLiteral); !ok || lit.Value != -2.5 {
		t.Fatalf("got %v, want float literal -2.5", x.Root())
	}
	x = mustParse(t, "-count")
	if id, ok := x.Root().(*Identifier); !ok || id.Name != "count" || !id.Negated {
		t.Fatalf("got %v, want negated identifier", x.Root())
	}
	x = mustParse(t, "3 - 1")
	if m, ok := x.Root().(*Math); !ok || m.Op != OpSubtract {
		t.Fatalf("got %v, want binary subtraction", x.Root())
	}
}

func TestParsePrefixedParenthesis(t *testing.T) {
	x := mustParse(t, "-(1 + 2)")
	flip, ok := x.Root().(*FlipSign)
	if !ok {
		t.Fatalf("root: got %T, want flip-sign", x.Root())
	}
	if _, ok := flip.Operand.(*Math); !ok {
		t.Fatalf("operand: got %T, want math", flip.Operand)
	}

	x = mustParse(t, "!(1 == 1)")
	inv, ok := x.Root().(*Invert)
	if !ok {
		t.Fatalf("root: got %T, want invert", x.Root())
	}
	if _, ok := inv.Operand.(*Comparison); !ok {
		t.Fatalf("operand: got %T, want comparison", inv.Operand)
	}
}

func TestParseNegatedCall(t *testing.T) {
	x := mustParse(t, "-f(1)")
	flip, ok := x.Root().(*FlipSign)
	if !ok {
		t.Fatalf("root: got %T, want flip-sign", x.Root())
	}
	call, ok := flip.Operand.(*Call)
	if !ok || call.Name != "f" {
		t.Fatalf("operand: got %v, want call to f", flip.Operand)
	}
}

func TestParseCalls(t *testing.T) {
	tests := []struct {
		source string
		name   string
		args   int
	}{
		{"f()", "f", 0},
		{"f(1)", "f", 1},
		{"range(1, 5)", "range", 2},
		{"f(g(1), 2 + 3, h())", "f", 3},
	}
	for _, tt := range tests {
		x := mustParse(t, tt.source)
		call, ok := x.Root().(*Call)
		if !ok {
			t.Fatalf("parse(%q): got %T, want call", tt.source, x.Root())
		}
		if call.Name != tt.name || len(call.Args) != tt.args {
			t.Errorf("parse(%q): got %s/%d, want %s/%d",
				tt.source, call.Name, len(call.Args), tt.name, tt.args)
		}
	}
}

func TestParseNegationLevel(t *testing.T) {
	// ! applies to a single comparison; a following && is separate
	x := mustParse(t, "!a && b")
	and, ok := x.Root().(*LogicalAnd)
	if !ok {
		t.Fatalf("root: got %T, want conjunction", x.Root())
	}
	if _, ok := and.LHS.(*Invert); !ok {
		t.Fatalf("lhs: got %T, want invert", and.LHS)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"1 +",
		"(1 + 2",
		"f(1,",
		"f(1 2)",
		"1 2",
		"* 3",
		`- "str"`,
		"-true",
	}
	for _, source := range tests {
		_, err := ParseString(source)
		if err == nil {
			t.Errorf("ParseString(%q): expected error", source)
			continue
		}
		var syn *SyntaxError
		if !errors.As(err, &syn) {
			t.Errorf("ParseString(%q): got %T, want *SyntaxError", source, err)
		}
	}
}

func TestParseErrorSnippet(t *testing.T) {
	_, err := ParseString("1 + * 2")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "1 + * 2") {
		t.Errorf("message lacks source line: %s", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Errorf("message lacks caret: %s", msg)
	}
	if !strings.Contains(msg, "line 1, column 5") {
		t.Errorf("message lacks position: %s", msg)
	}
}

func TestParseTrailingTokens(t *testing.T) {
	_, err := ParseString("1 + 2 3")
	if err == nil {
		t.Fatal("expected error")
	}
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("got %T, want *SyntaxError", err)
	}
	if syn.Got == nil || syn.Got.Literal != "3" {
		t.Errorf("got %v, want trailing token 3", syn.Got)
	}
	if !strings.Contains(err.Error(), "end of expression") {
		t.Errorf("message: %s", err.Error())
	}
}

func TestParseLexicalErrorPropagates(t *testing.T) {
	_, err := ParseString(`"unterminated`)
	if !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("got %v, want ErrUnterminatedString", err)
	}
}

func TestPrintTree(t *testing.T) {
	x := mustParse(t, `f(1, "a") & -b`)
	var sb strings.Builder
	Print(&sb, x.Root())
	out := sb.String()
	for _, want := range []string{"concat", "call f", `string "a"`, "identifier -b"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output lacks %q:\n%s", want, out)
		}
	}
}
