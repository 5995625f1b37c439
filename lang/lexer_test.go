package lang

import (
	"errors"
	"testing"
)

func collectTokens(t *testing.T, input string) []Token {
	t.Helper()
	lx := NewLexer(input)
	var toks []Token
	for {
		tok, err := lx.Consume()
		if err != nil {
			t.Fatalf("Consume(%q): unexpected error: %v", input, err)
		}
		if tok == nil {
			return toks
		}
		toks = append(toks, *tok)
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input string
		kinds []TokenKind
	}{
		{"1 + 2", []TokenKind{TokenInt, TokenPlus, TokenInt}},
		{"3.14", []TokenKind{TokenFloat}},
		{".5", []TokenKind{TokenFloat}},
		{`"hi"`, []TokenKind{TokenString}},
		{"true false null", []TokenKind{TokenTrue, TokenFalse, TokenNull}},
		{"foo_bar2", []TokenKind{TokenIdentifier}},
		{"-1", []TokenKind{TokenMinus, TokenInt}},
		{"a && b || !c", []TokenKind{TokenIdentifier, TokenBoolAnd, TokenIdentifier, TokenBoolOr, TokenBoolNot, TokenIdentifier}},
		{`"a" & "b"`, []TokenKind{TokenString, TokenConcat, TokenString}},
		{"a == b === c != d !== e", []TokenKind{
			TokenIdentifier, TokenValueEquals,
			TokenIdentifier, TokenValueEqualsExact,
			TokenIdentifier, TokenNotEquals,
			TokenIdentifier, TokenNotEqualsExact,
			TokenIdentifier,
		}},
		{"a >= b <= c > d < e", []TokenKind{
			TokenIdentifier, TokenGreaterEqual,
			TokenIdentifier, TokenLessEqual,
			TokenIdentifier, TokenGreater,
			TokenIdentifier, TokenLess,
			TokenIdentifier,
		}},
		{"f(1, 2)", []TokenKind{TokenIdentifier, TokenParenOpen, TokenInt, TokenComma, TokenInt, TokenParenClose}},
		{"2 ^ 10 % 3", []TokenKind{TokenInt, TokenExponent, TokenInt, TokenModulo, TokenInt}},
	}
	for _, tt := range tests {
		toks := collectTokens(t, tt.input)
		if len(toks) != len(tt.kinds) {
			t.Fatalf("lex(%q): got %d tokens, want %d", tt.input, len(toks), len(tt.kinds))
		}
		for i, kind := range tt.kinds {
			if toks[i].Kind != kind {
				t.Errorf("lex(%q)[%d]: got %v, want %v", tt.input, i, toks[i].Kind, kind)
			}
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"plain"`, "plain"},
		{`"say \"hi\""`, `say "hi"`},
		{`"it\ss"`, "it's"},
		{`"path\to"`, `path\to`},
	}
	for _, tt := range tests {
		toks := collectTokens(t, tt.input)
		if len(toks) != 1 || toks[0].Kind != TokenString {
			t.Fatalf("lex(%q): expected a single string token", tt.input)
		}
		if toks[0].Literal != tt.want {
			t.Errorf("lex(%q): got %q, want %q", tt.input, toks[0].Literal, tt.want)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lx := NewLexer(`1 + "oops`)
	if _, err := lx.Consume(); err != nil { // 1
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := lx.Consume(); err != nil { // +
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := lx.Consume()
	if !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("got %v, want ErrUnterminatedString", err)
	}
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("error is not *Error: %T", err)
	}
	pos, ok := lexErr.Position()
	if !ok {
		t.Fatal("error carries no position")
	}
	if pos.Line != 1 || pos.Column != 5 {
		t.Errorf("got position %v, want line 1, column 5", pos)
	}
}

func TestLexerInvalidToken(t *testing.T) {
	lx := NewLexer("1 @ 2")
	if _, err := lx.Consume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := lx.Consume(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
	// a lone pipe is also invalid
	lx = NewLexer("a | b")
	if _, err := lx.Consume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := lx.Consume(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
	// a trailing dot is not part of the number
	lx = NewLexer("1.")
	tok, err := lx.Consume()
	if err != nil || tok == nil || tok.Kind != TokenInt {
		t.Fatalf("got %v, %v, want integer token", tok, err)
	}
	if _, err := lx.Consume(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken for lone dot", err)
	}
}

func TestLexerPeekDoesNotAdvance(t *testing.T) {
	lx := NewLexer("a b")
	first, err := lx.Peek()
	if err != nil || first == nil {
		t.Fatalf("Peek: %v, %v", first, err)
	}
	again, err := lx.Peek()
	if err != nil || again == nil {
		t.Fatalf("Peek: %v, %v", again, err)
	}
	if first.Literal != again.Literal {
		t.Errorf("Peek advanced: %q then %q", first.Literal, again.Literal)
	}
	tok, err := lx.Consume()
	if err != nil || tok == nil || tok.Literal != "a" {
		t.Fatalf("Consume after Peek: %v, %v", tok, err)
	}
}

func TestLexerSaveRestore(t *testing.T) {
	lx := NewLexer("- ( 1")
	lx.Save()
	if tok, _ := lx.Consume(); tok == nil || tok.Kind != TokenMinus {
		t.Fatalf("expected minus, got %v", tok)
	}
	if tok, _ := lx.Consume(); tok == nil || tok.Kind != TokenParenOpen {
		t.Fatalf("expected paren, got %v", tok)
	}
	lx.Restore()
	tok, _ := lx.Consume()
	if tok == nil || tok.Kind != TokenMinus {
		t.Fatalf("Restore did not rewind: got %v", tok)
	}
	// restore without a save is a no-op
	lx.Restore()
	tok, _ = lx.Consume()
	if tok == nil || tok.Kind != TokenParenOpen {
		t.Fatalf("spurious rewind: got %v", tok)
	}
}

func TestLexerPositions(t *testing.T) {
	lx := NewLexer("ab +\ncd")
	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 3, Line: 1, Column: 4},
		{Offset: 5, Line: 2, Column: 1},
	}
	for i, w := range want {
		tok, err := lx.Consume()
		if err != nil || tok == nil {
			t.Fatalf("token %d: %v, %v", i, tok, err)
		}
		if tok.Pos != w {
			t.Errorf("token %d: got %+v, want %+v", i, tok.Pos, w)
		}
	}
}

func TestLexerEOF(t *testing.T) {
	lx := NewLexer("  \t\n ")
	tok, err := lx.Consume()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != nil {
		t.Fatalf("expected nil token at end of input, got %v", tok)
	}
}
