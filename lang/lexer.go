package lang

import (
	"log/slog"
	"strings"
)

// Lexer produces tokens from an expression source string on demand.
// A single saved state supports the speculative lookahead the parser
// needs to disambiguate prefix operators; see [Lexer.Save] and
// [Lexer.Restore].
type Lexer struct {
	input string
	cur   cursor
	saved *cursor
}

// cursor is a resumable scan state within the input.
type cursor struct {
	pos  int // byte offset
	line int // 1-based
	col  int // 1-based
}

func (c cursor) position() Position {
	return Position{Offset: c.pos, Line: c.line, Column: c.col}
}

// NewLexer returns a lexer over input positioned at its first token.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, cur: cursor{pos: 0, line: 1, col: 1}}
}

// Position returns the current scan position, past any tokens already
// consumed.
func (l *Lexer) Position() Position { return l.cur.position() }

// Peek returns the next token without consuming it.
// It returns (nil, nil) at end of input.
func (l *Lexer) Peek() (*Token, error) {
	tok, _, err := l.scan(l.cur)
	return tok, err
}

// Consume returns the next token and advances past it.
// It returns (nil, nil) at end of input.
func (l *Lexer) Consume() (*Token, error) {
	tok, next, err := l.scan(l.cur)
	if err != nil {
		return nil, err
	}
	l.cur = next
	return tok, nil
}

// Save records the current state so a later [Lexer.Restore] can rewind
// to it. Only one state is retained; saving again overwrites it.
func (l *Lexer) Save() {
	c := l.cur
	l.saved = &c
}

// Restore rewinds to the most recently saved state and discards it.
// It is a no-op when no state is saved.
func (l *Lexer) Restore() {
	if l.saved != nil {
		l.cur = *l.saved
		l.saved = nil
	}
}

// advance moves the cursor past one byte, tracking line and column.
func (l *Lexer) advance(c cursor) cursor {
	if c.pos < len(l.input) && l.input[c.pos] == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	c.pos++
	return c
}

func (l *Lexer) skipSpace(c cursor) cursor {
	for c.pos < len(l.input) {
		switch l.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c = l.advance(c)
		default:
			return c
		}
	}
	return c
}

// scan reads the token beginning at c, returning it along with the
// cursor positioned after it. At end of input the token is nil.
func (l *Lexer) scan(c cursor) (*Token, cursor, error) {
	c = l.skipSpace(c)
	if c.pos >= len(l.input) {
		return nil, c, nil
	}
	start := c
	ch := l.input[c.pos]
	switch {
	case isDigit(ch) || (ch == '.' && c.pos+1 < len(l.input) && isDigit(l.input[c.pos+1])):
		return l.scanNumber(c)
	case ch == '"':
		return l.scanString(c)
	case isLetter(ch):
		return l.scanIdentifier(c)
	default:
		tok, next, err := l.scanOperator(c)
		if err != nil {
			return nil, c, err
		}
		tok.Pos = start.position()
		return tok, next, nil
	}
}

func (l *Lexer) scanNumber(c cursor) (*Token, cursor, error) {
	start := c
	kind := TokenInt
	for c.pos < len(l.input) && isDigit(l.input[c.pos]) {
		c = l.advance(c)
	}
	// A dot continues the number only when a digit follows; otherwise
	// the digits scanned so far stand alone as an integer.
	if c.pos+1 < len(l.input) && l.input[c.pos] == '.' && isDigit(l.input[c.pos+1]) {
		kind = TokenFloat
		c = l.advance(c) // '.'
		for c.pos < len(l.input) && isDigit(l.input[c.pos]) {
			c = l.advance(c)
		}
	}
	tok := &Token{Kind: kind, Literal: l.input[start.pos:c.pos], Pos: start.position()}
	return tok, c, nil
}

// scanString reads a double-quoted string literal. The escape sequence
// \" yields a double quote and \s yields a single quote; any other
// backslash is kept verbatim.
func (l *Lexer) scanString(c cursor) (*Token, cursor, error) {
	start := c
	c = l.advance(c) // opening quote
	var sb strings.Builder
	for {
		if c.pos >= len(l.input) {
			return nil, c, ErrUnterminatedString.WithPosition(start.position())
		}
		ch := l.input[c.pos]
		switch ch {
		case '"':
			c = l.advance(c)
			tok := &Token{Kind: TokenString, Literal: sb.String(), Pos: start.position()}
			return tok, c, nil
		case '\\':
			if c.pos+1 < len(l.input) {
				switch l.input[c.pos+1] {
				case '"':
					sb.WriteByte('"')
					c = l.advance(l.advance(c))
					continue
				case 's':
					sb.WriteByte('\'')
					c = l.advance(l.advance(c))
					continue
				}
			}
			sb.WriteByte(ch)
			c = l.advance(c)
		default:
			sb.WriteByte(ch)
			c = l.advance(c)
		}
	}
}

func (l *Lexer) scanIdentifier(c cursor) (*Token, cursor, error) {
	start := c
	for c.pos < len(l.input) && isIdentifierByte(l.input[c.pos]) {
		c = l.advance(c)
	}
	lit := l.input[start.pos:c.pos]
	kind := TokenIdentifier
	switch lit {
	case "true":
		kind = TokenTrue
	case "false":
		kind = TokenFalse
	case "null":
		kind = TokenNull
	}
	tok := &Token{Kind: kind, Literal: lit, Pos: start.position()}
	return tok, c, nil
}

// scanOperator matches the longest operator at the cursor.
func (l *Lexer) scanOperator(c cursor) (*Token, cursor, error) {
	rest := l.input[c.pos:]
	peek := func(s string) bool { return strings.HasPrefix(rest, s) }
	emit := func(kind TokenKind, lit string) (*Token, cursor, error) {
		next := c
		for range len(lit) {
			next = l.advance(next)
		}
		return &Token{Kind: kind, Literal: lit}, next, nil
	}
	switch rest[0] {
	case '+':
		return emit(TokenPlus, "+")
	case '-':
		return emit(TokenMinus, "-")
	case '*':
		return emit(TokenMultiply, "*")
	case '/':
		return emit(TokenDivide, "/")
	case '%':
		return emit(TokenModulo, "%")
	case '^':
		return emit(TokenExponent, "^")
	case '(':
		return emit(TokenParenOpen, "(")
	case ')':
		return emit(TokenParenClose, ")")
	case ',':
		return emit(TokenComma, ",")
	case '>':
		if peek(">=") {
			return emit(TokenGreaterEqual, ">=")
		}
		return emit(TokenGreater, ">")
	case '<':
		if peek("<=") {
			return emit(TokenLessEqual, "<=")
		}
		return emit(TokenLess, "<")
	case '=':
		if peek("===") {
			return emit(TokenValueEqualsExact, "===")
		}
		if peek("==") {
			return emit(TokenValueEquals, "==")
		}
	case '!':
		if peek("!==") {
			return emit(TokenNotEqualsExact, "!==")
		}
		if peek("!=") {
			return emit(TokenNotEquals, "!=")
		}
		return emit(TokenBoolNot, "!")
	case '&':
		if peek("&&") {
			return emit(TokenBoolAnd, "&&")
		}
		return emit(TokenConcat, "&")
	case '|':
		if peek("||") {
			return emit(TokenBoolOr, "||")
		}
	}
	return nil, c, ErrInvalidToken.
		WithPosition(c.position()).
		With(slog.String("input", string(rest[0])))
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentifierByte(ch byte) bool { return isLetter(ch) || isDigit(ch) }
