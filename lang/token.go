package lang

import "strconv"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenInt TokenKind = iota
	TokenFloat
	TokenString
	TokenIdentifier
	TokenTrue
	TokenFalse
	TokenNull
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenModulo
	TokenExponent
	TokenParenOpen
	TokenParenClose
	TokenComma
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual
	TokenValueEquals
	TokenValueEqualsExact
	TokenNotEquals
	TokenNotEqualsExact
	TokenBoolNot
	TokenBoolAnd
	TokenBoolOr
	TokenConcat
)

// String returns a human-readable name for the token kind, used in
// syntax error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenInt:
		return "integer"
	case TokenFloat:
		return "float"
	case TokenString:
		return "string"
	case TokenIdentifier:
		return "identifier"
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	case TokenNull:
		return "null"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenMultiply:
		return "'*'"
	case TokenDivide:
		return "'/'"
	case TokenModulo:
		return "'%'"
	case TokenExponent:
		return "'^'"
	case TokenParenOpen:
		return "'('"
	case TokenParenClose:
		return "')'"
	case TokenComma:
		return "','"
	case TokenGreater:
		return "'>'"
	case TokenGreaterEqual:
		return "'>='"
	case TokenLess:
		return "'<'"
	case TokenLessEqual:
		return "'<='"
	case TokenValueEquals:
		return "'=='"
	case TokenValueEqualsExact:
		return "'==='"
	case TokenNotEquals:
		return "'!='"
	case TokenNotEqualsExact:
		return "'!=='"
	case TokenBoolNot:
		return "'!'"
	case TokenBoolAnd:
		return "'&&'"
	case TokenBoolOr:
		return "'||'"
	case TokenConcat:
		return "'&'"
	default:
		return "unknown"
	}
}

// valueTokenKinds lists the kinds that may begin a primary expression.
//
//nolint:gochecknoglobals
var valueTokenKinds = []TokenKind{
	TokenInt,
	TokenFloat,
	TokenString,
	TokenIdentifier,
	TokenTrue,
	TokenFalse,
	TokenNull,
}

// Position locates a token within its source text.
// Offset is a byte offset; Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as "line L, column C".
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// Token is a single lexical unit produced by the Lexer.
// Tokens are immutable once produced; Pos is used only for error reporting.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}
