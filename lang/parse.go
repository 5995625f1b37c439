package lang

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ardnew/forma/log"
)

// Expression is a parsed expression ready for evaluation. The tree is
// immutable, so a single Expression may be evaluated concurrently
// against many environments.
type Expression struct {
	root   Node
	source string
	opts   options
}

// options configures parsing and evaluation. The zero value selects the
// standard function registry and a no-op logger.
type options struct {
	registry *Registry
	logger   log.Logger
}

// Option configures an [Expression]. Options given to ParseString become
// the expression's defaults; options given to [Expression.Evaluate]
// override them for that evaluation only.
type Option func(*options)

// WithRegistry selects the function registry consulted for calls that
// the environment does not resolve.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger selects the logger used during parsing and evaluation.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Root returns the root node of the parsed tree.
func (x *Expression) Root() Node { return x.root }

// Source returns the text the expression was parsed from.
func (x *Expression) Source() string { return x.source }

// ParseString parses source into an evaluable expression. Syntax errors
// include the offending line with a caret marking the column.
func ParseString(source string, opts ...Option) (*Expression, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	p := &parser{lexer: NewLexer(source)}
	root, err := p.parse()
	if err != nil {
		var syn *SyntaxError
		if errors.As(err, &syn) {
			syn.Source = source
		}
		return nil, err
	}
	o.logger.Trace("parsed expression", slog.String("source", source))
	return &Expression{root: root, source: source, opts: o}, nil
}

// parser implements precedence climbing over a [Lexer]. Each method
// parses one precedence level, deferring tighter-binding operators to
// the next method down.
type parser struct {
	lexer *Lexer
}

// parse consumes an entire expression and requires that no tokens
// remain afterward.
func (p *parser) parse() (Node, error) {
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	trailing, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	if trailing != nil {
		return nil, &SyntaxError{Pos: trailing.Pos, Got: trailing}
	}
	return root, nil
}

// unexpected builds a syntax error for tok, which may be nil at end of
// input.
func (p *parser) unexpected(tok *Token, expected ...TokenKind) error {
	pos := p.lexer.Position()
	if tok != nil {
		pos = tok.Pos
	}
	return &SyntaxError{Pos: pos, Got: tok, Expected: expected}
}

// parseExpression parses the loosest level: concatenation.
func (p *parser) parseExpression() (Node, error) {
	lhs, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil || tok.Kind != TokenConcat {
			return lhs, nil
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		lhs = &Concat{LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseDisjunction() (Node, error) {
	lhs, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil || tok.Kind != TokenBoolOr {
			return lhs, nil
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		lhs = &LogicalOr{LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseConjunction() (Node, error) {
	lhs, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil || tok.Kind != TokenBoolAnd {
			return lhs, nil
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		lhs = &LogicalAnd{LHS: lhs, RHS: rhs}
	}
}

// parseNegation handles a leading logical not applied to a single
// operand of the next-tighter level.
func (p *parser) parseNegation() (Node, error) {
	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	if tok != nil && tok.Kind == TokenBoolNot {
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		operand, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &Invert{Operand: operand}, nil
	}
	return p.parseComparison()
}

func comparisonOp(kind TokenKind) (ComparisonOp, bool) {
	switch kind {
	case TokenGreater:
		return CmpGreater, true
	case TokenGreaterEqual:
		return CmpGreaterEqual, true
	case TokenLess:
		return CmpLess, true
	case TokenLessEqual:
		return CmpLessEqual, true
	case TokenValueEquals:
		return CmpEqual, true
	case TokenValueEqualsExact:
		return CmpEqualExact, true
	case TokenNotEquals:
		return CmpNotEqual, true
	case TokenNotEqualsExact:
		return CmpNotEqualExact, true
	default:
		return 0, false
	}
}

func (p *parser) parseComparison() (Node, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return lhs, nil
		}
		op, ok := comparisonOp(tok.Kind)
		if !ok {
			return lhs, nil
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &Comparison{Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseAdditive() (Node, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil || (tok.Kind != TokenPlus && tok.Kind != TokenMinus) {
			return lhs, nil
		}
		op := OpAdd
		if tok.Kind == TokenMinus {
			op = OpSubtract
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &Math{Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	lhs, err := p.parseExponentiation()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return lhs, nil
		}
		var op MathOp
		switch tok.Kind {
		case TokenMultiply:
			op = OpMultiply
		case TokenDivide:
			op = OpDivide
		case TokenModulo:
			op = OpModulo
		default:
			return lhs, nil
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExponentiation()
		if err != nil {
			return nil, err
		}
		lhs = &Math{Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseExponentiation() (Node, error) {
	lhs, err := p.parseParenthesis()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok == nil || tok.Kind != TokenExponent {
			return lhs, nil
		}
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseParenthesis()
		if err != nil {
			return nil, err
		}
		lhs = &Math{Op: OpPower, LHS: lhs, RHS: rhs}
	}
}

// parseParenthesis recognizes a parenthesized subexpression, optionally
// preceded by a sign flip or logical not. Because "-" and "!" can also
// begin a primary, the prefix is consumed speculatively and rewound when
// no opening parenthesis follows.
func (p *parser) parseParenthesis() (Node, error) {
	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	var prefix TokenKind
	consumedPrefix := false
	if tok != nil && (tok.Kind == TokenMinus || tok.Kind == TokenBoolNot) {
		prefix = tok.Kind
		p.lexer.Save()
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		consumedPrefix = true
		tok, err = p.lexer.Peek()
		if err != nil {
			return nil, err
		}
	}
	if tok == nil || tok.Kind != TokenParenOpen {
		if consumedPrefix {
			p.lexer.Restore()
		}
		return p.parsePrimary()
	}
	if _, err := p.lexer.Consume(); err != nil {
		return nil, err
	}
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	closing, err := p.lexer.Consume()
	if err != nil {
		return nil, err
	}
	if closing == nil || closing.Kind != TokenParenClose {
		return nil, p.unexpected(closing, TokenParenClose)
	}
	if consumedPrefix {
		if prefix == TokenMinus {
			return &FlipSign{Operand: inner}, nil
		}
		return &Invert{Operand: inner}, nil
	}
	return inner, nil
}

// parsePrimary parses literals, identifiers, and function calls. A
// leading minus is accepted only before an integer, float, or
// identifier.
func (p *parser) parsePrimary() (Node, error) {
	tok, err := p.lexer.Consume()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, p.unexpected(nil, valueTokenKinds...)
	}
	negated := false
	if tok.Kind == TokenMinus {
		negated = true
		tok, err = p.lexer.Consume()
		if err != nil {
			return nil, err
		}
		if tok == nil || (tok.Kind != TokenInt && tok.Kind != TokenFloat && tok.Kind != TokenIdentifier) {
			return nil, p.unexpected(tok, TokenInt, TokenFloat, TokenIdentifier)
		}
	}
	switch tok.Kind {
	case TokenInt:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, ErrInvalidNumber.Wrap(err).WithPosition(tok.Pos)
		}
		if negated {
			v = -v
		}
		return &IntLiteral{Value: v}, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, ErrInvalidNumber.Wrap(err).WithPosition(tok.Pos)
		}
		if negated {
			v = -v
		}
		return &FloatLiteral{Value: v}, nil
	case TokenString:
		return &StringLiteral{Value: tok.Literal}, nil
	case TokenTrue:
		return &BoolLiteral{Value: true}, nil
	case TokenFalse:
		return &BoolLiteral{Value: false}, nil
	case TokenNull:
		return &NullLiteral{}, nil
	case TokenIdentifier:
		next, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if next != nil && next.Kind == TokenParenOpen {
			call, err := p.parseCall(tok.Literal)
			if err != nil {
				return nil, err
			}
			if negated {
				return &FlipSign{Operand: call}, nil
			}
			return call, nil
		}
		return &Identifier{Name: tok.Literal, Negated: negated}, nil
	default:
		return nil, p.unexpected(tok, valueTokenKinds...)
	}
}

// parseCall parses the argument list of a call to name. The opening
// parenthesis has been peeked but not consumed.
func (p *parser) parseCall(name string) (Node, error) {
	if _, err := p.lexer.Consume(); err != nil {
		return nil, err
	}
	next, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	if next != nil && next.Kind == TokenParenClose {
		if _, err := p.lexer.Consume(); err != nil {
			return nil, err
		}
		return &Call{Name: name}, nil
	}
	var args []Node
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		sep, err := p.lexer.Consume()
		if err != nil {
			return nil, err
		}
		if sep == nil {
			return nil, p.unexpected(nil, TokenComma, TokenParenClose)
		}
		switch sep.Kind {
		case TokenComma:
		case TokenParenClose:
			return &Call{Name: name, Args: args}, nil
		default:
			return nil, p.unexpected(sep, TokenComma, TokenParenClose)
		}
	}
}
