package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Sentinel errors for all failure families of the package. Use [errors.Is]
// to classify an error returned by parsing or evaluation.
//
//nolint:gochecknoglobals
var (
	ErrInvalidToken       = NewError("invalid token")
	ErrUnterminatedString = NewError("unterminated string literal")
	ErrInvalidNumber      = NewError("invalid numeric literal")
	ErrUnknownVariable    = NewError("unresolved variable")
	ErrUnknownFunction    = NewError("unresolved function")
	ErrInvalidArguments   = NewError("invalid function arguments")
	ErrInvalidOperands    = NewError("invalid operand types")
	ErrNotBoolean         = NewError("value is not coercible to boolean")
	ErrDivisionByZero     = NewError("integer division by zero")
	ErrReadInput          = NewError("failed to read input")
)

// Error is the common error type for lexical and evaluation failures.
// It carries an optional source position and structured attributes
// for logging.
type Error struct {
	msg   string
	err   error
	pos   *Position
	attrs []slog.Attr
}

// NewError returns an error with the given message.
// The result is intended for use as a sentinel wrapped via [Error.Wrap].
func NewError(msg string) *Error { return &Error{msg: msg} }

// WrapError adapts err to *Error so callers can attach attributes or a
// position. An err that already is (or wraps) an *Error is returned
// unchanged; a nil err yields nil.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{err: err}
}

// Error returns the message followed by the wrapped error and position,
// when present.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.msg)
	if e.err != nil {
		if e.msg != "" {
			sb.WriteString(": ")
		}
		sb.WriteString(e.err.Error())
	}
	if e.pos != nil {
		sb.WriteString(" at ")
		sb.WriteString(e.pos.String())
	}
	return sb.String()
}

// Unwrap returns the wrapped error, which may be nil.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.msg == e.msg
}

// LogValue implements [slog.LogValuer] so the error renders its
// attributes when logged.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)
	attrs = append(attrs, slog.String("error", e.Error()))
	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}
	attrs = append(attrs, e.attrs...)
	return slog.GroupValue(attrs...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err
	return &c
}

// Wrapf returns a copy of e wrapping a formatted error.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With returns a copy of e with the given attributes appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(append([]slog.Attr{}, e.attrs...), attrs...)
	return &c
}

// WithPosition returns a copy of e located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := *e
	c.pos = &pos
	return &c
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}
	return *e.pos, true
}

// SyntaxError reports a structural failure during parsing: the parser
// encountered a token (or end of input) where another kind was required.
// When Source is set, the message includes the offending line with a
// caret marking the column.
type SyntaxError struct {
	Pos      Position
	Got      *Token // nil when input ended prematurely
	Expected []TokenKind
	Source   string
}

// Error renders the failure with source context when available.
func (e *SyntaxError) Error() string {
	var sb strings.Builder
	sb.WriteString("syntax error at ")
	sb.WriteString(e.Pos.String())
	sb.WriteString(": ")
	if e.Got == nil {
		sb.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&sb, "unexpected %s %q", e.Got.Kind, e.Got.Literal)
	}
	if snippet := sourceSnippet(e.Source, e.Pos); snippet != "" {
		sb.WriteString("\n")
		sb.WriteString(snippet)
	}
	sb.WriteString("\n\texpected: ")
	if len(e.Expected) == 0 {
		sb.WriteString("end of expression")
	} else {
		for i, kind := range e.Expected {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(kind.String())
		}
	}
	return sb.String()
}

// sourceSnippet formats the line containing pos with a caret underneath
// the offending column. It returns "" when source is empty or pos is out
// of range.
func sourceSnippet(source string, pos Position) string {
	if source == "" || pos.Line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	line := lines[pos.Line-1]
	prefix := fmt.Sprintf("  %d | ", pos.Line)
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
	sb.WriteString("^")
	return sb.String()
}
