package lang

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := ErrUnknownVariable.
		Wrapf("%q", "count").
		WithPosition(Position{Offset: 4, Line: 2, Column: 5})
	msg := err.Error()
	if !strings.Contains(msg, "unresolved variable") {
		t.Errorf("message lacks sentinel text: %s", msg)
	}
	if !strings.Contains(msg, `"count"`) {
		t.Errorf("message lacks wrapped detail: %s", msg)
	}
	if !strings.Contains(msg, "line 2, column 5") {
		t.Errorf("message lacks position: %s", msg)
	}
	if !errors.Is(err, ErrUnknownVariable) {
		t.Error("wrapped error no longer matches its sentinel")
	}
}

func TestErrorSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrUnknownVariable, ErrUnknownFunction) {
		t.Error("distinct sentinels compare equal")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}
	plain := errors.New("plain failure")
	wrapped := WrapError(plain).With(slog.String("command", "eval"))
	if wrapped.Error() != "plain failure" {
		t.Errorf("got %q", wrapped.Error())
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapped error lost its cause")
	}
	// already-wrapped errors pass through unchanged
	sentinel := ErrDivisionByZero.WithPosition(Position{Line: 1, Column: 3})
	if WrapError(sentinel) != sentinel {
		t.Error("WrapError should return an existing *Error as is")
	}
}

func TestSourceSnippet(t *testing.T) {
	snippet := sourceSnippet("1 + * 2", Position{Offset: 4, Line: 1, Column: 5})
	want := "  1 | 1 + * 2\n" + strings.Repeat(" ", 6+4) + "^"
	if snippet != want {
		t.Errorf("got:\n%s\nwant:\n%s", snippet, want)
	}
	if sourceSnippet("", Position{Line: 1, Column: 1}) != "" {
		t.Error("empty source should yield no snippet")
	}
	if sourceSnippet("x", Position{Line: 9, Column: 1}) != "" {
		t.Error("out-of-range line should yield no snippet")
	}
}
