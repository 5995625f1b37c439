package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCachedReturnsSharedExpression(t *testing.T) {
	ClearCache()
	first, err := ParseCached("1 + 2")
	if err != nil {
		t.Fatalf("ParseCached: %v", err)
	}
	second, err := ParseCached("1 + 2")
	if err != nil {
		t.Fatalf("ParseCached: %v", err)
	}
	if first != second {
		t.Error("repeat parse did not return the cached expression")
	}
	ClearCache()
	third, err := ParseCached("1 + 2")
	if err != nil {
		t.Fatalf("ParseCached: %v", err)
	}
	if third == first {
		t.Error("ClearCache did not evict the expression")
	}
}

func TestParseCachedErrorsAreNotCached(t *testing.T) {
	ClearCache()
	if _, err := ParseCached("1 +"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ParseCached("1 +"); err == nil {
		t.Fatal("expected error on repeat parse")
	}
}

func TestParseReader(t *testing.T) {
	x, err := ParseReader(strings.NewReader("2 * 3"))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	got, err := x.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !ExactEqual(got, NewInt(6)) {
		t.Errorf("got %s, want 6", got.AsString())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseReaderFailure(t *testing.T) {
	_, err := ParseReader(failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Fatalf("got %v, want ErrReadInput", err)
	}
}
