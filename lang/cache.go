package lang

import (
	"io"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// exprCache maps source digests to parsed expressions. Expressions are
// immutable, so sharing a cached tree across goroutines is safe.
//
//nolint:gochecknoglobals
var exprCache sync.Map // digest -> *Expression

// ParseCached parses source, memoizing the result keyed by a digest of
// the source text. Repeat parses of the same source return the shared
// expression. Cached expressions carry default options; use
// [ParseString] when parse-time options are needed.
func ParseCached(source string) (*Expression, error) {
	key := strconv.FormatUint(xxh3.HashString(source), 36)
	if cached, ok := exprCache.Load(key); ok {
		return cached.(*Expression), nil
	}
	x, err := ParseString(source)
	if err != nil {
		return nil, err
	}
	actual, _ := exprCache.LoadOrStore(key, x)
	return actual.(*Expression), nil
}

// ClearCache discards all expressions memoized by [ParseCached].
func ClearCache() { exprCache.Clear() }

// ParseReader reads an expression from r and parses it. Reads are
// pipelined through an asynchronous buffer, which helps when r is a
// file or network stream.
func ParseReader(r io.Reader, opts ...Option) (*Expression, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()
	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}
	return ParseString(string(data), opts...)
}
