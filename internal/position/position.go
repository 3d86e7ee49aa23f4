// Package position maps top-level JSON keys to a (row, column) location in
// the raw document text. Locations are only used to order the report.
package position

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/jdiff/internal/errors"
	"github.com/mcncl/jdiff/internal/models"
)

// Position is a 1-based row and column in a source text.
type Position struct {
	Row    int
	Column int
}

// Sentinel is used for keys that could not be located. It sorts before
// every real position.
var Sentinel = Position{}

// Compare orders positions row-major, then by column.
func Compare(a, b Position) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Column - b.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// FromOffset converts a byte offset in source into a Position. Row is one
// more than the number of newlines before offset; Column counts bytes from
// the start of that line, starting at 1.
func FromOffset(source string, offset int) Position {
	before := source[:offset]
	return Position{
		Row:    strings.Count(before, "\n") + 1,
		Column: offset - strings.LastIndexByte(before, '\n'),
	}
}

// Locator finds where a top-level key first appears.
type Locator interface {
	Locate(key string) (Position, bool)
}

// TextLocator searches the raw text for the quoted key. It knows nothing
// about JSON structure, so a string value equal to the key, or the same key
// in a nested object, can match first.
type TextLocator struct {
	source string
}

// NewTextLocator returns a TextLocator over source.
func NewTextLocator(source string) *TextLocator {
	return &TextLocator{source: source}
}

// Locate returns the position of the first `"key"` in the source.
func (l *TextLocator) Locate(key string) (Position, bool) {
	for _, pattern := range patterns(key) {
		if p := strings.Index(l.source, pattern); p >= 0 {
			return FromOffset(l.source, p), true
		}
	}
	return Sentinel, false
}

// patterns returns the literal quoted key, followed by its JSON-escaped form
// when that differs (keys containing quotes, backslashes or control runes).
func patterns(key string) []string {
	literal := `"` + key + `"`
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(key); err != nil {
		return []string{literal}
	}
	escaped := strings.TrimSuffix(buf.String(), "\n")
	if escaped == literal {
		return []string{literal}
	}
	return []string{literal, escaped}
}

// SpanLocator uses the key offsets recorded by the parser, so matches are
// always real root keys.
type SpanLocator struct {
	source  string
	offsets map[string]int
}

// NewSpanLocator returns a SpanLocator for doc.
func NewSpanLocator(doc *models.Document) *SpanLocator {
	return &SpanLocator{source: doc.Raw, offsets: doc.KeyOffsets}
}

// Locate returns the recorded position of key.
func (l *SpanLocator) Locate(key string) (Position, bool) {
	offset, ok := l.offsets[key]
	if !ok || offset < 0 || offset > len(l.source) {
		return Sentinel, false
	}
	return FromOffset(l.source, offset), true
}

// Strategy names a Locator implementation.
type Strategy string

const (
	StrategyText Strategy = "text"
	StrategySpan Strategy = "span"
)

// Strategies lists the accepted strategy names.
func Strategies() []Strategy {
	return []Strategy{StrategyText, StrategySpan}
}

// New returns the Locator for strategy over doc. An empty strategy selects
// StrategyText.
func New(strategy Strategy, doc *models.Document) (Locator, error) {
	switch strategy {
	case "", StrategyText:
		return NewTextLocator(doc.Raw), nil
	case StrategySpan:
		return NewSpanLocator(doc), nil
	default:
		return nil, errors.NewDiffError(
			fmt.Sprintf("unknown position strategy '%s'", strategy),
			errors.ErrInvalidOption,
		)
	}
}
