// Package report classifies every top-level member of two JSON documents
// and orders the result by where each key appears in the second document.
package report

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcncl/jdiff/internal/diff"
	"github.com/mcncl/jdiff/internal/models"
	"github.com/mcncl/jdiff/internal/position"
)

// Status classifies a top-level member.
type Status int

const (
	StatusUnchanged Status = iota
	StatusRemoved
	StatusAdded
	StatusChanged
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusRemoved:
		return "removed"
	case StatusAdded:
		return "added"
	case StatusChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// RootLabel is the label of the single entry produced when the roots are not
// both objects or both arrays.
const RootLabel = "$"

// Entry is one top-level member of the report.
type Entry struct {
	Segment  diff.Segment
	Status   Status
	Position position.Position
	Located  bool
	Left     models.JSONValue
	Right    models.JSONValue
	// Records holds the nested differences of a changed member.
	Records []diff.Record
}

// Label is the text used for the entry in rendered output.
func (e Entry) Label() string {
	return e.Segment.String()
}

// Ordering is the result of comparing the two raw text lengths.
type Ordering string

const (
	Less    Ordering = "Less"
	Equal   Ordering = "Equal"
	Greater Ordering = "Greater"
)

// LengthComparison compares the byte lengths of the two raw documents.
type LengthComparison struct {
	Left  int
	Right int
}

// Ordering reports how Left compares to Right.
func (c LengthComparison) Ordering() Ordering {
	switch {
	case c.Left < c.Right:
		return Less
	case c.Left > c.Right:
		return Greater
	default:
		return Equal
	}
}

// Summary counts entries per status.
type Summary struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

// Report is the classified, ordered comparison of two documents.
type Report struct {
	Length LengthComparison
	// Details are the changed entries in classification order: the first
	// document's key order, then keys only the second document has.
	Details []Entry
	// Entries holds every top-level member, stably sorted by position.
	Entries []Entry
}

// Summary counts the report's entries by status.
func (r *Report) Summary() Summary {
	var s Summary
	for _, e := range r.Entries {
		switch e.Status {
		case StatusAdded:
			s.Added++
		case StatusRemoved:
			s.Removed++
		case StatusChanged:
			s.Changed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// HasDifferences reports whether any entry is not unchanged.
func (r *Report) HasDifferences() bool {
	for _, e := range r.Entries {
		if e.Status != StatusUnchanged {
			return true
		}
	}
	return false
}

// Options configures a Builder.
type Options struct {
	Strategy         position.Strategy
	IncludeUnchanged bool
	Logger           *slog.Logger
}

// Builder produces reports.
type Builder struct {
	opts   Options
	walker *diff.Walker
	logger *slog.Logger
}

// NewBuilder creates a new Builder instance
func NewBuilder(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		opts:   opts,
		walker: diff.NewWalker(diff.IncludeUnchanged(opts.IncludeUnchanged)),
		logger: logger,
	}
}

// Build compares left against right. The only error it returns is for an
// unknown position strategy.
func (b *Builder) Build(left, right *models.Document) (*Report, error) {
	locator, err := position.New(b.opts.Strategy, right)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Length: LengthComparison{Left: len(left.Raw), Right: len(right.Raw)},
	}

	var entries []Entry
	objA, aIsObject := left.Root.(*models.JSONObject)
	objB, bIsObject := right.Root.(*models.JSONObject)
	arrA, aIsArray := left.Root.(models.JSONArray)
	arrB, bIsArray := right.Root.(models.JSONArray)

	switch {
	case aIsObject && bIsObject:
		entries = b.objectEntries(objA, objB, locator)
	case aIsArray && bIsArray:
		entries = b.arrayEntries(arrA, arrB)
	default:
		b.logger.Debug("roots are not both objects or both arrays",
			"left", models.KindOf(left.Root).String(),
			"right", models.KindOf(right.Root).String())
		entries = []Entry{b.rootEntry(left.Root, right.Root)}
	}

	for _, e := range entries {
		if e.Status == StatusChanged {
			rep.Details = append(rep.Details, e)
		}
	}
	rep.Entries = slices.Clone(entries)
	slices.SortStableFunc(rep.Entries, func(x, y Entry) int {
		return position.Compare(x.Position, y.Position)
	})
	return rep, nil
}

func (b *Builder) objectEntries(objA, objB *models.JSONObject, locator position.Locator) []Entry {
	keys := diff.UnionKeys(objA, objB)
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		va, inA := objA.Get(key)
		vb, inB := objB.Get(key)
		e := b.classify(diff.KeySegment(key), va, inA, vb, inB)

		// Removed keys are not looked up; they sort first.
		if e.Status != StatusRemoved {
			if pos, ok := locator.Locate(key); ok {
				e.Position, e.Located = pos, true
			} else {
				b.logger.Debug("key not found in source text", "key", key)
			}
		}
		b.logger.Debug("classified key", "key", key, "status", e.Status.String(), "position", e.Position.String())
		entries = append(entries, e)
	}
	return entries
}

func (b *Builder) arrayEntries(arrA, arrB models.JSONArray) []Entry {
	n := max(len(arrA), len(arrB))
	entries := make([]Entry, 0, n)
	for i := range n {
		var va, vb models.JSONValue
		inA, inB := i < len(arrA), i < len(arrB)
		if inA {
			va = arrA[i]
		}
		if inB {
			vb = arrB[i]
		}
		entries = append(entries, b.classify(diff.IndexSegment(i), va, inA, vb, inB))
	}
	return entries
}

// rootEntry handles roots of differing kinds or scalar roots: the whole
// document is one member, and a kind mismatch is a leaf change.
func (b *Builder) rootEntry(a, bv models.JSONValue) Entry {
	e := Entry{Segment: diff.KeySegment(RootLabel), Status: StatusUnchanged, Left: a, Right: bv}
	if !models.Equal(a, bv) {
		e.Status = StatusChanged
	}
	return e
}

func (b *Builder) classify(seg diff.Segment, va models.JSONValue, inA bool, vb models.JSONValue, inB bool) Entry {
	e := Entry{Segment: seg, Left: va, Right: vb}
	switch {
	case inA && !inB:
		e.Status = StatusRemoved
	case !inA && inB:
		e.Status = StatusAdded
	case models.Equal(va, vb):
		e.Status = StatusUnchanged
	default:
		e.Status = StatusChanged
		// A scalar change or a kind mismatch has no nested records
		if models.SameContainerKind(va, vb) {
			e.Records = diff.Collect(b.walker.Walk(va, vb, diff.Path{seg}))
		}
	}
	return e
}

// String renders the entry for debugging.
func (e Entry) String() string {
	return fmt.Sprintf("%s %s @%s", e.Label(), e.Status, e.Position)
}
