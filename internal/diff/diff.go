// Package diff walks two JSON values side by side and yields a record for
// every member that was added, removed or changed.
//
// Members of an object are visited in the first value's key order, followed
// by the keys only present in the second value in that value's order. Array
// members are visited by index. A changed container's record is yielded
// before the records nested under it.
package diff

import (
	"iter"
	"slices"

	"github.com/mcncl/jdiff/internal/models"
)

// Walker compares JSON values.
type Walker struct {
	includeUnchanged bool
}

// Option configures a Walker.
type Option func(w *Walker)

// IncludeUnchanged makes the walker yield Unchanged records for members that
// are equal on both sides.
func IncludeUnchanged(include bool) Option {
	return func(w *Walker) {
		w.includeUnchanged = include
	}
}

// NewWalker creates a new Walker instance
func NewWalker(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk returns the records describing how b differs from a. Paths in the
// records are rooted at prefix. Neither value is modified.
func (w *Walker) Walk(a, b models.JSONValue, prefix Path) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		w.walk(a, b, prefix, 0, yield)
	}
}

// walk returns false once yield asks to stop.
func (w *Walker) walk(a, b models.JSONValue, path Path, depth int, yield func(Record) bool) bool {
	objA, aIsObject := a.(*models.JSONObject)
	objB, bIsObject := b.(*models.JSONObject)
	arrA, aIsArray := a.(models.JSONArray)
	arrB, bIsArray := b.(models.JSONArray)

	switch {
	case aIsObject || bIsObject:
		// A side that is not an object contributes no keys
		for _, key := range UnionKeys(objA, objB) {
			va, inA := objA.Get(key)
			vb, inB := objB.Get(key)
			if !w.member(path.Append(KeySegment(key)), va, inA, vb, inB, depth, yield) {
				return false
			}
		}
	case aIsArray || bIsArray:
		for i := range max(len(arrA), len(arrB)) {
			inA, inB := i < len(arrA), i < len(arrB)
			var va, vb models.JSONValue
			if inA {
				va = arrA[i]
			}
			if inB {
				vb = arrB[i]
			}
			if !w.member(path.Append(IndexSegment(i)), va, inA, vb, inB, depth, yield) {
				return false
			}
		}
	default:
		if !models.Equal(a, b) {
			return yield(Record{Path: path, Kind: Changed, Depth: depth, Left: a, Right: b})
		}
	}
	return true
}

func (w *Walker) member(path Path, va models.JSONValue, inA bool, vb models.JSONValue, inB bool, depth int, yield func(Record) bool) bool {
	switch {
	case inA && !inB:
		return yield(Record{Path: path, Kind: AddedOnLeft, Depth: depth, Left: va})
	case !inA && inB:
		return yield(Record{Path: path, Kind: AddedOnRight, Depth: depth, Right: vb})
	}

	if models.Equal(va, vb) {
		if w.includeUnchanged {
			return yield(Record{Path: path, Kind: Unchanged, Depth: depth, Left: va, Right: vb})
		}
		return true
	}

	if !yield(Record{Path: path, Kind: Changed, Depth: depth, Left: va, Right: vb}) {
		return false
	}
	// A kind mismatch or a scalar change is a leaf
	if models.SameContainerKind(va, vb) {
		return w.walk(va, vb, path, depth+1, yield)
	}
	return true
}

// UnionKeys returns a's keys in order followed by the keys only b has, in b's
// order. Either object may be nil.
func UnionKeys(a, b *models.JSONObject) []string {
	keys := a.Keys()
	for _, key := range b.Keys() {
		if !a.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Collect buffers every record of seq.
func Collect(seq iter.Seq[Record]) []Record {
	return slices.Collect(seq)
}

// Compare walks a and b from the root with the given options and returns all
// records.
func Compare(a, b models.JSONValue, opts ...Option) []Record {
	return Collect(NewWalker(opts...).Walk(a, b, nil))
}
