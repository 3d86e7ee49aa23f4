package diff

import (
	"strconv"
	"strings"

	"github.com/mcncl/jdiff/internal/models"
)

// Kind classifies a single difference record.
type Kind int

const (
	// Unchanged is only produced when the walker includes unchanged members.
	Unchanged Kind = iota
	// AddedOnLeft marks a member present only in the first (older) value.
	AddedOnLeft
	// AddedOnRight marks a member present only in the second value.
	AddedOnRight
	// Changed marks a member present on both sides with unequal values.
	Changed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case AddedOnLeft:
		return "removed"
	case AddedOnRight:
		return "added"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Segment is one step of a path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns the segment for an object key.
func KeySegment(key string) Segment {
	return Segment{Key: key}
}

// IndexSegment returns the segment for an array index.
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// String renders a key as-is and an index as [i].
func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path locates a value from a document root.
type Path []Segment

// Append returns a new path with seg added; p is never modified.
func (p Path) Append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Last returns the final segment, or the zero Segment for the root path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}

// String renders the path as $.key[0].other.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range p {
		if !seg.IsIndex {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Record is a single difference between two values.
type Record struct {
	Path Path
	Kind Kind
	// Depth counts how many containers below the walk's starting value the
	// record's parent is; direct members of the starting value have depth 0.
	Depth int
	Left  models.JSONValue
	Right models.JSONValue
}

// Segment returns the last path segment of the record.
func (r Record) Segment() Segment {
	return r.Path.Last()
}

// IsLeaf reports whether no nested records follow this one.
func (r Record) IsLeaf() bool {
	return r.Kind != Changed || !models.SameContainerKind(r.Left, r.Right)
}
