package grep

import (
	"cmp"
	"slices"
)

// Role tags a captured line. The numeric order matters: sorting by
// (index, role) ranks PRE < MATCH < POST.
type Role int

const (
	// Pre is before-context.
	Pre Role = -1
	// Match is a line the pattern matched.
	Match Role = 0
	// Post is after-context.
	Post Role = 1
)

// Separator returns the character printed between the line number and the
// line: '-' for Pre, ':' for Match and '+' for Post.
func (r Role) Separator() byte {
	switch r {
	case Pre:
		return '-'
	case Post:
		return '+'
	default:
		return ':'
	}
}

func (r Role) String() string {
	switch r {
	case Pre:
		return "PRE"
	case Post:
		return "POST"
	default:
		return "MATCH"
	}
}

// Span is a [Start, End) byte range of a match within a line.
type Span struct {
	Start int
	End   int
}

// ContextLine is one captured line of a file.
type ContextLine struct {
	// Index is the 0-based line number within the stream.
	Index int
	Role  Role
	// Line holds the raw bytes including any line terminator.
	Line []byte
	// Spans is set only for Match lines.
	Spans []Span
}

// Uniquify collapses lines captured more than once into a single entry per
// index. A Match always wins; otherwise the entry that sorts last by
// (index, role) is kept, which prefers Post context from an earlier match
// over Pre context from a later one. The result is sorted by index and
// Uniquify is idempotent.
func Uniquify(lines []ContextLine) []ContextLine {
	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b ContextLine) int {
		if c := cmp.Compare(a.Index, b.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.Role, b.Role)
	})

	unique := make([]ContextLine, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Index == sorted[start].Index {
			end++
		}
		group := sorted[start:end]
		chosen := group[len(group)-1]
		for _, cl := range group {
			if cl.Role == Match {
				chosen = cl
				break
			}
		}
		unique = append(unique, chosen)
		start = end
	}
	return unique
}
