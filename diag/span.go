package diag

import "fmt"

// Span captures a run of input positions, as byte offsets into a source
// file. A span denotes a start position and the position just behind the
// end, so that Len() == To()-From(). Adapted from the teacher's own
// gorgo.Span (originally [2]uint64 over token positions) to [2]int over
// byte offsets, since lex.Error and parse.Error already report spans that
// way.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y).
func (s Span) Len() int {
	return s[1] - s[0]
}

// IsNull returns true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend grows s to cover other as well.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
