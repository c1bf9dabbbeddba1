package lex

// OperatorSet tells the full lexer which symbolic lexemes are legal
// operators in the current file's scope (§4.B, §4.D layer 2). The lexer
// only needs longest-prefix lookup, so it depends on this narrow interface
// rather than a concrete container — package pipeline implements it over a
// github.com/emirpasic/gods/sets/treeset-backed index (see
// SPEC_FULL.md §4.D), but tests and the preparse pass can use a plain map.
type OperatorSet interface {
	// LongestPrefix returns the longest operator that is a prefix of s,
	// and whether any operator in the set is a prefix of s at all.
	LongestPrefix(s string) (op string, ok bool)
}

// Empty is the operator set used by the preparse pass (§4.D layer 1),
// which must not assume any operator is known yet.
var Empty OperatorSet = emptyOps{}

type emptyOps struct{}

func (emptyOps) LongestPrefix(string) (string, bool) { return "", false }

// MapOperatorSet is a trivial OperatorSet backed by a plain set, handy for
// unit tests that don't want to pull in package pipeline.
type MapOperatorSet map[string]bool

func (m MapOperatorSet) LongestPrefix(s string) (string, bool) {
	best := ""
	for i := len(s); i > 0; i-- {
		if m[s[:i]] {
			best = s[:i]
			break
		}
	}
	return best, best != ""
}
