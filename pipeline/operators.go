package pipeline

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax/lex"
)

// OperatorIndex is the per-file legal-operator set of §4.D layer 2,
// backed by a github.com/emirpasic/gods/sets/treeset so lookups are over
// a sorted structure the way the teacher's LR closure sets are (see
// lr/tables.go), rather than a bare Go map. It implements
// syntax/lex.OperatorSet so the lexer never needs to know this package
// exists.
type OperatorIndex struct {
	set *treeset.Set // of string lexemes
}

// NewOperatorIndex builds an empty operator index.
func NewOperatorIndex() *OperatorIndex {
	return &OperatorIndex{set: treeset.NewWith(utils.StringComparator)}
}

// Add records a legal operator lexeme.
func (idx *OperatorIndex) Add(lexeme string) {
	idx.set.Add(lexeme)
}

// AddTok records a legal operator by its interned text.
func (idx *OperatorIndex) AddTok(in *intern.Interner, t intern.Tok) {
	if s, ok := in.ResolveString(intern.KindName, t); ok {
		idx.set.Add(s)
	}
}

// LongestPrefix implements syntax/lex.OperatorSet.
func (idx *OperatorIndex) LongestPrefix(s string) (string, bool) {
	for i := len(s); i > 0; i-- {
		if idx.set.Contains(s[:i]) {
			return s[:i], true
		}
	}
	return "", false
}

// Union merges other's lexemes into idx (used to fold a wildcard import's
// entire exported name set into the importing file's operator scope).
func (idx *OperatorIndex) Union(other *OperatorIndex) {
	for _, v := range other.set.Values() {
		idx.set.Add(v)
	}
}

var _ lex.OperatorSet = (*OperatorIndex)(nil)
