package intern

import (
	"strconv"
	"strings"
	"sync"

	"github.com/cnf/structhash"
)

// Sym is an interned handle for a non-empty sequence of Toks, representing
// a fully qualified path such as std::list::cons. Equality of Syms implies
// equality of the underlying Tok sequences.
type Sym int32

// SymTable interns []Tok sequences into Syms. It is kept as a second,
// independent rank from Interner (rather than folded into it) because Sym
// keys are structural (a hash of a slice) rather than a flat byte run —
// the same split the teacher draws between its token-level and tree-level
// identity.
type SymTable struct {
	mu      sync.RWMutex
	byHash  map[string]Sym
	paths   [][]Tok
	in      *Interner
}

// NewSymTable creates an empty SymTable backed by the given Interner for
// resolving the individual path segments back to names.
func NewSymTable(in *Interner) *SymTable {
	return &SymTable{
		byHash: make(map[string]Sym),
		paths:  [][]Tok{nil}, // Sym 0 unused
		in:     in,
	}
}

func hashPath(path []Tok) string {
	h, err := structhash.Hash(struct{ Path []Tok }{Path: path}, 1)
	if err != nil {
		// structhash only fails on unhashable types; []Tok is always
		// hashable, so this would indicate a programming error.
		panic(err)
	}
	return h
}

// Intern exchanges a non-empty Tok path for a stable Sym. Intern is
// idempotent: the same path always yields the same Sym.
func (st *SymTable) Intern(path []Tok) Sym {
	if len(path) == 0 {
		panic("intern: empty Sym path")
	}
	key := hashPath(path)
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.byHash[key]; ok {
		return s
	}
	cp := make([]Tok, len(path))
	copy(cp, path)
	s := Sym(len(st.paths))
	st.paths = append(st.paths, cp)
	st.byHash[key] = s
	return s
}

// InternQualified interns a Sym by appending suffix toks to the path of
// prefix (prefix may be zero, meaning "no prefix").
func (st *SymTable) InternQualified(prefix Sym, suffix []Tok) Sym {
	var path []Tok
	if prefix != 0 {
		path = append(path, st.Path(prefix)...)
	}
	path = append(path, suffix...)
	return st.Intern(path)
}

// Path returns the Tok sequence a Sym was interned from.
func (st *SymTable) Path(s Sym) []Tok {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if int(s) <= 0 || int(s) >= len(st.paths) {
		return nil
	}
	return st.paths[s]
}

// String renders a Sym as a "::"-joined path, e.g. "std::list::cons".
func (st *SymTable) String(s Sym) string {
	path := st.Path(s)
	parts := make([]string, len(path))
	for i, t := range path {
		name, ok := st.in.ResolveString(KindName, t)
		if !ok {
			name = "?" + strconv.Itoa(int(t))
		}
		parts[i] = name
	}
	return strings.Join(parts, "::")
}

// Len returns the number of Toks in the path of s, or 0 if s is unknown.
func (st *SymTable) Len(s Sym) int {
	return len(st.Path(s))
}

// HasPrefix reports whether sym's path starts with prefix's path — the
// basic operation behind wildcard import expansion and the non-self-import
// invariant of §3.
func (st *SymTable) HasPrefix(sym, prefix Sym) bool {
	a, b := st.Path(sym), st.Path(prefix)
	if len(b) > len(a) {
		return false
	}
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
