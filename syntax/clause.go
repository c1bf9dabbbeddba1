package syntax

import (
	"fmt"
	"strings"

	"github.com/orchid-lang/orchid/intern"
)

// Kind tags the variant a Clause holds. The set is closed per §3 of the
// specification: Name, S, Lambda, the four literal kinds, Placeholder,
// Atom and ExternFn.
type Kind uint8

const (
	KName Kind = iota
	KSeq       // S(Bracket, [Clause])
	KLambda
	KNumber
	KInt
	KChar
	KString
	KPlaceholder
	KAtom
	KExternFn
	KApp // App(Fn, Arg); only appears after §4.G lowering
)

func (k Kind) String() string {
	switch k {
	case KName:
		return "Name"
	case KSeq:
		return "S"
	case KLambda:
		return "Lambda"
	case KNumber:
		return "Number"
	case KInt:
		return "Int"
	case KChar:
		return "Char"
	case KString:
		return "String"
	case KPlaceholder:
		return "Placeholder"
	case KAtom:
		return "Atom"
	case KExternFn:
		return "ExternFn"
	case KApp:
		return "App"
	default:
		return "Kind?"
	}
}

// Bracket distinguishes the three paren kinds a sequence clause may carry.
// Only Round survives macro lowering (§4.G); Square and Curly brackets are
// purely macro-stage syntax.
type Bracket uint8

const (
	Round Bracket = iota
	Square
	Curly
)

func (b Bracket) Open() string {
	switch b {
	case Round:
		return "("
	case Square:
		return "["
	case Curly:
		return "{"
	}
	return "?"
}

func (b Bracket) Close() string {
	switch b {
	case Round:
		return ")"
	case Square:
		return "]"
	case Curly:
		return "}"
	}
	return "?"
}

// PlaceholderKind distinguishes the three placeholder shapes of §3/§4.F.
type PlaceholderKind uint8

const (
	Scalar PlaceholderKind = iota
	VecZero
	VecOne
)

// Placeholder is the payload of a KPlaceholder Clause. It is only legal
// inside patterns and templates.
type Placeholder struct {
	Name intern.Tok
	Kind PlaceholderKind
	Prio int // growth priority; defaults to 0
}

// Clause is the syntactic unit of Orchid: both the tree-parser's output
// node and, pre-lowering, the runtime expression node. It is a tagged
// union realized as a struct with one active field set per Kind, mirroring
// the teacher's Atom{typ, Data} tagging but with fixed fields instead of
// interface{} because the variant set is closed and the matcher switches
// on it in a hot loop.
type Clause struct {
	Kind Kind

	// KName
	Name intern.Sym
	// Name before namespace resolution: a bare Tok local to the module
	// that parsed it. Valid only when Resolved is false.
	LocalName intern.Tok
	Resolved  bool

	// KSeq
	Bracket Bracket
	Seq     []Clause

	// KLambda
	Arg  *Clause // single clause during macro execution; must reduce to KName by lowering
	Body []Clause

	// KNumber / KInt / KChar
	Num  float64
	Int  uint64
	Char rune

	// KString
	Str intern.Tok

	// KPlaceholder
	Placeholder Placeholder

	// KAtom / KExternFn are opaque post-macro payloads; see package
	// extern for the AtomHandle/FnHandle contracts they carry. Stored as
	// interface{} here (rather than a concrete type) because Clause must
	// not import the extern contract package to avoid a cycle (extern's
	// AtomStep.Replace returns a Clause); callers type-assert via the
	// accessors in package extern.
	Foreign interface{}

	// KApp: produced only by package rewrite's lowering step (§4.G),
	// never by the parser or the macro stage.
	Fn     *Clause
	AppArg *Clause
}

// LocalName is a package-level helper building a name clause from a Tok
// without going through a SymTable — used for clauses that are still
// module-local (pre-namespace-resolution).
func LocalName(t intern.Tok) Clause {
	return Clause{Kind: KName, LocalName: t, Resolved: false}
}

// ResolvedName builds a fully-qualified name clause.
func ResolvedName(s intern.Sym) Clause {
	return Clause{Kind: KName, Name: s, Resolved: true}
}

// Seq builds a bracketed sequence clause.
func Seq(b Bracket, seq []Clause) Clause {
	return Clause{Kind: KSeq, Bracket: b, Seq: seq}
}

// Lambda builds a lambda clause. arg is a single clause during macro
// execution and must reduce to a KName clause by the time lowering runs.
func Lambda(arg Clause, body []Clause) Clause {
	return Clause{Kind: KLambda, Arg: &arg, Body: body}
}

// App builds a runtime function-application clause. Only produced by
// package rewrite's lowering step (§4.G): S(Round, [f, x, y]) lowers to
// App(App(f, x), y).
func App(fn, arg Clause) Clause {
	return Clause{Kind: KApp, Fn: &fn, AppArg: &arg}
}

// IsLiteral reports whether c is one of the four literal kinds.
func (c Clause) IsLiteral() bool {
	switch c.Kind {
	case KNumber, KInt, KChar, KString:
		return true
	}
	return false
}

// String renders a debug form of a Clause tree. Resolved names print as
// "#" plus their raw Sym integer and unresolved names as "%" plus their
// Tok integer; no symbol table is consulted.
func (c Clause) String() string {
	var b strings.Builder
	c.write(&b)
	return b.String()
}

func (c Clause) write(b *strings.Builder) {
	switch c.Kind {
	case KName:
		if c.Resolved {
			fmt.Fprintf(b, "#%d", c.Name)
		} else {
			fmt.Fprintf(b, "%%%d", c.LocalName)
		}
	case KSeq:
		b.WriteString(c.Bracket.Open())
		for i, s := range c.Seq {
			if i > 0 {
				b.WriteByte(' ')
			}
			s.write(b)
		}
		b.WriteString(c.Bracket.Close())
	case KLambda:
		b.WriteByte('\\')
		if c.Arg != nil {
			c.Arg.write(b)
		}
		b.WriteByte('.')
		for i, s := range c.Body {
			if i > 0 {
				b.WriteByte(' ')
			}
			s.write(b)
		}
	case KNumber:
		fmt.Fprintf(b, "%g", c.Num)
	case KInt:
		fmt.Fprintf(b, "%d", c.Int)
	case KChar:
		fmt.Fprintf(b, "%q", c.Char)
	case KString:
		fmt.Fprintf(b, "str#%d", c.Str)
	case KPlaceholder:
		switch c.Placeholder.Kind {
		case Scalar:
			fmt.Fprintf(b, "$%d", c.Placeholder.Name)
		case VecZero:
			fmt.Fprintf(b, "..$%d:%d", c.Placeholder.Name, c.Placeholder.Prio)
		case VecOne:
			fmt.Fprintf(b, "...$%d:%d", c.Placeholder.Name, c.Placeholder.Prio)
		}
	case KAtom:
		fmt.Fprintf(b, "<atom %v>", c.Foreign)
	case KExternFn:
		fmt.Fprintf(b, "<fn %v>", c.Foreign)
	case KApp:
		b.WriteByte('(')
		c.Fn.write(b)
		b.WriteByte(' ')
		c.AppArg.write(b)
		b.WriteByte(')')
	}
}

// Equal is structural equality, used by the reducer's determinism tests
// and by literal matching in package match. It does not compare Foreign
// atoms/extern-fns by value — the matcher never compares atoms for
// equality (§4.I), and structural determinism tests only run on pure
// (atom-free) programs.
func Equal(a, b Clause) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KName:
		if a.Resolved != b.Resolved {
			return false
		}
		if a.Resolved {
			return a.Name == b.Name
		}
		return a.LocalName == b.LocalName
	case KSeq:
		if a.Bracket != b.Bracket || len(a.Seq) != len(b.Seq) {
			return false
		}
		for i := range a.Seq {
			if !Equal(a.Seq[i], b.Seq[i]) {
				return false
			}
		}
		return true
	case KLambda:
		if (a.Arg == nil) != (b.Arg == nil) {
			return false
		}
		if a.Arg != nil && !Equal(*a.Arg, *b.Arg) {
			return false
		}
		if len(a.Body) != len(b.Body) {
			return false
		}
		for i := range a.Body {
			if !Equal(a.Body[i], b.Body[i]) {
				return false
			}
		}
		return true
	case KNumber:
		return a.Num == b.Num
	case KInt:
		return a.Int == b.Int
	case KChar:
		return a.Char == b.Char
	case KString:
		return a.Str == b.Str
	case KPlaceholder:
		return a.Placeholder == b.Placeholder
	case KApp:
		return Equal(*a.Fn, *b.Fn) && Equal(*a.AppArg, *b.AppArg)
	default:
		return false // atoms/extern-fns: identity only, never structurally equal here
	}
}

// RequiredNames collects every resolved Name Sym that appears anywhere in
// seq (recursively through S and Lambda). Used by package rules to index a
// rule pattern by the Syms it requires (§4.E's "cheap bloom/hash sweep").
func RequiredNames(seq []Clause, into map[intern.Sym]bool) {
	for _, c := range seq {
		switch c.Kind {
		case KName:
			if c.Resolved {
				into[c.Name] = true
			}
		case KSeq:
			RequiredNames(c.Seq, into)
		case KLambda:
			if c.Arg != nil {
				RequiredNames([]Clause{*c.Arg}, into)
			}
			RequiredNames(c.Body, into)
		case KApp:
			RequiredNames([]Clause{*c.Fn, *c.AppArg}, into)
		}
	}
}
