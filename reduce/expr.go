package reduce

import (
	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// State is an Expr's normal-form state (§4.H: "{Raw, Reducing, Normal}").
type State uint8

const (
	Raw State = iota
	Reducing
	Normal
)

func (s State) String() string {
	switch s {
	case Raw:
		return "Raw"
	case Reducing:
		return "Reducing"
	case Normal:
		return "Normal"
	default:
		return "State?"
	}
}

type kind uint8

const (
	kName kind = iota
	kApp
	kLambda
	kLiteral
	kAtom
	kExternFn
)

// Expr is a runtime expression graph node (§3 Expr). It is mutated in
// place by the reducer so that sharing one *Expr across several
// substitution sites is observable: once the node reaches its normal
// form every holder of the pointer sees it, with no further indirection.
type Expr struct {
	refs  int32
	state State
	kind  kind

	name intern.Sym // kName

	fn  *Expr // kApp
	arg *Expr // kApp

	lamArg  intern.Sym // kLambda: bound name, always fully qualified
	lamBody *Expr      // kLambda

	lit syntax.Clause // kLiteral: one of Number/Int/Char/String verbatim

	atom     extern.Atom     // kAtom
	externFn extern.ExternFn // kExternFn
}

// FromClause builds a fresh Expr graph from a lowered clause (the output
// of rewrite.Lower). The clause must already be in runtime shape: no
// Placeholder, and no S(...) bracket other than the KApp nodes lowering
// produces.
func FromClause(c syntax.Clause) (*Expr, error) {
	e := &Expr{refs: 1, state: Raw}
	if err := e.setFromClause(c); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Expr) setFromClause(c syntax.Clause) error {
	switch c.Kind {
	case syntax.KName:
		if !c.Resolved {
			return &UnlowerableClause{Kind: c.Kind}
		}
		e.kind, e.name = kName, c.Name
	case syntax.KApp:
		fn, err := FromClause(*c.Fn)
		if err != nil {
			return err
		}
		arg, err := FromClause(*c.AppArg)
		if err != nil {
			return err
		}
		e.kind, e.fn, e.arg = kApp, fn, arg
	case syntax.KLambda:
		if c.Arg == nil || c.Arg.Kind != syntax.KName || !c.Arg.Resolved {
			return &UnlowerableClause{Kind: c.Kind}
		}
		if len(c.Body) != 1 {
			return &UnlowerableClause{Kind: c.Kind}
		}
		body, err := FromClause(c.Body[0])
		if err != nil {
			return err
		}
		e.kind, e.lamArg, e.lamBody = kLambda, c.Arg.Name, body
	case syntax.KNumber, syntax.KInt, syntax.KChar, syntax.KString:
		e.kind, e.lit = kLiteral, c
	case syntax.KAtom:
		a, ok := extern.AsAtom(c)
		if !ok {
			return &UnlowerableClause{Kind: c.Kind}
		}
		e.kind, e.atom = kAtom, a
	case syntax.KExternFn:
		f, ok := extern.AsExternFn(c)
		if !ok {
			return &UnlowerableClause{Kind: c.Kind}
		}
		e.kind, e.externFn = kExternFn, f
	default:
		return &UnlowerableClause{Kind: c.Kind}
	}
	return nil
}

// become copies src's shape into e in place, preserving e's identity (and
// therefore every outstanding pointer to it) while adopting whatever src
// reduced to.
func (e *Expr) become(src *Expr) {
	e.kind = src.kind
	e.name = src.name
	e.fn = src.fn
	e.arg = src.arg
	e.lamArg = src.lamArg
	e.lamBody = src.lamBody
	e.lit = src.lit
	e.atom = src.atom
	e.externFn = src.externFn
}

// Clause synthesizes a syntax.Clause snapshot of e's current shape,
// satisfying extern.ExprRef.
func (e *Expr) Clause() syntax.Clause {
	switch e.kind {
	case kName:
		return syntax.ResolvedName(e.name)
	case kApp:
		return syntax.App(e.fn.Clause(), e.arg.Clause())
	case kLambda:
		return syntax.Lambda(syntax.ResolvedName(e.lamArg), []syntax.Clause{e.lamBody.Clause()})
	case kLiteral:
		return e.lit
	case kAtom:
		return extern.WrapAtom(e.atom)
	case kExternFn:
		return extern.WrapExternFn(e.externFn)
	default:
		return syntax.Clause{}
	}
}

// String renders e's current shape for diagnostics.
func (e *Expr) String() string { return e.Clause().String() }

// State reports e's current normal-form state.
func (e *Expr) State() State { return e.state }

// Retain and Release are the embedder-visible manual reference-counting
// pair (§3: "refs int32 ... Retain/Release"). No finalizer is attached —
// Go's GC already reclaims the pointer graph once every root is
// released; refs exists to track observable sharing identity, not memory
// lifetime.
func (e *Expr) Retain() *Expr {
	e.refs++
	return e
}

func (e *Expr) Release() {
	if e.refs > 0 {
		e.refs--
	}
}

// RefCount reports e's current reference count, mostly for tests.
func (e *Expr) RefCount() int32 { return e.refs }
