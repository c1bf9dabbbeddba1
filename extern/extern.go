package extern

import (
	"fmt"

	"github.com/orchid-lang/orchid/syntax"
)

// ExprRef is an opaque reference to a runtime expression node (package
// reduce's Expr). It is abstracted to this one-method interface so that
// package extern — the contract Atoms and ExternFns implement — does not
// need to import package reduce, which in turn implements Atom-calling
// code and must import extern; any concrete *reduce.Expr satisfies this
// interface structurally.
type ExprRef interface {
	// Clause returns the expression's current (possibly non-normal)
	// clause.
	Clause() syntax.Clause
}

// AtomStep is the result of asking an Atom to take one reduction step.
type AtomStep struct {
	kind atomStepKind
	// Replace carries the replacement clause when kind == stepReplace.
	Replace syntax.Clause
	// Require carries the expression the host must reduce first, when
	// kind == stepRequireReduce.
	Require ExprRef
	// Err carries the failure when kind == stepFail.
	Err error
}

type atomStepKind uint8

const (
	stepReplace atomStepKind = iota
	stepRequireReduce
	stepInert
	stepFail
)

// ReplaceWith builds an AtomStep that replaces the node's clause.
func ReplaceWith(c syntax.Clause) AtomStep { return AtomStep{kind: stepReplace, Replace: c} }

// RequireReduce builds an AtomStep asking the host to reduce e first.
func RequireReduce(e ExprRef) AtomStep { return AtomStep{kind: stepRequireReduce, Require: e} }

// Inert builds an AtomStep reporting that the atom made no progress.
func Inert() AtomStep { return AtomStep{kind: stepInert} }

// Fail builds an AtomStep reporting an atom-level failure.
func Fail(err error) AtomStep { return AtomStep{kind: stepFail, Err: err} }

// IsReplace, IsRequireReduce, IsInert and IsFail classify an AtomStep.
func (s AtomStep) IsReplace() bool       { return s.kind == stepReplace }
func (s AtomStep) IsRequireReduce() bool { return s.kind == stepRequireReduce }
func (s AtomStep) IsInert() bool         { return s.kind == stepInert }
func (s AtomStep) IsFail() bool          { return s.kind == stepFail }

// Atom is the contract for an opaque foreign value appearing in the
// expression graph post-macro (§4.I). Implementations must make Reduce
// idempotent per call-identity: sharing means a given Expr node is only
// ever stepped once, so an atom backing an effect (e.g. println) fires at
// most once per node, not once per logical use.
type Atom interface {
	// Reduce takes one reduction step, given an optional argument (nil if
	// the atom is not being applied) and the remaining step budget.
	Reduce(arg ExprRef, budget int) AtomStep
	// Downcast lets a host inspect the atom's concrete payload by a
	// string type tag agreed out-of-band between host and atom author.
	Downcast(typeTag string) (interface{}, bool)
	// CloneDeep produces an independent copy, used when an atom must be
	// duplicated across two sharing classes (e.g. template instantiation
	// of a literal atom embedded in a macro template).
	CloneDeep() Atom
	// String renders a short debug form.
	String() string
}

// ExternFn is the contract for a foreign pure function callable from
// Orchid code (§4.I). Apply must be pure: the reducer is free to elide
// repeated calls with the same (by-identity) argument.
type ExternFn interface {
	Apply(arg ExprRef) syntax.Clause
	// Name returns the function's registered name, for diagnostics.
	Name() string
}

// AsAtom unwraps a syntax.Clause of kind KAtom into its Atom payload.
func AsAtom(c syntax.Clause) (Atom, bool) {
	if c.Kind != syntax.KAtom {
		return nil, false
	}
	a, ok := c.Foreign.(Atom)
	return a, ok
}

// AsExternFn unwraps a syntax.Clause of kind KExternFn into its ExternFn
// payload.
func AsExternFn(c syntax.Clause) (ExternFn, bool) {
	if c.Kind != syntax.KExternFn {
		return nil, false
	}
	f, ok := c.Foreign.(ExternFn)
	return f, ok
}

// WrapAtom builds a KAtom clause from an Atom payload.
func WrapAtom(a Atom) syntax.Clause {
	return syntax.Clause{Kind: syntax.KAtom, Foreign: a}
}

// WrapExternFn builds a KExternFn clause from an ExternFn payload.
func WrapExternFn(f ExternFn) syntax.Clause {
	return syntax.Clause{Kind: syntax.KExternFn, Foreign: f}
}

// ArityMismatch is returned when an ExternFn or Atom is applied in a shape
// it does not support (e.g. a literal is applied as a function).
type ArityMismatch struct {
	Callee string
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch applying %s", e.Callee)
}

// Panic wraps an explicit panic-atom failure (§6 "exit": a non-integer
// normal form, or an explicit panic atom, is a runtime error).
type Panic struct {
	Message string
}

func (e *Panic) Error() string { return "panic: " + e.Message }
