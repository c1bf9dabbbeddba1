/*
Package reduce implements the lazy graph-reduction core of the
specification's §4.H: pure call-by-need β-reduction over a runtime
expression graph built from the lowered syntax.Clause shapes package
rewrite produces.

An Expr is "a reference-counted node {clause: Cell<Clause>, norm_state}"
per §3 — realized here as a mutable Go struct whose fields are the active
variant of a small closed kind set (name reference, application, lambda,
literal, atom, extern function) rather than a wrapped syntax.Clause
value, because β-reduction must update a node's shape in place: every
reference to a shared argument Expr is the same *Expr pointer, and once
that pointer's fields are overwritten with its normal form, every site
holding it observes the update without any further graph walk. Clause()
synthesizes a syntax.Clause snapshot from the current fields on demand,
satisfying extern.ExprRef for atoms and extern functions that need to
inspect or force a subexpression.

Substitution (β-reduction's capture-safe argument binding) is allocation-
free on any subterm that doesn't mention the bound name: substitute
returns the original *Expr pointer for an unaffected subterm, so only the
spine containing occurrences of the bound name is rebuilt, and the
rebuilt spine's leaves are the same shared argument Expr everywhere it
occurred — the teacher's own "share the node, mutate it once" idiom (see
terex/eval.go's Environment/Symbol resolution, generalized here from
eager name lookup to an explicit three-state lazy cell) generalized to an
explicit capture-safe form, since §3 already guarantees there is no
shadowing to resolve (bound names are fully qualified Syms by the macro
stage).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package reduce

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.reduce'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.reduce")
}
