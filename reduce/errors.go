package reduce

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// UnlowerableClause is returned when FromClause is given a clause shape
// that cannot appear in a fully lowered body: an unresolved name, a
// Placeholder, a bracket other than the ones rewrite.Lower produces, or
// a KAtom/KExternFn clause whose Foreign payload doesn't satisfy the
// expected contract.
type UnlowerableClause struct {
	Kind syntax.Kind
}

func (e *UnlowerableClause) Error() string {
	return fmt.Sprintf("reduce: clause of kind %v cannot appear in a lowered expression graph", e.Kind)
}

// UnresolvedName is returned when the reducer reaches a name that has no
// binding in its enclosing lambda scope and no entry in the program's
// top-level symbol table.
type UnresolvedName struct {
	Sym intern.Sym
}

func (e *UnresolvedName) Error() string {
	return fmt.Sprintf("reduce: name #%d has no binding", e.Sym)
}

// ForeignExprRef is returned when an Atom's RequireReduce step hands back
// an extern.ExprRef that did not originate from this package's Expr type,
// so the reducer has no graph node it can step.
type ForeignExprRef struct{}

func (e *ForeignExprRef) Error() string {
	return "reduce: atom requested reduction of a foreign ExprRef"
}

// BudgetExhausted reports that the step budget ran out before the graph
// reached Normal form. ReduceToNormal itself reports this as
// StatusBudgetExhausted with a nil error; callers that treat it as a
// failure (such as the root orchid package's ExitCode) return this type.
// The graph stays resumable: a node reduction stopped in is left in
// state Reducing and a later ReduceToNormal call continues from there.
type BudgetExhausted struct {
	Budget int
}

func (e *BudgetExhausted) Error() string {
	return fmt.Sprintf("reduce: step budget of %d exhausted before normal form", e.Budget)
}
