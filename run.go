package orchid

import (
	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/reduce"
	"github.com/orchid-lang/orchid/syntax"
)

// Run reduces the top-level constant name to normal form, spending at
// most budget steps (0 uses tree's Config.ReduceBudget). It returns the
// reducer's Status and the resulting Clause; a BudgetExhausted status is
// not an error — the embedder may call Run again on the same name with a
// fresh budget to continue from where reduction stopped, since the
// underlying Expr graph was mutated in place and Tree keeps holding it.
func Run(tree *Tree, name string, budget int) (reduce.Status, syntax.Clause, error) {
	e, ok := tree.Lookup(name)
	if !ok {
		return 0, syntax.Clause{}, &UnknownEntryPoint{Name: name}
	}
	status, _, err := tree.reducer().ReduceToNormal(e, tree.cfg.reduceBudget(budget))
	if err != nil {
		return 0, syntax.Clause{}, err
	}
	return status, e.Clause(), nil
}

// ExitCode runs name to normal form and interprets the result as a
// process exit code per §6 "Exit": a normal-form integer is the exit
// code, anything else (including a non-Normal status) is a runtime
// error.
func ExitCode(tree *Tree, name string, budget int) (int, error) {
	status, clause, err := Run(tree, name, budget)
	if err != nil {
		return 0, err
	}
	if status != reduce.StatusNormal {
		return 0, &reduce.BudgetExhausted{Budget: tree.cfg.reduceBudget(budget)}
	}
	if clause.Kind != syntax.KInt {
		return 0, &NonIntegerExit{Got: clause.Kind.String()}
	}
	return int(clause.Int), nil
}

// Handler resolves an atom's downcast payload, under the type tag it
// was registered for, into the clause reduction should continue with.
type Handler func(payload interface{}) (syntax.Clause, error)

// HandlerSet maps a downcast type tag (the same tag an Atom's Downcast
// method recognizes) to the Handler driving that effect.
type HandlerSet map[string]Handler

// RunHandler reduces name to normal form, and whenever that normal form
// is a KAtom clause recognized by one of handlers' type tags (via
// Atom.Downcast), invokes the handler, wraps the clause it returns into
// a fresh Expr, and resumes reduction with the remaining budget — the
// trampoline that lets effectful APIs be expressed over the pure
// reducer (§6 run_handler). If the final atom matches no handler tag,
// RunHandler returns it as-is rather than treating that as an error: a
// handler set is free to leave some atoms for the embedder to inspect
// directly.
func RunHandler(tree *Tree, name string, budget int, handlers HandlerSet) (reduce.Status, syntax.Clause, error) {
	e, ok := tree.Lookup(name)
	if !ok {
		return 0, syntax.Clause{}, &UnknownEntryPoint{Name: name}
	}
	remaining := tree.cfg.reduceBudget(budget)
	r := tree.reducer()

	for {
		status, left, err := r.ReduceToNormal(e, remaining)
		remaining = left
		if err != nil {
			return 0, syntax.Clause{}, err
		}
		if status != reduce.StatusNormal {
			return status, e.Clause(), nil
		}

		clause := e.Clause()
		if clause.Kind != syntax.KAtom {
			return reduce.StatusNormal, clause, nil
		}

		atom, ok := extern.AsAtom(clause)
		if !ok {
			return reduce.StatusNormal, clause, nil
		}

		next, handled, err := dispatch(atom, handlers)
		if err != nil {
			return 0, syntax.Clause{}, err
		}
		if !handled {
			return reduce.StatusNormal, clause, nil
		}

		resumed, err := reduce.FromClause(next)
		if err != nil {
			return 0, syntax.Clause{}, err
		}
		e = resumed
		tracer().Debugf("orchid: run_handler resumed with %s, %d budget remaining", next.String(), remaining)
	}
}

func dispatch(atom extern.Atom, handlers HandlerSet) (syntax.Clause, bool, error) {
	for tag, handler := range handlers {
		if payload, ok := atom.Downcast(tag); ok {
			clause, err := handler(payload)
			return clause, true, err
		}
	}
	return syntax.Clause{}, false, nil
}
