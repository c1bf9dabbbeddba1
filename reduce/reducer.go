package reduce

import (
	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/intern"
)

// Status is the outcome of a ReduceToNormal call.
type Status uint8

const (
	StatusNormal Status = iota
	StatusBudgetExhausted
)

func (s Status) String() string {
	if s == StatusNormal {
		return "Normal"
	}
	return "BudgetExhausted"
}

// Reducer runs leftmost-outermost β-reduction (§4.H) over Expr graphs,
// resolving free Names against a fixed top-level symbol table (the
// spec's "Tree (symbol table): Map<Sym, Expr>" — named program here to
// avoid colliding with package pipeline's pre-macro module forest, which
// is also called Tree).
type Reducer struct {
	program map[intern.Sym]*Expr
}

// NewReducer returns a Reducer resolving free names against program.
func NewReducer(program map[intern.Sym]*Expr) *Reducer {
	return &Reducer{program: program}
}

// ReduceToNormal reduces e to full normal form, spending at most budget
// steps (one step per β-reduction, extern call, atom step, or top-level
// name resolution). It
// returns StatusBudgetExhausted, not an error, when the budget runs out
// first; e is left exactly at the point reached, state Reducing, safe to
// resume with a fresh budget in a later call. remaining reports the
// unspent budget on a normal-form result.
func (r *Reducer) ReduceToNormal(e *Expr, budget int) (Status, int, error) {
	remaining := budget
	status, err := r.reduce(e, &remaining)
	return status, remaining, err
}

// reduce drives e to full normal form in place, recursing into
// sub-expressions once the head position can make no further progress.
func (r *Reducer) reduce(e *Expr, budget *int) (Status, error) {
	if e.state == Normal {
		return StatusNormal, nil
	}
	e.state = Reducing

	status, err := r.whnf(e, budget)
	if err != nil || status == StatusBudgetExhausted {
		return status, err
	}

	switch e.kind {
	case kApp:
		if status, err := r.reduce(e.fn, budget); err != nil || status == StatusBudgetExhausted {
			return status, err
		}
		if status, err := r.reduce(e.arg, budget); err != nil || status == StatusBudgetExhausted {
			return status, err
		}
	case kLambda:
		if status, err := r.reduce(e.lamBody, budget); err != nil || status == StatusBudgetExhausted {
			return status, err
		}
	}

	e.state = Normal
	return StatusNormal, nil
}

// whnf drives e to weak head normal form: a literal, a lambda, an atom,
// or an extern function. An application whose head reduces to something
// not callable (a literal) is an ArityMismatch error. It does not descend
// into a lambda's body or an application's argument; reduce does that once
// the head can progress no further.
func (r *Reducer) whnf(e *Expr, budget *int) (Status, error) {
	for {
		switch e.kind {
		case kName:
			target, ok := r.program[e.name]
			if !ok {
				return 0, &UnresolvedName{Sym: e.name}
			}
			if *budget <= 0 {
				return StatusBudgetExhausted, nil
			}
			*budget--
			if status, err := r.whnf(target, budget); err != nil || status == StatusBudgetExhausted {
				return status, err
			}
			e.become(target)
			tracer().Debugf("reduce: resolved name #%d", e.name)
			continue

		case kApp:
			if status, err := r.whnf(e.fn, budget); err != nil || status == StatusBudgetExhausted {
				return status, err
			}

			switch e.fn.kind {
			case kLambda:
				if *budget <= 0 {
					return StatusBudgetExhausted, nil
				}
				*budget--
				body := substitute(e.fn.lamBody, e.fn.lamArg, e.arg)
				e.become(body)
				tracer().Debugf("reduce: beta step, %d clauses remain in budget", *budget)
				continue

			case kExternFn:
				if *budget <= 0 {
					return StatusBudgetExhausted, nil
				}
				*budget--
				result := e.fn.externFn.Apply(e.arg)
				next, err := FromClause(result)
				if err != nil {
					return 0, err
				}
				e.become(next)
				continue

			case kAtom:
				status, err := r.applyAtom(e, budget)
				if err != nil || status == StatusBudgetExhausted {
					return status, err
				}
				continue

			default:
				return 0, &extern.ArityMismatch{Callee: e.fn.String()}
			}

		default:
			return StatusNormal, nil
		}
	}
}

// applyAtom drives one application of an Atom's Reduce contract to
// completion, handling the RequireReduce/Replace/Inert/Fail variants of
// AtomStep, and writes the outcome into e in place.
func (r *Reducer) applyAtom(e *Expr, budget *int) (Status, error) {
	atom := e.fn.atom
	arg := e.arg
	for {
		if *budget <= 0 {
			return StatusBudgetExhausted, nil
		}
		step := atom.Reduce(arg, *budget)
		*budget--

		switch {
		case step.IsReplace():
			next, err := FromClause(step.Replace)
			if err != nil {
				return 0, err
			}
			e.become(next)
			return StatusNormal, nil

		case step.IsRequireReduce():
			target, ok := step.Require.(*Expr)
			if !ok {
				return 0, &ForeignExprRef{}
			}
			status, err := r.reduce(target, budget)
			if err != nil || status == StatusBudgetExhausted {
				return status, err
			}
			continue

		case step.IsInert():
			return 0, &extern.ArityMismatch{Callee: atom.String()}

		case step.IsFail():
			return 0, step.Err

		default:
			return 0, &extern.ArityMismatch{Callee: atom.String()}
		}
	}
}
