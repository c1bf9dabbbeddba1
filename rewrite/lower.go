package rewrite

import "github.com/orchid-lang/orchid/syntax"

// Lower folds a macro-normal-form clause sequence into the single runtime
// expression the reducer consumes (§4.G): juxtaposed clauses fold
// left-to-right into an App chain, S(Round, [f, x, y]) becomes
// App(App(f, x), y), and Lambda bodies fold the same way their enclosing
// sequence does. A Square or Curly bracket surviving to this point is a
// lowering error — the macro system is expected to have eliminated them.
func Lower(seq []syntax.Clause) (syntax.Clause, error) {
	lowered := make([]syntax.Clause, len(seq))
	for i, c := range seq {
		l, err := lowerOne(c)
		if err != nil {
			return syntax.Clause{}, err
		}
		lowered[i] = l
	}
	return fold(lowered)
}

func lowerOne(c syntax.Clause) (syntax.Clause, error) {
	switch c.Kind {
	case syntax.KSeq:
		if c.Bracket != syntax.Round {
			return syntax.Clause{}, &NonRoundBracketAtLowering{Bracket: c.Bracket}
		}
		return Lower(c.Seq)
	case syntax.KLambda:
		var arg syntax.Clause
		if c.Arg != nil {
			a, err := lowerOne(*c.Arg)
			if err != nil {
				return syntax.Clause{}, err
			}
			arg = a
		}
		// The lowered body is a single folded expression; it is kept in
		// Clause.Body as a length-1 slice rather than adding a dedicated
		// field, since package reduce only ever needs Body[0] here.
		body, err := Lower(c.Body)
		if err != nil {
			return syntax.Clause{}, err
		}
		return syntax.Lambda(arg, []syntax.Clause{body}), nil
	default:
		return c, nil
	}
}

func fold(clauses []syntax.Clause) (syntax.Clause, error) {
	if len(clauses) == 0 {
		return syntax.Clause{}, &EmptyLoweredBody{}
	}
	result := clauses[0]
	for _, next := range clauses[1:] {
		result = syntax.App(result, next)
	}
	return result, nil
}
