package match

import "github.com/orchid-lang/orchid/syntax"

// matchElems matches a compiled pattern level against a target clause
// run. If elems has no vector placeholder it is a straight-line,
// fixed-length comparison; otherwise it picks the highest-priority
// remaining vector (ties toward the rightmost occurrence, §4.F rule 3),
// tries its possible allocations from largest down to its minimum (§4.F
// rule 2: descending growth priority), and recurses on the flanking
// sub-ranges for each candidate split.
func matchElems(elems []patElem, target []syntax.Clause, env *Env) bool {
	if !anyVector(elems) {
		if len(elems) != len(target) {
			return false
		}
		for i, e := range elems {
			if !matchOne(*e.scalar, target[i], env) {
				return false
			}
		}
		return true
	}

	idx := highestPriorityVectorIndex(elems)
	vec := elems[idx]
	left := elems[:idx]
	right := elems[idx+1:]

	minV := 0
	if vec.vector.kind() == syntax.VecOne {
		minV = 1
	}

	for vecLen := len(target); vecLen >= minV; vecLen-- {
		remaining := len(target) - vecLen
		for leftLen := remaining; leftLen >= 0; leftLen-- {
			leftTarget := target[:leftLen]
			vecTarget := target[leftLen : leftLen+vecLen]
			rightTarget := target[leftLen+vecLen:]

			trial := env.clone()
			if matchElems(left, leftTarget, trial) && matchElems(right, rightTarget, trial) {
				trial.Vectors[vec.vector.clause.Placeholder.Name] = append([]syntax.Clause{}, vecTarget...)
				env.adopt(trial)
				return true
			}
		}
	}
	return false
}

func anyVector(elems []patElem) bool {
	for _, e := range elems {
		if e.vector != nil {
			return true
		}
	}
	return false
}

// highestPriorityVectorIndex finds the vector element with the greatest
// growth priority, breaking ties toward the later (rightmost) index.
func highestPriorityVectorIndex(elems []patElem) int {
	best := -1
	bestPrio := 0
	for i, e := range elems {
		if e.vector == nil {
			continue
		}
		p := e.vector.prio()
		if best == -1 || p >= bestPrio {
			best, bestPrio = i, p
		}
	}
	return best
}

// matchOne matches a single non-vector pattern clause against a single
// target clause, recursing structurally into S/Lambda sub-sequences.
func matchOne(pat syntax.Clause, t syntax.Clause, env *Env) bool {
	if pat.Kind == syntax.KPlaceholder && pat.Placeholder.Kind == syntax.Scalar {
		env.Scalars[pat.Placeholder.Name] = t
		return true
	}
	if pat.Kind != t.Kind {
		return false
	}
	switch pat.Kind {
	case syntax.KName:
		if pat.Resolved != t.Resolved {
			return false
		}
		if pat.Resolved {
			return pat.Name == t.Name
		}
		return pat.LocalName == t.LocalName
	case syntax.KSeq:
		return pat.Bracket == t.Bracket && matchExact(pat.Seq, t.Seq, env)
	case syntax.KLambda:
		if (pat.Arg == nil) != (t.Arg == nil) {
			return false
		}
		if pat.Arg != nil && !matchOne(*pat.Arg, *t.Arg, env) {
			return false
		}
		return matchExact(pat.Body, t.Body, env)
	case syntax.KNumber:
		return pat.Num == t.Num
	case syntax.KInt:
		return pat.Int == t.Int
	case syntax.KChar:
		return pat.Char == t.Char
	case syntax.KString:
		return pat.Str == t.Str
	default:
		return false // Atom/ExternFn: never legal in a pattern (post-macro only)
	}
}
