package match

import "github.com/orchid-lang/orchid/syntax"

// vectorElem is the payload of a patElem that stands for a vector
// placeholder (..$x / ...$x).
type vectorElem struct {
	clause syntax.Clause
}

func (v vectorElem) kind() syntax.PlaceholderKind { return v.clause.Placeholder.Kind }
func (v vectorElem) prio() int                    { return v.clause.Placeholder.Prio }

// patElem is one position in a compiled pattern level: either a fixed
// scalar sub-pattern (any non-vector Clause, including $x scalar
// placeholders, which matchOne binds directly) or a vector placeholder.
type patElem struct {
	scalar *syntax.Clause
	vector *vectorElem
}

// Pattern is a compiled rule pattern, ready to match against a target
// clause sequence via Match.
type Pattern struct {
	elems    []patElem
	leading  bool // pattern's own first element is already a vector
	trailing bool // pattern's own last element is already a vector
}

// Compile builds a Pattern from a raw pattern clause sequence.
func Compile(pattern []syntax.Clause) *Pattern {
	elems := buildElems(pattern)
	return &Pattern{
		elems:    elems,
		leading:  len(elems) > 0 && elems[0].vector != nil,
		trailing: len(elems) > 0 && elems[len(elems)-1].vector != nil,
	}
}

func buildElems(seq []syntax.Clause) []patElem {
	out := make([]patElem, len(seq))
	for i := range seq {
		c := seq[i]
		if c.Kind == syntax.KPlaceholder && c.Placeholder.Kind != syntax.Scalar {
			out[i] = patElem{vector: &vectorElem{clause: c}}
		} else {
			out[i] = patElem{scalar: &c}
		}
	}
	return out
}

// Match searches target for this pattern, per §4.F: a pattern with no
// explicit outer vector placeholder is conceptually bracketed by an
// implicit VecZero of priority 0 on that end, so it may match any
// contiguous window of target rather than only the whole of it. Realized
// here as an explicit window search (ascending start, descending window
// size) rather than literal anonymous placeholder elements, since the
// window search needs to report back exactly which range of target the
// match claims (for package rewrite's splice step), which an unnamed
// placeholder binding can't expose.
//
// On success it reports the Env together with [start, end), the range of
// target this pattern's own elements (not any implicit outer padding)
// claimed — the range package rewrite replaces with the rule's template.
func (p *Pattern) Match(target []syntax.Clause) (env *Env, start, end int, ok bool) {
	n := len(target)
	starts := []int{0}
	if !p.leading {
		starts = rangeAsc(0, n)
	}
	for _, s := range starts {
		ends := []int{n}
		if !p.trailing {
			ends = rangeDesc(n, s)
		}
		for _, e := range ends {
			trial := NewEnv()
			if matchElems(p.elems, target[s:e], trial) {
				return trial, s, e, true
			}
		}
	}
	return nil, 0, 0, false
}

func rangeAsc(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func rangeDesc(hi, lo int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := hi; i >= lo; i-- {
		out = append(out, i)
	}
	return out
}

// matchExact matches pattern against target with no window search — used
// for nested S(...) and Lambda sub-sequences, which must consume their
// whole inner sequence exactly (§4.F: "S(br,seq) matches S(br',seq') iff
// ... the sequences match", not "a sub-window of seq' matches").
func matchExact(pattern []syntax.Clause, target []syntax.Clause, env *Env) bool {
	return matchElems(buildElems(pattern), target, env)
}
