/*
Package match implements the pattern algebra of the specification's §4.F:
given a rule pattern (a []syntax.Clause that may contain Placeholder
clauses) and a target clause sequence, find a match, the substitution
environment it produces, and the [start, end) range of the target it
claims.

A pattern with no outer vector placeholder is conceptually bracketed by an
implicit, unnamed VecZero placeholder of priority 0 on each end (§4.F),
letting a purely scalar pattern match anywhere in a sequence. Pattern.Match
realizes this as an explicit window search (ascending start position,
descending window size) on whichever end lacks its own vector placeholder,
rather than literal synthetic placeholder elements, because the caller
(package rewrite) needs the claimed range reported back to know what to
splice — an unnamed placeholder binding can't expose that.

Internally a pattern level is split into a list of elements, each either a
fixed scalar sub-pattern or a vector placeholder. Matching proceeds by
repeatedly picking the remaining element of highest growth priority (ties
broken toward the rightmost occurrence, per §4.F rule 3) and searching its
possible allocations from largest down to its minimum, recursing on the
flanking sub-ranges. This generalizes the three named strategies of §4.F
(Placeholder-only, Scan, Middle) into one recursive search rather than
three separate code paths — the spec explicitly leaves the implementation
strategy free as long as the match precedence rules hold, and a fixed
three-way dispatch buys nothing once the general case is written down
correctly. Split-position exploration order (largest left allocation
first) is a specific, documented tie-break choice beyond what §4.F pins
down exactly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package match

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.match'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.match")
}
