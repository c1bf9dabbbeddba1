/*
Package rewrite drives the macro fixpoint loop of the specification's
§4.G: for a constant or macro body (a []syntax.Clause), repeatedly ask a
rules.Repository for the highest-priority applicable rule, splice its
instantiated template in place of the matched range, and repeat until no
rule applies — at which point the body is macro normal form and is folded
into the single runtime App-chain expression the reducer consumes.

Recursion detection canonicalizes each applied (rule, matched range) pair
by hashing the matched clauses with github.com/cnf/structhash, the same
canonical-hashing idiom lr/earley/earley.go uses to deduplicate item sets.
A later application of the same rule is rejected once its matched range is
found to enclose (contain, possibly nested inside an S or Lambda
sub-sequence) an earlier application's hash for that rule — the hash
equality stands in for a deep structural comparison, re-hashing candidate
sub-ranges rather than keeping every historical clause slice around for an
exact Equal check.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rewrite

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.rewrite")
}
