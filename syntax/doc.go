/*
Package syntax defines Clause, the single tagged-variant tree node Orchid
uses both as the syntactic unit produced by the tree parser and, after
lowering (see package rewrite), as the pre-reduction runtime expression
node.

The teacher repo represents its homogenous tree nodes with an untyped
Atom{typ AtomType, Data interface{}} plus a *GCons cons cell, relying on
type switches over Data. Clause's variant set is closed and known up
front (§3 of the specification), and Clause nodes are matched against in a
hot path (the matcher, package match), so here the same tagging idea is
given a fixed field layout instead of interface{} — cheaper to switch on,
and the compiler catches missing fields instead of a runtime type assertion
panic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package syntax

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.syntax")
}
