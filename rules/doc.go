/*
Package rules implements the rule repository of the specification's
§4.E: validated storage and priority-ordered retrieval of rewrite rules
across every module in a compiled Tree.

Rules are indexed by descending priority using a
github.com/emirpasic/gods/trees/redblacktree keyed on (priority,
insertion sequence) — grounded on the teacher's use of gods for ordered
symbol-set structures in lr/tables.go, repurposed here for its natural
fit: a priority-ordered index. Within a priority band, ordering falls
back to insertion sequence purely for determinism; §4.E says programs
must not rely on it.

Each Rule carries its required-Sym set (every resolved Name appearing in
its pattern) as a github.com/emirpasic/gods/sets/treeset, checked against
a target clause sequence's own symbol set before a full structural match
via package match is attempted — the "cheap bloom/hash sweep" of §4.E.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rules

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.rules'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.rules")
}
