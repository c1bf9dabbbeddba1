/*
Package extern defines the contract foreign values must satisfy to appear
in the post-macro expression graph: Atom and ExternFn (§4.I of the
specification), plus a small registry the embedder-facing facade uses to
name extern functions and atom kinds.

Atom and ExternFn values are carried inside syntax.Clause.Foreign as plain
interface{} — Clause cannot import this package (AtomStep.Replace returns a
syntax.Clause, which would cycle), so this package owns the contract and
the accessors that wrap/unwrap it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package extern

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.extern'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.extern")
}
