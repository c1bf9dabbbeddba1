/*
Package intern implements Orchid's interner: the exchange of immutable
byte/token sequences for small integer handles.

Two tiers are provided. A monotype store maps hashable byte sequences to a
Tok within one "intern kind" (e.g. names, strings). A polytype Interner
dispatches on the kind to the right monotype store. A second rank, SymTable,
interns sequences of Toks, giving namespaced paths (Sym) their own handles.

Equality of handles implies equality of the underlying bytes; ids are
stable for the lifetime of the Interner and are never reused.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package intern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'orchid.intern'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.intern")
}
