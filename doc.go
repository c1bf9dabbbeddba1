/*
Package orchid is the embedding facade for the Orchid language engine.

Orchid is a pure, lazy functional scripting language whose only syntactic
abstraction facility is a priority-ordered, namespaced term-rewriting system
over a tree of tokens. Package structure is as follows:

■ intern: exchanges immutable byte/token sequences for small integer tokens.

■ syntax/lex: tokenizes source bytes against a computed operator set.

■ syntax/parse: nests tokens into Clause trees (S-expressions, lambdas,
literals, placeholders).

■ pipeline: two-pass source assembly — preparse for operator discovery, full
parse, namespace assembly, import resolution.

■ rules: stores and priority-indexes rewrite rules across all modules.

■ match: finds the best pattern match in a clause sequence.

■ rewrite: the fixpoint rewriting driver, with recursion and ambiguity
detection.

■ reduce: call-by-need β-reduction of the post-macro expression graph.

■ extern: the contract for foreign atoms and extern functions.

■ diag: diagnostics collection and rendering.

This root package wires those packages together behind the four
embedder-facing entry points: Compile, Run, RunHandler and the extern/atom
registration functions. The interactive driver, the file-loader plumbing,
the extension IPC transport, the concrete Orchid standard library and the
planned type system are explicitly out of scope; only the interfaces they
would need are specified here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package orchid

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.orchid'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.orchid")
}
