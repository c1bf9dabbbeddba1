/*
Package pipeline runs the five-layer compilation pipeline of the
specification (§4.D): source loading, operator collection, full parse,
namespace assembly, and import resolution. It is the one package that
ties package syntax/lex, syntax/parse, and intern together into a
resolved module Tree ready for package rewrite to lower.

The embedder supplies a Resolver (module path -> source bytes); this
package never touches a filesystem directly, matching the teacher's
constructor-injected-dependency style (no global file-loading state).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pipeline

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.pipeline")
}
