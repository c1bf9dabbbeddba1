/*
Package diag collects and renders the diagnostics of §7's error table:
one Diagnostic per failure, tagged with the pipeline phase it came from
and (where the producing package has one) a source Span, gathered into a
Bag so independent failures — two unrelated modules, two unrelated
top-level constants — can be reported together instead of aborting the
whole run on the first one (§7 "aggregated where independent").

Rendering uses github.com/pterm/pterm, repurposed from the teacher's
REPL chrome (terex/terexlang/trepl/repl.go's pterm.Info/pterm.Error
prefixes) to diagnostic output: a Bag with diagnostics renders each one
as a colorized line with its byte-offset span, without quoting source
text; an empty Bag renders nothing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package diag

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.diag'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.diag")
}
