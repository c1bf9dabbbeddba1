/*
Package parse turns a flat github.com/orchid-lang/orchid/syntax/lex token
stream into syntax.Clause trees (§4.C of the specification).

The grammar is small and entirely bracket- and keyword-driven: a file is a
sequence of lines (import / export / const / macro / namespace), and the
only recursive structure inside a line is the clause sequence making up an
import tree, a constant body, or a macro pattern/template. There is no
operator-precedence climbing here — that work already happened in the
lexer, which folded operator lexemes into plain Name tokens (§4.B); the
parser only needs to track bracket nesting and the "lambda eats the rest
of its enclosing bracket" rule (§4.C).

This mirrors the teacher's split between a grammar-table-driven parser
(package lr) and a much simpler hand-rolled recursive-descent parser
elsewhere in the same corpus (terex/terexlang), choosing the latter shape
because Orchid's surface grammar has no ambiguity left to resolve by parse
time — macro pattern ambiguity is a runtime-rewrite concern (package
rewrite), not a grammar concern.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parse

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.parse'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.parse")
}
