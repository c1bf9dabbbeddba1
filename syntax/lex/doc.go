/*
Package lex tokenizes Orchid source bytes into a flat token stream (§4.B of
the specification).

Lexing happens in two independent passes over the byte stream, because the
grammar's shape changes depending on which names are in scope as operators
(§4.B). Preparse (preparse.go), built on github.com/timtadh/lexmachine,
runs against the empty operator set and recognizes only what §4.D layer 1
needs to discover imports, export lists, and macro/const/namespace
headers: comments, reserved words, the rule arrow, brackets and the `::`
path separator. Because it never depends on a per-file operator set, it
is the one place in this package a pre-compiled lexmachine DFA is the
right tool.

The full lexer (lexer.go) cannot be pre-compiled the same way: its
operator-run splitting rule — a maximal run of symbolic bytes is
greedily matched against the file's operator set, and whatever is left
over after the last match becomes one name — depends on an OperatorSet
computed per file (operators.go), so it is a hand-written scanner
parameterized by that set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lex

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'orchid.lex'.
func tracer() tracing.Trace {
	return tracing.Select("orchid.lex")
}
