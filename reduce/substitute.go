package reduce

import "github.com/orchid-lang/orchid/intern"

// substitute returns the result of replacing every free occurrence of x in
// e with value. It is allocation-free on any subterm that does not
// mention x: such a subterm's original *Expr pointer is returned
// unchanged, so only the spine containing x is rebuilt. Every occurrence
// of x shares the exact same value pointer, which is how the reducer's
// sharing semantics (one site reduced, every site sees it) hold once
// value itself reaches normal form.
//
// Because bound names are fully qualified Syms assigned by the macro
// stage (§3), no lambda in the graph can rebind x to shadow it; a lambda
// whose own parameter equals x simply has no free occurrence of x in its
// body and is returned unchanged without recursing into it.
func substitute(e *Expr, x intern.Sym, value *Expr) *Expr {
	switch e.kind {
	case kName:
		if e.name != x {
			return e
		}
		value.Retain()
		return value
	case kApp:
		fn := substitute(e.fn, x, value)
		arg := substitute(e.arg, x, value)
		if fn == e.fn && arg == e.arg {
			return e
		}
		return &Expr{refs: 1, state: Raw, kind: kApp, fn: fn, arg: arg}
	case kLambda:
		if e.lamArg == x {
			return e
		}
		body := substitute(e.lamBody, x, value)
		if body == e.lamBody {
			return e
		}
		return &Expr{refs: 1, state: Raw, kind: kLambda, lamArg: e.lamArg, lamBody: body}
	default: // kLiteral, kAtom, kExternFn: no sub-structure to recurse into
		return e
	}
}
