package rewrite

import (
	"github.com/orchid-lang/orchid/match"
	"github.com/orchid-lang/orchid/syntax"
)

// instantiate splices env's captured bindings into template (§4.G step 3:
// "each placeholder is replaced by its captured clauses: vector
// placeholders splice, scalar inserts one"). Placeholders nested inside a
// template's own S(...) or Lambda sub-sequences are substituted
// recursively, since a template may bind captured clauses deep inside a
// bracketed shape it constructs.
func instantiate(template []syntax.Clause, env *match.Env) []syntax.Clause {
	out := make([]syntax.Clause, 0, len(template))
	for _, c := range template {
		switch c.Kind {
		case syntax.KPlaceholder:
			if c.Placeholder.Kind == syntax.Scalar {
				out = append(out, env.Scalars[c.Placeholder.Name])
			} else {
				out = append(out, env.Vectors[c.Placeholder.Name]...)
			}
		case syntax.KSeq:
			out = append(out, syntax.Seq(c.Bracket, instantiate(c.Seq, env)))
		case syntax.KLambda:
			arg := *c.Arg
			if c.Arg.Kind == syntax.KPlaceholder && c.Arg.Placeholder.Kind == syntax.Scalar {
				arg = env.Scalars[c.Arg.Placeholder.Name]
			}
			out = append(out, syntax.Lambda(arg, instantiate(c.Body, env)))
		default:
			out = append(out, c)
		}
	}
	return out
}
