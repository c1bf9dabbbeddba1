package pipeline

import (
	"strings"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax/lex"
	"github.com/orchid-lang/orchid/syntax/parse"
)

// Pipeline wires together the interner, symbol table, and embedder-
// supplied Resolver to run the five layers of §4.D.
type Pipeline struct {
	In  *intern.Interner
	Sym *intern.SymTable
	Res Resolver
}

// New builds a Pipeline. Callers typically share In/Sym with the rest of
// the embedding (package orchid's facade constructs one pair per Config
// and threads it through every stage).
func New(in *intern.Interner, sym *intern.SymTable, res Resolver) *Pipeline {
	return &Pipeline{In: in, Sym: sym, Res: res}
}

// PathSym interns a "::"-separated module path string into a Sym.
func (p *Pipeline) PathSym(path string) intern.Sym {
	parts := strings.Split(path, "::")
	toks := make([]intern.Tok, len(parts))
	for i, s := range parts {
		toks[i] = p.In.InternString(intern.KindName, s)
	}
	return p.Sym.Intern(toks)
}

// Compile runs all five layers for the given target module paths and
// returns the fully resolved Tree.
func (p *Pipeline) Compile(targets []string) (*Tree, error) {
	roots := make([]intern.Sym, len(targets))
	for i, t := range targets {
		roots[i] = p.PathSym(t)
	}

	units, err := p.loadAll(roots) // layers 1-2
	if err != nil {
		return nil, err
	}

	parsed, err := p.parseAll(units) // layer 3
	if err != nil {
		return nil, err
	}

	tree := p.assemble(units, parsed) // layer 4

	if err := p.resolveImports(tree, units, parsed); err != nil { // layer 5
		return nil, err
	}

	return tree, nil
}

// parseAll re-lexes and parses every unit with its now-known operator set
// (§4.D layer 3).
func (p *Pipeline) parseAll(units map[intern.Sym]*unit) (map[intern.Sym]*parse.FileTree, error) {
	out := make(map[intern.Sym]*parse.FileTree, len(units))
	for sym, u := range units {
		toks, err := lex.Scan(p.In, u.src, u.ops)
		if err != nil {
			return nil, err
		}
		tree, err := parse.Parse(p.In, toks)
		if err != nil {
			return nil, err
		}
		out[sym] = tree
	}
	return out, nil
}
