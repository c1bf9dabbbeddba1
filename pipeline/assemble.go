package pipeline

import (
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax/parse"
)

// assemble runs §4.D layer 4: nests each file's parsed lines into a
// Module tree keyed by Sym. Nested `namespace NAME ( ... )` lines become
// child Modules; everything nested inside one file shares that file's
// import scope (a simplification the spec's brevity on nested-namespace
// import scoping leaves room for — recorded in DESIGN.md).
func (p *Pipeline) assemble(units map[intern.Sym]*unit, parsed map[intern.Sym]*parse.FileTree) *Tree {
	tree := &Tree{Modules: make(map[intern.Sym]*Module)}
	for sym := range units {
		ft := parsed[sym]
		m := newModule(sym)
		p.assembleLines(m, ft.Lines)
		tree.Modules[sym] = m
	}
	return tree
}

func (p *Pipeline) assembleLines(m *Module, lines []parse.Line) {
	for _, line := range lines {
		switch line.Kind {
		case parse.LConst:
			nameTok := p.In.InternString(intern.KindName, line.Name)
			sym := p.Sym.InternQualified(m.Sym, []intern.Tok{nameTok})
			m.Consts = append(m.Consts, &Const{Name: sym, Exported: line.Exported, Body: line.Body})
		case parse.LMacro:
			m.Macros = append(m.Macros, &Macro{
				Pattern:  line.Pattern,
				Body:     line.Body,
				Priority: line.Priority,
				Exported: line.Exported,
			})
		case parse.LNamespace:
			nameTok := p.In.InternString(intern.KindName, line.Name)
			childSym := p.Sym.InternQualified(m.Sym, []intern.Tok{nameTok})
			child := newModule(childSym)
			m.Children[nameTok] = child
			p.assembleLines(child, line.Namespace)
		case parse.LImport, parse.LExport:
			// already consumed in layers 1-2; no tree contribution here
		}
	}
}
