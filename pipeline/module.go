package pipeline

import (
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// Const is a resolved constant binding (§3 Module).
type Const struct {
	Name     intern.Sym
	Exported bool
	Body     []syntax.Clause
}

// Macro is a resolved macro rule source, pre-repository-insertion (§3
// Module / §4.E); package rules turns this into a rules.Rule.
type Macro struct {
	Pattern  []syntax.Clause
	Body     []syntax.Clause
	Priority float64
	Exported bool
}

// Module is one assembled namespace node (§4.D layer 4): either a loaded
// file or a `namespace NAME ( ... )` block nested inside one.
type Module struct {
	Sym      intern.Sym
	Consts   []*Const
	Macros   []*Macro
	Children map[intern.Tok]*Module
}

func newModule(sym intern.Sym) *Module {
	return &Module{Sym: sym, Children: make(map[intern.Tok]*Module)}
}

// Tree is the fully assembled, import-resolved module forest produced by
// Pipeline.Compile.
type Tree struct {
	Modules map[intern.Sym]*Module // one entry per loaded file module path
}

// AllConsts returns every Const across every module in the tree, for
// handing to package rewrite/reduce as the program's top-level bindings.
func (t *Tree) AllConsts() []*Const {
	var out []*Const
	for _, m := range t.Modules {
		out = append(out, collectConsts(m)...)
	}
	return out
}

func collectConsts(m *Module) []*Const {
	out := append([]*Const{}, m.Consts...)
	for _, child := range m.Children {
		out = append(out, collectConsts(child)...)
	}
	return out
}

// AllMacros returns every Macro across every module in the tree, for
// handing to package rules.Repository.
func (t *Tree) AllMacros() []*Macro {
	var out []*Macro
	for _, m := range t.Modules {
		out = append(out, collectMacros(m)...)
	}
	return out
}

func collectMacros(m *Module) []*Macro {
	out := append([]*Macro{}, m.Macros...)
	for _, child := range m.Children {
		out = append(out, collectMacros(child)...)
	}
	return out
}
