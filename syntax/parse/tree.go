package parse

import (
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// ImportKind classifies one node of an import tree (§4.C grammar:
// `name | name::TREE | name::* | (TREE [, TREE]*)`).
type ImportKind uint8

const (
	ImportName ImportKind = iota
	ImportPath
	ImportWildcard
	ImportGroup
)

// ImportTree is one node of a parsed `import` line's TREE grammar.
type ImportTree struct {
	Kind  ImportKind
	Name  intern.Tok    // ImportName, ImportPath, ImportWildcard
	Sub   *ImportTree   // ImportPath: the continuation after `name::`
	Items []*ImportTree // ImportGroup: the parenthesized alternatives
	Span  [2]int
}

// LineKind classifies one top-level or namespace-nested line.
type LineKind uint8

const (
	LImport LineKind = iota
	LExport
	LConst
	LMacro
	LNamespace
)

// Line is one parsed file line (§4.C: import / export / const / macro /
// namespace).
type Line struct {
	Kind     LineKind
	Exported bool // meaningful for LConst, LMacro

	Import      *ImportTree  // LImport
	ExportNames []intern.Tok // LExport

	Name string // LConst, LNamespace: declared name text (interned by the caller once its Sym scope is known)

	Pattern  []syntax.Clause // LMacro: the left-hand pattern
	Priority float64         // LMacro: parsed rule priority
	Body     []syntax.Clause // LConst, LMacro: right-hand body/template

	Namespace []Line // LNamespace: nested lines

	Span [2]int
}

// FileTree is the parse result for one source file.
type FileTree struct {
	Lines []Line
}
