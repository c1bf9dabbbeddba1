package pipeline

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax/lex"
	"github.com/orchid-lang/orchid/syntax/parse"
)

// fileHeader is the result of the coarse, preparse-driven scan of §4.D
// layer 1: just enough to recurse through imports and know what a file
// makes available to its own scope and to importers, without parsing any
// expression bodies (that happens once the operator set is known, in
// layer 3).
type fileHeader struct {
	Imports  []*parse.ImportTree
	Exported []intern.Tok // from `export ::(...)` and `export const NAME ...`
	Declared []intern.Tok // every top-level const name, exported or not
	HasMacro bool
}

// headerError mirrors syntax/parse.Error's shape for failures during the
// coarse header scan (§7 "syntax error").
type headerError struct {
	Span [2]int
	Msg  string
}

func (e *headerError) Error() string {
	return fmt.Sprintf("pipeline: header scan: %s at %v", e.Msg, e.Span)
}

// scanHeaders walks a preparse token stream extracting import trees and
// top-level declared/exported names, tolerating whatever imprecision the
// preparse lexer introduces inside expression bodies (§4.D layer 1 never
// looks at expression bodies — only line shapes).
func scanHeaders(in *intern.Interner, pre []lex.PreparseToken) (*fileHeader, error) {
	h := &fileHeader{}
	c := &hcursor{toks: pre}
	for !c.atEnd() {
		if err := scanOneLine(in, c, h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

type hcursor struct {
	toks []lex.PreparseToken
	pos  int
}

func (c *hcursor) atEnd() bool { return c.pos >= len(c.toks) }
func (c *hcursor) cur() lex.PreparseToken {
	if c.atEnd() {
		return lex.PreparseToken{Kind: lex.TEOF}
	}
	return c.toks[c.pos]
}
func (c *hcursor) advance() lex.PreparseToken {
	t := c.cur()
	if !c.atEnd() {
		c.pos++
	}
	return t
}

func scanOneLine(in *intern.Interner, c *hcursor, h *fileHeader) error {
	tok := c.cur()
	switch tok.Kind {
	case lex.TImport:
		c.advance()
		tree, err := scanImportTree(in, c)
		if err != nil {
			return err
		}
		h.Imports = append(h.Imports, tree)
		return nil
	case lex.TExport:
		c.advance()
		if c.cur().Kind == lex.TConst || c.cur().Kind == lex.TMacro {
			return scanDecl(in, c, h, true)
		}
		// export ::( name, ... )
		if c.cur().Kind == lex.TColonColon {
			c.advance()
		}
		if c.cur().Kind == lex.TLParen {
			c.advance()
		}
		for !c.atEnd() && c.cur().Kind != lex.TRParen {
			if c.cur().Kind == lex.TName && c.cur().Text != "," {
				h.Exported = append(h.Exported, in.InternString(intern.KindName, c.cur().Text))
			}
			c.advance()
		}
		if c.cur().Kind == lex.TRParen {
			c.advance()
		}
		return nil
	case lex.TConst, lex.TMacro:
		return scanDecl(in, c, h, false)
	case lex.TNamespace:
		c.advance()
		if c.cur().Kind == lex.TName {
			c.advance() // namespace name, not separately tracked at this layer
		}
		if c.cur().Kind == lex.TLParen {
			c.advance()
		}
		depth := 1
		for !c.atEnd() && depth > 0 {
			switch c.cur().Kind {
			case lex.TLParen:
				depth++
			case lex.TRParen:
				depth--
				if depth == 0 {
					c.advance()
					return nil
				}
			case lex.TImport:
				save := c.pos
				c.advance()
				tree, err := scanImportTree(in, c)
				if err == nil {
					h.Imports = append(h.Imports, tree)
					continue
				}
				c.pos = save
			case lex.TConst:
				// nested const: don't recurse into scanDecl's own
				// line-boundary assumptions; just record the name and
				// skip to the line's end heuristically.
				save := c.pos
				c.advance()
				if c.cur().Kind == lex.TName {
					h.Declared = append(h.Declared, in.InternString(intern.KindName, c.cur().Text))
				}
				c.pos = save
			}
			c.advance()
		}
		return nil
	default:
		// Unrecognized token at line-start position (most likely stray
		// preparse noise inside an expression body that the coarse
		// scanner doesn't track); skip it rather than fail the whole
		// recursive import discovery.
		c.advance()
		return nil
	}
}

func scanDecl(in *intern.Interner, c *hcursor, h *fileHeader, exported bool) error {
	kind := c.advance().Kind
	if kind == lex.TMacro {
		h.HasMacro = true
		skipToNextLine(c)
		return nil
	}
	// const
	if c.cur().Kind == lex.TName {
		name := in.InternString(intern.KindName, c.cur().Text)
		h.Declared = append(h.Declared, name)
		if exported {
			h.Exported = append(h.Exported, name)
		}
	}
	skipToNextLine(c)
	return nil
}

// skipToNextLine advances past the current const/macro body, tracking
// bracket depth so an embedded '(' doesn't get confused for end-of-line.
func skipToNextLine(c *hcursor) {
	depth := 0
	for !c.atEnd() {
		t := c.cur()
		if depth == 0 && isHeaderLineStart(t.Kind) {
			return
		}
		switch t.Kind {
		case lex.TLParen, lex.TLBracket, lex.TLBrace:
			depth++
		case lex.TRParen, lex.TRBracket, lex.TRBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		c.advance()
	}
}

func isHeaderLineStart(k lex.TokKind) bool {
	switch k {
	case lex.TImport, lex.TExport, lex.TConst, lex.TMacro, lex.TNamespace:
		return true
	}
	return false
}

func scanImportTree(in *intern.Interner, c *hcursor) (*parse.ImportTree, error) {
	start := c.cur().Span
	if c.cur().Kind == lex.TLParen {
		c.advance()
		var items []*parse.ImportTree
		for {
			it, err := scanImportTree(in, c)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
			if c.cur().Kind == lex.TName && c.cur().Text == "," {
				c.advance()
				continue
			}
			break
		}
		if c.cur().Kind != lex.TRParen {
			return nil, &headerError{Span: start, Msg: "unterminated import group"}
		}
		c.advance()
		return &parse.ImportTree{Kind: parse.ImportGroup, Items: items, Span: start}, nil
	}
	if c.cur().Kind != lex.TName {
		return nil, &headerError{Span: c.cur().Span, Msg: "expected name in import tree"}
	}
	name := in.InternString(intern.KindName, c.advance().Text)
	if c.cur().Kind == lex.TColonColon {
		c.advance()
		if c.cur().Kind == lex.TName && c.cur().Text == "*" {
			c.advance()
			return &parse.ImportTree{Kind: parse.ImportWildcard, Name: name, Span: start}, nil
		}
		sub, err := scanImportTree(in, c)
		if err != nil {
			return nil, err
		}
		return &parse.ImportTree{Kind: parse.ImportPath, Name: name, Sub: sub, Span: start}, nil
	}
	return &parse.ImportTree{Kind: parse.ImportName, Name: name, Span: start}, nil
}
