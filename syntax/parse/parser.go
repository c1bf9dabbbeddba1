package parse

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
	"github.com/orchid-lang/orchid/syntax/lex"
)

// Error is a tree-parser failure (§7: UnbalancedBracket, plus a handful of
// grammar-violation kinds the spec groups under "syntax error").
type Error struct {
	Kind string
	Span [2]int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse: %s at %v: %s", e.Kind, e.Span, e.Msg)
}

type parser struct {
	in   *intern.Interner
	toks []lex.Token
	pos  int
}

// Parse consumes a full token stream (including an implicit EOF at the
// end) and produces a FileTree (§4.C).
func Parse(in *intern.Interner, toks []lex.Token) (*FileTree, error) {
	p := &parser{in: in, toks: toks}
	var lines []Line
	for !p.atEnd() {
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return &FileTree{Lines: lines}, nil
}

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) cur() lex.Token {
	if p.atEnd() {
		return lex.Token{Kind: lex.TEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() lex.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) span() [2]int {
	if p.atEnd() {
		if len(p.toks) == 0 {
			return [2]int{0, 0}
		}
		return p.toks[len(p.toks)-1].Span
	}
	return p.cur().Span
}

// isLineKeyword reports whether tok starts a new top-level/namespace line,
// which is also the implicit terminator for a clause+ body.
func isLineKeyword(k lex.TokKind) bool {
	switch k {
	case lex.TImport, lex.TExport, lex.TConst, lex.TMacro, lex.TNamespace:
		return true
	default:
		return false
	}
}

func (p *parser) isClauseTerminator() bool {
	if p.atEnd() {
		return true
	}
	t := p.cur()
	if isLineKeyword(t.Kind) {
		return true
	}
	switch t.Kind {
	case lex.TRParen, lex.TRBracket, lex.TRBrace, lex.TRuleArrow:
		return true
	}
	return false
}

// --- Lines --------------------------------------------------------------

func (p *parser) parseLine() (Line, error) {
	start := p.span()
	tok := p.cur()
	switch tok.Kind {
	case lex.TImport:
		p.advance()
		tree, err := p.parseImportTree()
		if err != nil {
			return Line{}, err
		}
		return Line{Kind: LImport, Import: tree, Span: [2]int{start[0], p.span()[1]}}, nil
	case lex.TExport:
		p.advance()
		if isKeywordOrDecl(p.cur()) {
			return p.parseDeclLine(true, start)
		}
		names, err := p.parseExportList()
		if err != nil {
			return Line{}, err
		}
		return Line{Kind: LExport, ExportNames: names, Span: [2]int{start[0], p.span()[1]}}, nil
	case lex.TConst, lex.TMacro:
		return p.parseDeclLine(false, start)
	case lex.TNamespace:
		p.advance()
		nameTok, err := p.expect(lex.TName)
		if err != nil {
			return Line{}, err
		}
		name := nameTok.Text
		if _, err := p.expect(lex.TLParen); err != nil {
			return Line{}, err
		}
		var nested []Line
		for !p.atEnd() && p.cur().Kind != lex.TRParen {
			line, err := p.parseLine()
			if err != nil {
				return Line{}, err
			}
			nested = append(nested, line)
		}
		if _, err := p.expect(lex.TRParen); err != nil {
			return Line{}, err
		}
		return Line{Kind: LNamespace, Name: name, Namespace: nested, Span: [2]int{start[0], p.span()[1]}}, nil
	default:
		return Line{}, &Error{Kind: "UnexpectedToken", Span: tok.Span, Msg: fmt.Sprintf("unexpected %s at start of line", tok.Kind)}
	}
}

// isKeywordOrDecl reports whether tok is `const` or `macro`, i.e. whether
// an `export` we just consumed is qualifying a declaration rather than
// introducing an export list.
func isKeywordOrDecl(tok lex.Token) bool {
	return tok.Kind == lex.TConst || tok.Kind == lex.TMacro
}

// parseExportList parses `::( name, ... )`.
func (p *parser) parseExportList() ([]intern.Tok, error) {
	if _, err := p.expect(lex.TColonColon); err != nil {
		return nil, err
	}
	if _, err := p.expect(lex.TLParen); err != nil {
		return nil, err
	}
	var names []intern.Tok
	for {
		n, err := p.expectName()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if p.cur().Kind == lex.TName && p.cur().Text == "," {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lex.TRParen); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *parser) parseDeclLine(exported bool, start [2]int) (Line, error) {
	tok := p.advance() // const or macro
	switch tok.Kind {
	case lex.TConst:
		nameTok, err := p.expect(lex.TName)
		if err != nil {
			return Line{}, err
		}
		if err := p.expectAssign(); err != nil {
			return Line{}, err
		}
		body, err := p.parseClauseSeq()
		if err != nil {
			return Line{}, err
		}
		return Line{Kind: LConst, Exported: exported, Name: nameTok.Text, Body: body, Span: [2]int{start[0], p.span()[1]}}, nil
	case lex.TMacro:
		pattern, err := p.parseClauseSeqUntilArrow()
		if err != nil {
			return Line{}, err
		}
		arrow, err := p.expect(lex.TRuleArrow)
		if err != nil {
			return Line{}, err
		}
		body, err := p.parseClauseSeq()
		if err != nil {
			return Line{}, err
		}
		return Line{Kind: LMacro, Exported: exported, Pattern: pattern, Priority: arrow.Priority, Body: body, Span: [2]int{start[0], p.span()[1]}}, nil
	default:
		return Line{}, &Error{Kind: "UnexpectedToken", Span: tok.Span, Msg: "expected const or macro"}
	}
}

// expectAssign recognizes the two-token `:=` sequence: a lone ':' (lexed
// as TColonColon with Text ":") followed by a '=' name.
func (p *parser) expectAssign() error {
	colon, err := p.expect(lex.TColonColon)
	if err != nil {
		return err
	}
	if colon.Text != ":" {
		return &Error{Kind: "ExpectedAssign", Span: colon.Span, Msg: "expected ':=', found '::'"}
	}
	eq, err := p.expect(lex.TName)
	if err != nil {
		return err
	}
	if eq.Text != "=" {
		return &Error{Kind: "ExpectedAssign", Span: eq.Span, Msg: "expected ':=' continuation"}
	}
	return nil
}

// --- Import trees ---------------------------------------------------------

func (p *parser) parseImportTree() (*ImportTree, error) {
	start := p.span()
	if p.cur().Kind == lex.TLParen {
		p.advance()
		var items []*ImportTree
		for {
			it, err := p.parseImportTree()
			if err != nil {
				return nil, err
			}
			items = append(items, it)
			if p.cur().Kind == lex.TName && p.cur().Text == "," {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lex.TRParen); err != nil {
			return nil, err
		}
		return &ImportTree{Kind: ImportGroup, Items: items, Span: [2]int{start[0], p.span()[1]}}, nil
	}
	nameTok, err := p.expect(lex.TName)
	if err != nil {
		return nil, err
	}
	name := p.in.InternString(intern.KindName, nameTok.Text)
	if p.cur().Kind == lex.TColonColon && p.cur().Text != ":" {
		p.advance()
		if p.cur().Kind == lex.TName && p.cur().Text == "*" {
			p.advance()
			return &ImportTree{Kind: ImportWildcard, Name: name, Span: [2]int{start[0], p.span()[1]}}, nil
		}
		sub, err := p.parseImportTree()
		if err != nil {
			return nil, err
		}
		return &ImportTree{Kind: ImportPath, Name: name, Sub: sub, Span: [2]int{start[0], p.span()[1]}}, nil
	}
	return &ImportTree{Kind: ImportName, Name: name, Span: [2]int{start[0], p.span()[1]}}, nil
}

// --- Clause sequences -----------------------------------------------------

// parseClauseSeq parses clauses until a line keyword, a closing bracket,
// a rule arrow, or EOF (§4.C: a lambda inside the sequence eats the rest
// of it greedily).
func (p *parser) parseClauseSeq() ([]syntax.Clause, error) {
	var out []syntax.Clause
	for !p.isClauseTerminator() {
		c, err := p.parseOneClause()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		if c.Kind == syntax.KLambda {
			return out, nil
		}
	}
	return out, nil
}

// parseClauseSeqUntilArrow is parseClauseSeq restricted to stop at the
// rule arrow even though that is already one of isClauseTerminator's
// cases; kept as a distinct name at the macro-pattern call site for
// readability.
func (p *parser) parseClauseSeqUntilArrow() ([]syntax.Clause, error) {
	return p.parseClauseSeq()
}

func (p *parser) parseOneClause() (syntax.Clause, error) {
	tok := p.cur()
	switch tok.Kind {
	case lex.TBackslash:
		return p.parseLambda()
	case lex.TLParen:
		return p.parseBracket(syntax.Round, lex.TRParen)
	case lex.TLBracket:
		return p.parseBracket(syntax.Square, lex.TRBracket)
	case lex.TLBrace:
		return p.parseBracket(syntax.Curly, lex.TRBrace)
	case lex.TName:
		p.advance()
		return syntax.LocalName(p.in.InternString(intern.KindName, tok.Text)), nil
	case lex.TNumber:
		p.advance()
		return syntax.Clause{Kind: syntax.KNumber, Num: tok.NumVal}, nil
	case lex.TInt:
		p.advance()
		return syntax.Clause{Kind: syntax.KInt, Int: tok.IntVal}, nil
	case lex.TChar:
		p.advance()
		return syntax.Clause{Kind: syntax.KChar, Char: tok.CharVal}, nil
	case lex.TString:
		p.advance()
		return syntax.Clause{Kind: syntax.KString, Str: p.in.InternString(intern.KindString, tok.StrVal)}, nil
	case lex.TPlaceholder:
		p.advance()
		return p.placeholderClause(tok), nil
	default:
		return syntax.Clause{}, &Error{Kind: "UnexpectedToken", Span: tok.Span, Msg: fmt.Sprintf("unexpected %s in clause", tok.Kind)}
	}
}

func (p *parser) placeholderClause(tok lex.Token) syntax.Clause {
	kind := syntax.Scalar
	switch tok.PlaceholderPfx {
	case lex.PfxVecZero:
		kind = syntax.VecZero
	case lex.PfxVecOne:
		kind = syntax.VecOne
	}
	name := p.in.InternString(intern.KindPlaceholder, tok.PlaceholderName)
	return syntax.Clause{
		Kind: syntax.KPlaceholder,
		Placeholder: syntax.Placeholder{
			Name: name,
			Kind: kind,
			Prio: tok.PlaceholderPrio,
		},
	}
}

func (p *parser) parseBracket(br syntax.Bracket, closer lex.TokKind) (syntax.Clause, error) {
	open := p.advance()
	var seq []syntax.Clause
	for !p.atEnd() && p.cur().Kind != closer {
		if isLineKeyword(p.cur().Kind) {
			return syntax.Clause{}, &Error{Kind: "UnbalancedBracket", Span: open.Span, Msg: "bracket closed by end of line instead of matching closer"}
		}
		c, err := p.parseOneClause()
		if err != nil {
			return syntax.Clause{}, err
		}
		seq = append(seq, c)
		if c.Kind == syntax.KLambda {
			break
		}
	}
	if _, err := p.expect(closer); err != nil {
		return syntax.Clause{}, &Error{Kind: "UnbalancedBracket", Span: open.Span, Msg: "unterminated bracket"}
	}
	return syntax.Seq(br, seq), nil
}

// parseLambda parses `\ <clause> . <clause>+`, with the body greedy to the
// end of the enclosing bracket or file.
func (p *parser) parseLambda() (syntax.Clause, error) {
	bs := p.advance() // '\'
	arg, err := p.parseOneClause()
	if err != nil {
		return syntax.Clause{}, err
	}
	dot := p.cur()
	if dot.Kind != lex.TName || dot.Text != "." {
		return syntax.Clause{}, &Error{Kind: "ExpectedDot", Span: dot.Span, Msg: "expected '.' after lambda argument"}
	}
	p.advance()
	body, err := p.parseClauseSeq()
	if err != nil {
		return syntax.Clause{}, err
	}
	if len(body) == 0 {
		return syntax.Clause{}, &Error{Kind: "UnexpectedToken", Span: bs.Span, Msg: "lambda body must have at least one clause"}
	}
	return syntax.Lambda(arg, body), nil
}

// --- Token helpers ----------------------------------------------------

func (p *parser) expect(k lex.TokKind) (lex.Token, error) {
	if p.atEnd() || p.cur().Kind != k {
		return lex.Token{}, &Error{Kind: "UnexpectedToken", Span: p.span(), Msg: fmt.Sprintf("expected %s", k)}
	}
	return p.advance(), nil
}

func (p *parser) expectName() (intern.Tok, error) {
	tok, err := p.expect(lex.TName)
	if err != nil {
		return 0, err
	}
	return p.in.InternString(intern.KindName, tok.Text), nil
}
