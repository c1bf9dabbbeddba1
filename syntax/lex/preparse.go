package lex

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Preparse token ids, local to this file. The preparse pass (§4.D layer 1)
// only needs enough structure to discover imports, export lists, macro
// header arities and constant/namespace headers — not full expression
// bodies — so its grammar is static and does not depend on an operator
// set. That makes it the one place in the lexer a regular, pre-compiled
// lexmachine DFA is the right tool (the full lexer, in lexer.go, cannot
// use one because its operator-run splitting rule depends on a per-file
// operator set).
const (
	ppComment = iota
	ppImport
	ppExport
	ppNamespace
	ppConst
	ppMacro
	ppRuleArrow
	ppLParen
	ppRParen
	ppLBracket
	ppRBracket
	ppLBrace
	ppRBrace
	ppBackslash
	ppColonColon
	ppStar
	ppComma
	ppName
	ppString
	ppNumber
	ppOther // anything else: treated as an opaque name for preparse purposes
)

var preparseLexer *lexmachine.Lexer

func init() {
	l := lexmachine.NewLexer()
	l.Add([]byte(`--\[([^\]]|\][^-]|\]-[^-])*\]--`), ppSkip)
	l.Add([]byte(`--[^\n]*`), ppSkip)
	l.Add([]byte(`import`), ppMakeToken(ppImport))
	l.Add([]byte(`export`), ppMakeToken(ppExport))
	l.Add([]byte(`namespace`), ppMakeToken(ppNamespace))
	l.Add([]byte(`const`), ppMakeToken(ppConst))
	l.Add([]byte(`macro`), ppMakeToken(ppMacro))
	l.Add([]byte(`=[0-9a-fA-F\.px]+=>`), ppMakeToken(ppRuleArrow))
	l.Add([]byte(`\(`), ppMakeToken(ppLParen))
	l.Add([]byte(`\)`), ppMakeToken(ppRParen))
	l.Add([]byte(`\[`), ppMakeToken(ppLBracket))
	l.Add([]byte(`\]`), ppMakeToken(ppRBracket))
	l.Add([]byte(`\{`), ppMakeToken(ppLBrace))
	l.Add([]byte(`\}`), ppMakeToken(ppRBrace))
	l.Add([]byte(`\\`), ppMakeToken(ppBackslash))
	l.Add([]byte(`::`), ppMakeToken(ppColonColon))
	l.Add([]byte(`\*`), ppMakeToken(ppStar))
	l.Add([]byte(`,`), ppMakeToken(ppComma))
	l.Add([]byte(`"[^"]*"`), ppMakeToken(ppString))
	l.Add([]byte(`[0-9][0-9a-zA-Z\.]*`), ppMakeToken(ppNumber))
	l.Add([]byte(`([A-Za-z_][A-Za-z0-9_]*)|([^ \t\r\n\(\)\[\]\{\}:,\."'\\]+)`), ppMakeToken(ppOther))
	l.Add([]byte(`( |\t|\n|\r)+`), ppSkip)
	if err := l.Compile(); err != nil {
		panic(fmt.Errorf("lex: preparse grammar failed to compile: %w", err))
	}
	preparseLexer = l
}

func ppSkip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func ppMakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// PreparseToken is one unit recognized during the preparse pass: enough to
// find import/export/macro/const/namespace headers, but not a fully typed
// Token (placeholders, rule-arrow priorities and operator lexemes are not
// resolved at this stage).
type PreparseToken struct {
	Kind TokKind
	Text string
	Span [2]int
}

// Preparse tokenizes src with the empty operator set, sufficient for §4.D
// layer 1 (import discovery, export lists, macro/const/namespace headers).
func Preparse(src []byte) ([]PreparseToken, error) {
	scanner, err := preparseLexer.Scanner(src)
	if err != nil {
		return nil, fmt.Errorf("lex: preparse: %w", err)
	}
	var out []PreparseToken
	for {
		tok, err, eof := scanner.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				scanner.TC = ui.FailTC
				continue
			}
			return out, fmt.Errorf("lex: preparse: %w", err)
		}
		t := tok.(*lexmachine.Token)
		out = append(out, ppConvert(t))
	}
	return out, nil
}

func ppConvert(t *lexmachine.Token) PreparseToken {
	span := [2]int{t.StartColumn, t.EndColumn}
	text, _ := t.Value.(string)
	switch t.Type {
	case ppImport:
		return PreparseToken{Kind: TImport, Text: text, Span: span}
	case ppExport:
		return PreparseToken{Kind: TExport, Text: text, Span: span}
	case ppNamespace:
		return PreparseToken{Kind: TNamespace, Text: text, Span: span}
	case ppConst:
		return PreparseToken{Kind: TConst, Text: text, Span: span}
	case ppMacro:
		return PreparseToken{Kind: TMacro, Text: text, Span: span}
	case ppRuleArrow:
		return PreparseToken{Kind: TRuleArrow, Text: text, Span: span}
	case ppLParen:
		return PreparseToken{Kind: TLParen, Text: text, Span: span}
	case ppRParen:
		return PreparseToken{Kind: TRParen, Text: text, Span: span}
	case ppLBracket:
		return PreparseToken{Kind: TLBracket, Text: text, Span: span}
	case ppRBracket:
		return PreparseToken{Kind: TRBracket, Text: text, Span: span}
	case ppLBrace:
		return PreparseToken{Kind: TLBrace, Text: text, Span: span}
	case ppRBrace:
		return PreparseToken{Kind: TRBrace, Text: text, Span: span}
	case ppBackslash:
		return PreparseToken{Kind: TBackslash, Text: text, Span: span}
	case ppColonColon:
		return PreparseToken{Kind: TColonColon, Text: text, Span: span}
	case ppStar:
		return PreparseToken{Kind: TName, Text: "*", Span: span}
	case ppComma:
		return PreparseToken{Kind: TName, Text: ",", Span: span}
	case ppString:
		return PreparseToken{Kind: TString, Text: text, Span: span}
	case ppNumber:
		return PreparseToken{Kind: TNumber, Text: text, Span: span}
	default:
		return PreparseToken{Kind: TName, Text: text, Span: span}
	}
}
