package lex

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
)

// TokKind classifies a lexed Token.
type TokKind uint8

const (
	TName TokKind = iota
	TNumber
	TInt
	TChar
	TString
	TLParen
	TRParen
	TLBracket
	TRBracket
	TLBrace
	TRBrace
	TBackslash // lambda introducer '\'
	TColonColon
	TImport
	TExport
	TNamespace
	TConst
	TMacro
	TRuleArrow // =<float>=>
	TPlaceholder
	TSymbolicRun // an un-split run of symbolic bytes; Scan never emits it, it splits runs into TName itself
	TEOF
)

func (k TokKind) String() string {
	names := [...]string{
		"Name", "Number", "Int", "Char", "String",
		"LParen", "RParen", "LBracket", "RBracket", "LBrace", "RBrace",
		"Backslash", "ColonColon", "Import", "Export", "Namespace", "Const",
		"Macro", "RuleArrow", "Placeholder", "SymbolicRun", "EOF",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "TokKind?"
}

// PlaceholderPrefix distinguishes the three placeholder lexical prefixes.
type PlaceholderPrefix uint8

const (
	PfxScalar  PlaceholderPrefix = iota // $x
	PfxVecZero                          // ..$x
	PfxVecOne                           // ...$x
)

// Token is one lexed unit plus its source span.
type Token struct {
	Kind TokKind
	Span [2]int // byte offsets [start, end)

	// Name/TColonColon-qualified identifier payload (also used for
	// TSymbolicRun, where Text carries the raw symbolic run).
	Text string
	Name intern.Tok // interned Text, valid when Kind == TName

	// Numeric literal payloads.
	NumVal  float64
	IntVal  uint64
	CharVal rune

	// String literal payload, already escape-decoded.
	StrVal string
	Str    intern.Tok // interned StrVal, valid when Kind == TString

	// TRuleArrow payload.
	Priority float64

	// TPlaceholder payload.
	PlaceholderPfx  PlaceholderPrefix
	PlaceholderName string
	PlaceholderPrio int
}

func (t Token) String() string {
	switch t.Kind {
	case TName, TSymbolicRun:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case TNumber:
		return fmt.Sprintf("Number(%g)", t.NumVal)
	case TInt:
		return fmt.Sprintf("Int(%d)", t.IntVal)
	case TString:
		return fmt.Sprintf("String(%q)", t.StrVal)
	case TRuleArrow:
		return fmt.Sprintf("=%g=>", t.Priority)
	case TPlaceholder:
		return fmt.Sprintf("Placeholder(%s,%d)", t.PlaceholderName, t.PlaceholderPrio)
	default:
		return t.Kind.String()
	}
}
