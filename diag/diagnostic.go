package diag

import (
	"fmt"

	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/pipeline"
	"github.com/orchid-lang/orchid/reduce"
	"github.com/orchid-lang/orchid/rewrite"
	"github.com/orchid-lang/orchid/rules"
	"github.com/orchid-lang/orchid/syntax/lex"
	"github.com/orchid-lang/orchid/syntax/parse"
)

// Phase names the pipeline stage a Diagnostic was raised in, matching the
// rows of spec.md §7's error table.
type Phase uint8

const (
	PhaseLoader Phase = iota
	PhaseLexParse
	PhaseResolution
	PhaseRuleValidation
	PhaseRewriting
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseLoader:
		return "loader"
	case PhaseLexParse:
		return "lex/parse"
	case PhaseResolution:
		return "resolution"
	case PhaseRuleValidation:
		return "rule validation"
	case PhaseRewriting:
		return "rewriting"
	case PhaseRuntime:
		return "runtime"
	default:
		return "phase?"
	}
}

// Diagnostic is one reported failure: its phase, a short machine-stable
// Kind matching spec.md §7's column, the source Span if one is known,
// and the underlying error.
type Diagnostic struct {
	Phase Phase
	Kind  string
	Span  Span
	Err   error
}

func (d Diagnostic) Error() string {
	if !d.Span.IsNull() {
		return fmt.Sprintf("[%s] %s at %v: %v", d.Phase, d.Kind, d.Span, d.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", d.Phase, d.Kind, d.Err)
}

// FromError classifies err into a Diagnostic by concrete type, matching
// it against every error type the pipeline, syntax, rules, rewrite,
// reduce and extern packages raise. An error of an unrecognized type is
// still wrapped, as phase Runtime kind "AtomFail", rather than dropped —
// embedders may register their own ExternFn/Atom errors and those must
// still surface somewhere.
func FromError(err error) Diagnostic {
	switch e := err.(type) {
	case *pipeline.MissingFile:
		return Diagnostic{Phase: PhaseLoader, Kind: "MissingFile", Err: e}
	case *pipeline.CyclicImport:
		return Diagnostic{Phase: PhaseLoader, Kind: "CyclicImport", Err: e}
	case *pipeline.ResolverError:
		return Diagnostic{Phase: PhaseLoader, Kind: "ResolverError", Err: e}
	case *pipeline.UndefinedImport:
		return Diagnostic{Phase: PhaseResolution, Kind: "UndefinedImport", Err: e}
	case *pipeline.AmbiguousWildcard:
		return Diagnostic{Phase: PhaseResolution, Kind: "AmbiguousWildcard", Err: e}

	case *lex.Error:
		return Diagnostic{Phase: PhaseLexParse, Kind: e.Kind, Span: Span(e.Span), Err: e}
	case *parse.Error:
		return Diagnostic{Phase: PhaseLexParse, Kind: e.Kind, Span: Span(e.Span), Err: e}

	case *rules.EmptyPattern:
		return Diagnostic{Phase: PhaseRuleValidation, Kind: "EmptyPattern", Err: e}
	case *rules.NoNameInPattern:
		return Diagnostic{Phase: PhaseRuleValidation, Kind: "NoNameInPattern", Err: e}
	case *rules.AdjacentVectors:
		return Diagnostic{Phase: PhaseRuleValidation, Kind: "AdjacentVectors", Err: e}
	case *rules.DuplicatePlaceholder:
		return Diagnostic{Phase: PhaseRuleValidation, Kind: "DuplicatePlaceholder", Err: e}
	case *rules.UndeclaredPlaceholderInTemplate:
		return Diagnostic{Phase: PhaseRuleValidation, Kind: "UndeclaredPlaceholderInTemplate", Err: e}

	case *rules.RuleAmbiguity:
		return Diagnostic{Phase: PhaseRewriting, Kind: "RuleAmbiguity", Err: e}
	case *rewrite.RuleRecursion:
		return Diagnostic{Phase: PhaseRewriting, Kind: "RuleRecursion", Err: e}
	case *rewrite.MacroBudgetExceeded:
		return Diagnostic{Phase: PhaseRewriting, Kind: "MacroBudgetExhausted", Err: e}
	case *rewrite.NonRoundBracketAtLowering:
		return Diagnostic{Phase: PhaseRewriting, Kind: "NonRoundBracketAtLowering", Err: e}

	case *reduce.BudgetExhausted:
		return Diagnostic{Phase: PhaseRuntime, Kind: "StepBudgetExhausted", Err: e}
	case *reduce.UnresolvedName, *reduce.UnlowerableClause, *reduce.ForeignExprRef:
		return Diagnostic{Phase: PhaseRuntime, Kind: "RuntimeError", Err: e}
	case *extern.ArityMismatch:
		return Diagnostic{Phase: PhaseRuntime, Kind: "ArityMismatch", Err: e}
	case *extern.Panic:
		return Diagnostic{Phase: PhaseRuntime, Kind: "Panic", Err: e}

	default:
		return Diagnostic{Phase: PhaseRuntime, Kind: "AtomFail", Err: err}
	}
}
