package rewrite

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// RuleRecursion reports a rule re-applying itself to a clause sequence
// that encloses its own earlier match (§4.G step 4).
type RuleRecursion struct {
	Source intern.Sym
}

func (e *RuleRecursion) Error() string {
	return fmt.Sprintf("rule recursion: a rule from module %d re-applies to a range enclosing its own earlier match", e.Source)
}

// MacroBudgetExceeded reports the configured rewrite-step budget for one
// constant body running out (§4.G, "the driver may enforce a configurable
// hard rewrite-step budget").
type MacroBudgetExceeded struct {
	Budget int
}

func (e *MacroBudgetExceeded) Error() string {
	return fmt.Sprintf("macro budget exceeded: more than %d rewrite steps", e.Budget)
}

// NonRoundBracketAtLowering reports a Square or Curly bracket surviving to
// lowering, which §4.G treats as an error: the macro system is expected to
// have eliminated every non-Round bracket by the time a body reaches
// normal form.
type NonRoundBracketAtLowering struct {
	Bracket syntax.Bracket
}

func (e *NonRoundBracketAtLowering) Error() string {
	return fmt.Sprintf("non-round bracket %q survived macro expansion into lowering", e.Bracket.Open())
}

// EmptyLoweredBody reports an empty clause sequence reaching the fold
// step of lowering, which has no well-defined App-chain result.
type EmptyLoweredBody struct{}

func (e *EmptyLoweredBody) Error() string {
	return "empty clause sequence cannot be lowered to a runtime expression"
}
