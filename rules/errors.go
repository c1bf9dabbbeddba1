package rules

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
)

// EmptyPattern is raised at insert when a rule's pattern is empty (§3).
type EmptyPattern struct{ Source string }

func (e *EmptyPattern) Error() string {
	return fmt.Sprintf("rules: empty pattern in rule from %q", e.Source)
}

// NoNameInPattern is raised when a rule's pattern contains no Name
// clause, so the repository would have no Sym to index it by.
type NoNameInPattern struct{ Source string }

func (e *NoNameInPattern) Error() string {
	return fmt.Sprintf("rules: pattern in rule from %q contains no Name", e.Source)
}

// AdjacentVectors is raised when a pattern has two vector placeholders
// with nothing between them at the same sequence level.
type AdjacentVectors struct{ Source string }

func (e *AdjacentVectors) Error() string {
	return fmt.Sprintf("rules: adjacent vector placeholders in rule from %q", e.Source)
}

// DuplicatePlaceholder is raised when the same placeholder name occurs
// more than once in a pattern.
type DuplicatePlaceholder struct {
	Source string
	Name   intern.Tok
}

func (e *DuplicatePlaceholder) Error() string {
	return fmt.Sprintf("rules: placeholder reused in pattern of rule from %q", e.Source)
}

// UndeclaredPlaceholderInTemplate is raised when a template references a
// placeholder name that its pattern never binds.
type UndeclaredPlaceholderInTemplate struct {
	Source string
	Name   intern.Tok
}

func (e *UndeclaredPlaceholderInTemplate) Error() string {
	return fmt.Sprintf("rules: template in rule from %q uses an unbound placeholder", e.Source)
}

// RuleAmbiguity is raised by Repository.Next when two distinct rules at
// the same priority both match a clause sequence (§4.G step 4).
type RuleAmbiguity struct {
	Priority float64
}

func (e *RuleAmbiguity) Error() string {
	return fmt.Sprintf("rules: ambiguous match at priority %g", e.Priority)
}
