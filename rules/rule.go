package rules

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// Rule is a validated rewrite rule (§3's Rule data model), bound to the
// module it was declared in.
type Rule struct {
	Pattern  []syntax.Clause
	Template []syntax.Clause
	Priority float64
	Source   intern.Sym

	// required is the set of Syms that must appear in a candidate clause
	// sequence for this rule to have any chance of matching (§4.E's
	// cheap sweep), computed once at validation time.
	required *treeset.Set
}

func symComparator(a, b interface{}) int {
	sa, sb := a.(intern.Sym), b.(intern.Sym)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

// NewRule validates pattern/template against §3's Rule invariants and, on
// success, returns a Rule ready for Repository.Insert.
func NewRule(pattern, template []syntax.Clause, priority float64, source intern.Sym, sourceName string) (*Rule, error) {
	if len(pattern) == 0 {
		return nil, &EmptyPattern{Source: sourceName}
	}
	if !hasName(pattern) {
		return nil, &NoNameInPattern{Source: sourceName}
	}
	if err := checkAdjacentVectors(pattern, sourceName); err != nil {
		return nil, err
	}

	patNames := make(map[intern.Tok]bool)
	if err := collectPlaceholderNames(pattern, patNames, sourceName); err != nil {
		return nil, err
	}

	tplNames := make(map[intern.Tok]bool)
	collectPlaceholderNamesLoose(template, tplNames)
	for name := range tplNames {
		if !patNames[name] {
			return nil, &UndeclaredPlaceholderInTemplate{Source: sourceName, Name: name}
		}
	}

	required := treeset.NewWith(symComparator)
	requiredSet := make(map[intern.Sym]bool)
	syntax.RequiredNames(pattern, requiredSet)
	for sym := range requiredSet {
		required.Add(sym)
	}

	return &Rule{
		Pattern:  pattern,
		Template: template,
		Priority: priority,
		Source:   source,
		required: required,
	}, nil
}

func hasName(seq []syntax.Clause) bool {
	for _, c := range seq {
		switch c.Kind {
		case syntax.KName:
			return true
		case syntax.KSeq:
			if hasName(c.Seq) {
				return true
			}
		case syntax.KLambda:
			if c.Arg != nil && hasName([]syntax.Clause{*c.Arg}) {
				return true
			}
			if hasName(c.Body) {
				return true
			}
		}
	}
	return false
}

func isVector(c syntax.Clause) bool {
	return c.Kind == syntax.KPlaceholder && c.Placeholder.Kind != syntax.Scalar
}

// checkAdjacentVectors rejects two vector placeholders with nothing
// between them at the same sequence level, recursing into nested
// brackets and lambda bodies (each is its own "level").
func checkAdjacentVectors(seq []syntax.Clause, source string) error {
	for i := 0; i+1 < len(seq); i++ {
		if isVector(seq[i]) && isVector(seq[i+1]) {
			return &AdjacentVectors{Source: source}
		}
	}
	for _, c := range seq {
		switch c.Kind {
		case syntax.KSeq:
			if err := checkAdjacentVectors(c.Seq, source); err != nil {
				return err
			}
		case syntax.KLambda:
			if err := checkAdjacentVectors(c.Body, source); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectPlaceholderNames gathers every placeholder name in seq,
// rejecting a name that occurs more than once anywhere in the pattern
// (§3: "no placeholder name appears twice").
func collectPlaceholderNames(seq []syntax.Clause, into map[intern.Tok]bool, source string) error {
	for _, c := range seq {
		switch c.Kind {
		case syntax.KPlaceholder:
			if into[c.Placeholder.Name] {
				return &DuplicatePlaceholder{Source: source, Name: c.Placeholder.Name}
			}
			into[c.Placeholder.Name] = true
		case syntax.KSeq:
			if err := collectPlaceholderNames(c.Seq, into, source); err != nil {
				return err
			}
		case syntax.KLambda:
			if c.Arg != nil {
				if err := collectPlaceholderNames([]syntax.Clause{*c.Arg}, into, source); err != nil {
					return err
				}
			}
			if err := collectPlaceholderNames(c.Body, into, source); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectPlaceholderNamesLoose is the template-side counterpart: a
// template may legitimately splice the same placeholder more than once
// (§4.G step 3), so it only collects names, never rejecting repeats.
func collectPlaceholderNamesLoose(seq []syntax.Clause, into map[intern.Tok]bool) {
	for _, c := range seq {
		switch c.Kind {
		case syntax.KPlaceholder:
			into[c.Placeholder.Name] = true
		case syntax.KSeq:
			collectPlaceholderNamesLoose(c.Seq, into)
		case syntax.KLambda:
			if c.Arg != nil {
				collectPlaceholderNamesLoose([]syntax.Clause{*c.Arg}, into)
			}
			collectPlaceholderNamesLoose(c.Body, into)
		}
	}
}

// requiredPresent reports whether every Sym rule requires is present in
// target's own required-Sym set.
func requiredPresent(rule *Rule, present map[intern.Sym]bool) bool {
	ok := true
	rule.required.Each(func(_ int, v interface{}) {
		if !present[v.(intern.Sym)] {
			ok = false
		}
	})
	return ok
}
