package rewrite

import (
	"github.com/cnf/structhash"

	"github.com/orchid-lang/orchid/match"
	"github.com/orchid-lang/orchid/rules"
	"github.com/orchid-lang/orchid/syntax"
)

// Driver runs the §4.G fixpoint loop for one module's constant and macro
// bodies against a shared rules.Repository.
type Driver struct {
	repo   *rules.Repository
	budget int // rewrite steps per body; 0 means unbounded
}

// NewDriver returns a Driver that rewrites against repo, aborting a body
// with MacroBudgetExceeded after budget rule applications (0 for no
// limit).
func NewDriver(repo *rules.Repository, budget int) *Driver {
	return &Driver{repo: repo, budget: budget}
}

type appliedFrame struct {
	rule *rules.Rule
	hash string
}

// site locates one applicable rule match, wherever in the clause tree it
// was found, and knows how to splice a template's expansion back into the
// sequence it was found in.
type site struct {
	rule    *rules.Rule
	env     *match.Env
	matched []syntax.Clause
	splice  func(expansion []syntax.Clause) []syntax.Clause
}

// findSite implements §4.F match precedence rule 1 and the §8 "match
// outside-first" property: it asks the repository for a match against
// clauses itself before ever looking inside one of clauses' own S(...)
// or Lambda bodies. A rule sitting deeper only ever fires once nothing
// matches at the shallower level that contains it.
func (d *Driver) findSite(clauses []syntax.Clause) (*site, error) {
	rule, env, start, end, err := d.repo.Next(clauses)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		matched := append([]syntax.Clause{}, clauses[start:end]...)
		return &site{
			rule:    rule,
			env:     env,
			matched: matched,
			splice: func(expansion []syntax.Clause) []syntax.Clause {
				next := make([]syntax.Clause, 0, len(clauses)-(end-start)+len(expansion))
				next = append(next, clauses[:start]...)
				next = append(next, expansion...)
				next = append(next, clauses[end:]...)
				return next
			},
		}, nil
	}

	for i, c := range clauses {
		i, c := i, c
		var inner *site
		switch c.Kind {
		case syntax.KSeq:
			inner, err = d.findSite(c.Seq)
			if err != nil {
				return nil, err
			}
			if inner == nil {
				continue
			}
			return &site{
				rule: inner.rule, env: inner.env, matched: inner.matched,
				splice: func(expansion []syntax.Clause) []syntax.Clause {
					next := append([]syntax.Clause{}, clauses...)
					next[i] = syntax.Seq(c.Bracket, inner.splice(expansion))
					return next
				},
			}, nil
		case syntax.KLambda:
			inner, err = d.findSite(c.Body)
			if err != nil {
				return nil, err
			}
			if inner == nil {
				continue
			}
			return &site{
				rule: inner.rule, env: inner.env, matched: inner.matched,
				splice: func(expansion []syntax.Clause) []syntax.Clause {
					next := append([]syntax.Clause{}, clauses...)
					next[i] = syntax.Lambda(*c.Arg, inner.splice(expansion))
					return next
				},
			}, nil
		}
	}
	return nil, nil
}

// Rewrite runs body to macro normal form and lowers the result (§4.G
// steps 1-5, then the lowering described at the end of §4.G). Step 1's
// search descends into nested S(...)/Lambda bodies per findSite, so a
// rule produced by an earlier splice deep inside the body — e.g. the
// second `do` block of a nested do/cps/let expansion — is still found.
func (d *Driver) Rewrite(body []syntax.Clause) (syntax.Clause, error) {
	current := append([]syntax.Clause{}, body...)
	var stack []appliedFrame
	steps := 0

	for {
		found, err := d.findSite(current)
		if err != nil {
			return syntax.Clause{}, err
		}
		if found == nil {
			return Lower(current)
		}

		steps++
		if d.budget > 0 && steps > d.budget {
			return syntax.Clause{}, &MacroBudgetExceeded{Budget: d.budget}
		}

		for _, f := range stack {
			if f.rule == found.rule && encloses(found.matched, f.hash) {
				return syntax.Clause{}, &RuleRecursion{Source: found.rule.Source}
			}
		}
		stack = append(stack, appliedFrame{rule: found.rule, hash: canon(found.matched)})

		expansion := instantiate(found.rule.Template, found.env)
		current = found.splice(expansion)

		tracer().Debugf("rewrite: applied rule from module %d, %d clauses remain", found.rule.Source, len(current))
	}
}

// canon hashes clauses into the stable string used to recognize a repeat
// application (§4.G step 4).
func canon(clauses []syntax.Clause) string {
	h, err := structhash.Hash(clauses, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	return h
}

// encloses reports whether some contiguous run within haystack — at its
// top level or nested inside an S(...)/Lambda sub-sequence — hashes to
// targetHash, meaning haystack's match encloses an earlier match that
// produced that hash.
func encloses(haystack []syntax.Clause, targetHash string) bool {
	for i := 0; i < len(haystack); i++ {
		for j := i + 1; j <= len(haystack); j++ {
			if canon(haystack[i:j]) == targetHash {
				return true
			}
		}
	}
	for _, c := range haystack {
		switch c.Kind {
		case syntax.KSeq:
			if encloses(c.Seq, targetHash) {
				return true
			}
		case syntax.KLambda:
			if c.Arg != nil && encloses([]syntax.Clause{*c.Arg}, targetHash) {
				return true
			}
			if encloses(c.Body, targetHash) {
				return true
			}
		}
	}
	return false
}
