package rules

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/match"
	"github.com/orchid-lang/orchid/syntax"
)

// priorityKey orders Repository's backing tree by descending priority,
// falling back to insertion sequence for a total, deterministic (if
// spec-unspecified) order within a band.
type priorityKey struct {
	priority float64
	seq      int
}

func priorityComparator(a, b interface{}) int {
	ka, kb := a.(priorityKey), b.(priorityKey)
	switch {
	case ka.priority > kb.priority:
		return -1
	case ka.priority < kb.priority:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// Repository indexes every rule across every module by descending
// priority (§4.E).
type Repository struct {
	tree *redblacktree.Tree
	next int
}

// NewRepository returns an empty Repository.
func NewRepository() *Repository {
	return &Repository{tree: redblacktree.NewWith(priorityComparator)}
}

// Insert adds a validated rule to the repository. rule must come from
// NewRule, which already checked §3's invariants.
func (r *Repository) Insert(rule *Rule) {
	r.tree.Put(priorityKey{priority: rule.Priority, seq: r.next}, rule)
	r.next++
}

// Next returns the highest-priority rule matching clauses, the binding Env
// a caller (package rewrite) uses to apply it, and the [start, end) range
// of clauses the match claims — the range rewrite splices the rule's
// template into. A nil Rule with a nil error means no rule matches. A
// non-nil RuleAmbiguity error means two distinct rules tied at the
// winning priority both matched.
func (r *Repository) Next(clauses []syntax.Clause) (rule *Rule, env *match.Env, start, end int, err error) {
	present := make(map[intern.Sym]bool)
	syntax.RequiredNames(clauses, present)

	var bestRule *Rule
	var bestEnv *match.Env
	var bestStart, bestEnd int
	var bestPrio float64
	ambiguous := false

	it := r.tree.Iterator()
	for it.Next() {
		key := it.Key().(priorityKey)
		if bestRule != nil && key.priority < bestPrio {
			break
		}
		candidate := it.Value().(*Rule)
		if !requiredPresent(candidate, present) {
			continue
		}
		e, s, en, ok := match.Compile(candidate.Pattern).Match(clauses)
		if !ok {
			continue
		}
		if bestRule == nil {
			bestRule, bestEnv, bestStart, bestEnd, bestPrio = candidate, e, s, en, key.priority
		} else {
			ambiguous = true
		}
	}

	if ambiguous {
		return nil, nil, 0, 0, &RuleAmbiguity{Priority: bestPrio}
	}
	return bestRule, bestEnv, bestStart, bestEnd, nil
}

// Size reports how many rules are indexed, mostly for tests.
func (r *Repository) Size() int { return r.tree.Size() }
