package rules

import (
	"testing"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

func mkSym(sym *intern.SymTable, in *intern.Interner, name string) intern.Sym {
	return sym.Intern([]intern.Tok{in.InternString(intern.KindName, name)})
}

func TestNewRuleRejectsEmptyPattern(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	_, err := NewRule(nil, nil, 0, src, "m")
	if _, ok := err.(*EmptyPattern); !ok {
		t.Fatalf("got %T, want *EmptyPattern", err)
	}
}

func TestNewRuleRejectsNoNameInPattern(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	pat := []syntax.Clause{{Kind: syntax.KInt, Int: 1}}
	_, err := NewRule(pat, nil, 0, src, "m")
	if _, ok := err.(*NoNameInPattern); !ok {
		t.Fatalf("got %T, want *NoNameInPattern", err)
	}
}

func TestNewRuleRejectsAdjacentVectors(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	plusTok := in.InternString(intern.KindName, "plus")
	plusSym := sym.Intern([]intern.Tok{plusTok})
	a := in.InternString(intern.KindName, "a")
	b := in.InternString(intern.KindName, "b")
	pat := []syntax.Clause{
		syntax.ResolvedName(plusSym),
		{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: a, Kind: syntax.VecZero}},
		{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: b, Kind: syntax.VecOne}},
	}
	_, err := NewRule(pat, nil, 0, src, "m")
	if _, ok := err.(*AdjacentVectors); !ok {
		t.Fatalf("got %T, want *AdjacentVectors", err)
	}
}

func TestNewRuleRejectsDuplicatePlaceholder(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	plusTok := in.InternString(intern.KindName, "plus")
	plusSym := sym.Intern([]intern.Tok{plusTok})
	x := in.InternString(intern.KindName, "x")
	pat := []syntax.Clause{
		syntax.ResolvedName(plusSym),
		{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}},
		{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}},
	}
	_, err := NewRule(pat, nil, 0, src, "m")
	if _, ok := err.(*DuplicatePlaceholder); !ok {
		t.Fatalf("got %T, want *DuplicatePlaceholder", err)
	}
}

func TestNewRuleRejectsUndeclaredTemplatePlaceholder(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	plusTok := in.InternString(intern.KindName, "plus")
	plusSym := sym.Intern([]intern.Tok{plusTok})
	x := in.InternString(intern.KindName, "x")
	y := in.InternString(intern.KindName, "y")
	pat := []syntax.Clause{
		syntax.ResolvedName(plusSym),
		{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}},
	}
	tpl := []syntax.Clause{
		{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: y, Kind: syntax.Scalar}},
	}
	_, err := NewRule(pat, tpl, 0, src, "m")
	if _, ok := err.(*UndeclaredPlaceholderInTemplate); !ok {
		t.Fatalf("got %T, want *UndeclaredPlaceholderInTemplate", err)
	}
}

func TestRepositoryNextPicksHighestPriority(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	addTok := in.InternString(intern.KindName, "add")
	addSym := sym.Intern([]intern.Tok{addTok})

	x := in.InternString(intern.KindName, "x")
	low, err := NewRule(
		[]syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}}},
		[]syntax.Clause{{Kind: syntax.KInt, Int: 0}},
		1, src, "m")
	if err != nil {
		t.Fatal(err)
	}
	high, err := NewRule(
		[]syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}}},
		[]syntax.Clause{{Kind: syntax.KInt, Int: 1}},
		5, src, "m")
	if err != nil {
		t.Fatal(err)
	}

	repo := NewRepository()
	repo.Insert(low)
	repo.Insert(high)

	target := []syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KInt, Int: 42}}
	rule, _, start, end, err := repo.Next(target)
	if err != nil {
		t.Fatal(err)
	}
	if start != 0 || end != 2 {
		t.Fatalf("got [%d,%d), want [0,2)", start, end)
	}
	if rule != high {
		t.Fatalf("got rule with template %v, want the priority-5 rule", rule.Template)
	}
}

func TestRepositoryNextRequiresSymPresence(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	addTok := in.InternString(intern.KindName, "add")
	addSym := sym.Intern([]intern.Tok{addTok})
	x := in.InternString(intern.KindName, "x")

	rule, err := NewRule(
		[]syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}}},
		[]syntax.Clause{{Kind: syntax.KInt, Int: 0}},
		1, src, "m")
	if err != nil {
		t.Fatal(err)
	}
	repo := NewRepository()
	repo.Insert(rule)

	target := []syntax.Clause{{Kind: syntax.KInt, Int: 42}}
	got, _, _, _, err := repo.Next(target)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("got %v, want no match since required Sym is absent", got)
	}
}

func TestRepositoryNextDetectsAmbiguity(t *testing.T) {
	in := intern.New()
	sym := intern.NewSymTable(in)
	src := mkSym(sym, in, "m")
	addTok := in.InternString(intern.KindName, "add")
	addSym := sym.Intern([]intern.Tok{addTok})
	x := in.InternString(intern.KindName, "x")
	y := in.InternString(intern.KindName, "y")

	r1, _ := NewRule(
		[]syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: x, Kind: syntax.Scalar}}},
		[]syntax.Clause{{Kind: syntax.KInt, Int: 0}},
		3, src, "m")
	r2, _ := NewRule(
		[]syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{Name: y, Kind: syntax.Scalar}}},
		[]syntax.Clause{{Kind: syntax.KInt, Int: 1}},
		3, src, "m")

	repo := NewRepository()
	repo.Insert(r1)
	repo.Insert(r2)

	target := []syntax.Clause{syntax.ResolvedName(addSym), {Kind: syntax.KInt, Int: 42}}
	_, _, _, _, err := repo.Next(target)
	if _, ok := err.(*RuleAmbiguity); !ok {
		t.Fatalf("got %v, want *RuleAmbiguity", err)
	}
}
