package rewrite

import (
	"testing"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/rules"
	"github.com/orchid-lang/orchid/syntax"
)

type fixture struct {
	in  *intern.Interner
	sym *intern.SymTable
}

func newFixture() *fixture {
	in := intern.New()
	return &fixture{in: in, sym: intern.NewSymTable(in)}
}

func (f *fixture) name(s string) intern.Sym {
	return f.sym.Intern([]intern.Tok{f.in.InternString(intern.KindName, s)})
}

func (f *fixture) scalarPH(name string) syntax.Clause {
	return syntax.Clause{Kind: syntax.KPlaceholder, Placeholder: syntax.Placeholder{
		Name: f.in.InternString(intern.KindPlaceholder, name), Kind: syntax.Scalar,
	}}
}

func intC(v uint64) syntax.Clause { return syntax.Clause{Kind: syntax.KInt, Int: v} }

func TestRewriteAppliesRuleThenLowers(t *testing.T) {
	f := newFixture()
	src := f.name("m")
	incSym := f.name("inc")
	x := f.scalarPH("x")

	rule, err := rules.NewRule(
		[]syntax.Clause{syntax.ResolvedName(incSym), x},
		[]syntax.Clause{syntax.ResolvedName(f.name("add")), intC(1), x},
		1, src, "m",
	)
	if err != nil {
		t.Fatal(err)
	}
	repo := rules.NewRepository()
	repo.Insert(rule)

	body := []syntax.Clause{syntax.ResolvedName(incSym), intC(41)}
	result, err := NewDriver(repo, 0).Rewrite(body)
	if err != nil {
		t.Fatal(err)
	}
	// add(1, 41) lowers to App(App(add, 1), 41).
	if result.Kind != syntax.KApp {
		t.Fatalf("got Kind %v, want KApp", result.Kind)
	}
	if result.AppArg.Int != 41 {
		t.Fatalf("got outer arg %+v, want 41", result.AppArg)
	}
	inner := result.Fn
	if inner.Kind != syntax.KApp || inner.AppArg.Int != 1 {
		t.Fatalf("got inner %+v, want App(add, 1)", inner)
	}
	if inner.Fn.Kind != syntax.KName || inner.Fn.Name != f.name("add") {
		t.Fatalf("got head %+v, want Name(add)", inner.Fn)
	}
}

func TestRewriteNoMatchIsAlreadyNormalForm(t *testing.T) {
	f := newFixture()
	repo := rules.NewRepository()
	body := []syntax.Clause{syntax.ResolvedName(f.name("x")), intC(7)}
	result, err := NewDriver(repo, 0).Rewrite(body)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != syntax.KApp || result.AppArg.Int != 7 {
		t.Fatalf("got %+v, want App(x, 7)", result)
	}
}

func TestRewriteMacroBudgetExceeded(t *testing.T) {
	f := newFixture()
	src := f.name("m")
	loopSym := f.name("loop")
	succSym := f.name("succ")
	x := f.scalarPH("x")

	// loop $x =1=> loop (succ $x) — each step wraps one more succ around
	// the previous argument, so the body keeps growing and never reaches
	// a fixpoint; only the step budget stops it.
	rule, err := rules.NewRule(
		[]syntax.Clause{syntax.ResolvedName(loopSym), x},
		[]syntax.Clause{
			syntax.ResolvedName(loopSym),
			syntax.Seq(syntax.Round, []syntax.Clause{syntax.ResolvedName(succSym), x}),
		},
		1, src, "m",
	)
	if err != nil {
		t.Fatal(err)
	}
	repo := rules.NewRepository()
	repo.Insert(rule)

	body := []syntax.Clause{syntax.ResolvedName(loopSym), intC(0)}
	_, err = NewDriver(repo, 3).Rewrite(body)
	if _, ok := err.(*MacroBudgetExceeded); !ok {
		t.Fatalf("got %v (%T), want *MacroBudgetExceeded", err, err)
	}
}

func TestRewriteDetectsRecursion(t *testing.T) {
	f := newFixture()
	src := f.name("m")
	wrapSym := f.name("wrap")
	x := f.scalarPH("x")

	// wrap $x =1=> wrap (wrap $x) — each application produces a strictly
	// larger clause sequence enclosing the previous match.
	rule, err := rules.NewRule(
		[]syntax.Clause{syntax.ResolvedName(wrapSym), x},
		[]syntax.Clause{
			syntax.ResolvedName(wrapSym),
			syntax.Seq(syntax.Round, []syntax.Clause{syntax.ResolvedName(wrapSym), x}),
		},
		1, src, "m",
	)
	if err != nil {
		t.Fatal(err)
	}
	repo := rules.NewRepository()
	repo.Insert(rule)

	body := []syntax.Clause{syntax.ResolvedName(wrapSym), intC(0)}
	_, err = NewDriver(repo, 0).Rewrite(body)
	if _, ok := err.(*RuleRecursion); !ok {
		t.Fatalf("got %v (%T), want *RuleRecursion", err, err)
	}
}

func TestRewriteFindsMatchNestedInsideLambdaBody(t *testing.T) {
	f := newFixture()
	src := f.name("m")
	incSym := f.name("inc")
	addSym := f.name("add")
	aSym := f.name("a")
	x := f.scalarPH("x")

	rule, err := rules.NewRule(
		[]syntax.Clause{syntax.ResolvedName(incSym), x},
		[]syntax.Clause{syntax.ResolvedName(addSym), intC(1), x},
		1, src, "m",
	)
	if err != nil {
		t.Fatal(err)
	}
	repo := rules.NewRepository()
	repo.Insert(rule)

	// The top-level body is already macro normal form (no "inc" at this
	// level); the only applicable match is inside the lambda's body, one
	// level of S(Round, ...) deep — mirroring how a do/cps/let expansion
	// leaves its next rewrite target nested inside the lambda splice.
	body := []syntax.Clause{
		syntax.ResolvedName(f.name("id")),
		syntax.Seq(syntax.Round, []syntax.Clause{
			syntax.Lambda(syntax.ResolvedName(aSym), []syntax.Clause{
				syntax.ResolvedName(incSym), intC(41),
			}),
		}),
	}
	result, err := NewDriver(repo, 0).Rewrite(body)
	if err != nil {
		t.Fatal(err)
	}
	// id( (\a. add 1 41) ) lowers to App(id, \a. App(App(add,1),41)).
	if result.Kind != syntax.KApp {
		t.Fatalf("got Kind %v, want KApp", result.Kind)
	}
	lam := result.AppArg
	if lam.Kind != syntax.KLambda {
		t.Fatalf("got arg %+v, want KLambda", lam)
	}
	if len(lam.Body) != 1 || lam.Body[0].Kind != syntax.KApp {
		t.Fatalf("got lambda body %+v, want one KApp clause", lam.Body)
	}
	inner := lam.Body[0].Fn
	if inner.Kind != syntax.KApp || inner.AppArg.Int != 1 {
		t.Fatalf("got inner %+v, want App(add, 1)", inner)
	}
	if lam.Body[0].AppArg.Int != 41 {
		t.Fatalf("got outer arg %+v, want 41", lam.Body[0].AppArg)
	}
}

func TestRewritePrefersOutsideMatchOverNestedMatch(t *testing.T) {
	f := newFixture()
	src := f.name("m")
	incSym := f.name("inc")
	addSym := f.name("add")
	x := f.scalarPH("x")

	rule, err := rules.NewRule(
		[]syntax.Clause{syntax.ResolvedName(incSym), x},
		[]syntax.Clause{syntax.ResolvedName(addSym), intC(1), x},
		1, src, "m",
	)
	if err != nil {
		t.Fatal(err)
	}
	repo := rules.NewRepository()
	repo.Insert(rule)

	// "inc" appears both at the top level and nested inside an S(Round,
	// ...); per §4.F rule 1 / §8 "match outside-first" the outer one must
	// fire first.
	body := []syntax.Clause{
		syntax.ResolvedName(incSym), intC(1),
		syntax.Seq(syntax.Round, []syntax.Clause{syntax.ResolvedName(incSym), intC(99)}),
	}
	driver := NewDriver(repo, 1)
	current := append([]syntax.Clause{}, body...)
	found, err := driver.findSite(current)
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || len(found.matched) != 2 || found.matched[1].Int != 1 {
		t.Fatalf("got match %+v, want the outer `inc 1` to win over the nested `inc 99`", found)
	}
}

func TestLowerRejectsNonRoundBracket(t *testing.T) {
	body := []syntax.Clause{syntax.Seq(syntax.Square, []syntax.Clause{intC(1)})}
	_, err := Lower(body)
	if _, ok := err.(*NonRoundBracketAtLowering); !ok {
		t.Fatalf("got %v (%T), want *NonRoundBracketAtLowering", err, err)
	}
}

func TestLowerFoldsJuxtaposition(t *testing.T) {
	f := newFixture()
	body := []syntax.Clause{syntax.ResolvedName(f.name("f")), intC(1), intC(2)}
	result, err := Lower(body)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != syntax.KApp || result.AppArg.Int != 2 {
		t.Fatalf("got %+v, want App(App(f,1),2)", result)
	}
	if result.Fn.Kind != syntax.KApp || result.Fn.AppArg.Int != 1 {
		t.Fatalf("got %+v, want inner App(f,1)", result.Fn)
	}
}
