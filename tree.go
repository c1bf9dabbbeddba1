package orchid

import (
	"github.com/orchid-lang/orchid/diag"
	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/pipeline"
	"github.com/orchid-lang/orchid/reduce"
	"github.com/orchid-lang/orchid/rewrite"
	"github.com/orchid-lang/orchid/rules"
)

// Tree is a compiled program, ready for Run/RunHandler: the module
// forest package pipeline assembled, every top-level constant lowered
// and converted into a reduce.Expr graph, and the Diagnostics collected
// along the way. This realizes spec.md §3's "Tree (symbol table):
// Map<Sym, Expr>" — named program internally, not Tree, to avoid
// colliding with package pipeline's own Tree (the pre-macro module
// forest), which this type embeds under a different field name.
type Tree struct {
	cfg     *Config
	pipe    *pipeline.Pipeline
	modules *pipeline.Tree
	program map[intern.Sym]*reduce.Expr

	// Diagnostics collects every non-fatal diagnostic raised while
	// compiling (per-constant rewriting failures; §7 "aborts that
	// constant's lowering; other constants proceed").
	Diagnostics *diag.Bag
}

// Compile runs the full pipeline for targets — loading, parsing,
// namespace assembly, import resolution (package pipeline), rule
// indexing and rewriting (packages rules/rewrite), and expression-graph
// construction (package reduce) — against cfg.Resolver. Every extern
// function registered on cfg.Registry is also seeded into the resulting
// program under its own name and under that name inside every module
// (where no constant of that name exists), so Orchid source referencing
// that name as a free variable resolves to it during reduction.
//
// A pipeline-layer failure (Loader/Resolution/rule validation; §7's
// "aborts pipeline" rows) is fatal: Compile returns a nil *Tree and a
// Bag holding exactly that one diagnostic. A Rewriting-phase failure for
// one constant is not fatal: it is recorded in the returned Tree's
// Diagnostics and that constant is simply absent from the program, while
// every other constant still compiles (§7 "other constants proceed").
func Compile(cfg *Config, targets []string) (*Tree, *diag.Bag) {
	bag := diag.NewBag()

	pipe := pipeline.New(cfg.In, cfg.Sym, cfg.Resolver)

	modules, err := pipe.Compile(targets)
	if err != nil {
		bag.AddError(err)
		return nil, bag
	}

	repo := rules.NewRepository()
	for _, m := range modules.Modules {
		if err := insertModuleRules(repo, cfg.Sym, m); err != nil {
			bag.AddError(err)
			return nil, bag
		}
	}

	driver := rewrite.NewDriver(repo, cfg.rewriteBudget())
	program := make(map[intern.Sym]*reduce.Expr)
	for _, c := range modules.AllConsts() {
		lowered, err := driver.Rewrite(c.Body)
		if err != nil {
			bag.AddError(err)
			continue
		}
		e, err := reduce.FromClause(lowered)
		if err != nil {
			bag.AddError(err)
			continue
		}
		program[c.Name] = e
	}

	for name, fn := range cfg.Registry.Externs() {
		e, err := reduce.FromClause(extern.WrapExternFn(fn))
		if err != nil {
			bag.AddError(err)
			continue
		}
		program[pipe.PathSym(name)] = e
		// A bare name in a module body resolves to that module's own path,
		// so the extern is also bound there unless a constant already is.
		toks := cfg.Sym.Path(pipe.PathSym(name))
		pending := make([]*pipeline.Module, 0, len(modules.Modules))
		for _, m := range modules.Modules {
			pending = append(pending, m)
		}
		for len(pending) > 0 {
			m := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			if qualified := cfg.Sym.InternQualified(m.Sym, toks); program[qualified] == nil {
				program[qualified] = e
			}
			for _, child := range m.Children {
				pending = append(pending, child)
			}
		}
	}

	tracer().Debugf("orchid: compiled %d of %d top-level constants", len(program), len(modules.AllConsts()))

	return &Tree{cfg: cfg, pipe: pipe, modules: modules, program: program, Diagnostics: bag}, bag
}

// insertModuleRules validates and indexes every macro declared in m and
// in its Children, recursively (the caller walks pipeline.Tree.Modules,
// which holds every loaded file module; m's Children are the namespace
// blocks nested inside that same file). A rule validation failure at any
// nesting depth aborts the walk.
func insertModuleRules(repo *rules.Repository, sym *intern.SymTable, m *pipeline.Module) error {
	sourceName := sym.String(m.Sym)
	for _, macro := range m.Macros {
		rule, err := rules.NewRule(macro.Pattern, macro.Body, macro.Priority, m.Sym, sourceName)
		if err != nil {
			return err
		}
		repo.Insert(rule)
	}
	for _, child := range m.Children {
		if err := insertModuleRules(repo, sym, child); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a "::"-separated top-level constant path to its
// compiled Expr.
func (t *Tree) Lookup(name string) (*reduce.Expr, bool) {
	e, ok := t.program[t.pipe.PathSym(name)]
	return e, ok
}

// reducer builds a Reducer resolving free names against every compiled
// constant in t.
func (t *Tree) reducer() *reduce.Reducer {
	return reduce.NewReducer(t.program)
}
