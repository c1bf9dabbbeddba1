package orchid

import (
	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/pipeline"
)

// Default step budgets, used when a Config is built with NewConfig and
// left at its zero value for these fields.
const (
	DefaultRewriteBudget = 10000
	DefaultReduceBudget  = 1000000
)

// Config gathers the ambient defaults an embedder would otherwise have
// to pass to every call (§10): the two step budgets, the project's
// Resolver, and the Registry externs/atom kinds are registered against.
// It is built in code by the embedder — no file- or env-based loader is
// provided, matching the teacher's preference for constructor-injected
// dependencies over a config-file library, and an embedded language has
// no standalone process to read flags or files for in the first place.
type Config struct {
	// RewriteBudget bounds macro rewriting steps per top-level constant
	// (§4.G). Zero means DefaultRewriteBudget, not unbounded.
	RewriteBudget int
	// ReduceBudget is the default step budget Run uses when its caller
	// doesn't specify one explicitly (a budget of 0 passed to Run is
	// replaced with this value, not treated as "no limit").
	ReduceBudget int
	// ProjectRoot is documentation only here; the actual filesystem
	// access lives behind Resolver, which package pipeline already
	// treats as the sole loader boundary (§4.D).
	ProjectRoot string
	// Resolver maps module paths to source bytes (§4.D, §10). A Resolver
	// wanting to turn a Sym back into a path string (e.g. a filesystem
	// resolver building an os.Open path) uses Sym below — the same
	// Interner/SymTable pair Compile threads through every stage, so a
	// Sym seen by Resolver always resolves against it.
	Resolver pipeline.Resolver
	// In and Sym are the interner and symbol table Compile builds every
	// pipeline.Pipeline from. One Config owns exactly one pair, shared
	// across every Compile call made with it, so a Resolver can stash a
	// reference to Sym at construction time instead of receiving one.
	In  *intern.Interner
	Sym *intern.SymTable
	// Registry holds the embedder's named extern functions and atom
	// kinds, built fresh per Config rather than shared globally (see
	// extern.Registry's own doc comment).
	Registry *extern.Registry
}

// NewConfig returns a Config with default step budgets, a fresh
// Interner/SymTable pair, and a fresh, empty Registry, reading source
// through resolver.
func NewConfig(resolver pipeline.Resolver) *Config {
	in := intern.New()
	return &Config{
		RewriteBudget: DefaultRewriteBudget,
		ReduceBudget:  DefaultReduceBudget,
		Resolver:      resolver,
		In:            in,
		Sym:           intern.NewSymTable(in),
		Registry:      extern.NewRegistry(),
	}
}

// RegisterExtern binds name to fn in cfg's Registry (§6 register_extern).
func (cfg *Config) RegisterExtern(name string, fn extern.ExternFn) {
	cfg.Registry.RegisterExtern(name, fn)
}

// RegisterAtomKind binds name to factory in cfg's Registry (§6
// register_atom_kind).
func (cfg *Config) RegisterAtomKind(name string, factory extern.AtomKindFactory) {
	cfg.Registry.RegisterAtomKind(name, factory)
}

func (cfg *Config) rewriteBudget() int {
	if cfg.RewriteBudget > 0 {
		return cfg.RewriteBudget
	}
	return DefaultRewriteBudget
}

func (cfg *Config) reduceBudget(requested int) int {
	if requested > 0 {
		return requested
	}
	if cfg.ReduceBudget > 0 {
		return cfg.ReduceBudget
	}
	return DefaultReduceBudget
}
