package orchid

import (
	"strings"
	"testing"

	"github.com/orchid-lang/orchid/extern"
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/reduce"
	"github.com/orchid-lang/orchid/syntax"
)

// memResolver adapts a path-string-keyed source map into a
// pipeline.Resolver bound to cfg's own Interner/SymTable pair, matching
// package pipeline's own memResolverFor test fixture.
type memResolver struct {
	cfg     *Config
	sources map[string][]byte
}

func (r *memResolver) Resolve(path intern.Sym) ([]byte, bool, error) {
	for k, v := range r.sources {
		if pathSym(r.cfg, k) == path {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func pathSym(cfg *Config, path string) intern.Sym {
	parts := strings.Split(path, "::")
	toks := make([]intern.Tok, len(parts))
	for i, s := range parts {
		toks[i] = cfg.In.InternString(intern.KindName, s)
	}
	return cfg.Sym.Intern(toks)
}

func newTestConfig(sources map[string][]byte) *Config {
	cfg := NewConfig(nil)
	cfg.Resolver = &memResolver{cfg: cfg, sources: sources}
	return cfg
}

func TestCompileAndRunSimpleConst(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("const answer := 42"),
	})
	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	status, clause, err := Run(tree, "main::answer", 10)
	if err != nil {
		t.Fatal(err)
	}
	if status != reduce.StatusNormal || clause.Kind != syntax.KInt || clause.Int != 42 {
		t.Fatalf("got %v (%v), want literal 42 Normal", clause, status)
	}
}

func TestRunUnknownEntryPoint(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("const answer := 42"),
	})
	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	_, _, err := Run(tree, "main::missing", 10)
	if _, ok := err.(*UnknownEntryPoint); !ok {
		t.Fatalf("got %v (%T), want *UnknownEntryPoint", err, err)
	}
}

func TestCompileMissingFileIsFatal(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("import nope\nconst x := 1"),
	})
	tree, bag := Compile(cfg, []string{"main"})
	if tree != nil {
		t.Fatalf("expected nil Tree on a fatal pipeline error")
	}
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want exactly 1", bag.Len())
	}
}

// addFn is a two-argument curried extern: add a b -> a+b, registered as
// a single-argument ExternFn returning a partially-applied ExternFn,
// matching how Orchid's macro expansion stacks two App nodes around an
// extern name.
type addFn struct{ left *int64 }

func (f addFn) Apply(arg extern.ExprRef) syntax.Clause {
	c := arg.Clause()
	if f.left == nil {
		v := int64(c.Int)
		return extern.WrapExternFn(addFn{left: &v})
	}
	return syntax.Clause{Kind: syntax.KInt, Int: uint64(*f.left) + c.Int}
}
func (f addFn) Name() string { return "add" }

func TestRunRewritesMacroThenCallsExtern(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("macro $x plus $y =1=> add $x $y\nconst answer := 19 plus 23"),
	})
	cfg.RegisterExtern("add", addFn{})

	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	status, clause, err := Run(tree, "main::answer", 100)
	if err != nil {
		t.Fatal(err)
	}
	if status != reduce.StatusNormal || clause.Kind != syntax.KInt || clause.Int != 42 {
		t.Fatalf("got %v (%v), want literal 42 Normal", clause, status)
	}
}

func TestExitCodeRejectsNonInteger(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte(`const main := 'a'`),
	})
	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	_, err := ExitCode(tree, "main::main", 10)
	if _, ok := err.(*NonIntegerExit); !ok {
		t.Fatalf("got %v (%T), want *NonIntegerExit", err, err)
	}
}

func TestExitCodeAcceptsInteger(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("const main := 0"),
	})
	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	code, err := ExitCode(tree, "main::main", 10)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
}

// effectAtom is a one-shot atom standing in for an I/O request: it
// replaces itself with a sentinel clause the host recognizes via
// Downcast under the "effect" tag, carrying the payload the handler
// acts on.
type effectAtom struct {
	payload int64
}

func (a effectAtom) Reduce(arg extern.ExprRef, budget int) extern.AtomStep {
	return extern.Inert()
}
func (a effectAtom) Downcast(tag string) (interface{}, bool) {
	if tag != "effect" {
		return nil, false
	}
	return a.payload, true
}
func (a effectAtom) CloneDeep() extern.Atom { return a }
func (a effectAtom) String() string         { return "effectAtom" }

type loggingFn struct{}

func (loggingFn) Apply(arg extern.ExprRef) syntax.Clause {
	return extern.WrapAtom(effectAtom{payload: 99})
}
func (loggingFn) Name() string { return "log" }

func TestRunHandlerTrampolinesThroughRegisteredEffect(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("const answer := log 0"),
	})
	cfg.RegisterExtern("log", loggingFn{})

	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	handlers := HandlerSet{
		"effect": func(payload interface{}) (syntax.Clause, error) {
			v, _ := payload.(int64)
			return syntax.Clause{Kind: syntax.KInt, Int: uint64(v) + 1}, nil
		},
	}
	status, clause, err := RunHandler(tree, "main::answer", 100, handlers)
	if err != nil {
		t.Fatal(err)
	}
	if status != reduce.StatusNormal || clause.Kind != syntax.KInt || clause.Int != 100 {
		t.Fatalf("got %v (%v), want literal 100 Normal", clause, status)
	}
}

func TestRunHandlerLeavesUnrecognizedAtomAsIs(t *testing.T) {
	cfg := newTestConfig(map[string][]byte{
		"main": []byte("const answer := log 0"),
	})
	cfg.RegisterExtern("log", loggingFn{})

	tree, bag := Compile(cfg, []string{"main"})
	if !bag.IsEmpty() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	status, clause, err := RunHandler(tree, "main::answer", 100, HandlerSet{})
	if err != nil {
		t.Fatal(err)
	}
	if status != reduce.StatusNormal || clause.Kind != syntax.KAtom {
		t.Fatalf("got %v (%v), want an unhandled KAtom", clause, status)
	}
}
