package extern

import (
	"errors"
	"testing"

	"github.com/orchid-lang/orchid/syntax"
)

type constAtom struct{ v int }

func (c *constAtom) Reduce(arg ExprRef, budget int) AtomStep { return Inert() }
func (c *constAtom) Downcast(tag string) (interface{}, bool) {
	if tag == "int" {
		return c.v, true
	}
	return nil, false
}
func (c *constAtom) CloneDeep() Atom { cp := *c; return &cp }
func (c *constAtom) String() string  { return "const-atom" }

func TestWrapUnwrapAtom(t *testing.T) {
	a := &constAtom{v: 7}
	c := WrapAtom(a)
	got, ok := AsAtom(c)
	if !ok || got != Atom(a) {
		t.Fatalf("round-trip failed: %v %v", got, ok)
	}
	if _, ok := AsExternFn(c); ok {
		t.Fatalf("expected KAtom clause not to unwrap as ExternFn")
	}
}

func TestAtomStepClassification(t *testing.T) {
	if !ReplaceWith(syntax.Clause{}).IsReplace() {
		t.Fatalf("expected IsReplace")
	}
	if !Inert().IsInert() {
		t.Fatalf("expected IsInert")
	}
	if !Fail(errors.New("x")).IsFail() {
		t.Fatalf("expected IsFail")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.RegisterAtomKind("const", func(payload interface{}) Atom {
		return &constAtom{v: payload.(int)}
	})
	a, ok := r.NewAtom("const", 42)
	if !ok {
		t.Fatalf("expected atom kind to resolve")
	}
	v, _ := a.Downcast("int")
	if v != 42 {
		t.Fatalf("got %v", v)
	}
	if _, ok := r.NewAtom("missing", nil); ok {
		t.Fatalf("expected missing kind to fail")
	}
}

type nameFn string

func (f nameFn) Apply(arg ExprRef) syntax.Clause { return arg.Clause() }
func (f nameFn) Name() string                    { return string(f) }

func TestRegistryExternsSnapshot(t *testing.T) {
	r := NewRegistry()
	r.RegisterExtern("id", nameFn("id"))
	r.RegisterExtern("add", nameFn("add"))

	snap := r.Externs()
	if len(snap) != 2 {
		t.Fatalf("got %d externs, want 2", len(snap))
	}
	if snap["id"].Name() != "id" || snap["add"].Name() != "add" {
		t.Fatalf("got %+v", snap)
	}

	r.RegisterExtern("mul", nameFn("mul"))
	if len(snap) != 2 {
		t.Fatalf("snapshot mutated after later registration: %+v", snap)
	}
}
