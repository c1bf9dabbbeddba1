package syntax

import (
	"testing"

	"github.com/orchid-lang/orchid/intern"
)

func TestEqualStructural(t *testing.T) {
	a := Seq(Round, []Clause{ResolvedName(1), {Kind: KInt, Int: 3}})
	b := Seq(Round, []Clause{ResolvedName(1), {Kind: KInt, Int: 3}})
	c := Seq(Round, []Clause{ResolvedName(2), {Kind: KInt, Int: 3}})
	if !Equal(a, b) {
		t.Fatalf("expected a == b")
	}
	if Equal(a, c) {
		t.Fatalf("expected a != c")
	}
}

func TestRequiredNames(t *testing.T) {
	body := []Clause{
		Seq(Round, []Clause{ResolvedName(1), ResolvedName(2)}),
		Lambda(ResolvedName(3), []Clause{ResolvedName(1)}),
	}
	names := map[intern.Sym]bool{}
	RequiredNames(body, names)
	for _, want := range []intern.Sym{1, 2, 3} {
		if !names[want] {
			t.Fatalf("expected Sym %d to be required, got %v", want, names)
		}
	}
}
