package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/orchid-lang/orchid/pipeline"
	"github.com/orchid-lang/orchid/rewrite"
	"github.com/orchid-lang/orchid/syntax/lex"
)

func TestFromErrorClassifiesKnownTypes(t *testing.T) {
	cases := []struct {
		err       error
		wantPhase Phase
		wantKind  string
	}{
		{&pipeline.MissingFile{Path: "a/b"}, PhaseLoader, "MissingFile"},
		{&lex.Error{Kind: "BadNumber", Span: [2]int{3, 5}}, PhaseLexParse, "BadNumber"},
		{&rewrite.MacroBudgetExceeded{Budget: 10}, PhaseRewriting, "MacroBudgetExhausted"},
	}
	for _, c := range cases {
		d := FromError(c.err)
		if d.Phase != c.wantPhase || d.Kind != c.wantKind {
			t.Fatalf("FromError(%v) = {%v %v}, want {%v %v}", c.err, d.Phase, d.Kind, c.wantPhase, c.wantKind)
		}
	}
}

func TestFromErrorCarriesSpan(t *testing.T) {
	d := FromError(&lex.Error{Kind: "BadNumber", Span: [2]int{3, 5}})
	if d.Span != (Span{3, 5}) {
		t.Fatalf("got span %v, want {3 5}", d.Span)
	}
}

type customAtomError struct{ msg string }

func (e *customAtomError) Error() string { return e.msg }

func TestFromErrorFallsBackForUnknownTypes(t *testing.T) {
	d := FromError(&customAtomError{msg: "boom"})
	if d.Phase != PhaseRuntime || d.Kind != "AtomFail" {
		t.Fatalf("got {%v %v}, want {%v AtomFail}", d.Phase, d.Kind, PhaseRuntime)
	}
}

func TestBagCollectsAndRenders(t *testing.T) {
	bag := NewBag()
	if !bag.IsEmpty() {
		t.Fatal("fresh bag should be empty")
	}
	bag.AddError(&pipeline.MissingFile{Path: "x"})
	bag.AddError(&lex.Error{Kind: "BadNumber", Span: [2]int{0, 1}})
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", bag.Len())
	}

	var buf bytes.Buffer
	bag.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "MissingFile") || !strings.Contains(out, "BadNumber") {
		t.Fatalf("rendered output missing expected kinds: %q", out)
	}
}

func TestBagRenderOfEmptyBagWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	NewBag().Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("got %q, want empty output", buf.String())
	}
}
