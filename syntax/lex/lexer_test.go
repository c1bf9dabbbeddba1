package lex

import (
	"testing"

	"github.com/orchid-lang/orchid/intern"
)

func scanStrings(t *testing.T, src string, ops OperatorSet) []string {
	t.Helper()
	in := intern.New()
	toks, err := Scan(in, []byte(src), ops)
	if err != nil {
		t.Fatalf("Scan(%q) error: %v", src, err)
	}
	out := make([]string, len(toks))
	for i, tk := range toks {
		out[i] = tk.String()
	}
	return out
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := scanStrings(t, "import foo export bar", Empty)
	want := []string{`Import`, `Name("foo")`, `Export`, `Name("bar")`}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("tok %d: got %s want %s", i, toks[i], want[i])
		}
	}
}

func TestScanOperatorGreedyLongestMatch(t *testing.T) {
	ops := MapOperatorSet{"+": true, "++": true, "-": true}
	in := intern.New()
	toks, err := Scan(in, []byte("a++b"), ops)
	if err != nil {
		t.Fatal(err)
	}
	// a, ++, b
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	if toks[1].Text != "++" {
		t.Errorf("expected greedy match '++', got %q", toks[1].Text)
	}
}

func TestScanUnknownSymbolicRunIsOneName(t *testing.T) {
	in := intern.New()
	toks, err := Scan(in, []byte("a<~>b"), MapOperatorSet{})
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 || toks[1].Text != "<~>" {
		t.Fatalf("expected single unmatched run token, got %v", toks)
	}
}

func TestScanIntegerLiteral(t *testing.T) {
	in := intern.New()
	toks, err := Scan(in, []byte("0x1A 0o17 0b101 42"), Empty)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{26, 017, 5, 42}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tk := range toks {
		if tk.Kind != TInt || tk.IntVal != want[i] {
			t.Errorf("tok %d: got %v, want int %d", i, tk, want[i])
		}
	}
}

func TestScanFloatLiteralPromotesOnFraction(t *testing.T) {
	in := intern.New()
	toks, err := Scan(in, []byte("1.5 0x1p4"), Empty)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %v", toks)
	}
	if toks[0].Kind != TNumber || toks[0].NumVal != 1.5 {
		t.Errorf("got %v, want Number(1.5)", toks[0])
	}
	if toks[1].Kind != TNumber || toks[1].NumVal != 65536 {
		t.Errorf("got %v, want Number(65536)", toks[1])
	}
}

func TestScanStringEscapes(t *testing.T) {
	in := intern.New()
	toks, err := Scan(in, []byte(`"a\nbA"`), Empty)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != TString {
		t.Fatalf("got %v", toks)
	}
	if toks[0].StrVal != "a\nbA" {
		t.Errorf("got %q, want %q", toks[0].StrVal, "a\nbA")
	}
}

func TestScanUnterminatedStringErrors(t *testing.T) {
	in := intern.New()
	_, err := Scan(in, []byte(`"unterminated`), Empty)
	if err == nil {
		t.Fatal("expected error")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != "UnterminatedString" {
		t.Errorf("got %v, want UnterminatedString", err)
	}
}

func TestScanPlaceholderPrefixes(t *testing.T) {
	in := intern.New()
	toks, err := Scan(in, []byte(`$x ..$xs:1 ...$ys:2`), Empty)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %v", toks)
	}
	cases := []struct {
		pfx  PlaceholderPrefix
		name string
		prio int
	}{
		{PfxScalar, "x", 0},
		{PfxVecZero, "xs", 1},
		{PfxVecOne, "ys", 2},
	}
	for i, c := range cases {
		tk := toks[i]
		if tk.Kind != TPlaceholder || tk.PlaceholderPfx != c.pfx || tk.PlaceholderName != c.name || tk.PlaceholderPrio != c.prio {
			t.Errorf("tok %d: got %+v, want %+v", i, tk, c)
		}
	}
}

func TestScanRuleArrow(t *testing.T) {
	in := intern.New()
	toks, err := Scan(in, []byte(`=5=>`), Empty)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != TRuleArrow || toks[0].Priority != 5 {
		t.Fatalf("got %v", toks)
	}
}

func TestScanNamespacePath(t *testing.T) {
	toks := scanStrings(t, "std::list::cons", Empty)
	want := []string{`Name("std")`, "ColonColon", `Name("list")`, "ColonColon", `Name("cons")`}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
}

func TestScanDotPunctuators(t *testing.T) {
	toks := scanStrings(t, ". .. ...", Empty)
	want := []string{`Name(".")`, `Name("..")`, `Name("...")`}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("tok %d: got %s want %s", i, toks[i], want[i])
		}
	}
}
