package parse

import (
	"testing"

	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
	"github.com/orchid-lang/orchid/syntax/lex"
)

func mustScan(t *testing.T, in *intern.Interner, src string) []lex.Token {
	t.Helper()
	toks, err := lex.Scan(in, []byte(src), lex.MapOperatorSet{"+": true, "*": true})
	if err != nil {
		t.Fatalf("scan(%q): %v", src, err)
	}
	return toks
}

func TestParseImportSimple(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "import std")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Lines) != 1 || tree.Lines[0].Kind != LImport {
		t.Fatalf("got %+v", tree.Lines)
	}
	it := tree.Lines[0].Import
	if it.Kind != ImportName {
		t.Errorf("got kind %v, want ImportName", it.Kind)
	}
}

func TestParseImportPathAndWildcard(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "import std::list::*")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	it := tree.Lines[0].Import
	if it.Kind != ImportPath {
		t.Fatalf("got %v, want ImportPath", it.Kind)
	}
	if it.Sub.Kind != ImportPath {
		t.Fatalf("got %v, want nested ImportPath", it.Sub.Kind)
	}
	if it.Sub.Sub.Kind != ImportWildcard {
		t.Fatalf("got %v, want ImportWildcard", it.Sub.Sub.Kind)
	}
}

func TestParseImportGroup(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "import foo::(bar, baz::*)")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	it := tree.Lines[0].Import
	if it.Kind != ImportPath {
		t.Fatalf("got %v", it.Kind)
	}
	grp := it.Sub
	if grp.Kind != ImportGroup || len(grp.Items) != 2 {
		t.Fatalf("got %+v", grp)
	}
	if grp.Items[0].Kind != ImportName {
		t.Errorf("item 0: got %v", grp.Items[0].Kind)
	}
	if grp.Items[1].Kind != ImportWildcard {
		t.Errorf("item 1: got %v", grp.Items[1].Kind)
	}
}

func TestParseExportList(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "export ::(foo, bar)")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Lines[0].Kind != LExport || len(tree.Lines[0].ExportNames) != 2 {
		t.Fatalf("got %+v", tree.Lines[0])
	}
}

func TestParseConst(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "const answer := 42")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	line := tree.Lines[0]
	if line.Kind != LConst || line.Name != "answer" {
		t.Fatalf("got %+v", line)
	}
	if len(line.Body) != 1 || line.Body[0].Kind != syntax.KInt || line.Body[0].Int != 42 {
		t.Fatalf("got body %+v", line.Body)
	}
}

func TestParseExportedConst(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "export const answer := 42")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Lines[0].Exported {
		t.Fatalf("expected exported const")
	}
}

func TestParseMacro(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "macro $x + $y =1=> add $x $y")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	line := tree.Lines[0]
	if line.Kind != LMacro {
		t.Fatalf("got %+v", line)
	}
	if line.Priority != 1 {
		t.Errorf("got priority %v, want 1", line.Priority)
	}
	if len(line.Pattern) != 3 {
		t.Fatalf("got pattern %+v", line.Pattern)
	}
	if line.Pattern[0].Kind != syntax.KPlaceholder || line.Pattern[0].Placeholder.Kind != syntax.Scalar {
		t.Errorf("got %+v", line.Pattern[0])
	}
	if len(line.Body) != 3 {
		t.Fatalf("got body %+v", line.Body)
	}
}

func TestParseLambdaGreedyToEndOfBracket(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "const f := (\\x . x x) y")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	body := tree.Lines[0].Body
	if len(body) != 2 {
		t.Fatalf("got body %+v", body)
	}
	if body[0].Kind != syntax.KSeq || len(body[0].Seq) != 1 {
		t.Fatalf("expected single-clause bracket (the lambda), got %+v", body[0])
	}
	lam := body[0].Seq[0]
	if lam.Kind != syntax.KLambda || len(lam.Body) != 2 {
		t.Fatalf("got lambda %+v", lam)
	}
	if body[1].Kind != syntax.KName {
		t.Fatalf("got trailing clause %+v", body[1])
	}
}

func TestParseNamespace(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "namespace list ( const nil := 0 )")
	tree, err := Parse(in, toks)
	if err != nil {
		t.Fatal(err)
	}
	line := tree.Lines[0]
	if line.Kind != LNamespace || line.Name != "list" {
		t.Fatalf("got %+v", line)
	}
	if len(line.Namespace) != 1 || line.Namespace[0].Kind != LConst {
		t.Fatalf("got nested %+v", line.Namespace)
	}
}

func TestParseUnbalancedBracketErrors(t *testing.T) {
	in := intern.New()
	toks := mustScan(t, in, "const f := (x")
	_, err := Parse(in, toks)
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != "UnbalancedBracket" {
		t.Errorf("got %v, want UnbalancedBracket", err)
	}
}
