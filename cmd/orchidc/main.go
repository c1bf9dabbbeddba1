// Command orchidc is a minimal batch driver over package orchid: it
// compiles a project rooted at -root, runs one entry point to normal
// form, and prints the result. It has no REPL, no IPC transport and no
// standard library of its own — those are out of scope (spec.md §1) and
// left to a proper embedder.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/orchid-lang/orchid"
	"github.com/orchid-lang/orchid/intern"
)

// fileResolver maps a "::"-separated module path to a .orc file under
// root, per spec.md §4.C: "Module paths map to directory/file
// hierarchies rooted at a project root supplied by the embedder."
type fileResolver struct {
	root string
	sym  *intern.SymTable
}

func (r *fileResolver) Resolve(path intern.Sym) ([]byte, bool, error) {
	parts := strings.Split(r.sym.String(path), "::")
	name := filepath.Join(append([]string{r.root}, parts...)...) + ".orc"
	src, err := os.ReadFile(name)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return src, true, nil
}

func main() {
	root := flag.String("root", ".", "project root .orc files are resolved against")
	entry := flag.String("entry", "main::main", "top-level constant to reduce to normal form")
	budget := flag.Int("budget", 0, "reduction step budget (0 uses the default)")
	exitCode := flag.Bool("exit", false, "interpret the entry point's normal form as a process exit code")
	verbose := flag.Bool("v", false, "enable debug tracing")
	flag.Parse()

	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{strings.SplitN(*entry, "::", 2)[0]}
	}

	if *verbose {
		tracing.Select("orchid.orchid").SetTraceLevel(tracing.LevelDebug)
	}

	cfg := orchid.NewConfig(nil)
	cfg.Resolver = &fileResolver{root: *root, sym: cfg.Sym}

	tree, bag := orchid.Compile(cfg, targets)
	if !bag.IsEmpty() {
		bag.Render(os.Stderr)
	}
	if tree == nil {
		os.Exit(1)
	}

	if *exitCode {
		code, err := orchid.ExitCode(tree, *entry, *budget)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(code)
	}

	status, clause, err := orchid.Run(tree, *entry, *budget)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%s (%s)\n", clause.String(), status)
}
