package pipeline

import (
	"fmt"

	"github.com/orchid-lang/orchid/intern"
)

// MissingFile is raised when the Resolver reports a module path as not
// found (§4.D "Failure modes").
type MissingFile struct {
	Path string
}

func (e *MissingFile) Error() string { return fmt.Sprintf("pipeline: module %q not found", e.Path) }

// CyclicImport is raised when a chain of non-wildcard imports returns to a
// module already on the current resolution stack.
type CyclicImport struct {
	Cycle []string
}

func (e *CyclicImport) Error() string {
	return fmt.Sprintf("pipeline: cyclic import: %v", e.Cycle)
}

// ResolverError wraps an error returned by the embedder's Resolver.
type ResolverError struct {
	Path string
	Err  error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("pipeline: resolver error for %q: %v", e.Path, e.Err)
}
func (e *ResolverError) Unwrap() error { return e.Err }

// UndefinedImport is raised when an explicit (non-wildcard) import names a
// symbol that the target module does not export.
type UndefinedImport struct {
	Module string
	Name   string
}

func (e *UndefinedImport) Error() string {
	return fmt.Sprintf("pipeline: %q does not export %q", e.Module, e.Name)
}

// AmbiguousWildcard is raised when two wildcard-imported modules export the
// same bare name and a reference to that name cannot be disambiguated.
type AmbiguousWildcard struct {
	Name   intern.Tok
	Text   string
	Module string
}

func (e *AmbiguousWildcard) Error() string {
	return fmt.Sprintf("pipeline: %q is ambiguous between wildcard imports in %q", e.Text, e.Module)
}
