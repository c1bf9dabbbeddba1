package orchid

import "fmt"

// UnknownEntryPoint is returned by Run/RunHandler when the requested
// name has no compiled top-level constant in the Tree.
type UnknownEntryPoint struct {
	Name string
}

func (e *UnknownEntryPoint) Error() string {
	return fmt.Sprintf("orchid: %q is not a compiled top-level constant", e.Name)
}

// NonIntegerExit is returned by ExitCode, which treats a Run result as a
// process exit code (§6 "Exit"), when the normal form isn't a KInt clause.
type NonIntegerExit struct {
	Got string
}

func (e *NonIntegerExit) Error() string {
	return fmt.Sprintf("orchid: non-integer normal form %s is a runtime error as an exit value", e.Got)
}

// UnhandledAtom describes a KAtom normal form that no registered handler
// recognizes. RunHandler does not return it: it hands such an atom back
// as its result clause with a nil error.
type UnhandledAtom struct {
	Atom string
}

func (e *UnhandledAtom) Error() string {
	return fmt.Sprintf("orchid: no handler recognizes atom %s", e.Atom)
}
