package diag

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Bag collects diagnostics from independent pipeline units. Nothing in
// this package aborts early on the first diagnostic; callers decide that
// policy (most do, per §7, for anything outside the Rewriting/Runtime
// phases, where the spec says other modules/constants still proceed).
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends d to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
	tracer().Debugf("diag: recorded %s", d.Error())
}

// AddError classifies err with FromError and appends the result.
func (b *Bag) AddError(err error) {
	if err == nil {
		return
	}
	b.Add(FromError(err))
}

// Len reports how many diagnostics are collected.
func (b *Bag) Len() int { return len(b.items) }

// IsEmpty reports whether the bag has no diagnostics.
func (b *Bag) IsEmpty() bool { return len(b.items) == 0 }

// Items returns the collected diagnostics, most-recently-added last.
func (b *Bag) Items() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// Render writes a colorized report of every collected diagnostic to w, one
// line per diagnostic (kind, message, and the byte-offset span when there
// is one), grouped by phase. Source text is not quoted.
func (b *Bag) Render(w io.Writer) {
	if b.IsEmpty() {
		return
	}
	byPhase := make(map[Phase][]Diagnostic)
	var order []Phase
	for _, d := range b.items {
		if _, seen := byPhase[d.Phase]; !seen {
			order = append(order, d.Phase)
		}
		byPhase[d.Phase] = append(byPhase[d.Phase], d)
	}

	for _, phase := range order {
		header := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprintf("-- %s --", phase)
		fmt.Fprintln(w, header)
		for _, d := range byPhase[phase] {
			line := d.Kind + ": " + d.Err.Error()
			if !d.Span.IsNull() {
				line = fmt.Sprintf("%s (%d-%d)", line, d.Span[0], d.Span[1])
			}
			fmt.Fprintln(w, pterm.Error.Sprint(line))
		}
	}
}
