package extern

import "sync"

// AtomKindFactory builds an Atom from a host-supplied payload, used by
// RegisterAtomKind so embedders can name a family of atoms (e.g. "file
// handle") without exposing their concrete Go type to Orchid code.
type AtomKindFactory func(payload interface{}) Atom

// Registry holds the embedder's named externs and atom kinds. The root
// orchid package creates one Registry per Config, shared by every Compile
// made with that Config; it is
// not a process-wide singleton, mirroring the teacher's preference for
// constructor-injected context over global state (§9 design notes).
type Registry struct {
	mu    sync.RWMutex
	fns   map[string]ExternFn
	kinds map[string]AtomKindFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		fns:   make(map[string]ExternFn),
		kinds: make(map[string]AtomKindFactory),
	}
}

// RegisterExtern binds name to fn. Re-registering a name overwrites the
// previous binding; the facade does not consider this an error, as
// embedders sometimes swap a function for a test double.
func (r *Registry) RegisterExtern(name string, fn ExternFn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[name] = fn
	tracer().Debugf("registered extern fn %q", name)
}

// RegisterAtomKind binds a named family of atoms to a factory.
func (r *Registry) RegisterAtomKind(name string, factory AtomKindFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[name] = factory
	tracer().Debugf("registered atom kind %q", name)
}

// LookupExtern resolves a registered extern function by name.
func (r *Registry) LookupExtern(name string) (ExternFn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[name]
	return fn, ok
}

// Externs returns a snapshot of every name currently bound to an
// ExternFn, for a facade seeding a reduction program with one Expr per
// registered extern (names referenced as free variables from Orchid
// source resolve against this set).
func (r *Registry) Externs() map[string]ExternFn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]ExternFn, len(r.fns))
	for k, v := range r.fns {
		out[k] = v
	}
	return out
}

// NewAtom builds an atom of the named kind from payload.
func (r *Registry) NewAtom(kind string, payload interface{}) (Atom, bool) {
	r.mu.RLock()
	factory, ok := r.kinds[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(payload), true
}
