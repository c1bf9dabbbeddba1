package pipeline

import "github.com/orchid-lang/orchid/intern"

// Resolver maps a module path Sym to source bytes. The embedder supplies
// one (§4.D, §10 Config.Resolver); this package performs no filesystem
// access of its own.
type Resolver interface {
	Resolve(path intern.Sym) (src []byte, found bool, err error)
}
