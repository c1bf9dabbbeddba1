package match

import (
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
)

// Env is the substitution environment a successful match produces:
// scalar placeholders bind to exactly one Clause, vector placeholders
// bind to a (possibly empty) run of Clauses.
type Env struct {
	Scalars map[intern.Tok]syntax.Clause
	Vectors map[intern.Tok][]syntax.Clause
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{
		Scalars: make(map[intern.Tok]syntax.Clause),
		Vectors: make(map[intern.Tok][]syntax.Clause),
	}
}

func (e *Env) clone() *Env {
	c := NewEnv()
	for k, v := range e.Scalars {
		c.Scalars[k] = v
	}
	for k, v := range e.Vectors {
		c.Vectors[k] = append([]syntax.Clause{}, v...)
	}
	return c
}

func (e *Env) adopt(other *Env) {
	e.Scalars = other.Scalars
	e.Vectors = other.Vectors
}
