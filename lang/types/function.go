package types

import "fmt"

// Builtin is a function implemented in Go rather than defined by a lambda
// expression. Every entry of the builtin table is a Builtin value,
// pre-bound into every environment.
type Builtin struct {
	Name   string
	ArityN int
	Impl   func(args []Value) (Value, error)
}

func (b *Builtin) String() string { return fmt.Sprintf("#<builtin %s>", b.Name) }
func (b *Builtin) Type() string   { return "function" }
func (b *Builtin) Arity() int     { return b.ArityN }

// Call invokes the builtin's implementation. The caller is responsible for
// having already checked len(args) == b.Arity().
func (b *Builtin) Call(args []Value) (Value, error) { return b.Impl(args) }
