// Package machine implements the evaluator: the stack-based machine that
// runs finalized IR (package ir) to produce a types.Value or an error, the
// top-level Environment bindings are looked up and defined in, and the
// builtin function table.
//
// The evaluator is a single dispatch loop driven by an explicit work list
// rather than Go's call stack: three explicit stacks (values, pending
// instructions, call frames) instead of a program-counter-driven opcode
// loop, since the source IR is a tree of nodes rather than compiled
// bytecode.
package machine

import (
	"github.com/dolthub/swiss"

	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// Environment holds the top-level bindings available to every expression:
// the two booleans, the builtin table, and every name introduced by a
// (define ...) form. It is backed by a swiss-table hash map since lookups
// here are on the hot path of every evaluation.
type Environment struct {
	m *swiss.Map[string, types.Value]
}

// NewEnvironment returns an environment pre-populated with #t, #f and the
// builtin function table.
func NewEnvironment() *Environment {
	env := &Environment{m: swiss.NewMap[string, types.Value](uint32(len(Builtins) + 2))}
	env.m.Put("#t", types.True)
	env.m.Put("#f", types.False)
	for name, b := range Builtins {
		env.m.Put(name, b)
	}
	return env
}

// Lookup returns the value bound to name and true, or (nil, false) if name
// is not bound.
func (e *Environment) Lookup(name string) (types.Value, bool) {
	return e.m.Get(name)
}

// Snapshot returns the environment's current bindings as a plain map,
// suitable for passing to resolver.Finalize so it can classify a name as
// an already-known top-level value rather than a deferred Variable.
func (e *Environment) Snapshot() map[string]types.Value {
	out := make(map[string]types.Value, e.m.Count())
	e.m.Iter(func(k string, v types.Value) bool {
		out[k] = v
		return false
	})
	return out
}

// Define binds name to v. It returns a BadDefine error if name is already
// bound: redefinition is rejected rather than silently overwriting the
// previous binding.
func (e *Environment) Define(name string, v types.Value) error {
	if _, ok := e.m.Get(name); ok {
		return errors.Named(errors.BadDefine, name)
	}
	e.m.Put(name, v)
	return nil
}
