// Package ir defines the finalized intermediate representation produced by
// the resolver: a source expression with every variable reference
// classified as either a bound argument (with its stack offset and scope
// depth) or a deferred lookup in the environment, and every call annotated
// with the tail-call and self-call information the evaluator needs to
// implement tail-call elimination without growing the frame stack.
//
package ir

import (
	"fmt"
	"strings"

	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// Node is any finalized expression node.
type Node interface {
	fmt.Stringer
	node()
}

type (
	// Value is an expression that is already fully known: a literal from
	// source, a value captured from an enclosing scope by the lambda
	// replace-args pass, or a value substituted by partial application.
	Value struct {
		Val types.Value
	}

	// Variable is a reference to a name that the resolver could not bind
	// to either a parameter or a known top-level value at resolve time; it
	// is looked up in the environment at evaluation time instead. This
	// only ever names a custom function defined at top level, since every
	// other kind of reference resolves statically.
	Variable struct {
		Name string
	}

	// Argument is a reference to a bound parameter, identified by its
	// position in the argument list (Offset) and by how many lambda
	// boundaries separate the reference from the lambda that binds it
	// (ScopeLevel, 0 meaning the innermost enclosing lambda). Moveable
	// records whether the resolver determined this to be the last read of
	// the slot along every path, making it safe for the evaluator to take
	// the value instead of cloning it.
	Argument struct {
		Offset     int
		ScopeLevel int
		Moveable   bool
	}

	// Lambda is a function literal: Arity parameters and a finalized Body.
	// Body's Arguments are still scoped relative to the lambda literal
	// itself; the evaluator's replace-args pass walks Body once, when the
	// lambda is evaluated into a Closure, to tell apart Arguments that
	// refer to this lambda's own parameters from ones that must be
	// captured from an enclosing scope.
	Lambda struct {
		Arity int
		Body  Node
	}

	// Cond is a two-armed conditional: Test must evaluate to a types.Bool;
	// Then is evaluated if it is true, Else otherwise.
	Cond struct {
		Test, Then, Else Node
	}

	// Call applies Callee to Args, in left-to-right evaluation order.
	// IsTail marks a call that occurs in tail position of the lambda being
	// resolved, allowing the evaluator to reuse the current frame instead
	// of pushing a new one when the callee is a custom function. IsSelf
	// marks a call whose callee is the name being defined by the enclosing
	// top-level define, including inside lambdas nested in its body; the
	// evaluator still evaluates such a callee and looks it up in the
	// environment like any other ir.Variable.
	Call struct {
		Callee Node
		Args   []Node
		IsTail bool
		IsSelf bool
	}
)

func (n *Value) node()    {}
func (n *Variable) node() {}
func (n *Argument) node() {}
func (n *Lambda) node()   {}
func (n *Cond) node()     {}
func (n *Call) node()     {}

func (n *Value) String() string { return n.Val.String() }
func (n *Variable) String() string { return n.Name }
func (n *Argument) String() string {
	return fmt.Sprintf("arg(%d,%d)", n.Offset, n.ScopeLevel)
}
func (n *Lambda) String() string {
	return fmt.Sprintf("lambda/%d %s", n.Arity, n.Body)
}
func (n *Cond) String() string {
	return fmt.Sprintf("(cond %s %s %s)", n.Test, n.Then, n.Else)
}
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	tail := ""
	if n.IsTail {
		tail = " tail"
	}
	return fmt.Sprintf("(%s %s)%s", n.Callee, strings.Join(parts, " "), tail)
}
