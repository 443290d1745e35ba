package machine

import (
	"fmt"

	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/ir"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// frame is one entry of the call-frame stack: base is the index into V of
// the frame's first argument, fn is the function currently running in it
// (recorded on every call and tail call; callSite does not read it, so a
// self-call still evaluates its callee like any other call), and consumed
// tracks, for debugging resolver bugs rather than as
// a user-facing error, which argument slots a Moveable read has already
// taken.
type frame struct {
	base     int
	fn       *Closure
	consumed []bool
}

// instr is one pending unit of work on the evaluator's instruction stack.
// It is the Go equivalent of a bytecode instruction, except it operates
// directly on IR nodes instead of a compiled program.
type instr interface {
	exec(ev *Evaluator) error
}

// Evaluator is the stack-based machine: a value stack V, a LIFO
// instruction stack I, and a frame stack F. Running a finalized IR node to
// completion never recurses through Go's call stack for tail calls, so a
// self-tail-recursive function runs in bounded Go stack space no matter
// how many iterations it performs.
type Evaluator struct {
	env *Environment
	V   []types.Value
	I   []instr
	F   []frame
}

// NewEvaluator returns an evaluator that looks up deferred ir.Variable
// references in env.
func NewEvaluator(env *Environment) *Evaluator {
	return &Evaluator{env: env}
}

func (ev *Evaluator) pushInstr(in instr) { ev.I = append(ev.I, in) }

func (ev *Evaluator) popInstr() instr {
	in := ev.I[len(ev.I)-1]
	ev.I = ev.I[:len(ev.I)-1]
	return in
}

func (ev *Evaluator) curFrame() *frame {
	if len(ev.F) == 0 {
		return nil
	}
	return &ev.F[len(ev.F)-1]
}

// Run evaluates a finalized IR node to a value. It is the sole public
// entry point into the machine; callers obtain node from resolver.Finalize.
func (ev *Evaluator) Run(node ir.Node) (types.Value, error) {
	ev.pushInstr(&evalNode{node: node})
	for len(ev.I) > 0 {
		in := ev.popInstr()
		if err := in.exec(ev); err != nil {
			return nil, err
		}
	}
	if len(ev.V) != 1 {
		panic(fmt.Sprintf("evaluator invariant violated: finished with %d values on the stack, want 1", len(ev.V)))
	}
	result := ev.V[0]
	ev.V = ev.V[:0]
	return result, nil
}

// evalNode evaluates a single IR node, pushing its result (directly, or by
// scheduling further instructions that will eventually push it) onto V.
type evalNode struct{ node ir.Node }

func (in *evalNode) exec(ev *Evaluator) error {
	switch n := in.node.(type) {
	case *ir.Value:
		ev.V = append(ev.V, n.Val)
		return nil

	case *ir.Variable:
		v, ok := ev.env.Lookup(n.Name)
		if !ok {
			return errors.Named(errors.UnknownVariable, n.Name)
		}
		ev.V = append(ev.V, v)
		return nil

	case *ir.Argument:
		return in.execArgument(ev, n)

	case *ir.Lambda:
		body := ev.replaceArgs(n.Body, 0)
		ev.V = append(ev.V, &Closure{ArityN: n.Arity, Body: body})
		return nil

	case *ir.Cond:
		ev.pushInstr(&condBranch{then: n.Then, els: n.Else})
		ev.pushInstr(&evalNode{node: n.Test})
		return nil

	case *ir.Call:
		return in.execCall(ev, n)

	default:
		panic(fmt.Sprintf("machine: unhandled ir node %T", in.node))
	}
}

func (in *evalNode) execArgument(ev *Evaluator, n *ir.Argument) error {
	f := ev.curFrame()
	if f == nil || n.ScopeLevel != 0 {
		// Every Argument still standing by the time a closure's body is
		// actually executed (as opposed to being captured by
		// replaceArgs while still a lambda literal) refers to that
		// closure's own parameters; anything from an enclosing scope was
		// already resolved to an ir.Value when the closure was built.
		panic("machine: unresolved outer-scope argument reached at evaluation time")
	}
	if f.consumed[n.Offset] {
		panic("machine: re-read of a moveable argument already consumed")
	}
	if n.Moveable {
		f.consumed[n.Offset] = true
	}
	ev.V = append(ev.V, ev.V[f.base+n.Offset])
	return nil
}

// condBranch runs after a Cond's test has been evaluated: it pops the
// resulting boolean and schedules evaluation of whichever branch applies.
type condBranch struct{ then, els ir.Node }

func (in *condBranch) exec(ev *Evaluator) error {
	top := ev.V[len(ev.V)-1]
	ev.V = ev.V[:len(ev.V)-1]
	b, ok := top.(types.Bool)
	if !ok {
		return errors.New(errors.ArgumentTypeMismatch)
	}
	if bool(b) {
		ev.pushInstr(&evalNode{node: in.then})
	} else {
		ev.pushInstr(&evalNode{node: in.els})
	}
	return nil
}

func (in *evalNode) execCall(ev *Evaluator, n *ir.Call) error {
	ev.pushInstr(&callSite{argc: len(n.Args), isTail: n.IsTail})
	for i := len(n.Args) - 1; i >= 0; i-- {
		ev.pushInstr(&evalNode{node: n.Args[i]})
	}
	ev.pushInstr(&evalNode{node: n.Callee})
	return nil
}

// callSite performs the actual application once the callee and every
// argument have been evaluated and pushed onto V, in that order. IsSelf is
// deliberately not consulted here: the name being defined stays tagged as a
// self-call even inside lambdas nested below the define's own lambda, so the
// innermost running frame's fn is not necessarily the callee a self-tagged
// call actually names. A plain environment lookup of the callee (its IR node
// is an ir.Variable naming the define) is always correct, so that is what
// runs instead.
type callSite struct {
	argc   int
	isTail bool
}

func (in *callSite) exec(ev *Evaluator) error {
	calleeIdx := len(ev.V) - in.argc - 1
	fn := ev.V[calleeIdx]
	ev.V = append(ev.V[:calleeIdx], ev.V[calleeIdx+1:]...)

	switch f := fn.(type) {
	case *types.Builtin:
		return in.callBuiltin(ev, f)
	case *Closure:
		return in.callClosure(ev, f)
	default:
		return errors.New(errors.NonFunctionApplication)
	}
}

func (in *callSite) callBuiltin(ev *Evaluator, f *types.Builtin) error {
	if f.ArityN != Variadic && in.argc != f.ArityN {
		return errors.New(errors.ArgumentCountMismatch)
	}
	args := append([]types.Value(nil), ev.V[len(ev.V)-in.argc:]...)
	ev.V = ev.V[:len(ev.V)-in.argc]
	result, err := f.Call(args)
	if err != nil {
		return err
	}
	ev.V = append(ev.V, result)
	return nil
}

func (in *callSite) callClosure(ev *Evaluator, f *Closure) error {
	if in.argc > f.ArityN {
		return errors.New(errors.ArgumentCountMismatch)
	}
	if in.argc < f.ArityN {
		return in.curry(ev, f)
	}

	base := len(ev.V) - in.argc
	if in.isTail && ev.curFrame() != nil {
		cur := ev.curFrame()
		newArgs := append([]types.Value(nil), ev.V[base:]...)
		ev.V = ev.V[:cur.base]
		ev.V = append(ev.V, newArgs...)
		cur.fn = f
		cur.consumed = make([]bool, f.ArityN)
		ev.pushInstr(&evalNode{node: f.Body})
		return nil
	}

	ev.F = append(ev.F, frame{base: base, fn: f, consumed: make([]bool, f.ArityN)})
	ev.pushInstr(&returnFrame{})
	ev.pushInstr(&evalNode{node: f.Body})
	return nil
}

// curry implements partial application: supplying fewer arguments than a
// closure's arity builds a new closure over the remaining parameters, with
// the supplied arguments embedded as literal values, grounded on the
// continuation construction of the original create_continuation routine.
func (in *callSite) curry(ev *Evaluator, f *Closure) error {
	supplied := append([]types.Value(nil), ev.V[len(ev.V)-in.argc:]...)
	ev.V = ev.V[:len(ev.V)-in.argc]

	remaining := f.ArityN - in.argc
	args := make([]ir.Node, f.ArityN)
	for i, v := range supplied {
		args[i] = &ir.Value{Val: v}
	}
	for i := 0; i < remaining; i++ {
		args[in.argc+i] = &ir.Argument{Offset: i, ScopeLevel: 0, Moveable: true}
	}
	body := &ir.Call{Callee: &ir.Value{Val: f}, Args: args, IsTail: true}
	ev.V = append(ev.V, &Closure{ArityN: remaining, Body: body})
	return nil
}

// returnFrame pops the call frame pushed for a non-tail closure call once
// its body has produced a result, collapsing V back down to that result.
type returnFrame struct{}

func (in *returnFrame) exec(ev *Evaluator) error {
	f := ev.F[len(ev.F)-1]
	ev.F = ev.F[:len(ev.F)-1]
	result := ev.V[len(ev.V)-1]
	ev.V = ev.V[:f.base]
	ev.V = append(ev.V, result)
	return nil
}

// replaceArgs snapshots a lambda literal's body into a closure's body: any
// Argument referring to a scope enclosing the lambda being built (depth
// counts how many nested, not-yet-evaluated lambda literals separate node
// from the lambda whose body replaceArgs was first called on) is replaced
// by a literal ir.Value captured from the currently active frame stack. An
// Argument belonging to the lambda itself, or to one of the nested lambda
// literals still inside it, is left untouched: it will be resolved by its
// own replaceArgs pass when that inner lambda literal is itself evaluated.
func (ev *Evaluator) replaceArgs(node ir.Node, depth int) ir.Node {
	switch n := node.(type) {
	case *ir.Value:
		return n
	case *ir.Variable:
		return n
	case *ir.Argument:
		rel := n.ScopeLevel - depth
		if rel <= 0 {
			return n
		}
		f := ev.F[len(ev.F)-rel]
		return &ir.Value{Val: ev.V[f.base+n.Offset]}
	case *ir.Lambda:
		return &ir.Lambda{Arity: n.Arity, Body: ev.replaceArgs(n.Body, depth+1)}
	case *ir.Cond:
		return &ir.Cond{
			Test: ev.replaceArgs(n.Test, depth),
			Then: ev.replaceArgs(n.Then, depth),
			Else: ev.replaceArgs(n.Else, depth),
		}
	case *ir.Call:
		callee := n.Callee
		if !n.IsSelf {
			callee = ev.replaceArgs(n.Callee, depth)
		}
		args := make([]ir.Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = ev.replaceArgs(a, depth)
		}
		return &ir.Call{Callee: callee, Args: args, IsTail: n.IsTail, IsSelf: n.IsSelf}
	default:
		panic(fmt.Sprintf("machine: unhandled ir node %T in replaceArgs", node))
	}
}
