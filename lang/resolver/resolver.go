// Package resolver turns a source expression (package ast) into the
// finalized IR (package ir) that the evaluator runs: every bare identifier
// is classified as either a reference to a bound lambda parameter (an
// ir.Argument, carrying its stack offset and scope depth) or a reference to
// an already-defined top-level binding (an ir.Value); every call is
// annotated with whether it occurs in tail position (letting the evaluator
// reuse the current frame) and whether its callee is the function
// currently being defined (such a callee is left as an ir.Variable and
// looked up at evaluation time); and every parameter read is
// marked moveable if the resolver can prove it is that parameter's last use.
//
// This is a recursive walk that classifies every name as local, free or
// global: there are no blocks or statements, lambdas have exactly one
// parameter list and one expression body, and "global" names are resolved
// against a plain map of already-finalized top-level values rather than a
// module's predeclared/universe scope chain.
package resolver

import (
	"golang.org/x/exp/slices"

	"github.com/marcusklaas/lisp-parsers/lang/ast"
	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/ir"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// scope tracks the parameter names of one lambda nesting level and, for
// each parameter offset, a pointer to the most recently created
// ir.Argument node referencing it. At the end of resolving the lambda's
// body, the last-written pointer for each offset (if any) is the one
// proven to be that parameter's last use and is flipped to Moveable.
//
// Tracking is global across the whole body, including both arms of any
// cond: whichever arm is resolved last "wins" the occurrence slot. This is
// a deliberately conservative simplification of merging moveable-ness
// across cond branches: it never marks two live reads of the same slot
// moveable, at the cost of occasionally missing a moveable opportunity in
// the arm resolved first. Correctness never depends on precision here,
// only performance does.
type scope struct {
	names   []string
	lastOcc []*ir.Argument
}

func newScope(names []string) *scope {
	return &scope{names: names, lastOcc: make([]*ir.Argument, len(names))}
}

func (s *scope) indexOf(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// seal marks the last occurrence of every parameter in s as moveable.
// Called once resolving of the lambda body that owns s is done.
func (s *scope) seal() {
	for _, occ := range s.lastOcc {
		if occ != nil {
			occ.Moveable = true
		}
	}
}

// Finalize resolves a top-level expression into finalized IR. topLevel
// holds the values of every binding defined earlier at top level; selfName
// is the name currently being defined by (define selfName expr), or "" if
// expr is not itself the body of a define. selfName enables direct
// recursion: a call whose callee is literally selfName is resolved as a
// self-call without requiring selfName to already be in topLevel.
func Finalize(expr ast.Expr, topLevel map[string]types.Value, selfName string) (ir.Node, error) {
	return finalize(expr, nil, topLevel, selfName, true)
}

func finalize(expr ast.Expr, scopes []*scope, topLevel map[string]types.Value, selfName string, isTail bool) (ir.Node, error) {
	switch e := expr.(type) {
	case *ast.ValueExpr:
		return &ir.Value{Val: e.Val}, nil

	case *ast.MacroExpr:
		// A macro keyword used outside operator position, e.g. (cons define 1).
		return nil, errors.New(errors.UnexpectedOperator)

	case *ast.OpVarExpr:
		return resolveVar(e.Name, scopes, topLevel)

	case *ast.CallExpr:
		return finalizeCall(e, scopes, topLevel, selfName, isTail)

	default:
		return nil, errors.New(errors.UnexpectedOperator)
	}
}

func resolveVar(name string, scopes []*scope, topLevel map[string]types.Value) (ir.Node, error) {
	for i := len(scopes) - 1; i >= 0; i-- {
		s := scopes[i]
		if j, ok := s.indexOf(name); ok {
			node := &ir.Argument{Offset: j, ScopeLevel: len(scopes) - 1 - i}
			s.lastOcc[j] = node
			return node, nil
		}
	}
	if v, ok := topLevel[name]; ok {
		return &ir.Value{Val: v}, nil
	}
	return nil, errors.Named(errors.UnknownVariable, name)
}

func finalizeCall(call *ast.CallExpr, scopes []*scope, topLevel map[string]types.Value, selfName string, isTail bool) (ir.Node, error) {
	if len(call.Items) == 0 {
		return nil, errors.New(errors.EmptyListEvaluation)
	}

	if mac, ok := call.Items[0].(*ast.MacroExpr); ok {
		switch mac.Kind {
		case ast.MacroDefine:
			// define is only valid as a whole top-level expression; the
			// driver strips it out before ever calling Finalize on it, so
			// encountering it here means it was nested inside another
			// expression.
			return nil, errors.New(errors.MalformedDefinition)
		case ast.MacroCond:
			return finalizeCond(call, scopes, topLevel, selfName, isTail)
		case ast.MacroLambda:
			return finalizeLambda(call, scopes, topLevel, selfName)
		}
	}

	return finalizePlainCall(call, scopes, topLevel, selfName, isTail)
}

func finalizeCond(call *ast.CallExpr, scopes []*scope, topLevel map[string]types.Value, selfName string, isTail bool) (ir.Node, error) {
	if len(call.Items) != 4 {
		return nil, errors.New(errors.ArgumentCountMismatch)
	}
	test, err := finalize(call.Items[1], scopes, topLevel, selfName, false)
	if err != nil {
		return nil, err
	}
	then, err := finalize(call.Items[2], scopes, topLevel, selfName, isTail)
	if err != nil {
		return nil, err
	}
	els, err := finalize(call.Items[3], scopes, topLevel, selfName, isTail)
	if err != nil {
		return nil, err
	}
	return &ir.Cond{Test: test, Then: then, Else: els}, nil
}

func finalizeLambda(call *ast.CallExpr, scopes []*scope, topLevel map[string]types.Value, selfName string) (ir.Node, error) {
	if len(call.Items) != 3 {
		return nil, errors.New(errors.ArgumentCountMismatch)
	}
	paramList, ok := call.Items[1].(*ast.CallExpr)
	if !ok {
		return nil, errors.New(errors.ArgumentTypeMismatch)
	}
	names := make([]string, len(paramList.Items))
	for i, p := range paramList.Items {
		op, ok := p.(*ast.OpVarExpr)
		if !ok {
			return nil, errors.New(errors.ArgumentTypeMismatch)
		}
		names[i] = op.Name
	}

	sc := newScope(names)
	// Clone rather than append-in-place: scopes is shared across sibling
	// branches (a cond's Test/Then/Else, a call's successive arguments),
	// each recursing with the same backing slice. Appending in place would
	// risk one branch's nested lambda clobbering a slot a later sibling
	// still expects to extend from its own original length.
	nested := slices.Clone(scopes)
	nested = append(nested, sc)
	body, err := finalize(call.Items[2], nested, topLevel, selfName, true)
	if err != nil {
		return nil, err
	}
	sc.seal()

	return &ir.Lambda{Arity: len(names), Body: body}, nil
}

func finalizePlainCall(call *ast.CallExpr, scopes []*scope, topLevel map[string]types.Value, selfName string, isTail bool) (ir.Node, error) {
	// A macro keyword in operand position is reported before the callee is
	// resolved, so it is UnexpectedOperator even when the callee is unknown.
	for _, a := range call.Items[1:] {
		if _, ok := a.(*ast.MacroExpr); ok {
			return nil, errors.New(errors.UnexpectedOperator)
		}
	}

	isSelf := false
	var callee ir.Node
	if op, ok := call.Items[0].(*ast.OpVarExpr); ok && selfName != "" && op.Name == selfName && !isBound(op.Name, scopes) {
		isSelf = true
		callee = &ir.Variable{Name: selfName}
	} else {
		c, err := finalize(call.Items[0], scopes, topLevel, selfName, false)
		if err != nil {
			return nil, err
		}
		callee = c
	}

	args := make([]ir.Node, len(call.Items)-1)
	for i, a := range call.Items[1:] {
		node, err := finalize(a, scopes, topLevel, selfName, false)
		if err != nil {
			return nil, err
		}
		args[i] = node
	}

	return &ir.Call{Callee: callee, Args: args, IsTail: isTail, IsSelf: isSelf}, nil
}

// isBound reports whether name is shadowed by a parameter in an enclosing
// lambda, in which case it must resolve as a normal argument reference
// rather than as a self-call even if it happens to equal selfName.
func isBound(name string, scopes []*scope) bool {
	for _, s := range scopes {
		if _, ok := s.indexOf(name); ok {
			return true
		}
	}
	return false
}
