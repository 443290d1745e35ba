// Package interp provides the single entry point a host program needs:
// Evaluate, which classifies a top-level source expression as either a
// (define name expr) form or a plain expression to evaluate, resolves it
// against the current Environment, and runs it to a value or an error.
//
// Evaluate is a plain function rather than a stateful driver object: this
// language has no concurrency, no program-wide predeclared values beyond
// the builtin table, and no notion of a "module" distinct from the running
// sequence of top-level forms.
package interp

import (
	"github.com/marcusklaas/lisp-parsers/lang/ast"
	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/machine"
	"github.com/marcusklaas/lisp-parsers/lang/resolver"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// Evaluate resolves and runs a single top-level expression against env.
//
// If expr has the shape (define NAME EXPR), NAME's value is computed and
// bound in env (rejecting redefinition with a BadDefine error), and the
// empty list is returned; NAME is made available to EXPR itself for direct recursion
// even though it is not yet bound in env while EXPR is being resolved.
// Any other expression is resolved and evaluated directly; the resulting
// value is not bound anywhere.
func Evaluate(expr ast.Expr, env *machine.Environment) (types.Value, error) {
	name, valExpr, isDefine := ast.IsDefine(expr)
	if isDefine && valExpr == nil {
		return nil, errors.New(errors.MalformedDefinition)
	}

	if isDefine {
		if _, bound := env.Lookup(name); bound {
			return nil, errors.Named(errors.BadDefine, name)
		}
		v, err := evalExpr(valExpr, env, name)
		if err != nil {
			return nil, err
		}
		if err := env.Define(name, v); err != nil {
			return nil, err
		}
		return types.Empty, nil
	}

	return evalExpr(expr, env, "")
}

func evalExpr(expr ast.Expr, env *machine.Environment, selfName string) (types.Value, error) {
	node, err := resolver.Finalize(expr, env.Snapshot(), selfName)
	if err != nil {
		return nil, err
	}
	return machine.NewEvaluator(env).Run(node)
}
