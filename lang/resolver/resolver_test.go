package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusklaas/lisp-parsers/lang/ast"
	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/ir"
	"github.com/marcusklaas/lisp-parsers/lang/resolver"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

func val(i uint64) *ast.ValueExpr  { return &ast.ValueExpr{Val: types.Int(i)} }
func v(name string) *ast.OpVarExpr { return &ast.OpVarExpr{Name: name} }
func call(items ...ast.Expr) *ast.CallExpr { return &ast.CallExpr{Items: items} }
func macro(k ast.Macro) *ast.MacroExpr     { return &ast.MacroExpr{Kind: k} }

func lambda(params []string, body ast.Expr) *ast.CallExpr {
	items := make([]ast.Expr, len(params))
	for i, p := range params {
		items[i] = v(p)
	}
	return call(macro(ast.MacroLambda), call(items...), body)
}

func TestFinalizeLiteral(t *testing.T) {
	node, err := resolver.Finalize(val(42), nil, "")
	require.NoError(t, err)
	vn, ok := node.(*ir.Value)
	require.True(t, ok)
	assert.Equal(t, types.Int(42), vn.Val)
}

func TestFinalizeUnknownVariable(t *testing.T) {
	_, err := resolver.Finalize(v("x"), nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.UnknownVariable))
}

func TestFinalizeTopLevelValue(t *testing.T) {
	top := map[string]types.Value{"add": &types.Builtin{Name: "add", ArityN: 2}}
	node, err := resolver.Finalize(v("add"), top, "")
	require.NoError(t, err)
	vn, ok := node.(*ir.Value)
	require.True(t, ok)
	assert.Equal(t, "add", vn.Val.(*types.Builtin).Name)
}

func TestFinalizeMacroInValuePosition(t *testing.T) {
	// (cons define 1): a macro keyword used as an argument is always
	// UnexpectedOperator, regardless of what cons itself resolves to.
	_, err := resolver.Finalize(call(v("cons"), macro(ast.MacroDefine), val(1)), nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.UnexpectedOperator))
}

func TestFinalizeEmptyCall(t *testing.T) {
	_, err := resolver.Finalize(call(), nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.EmptyListEvaluation))
}

func TestFinalizeLambdaArgument(t *testing.T) {
	node, err := resolver.Finalize(lambda([]string{"x"}, v("x")), nil, "")
	require.NoError(t, err)
	lam, ok := node.(*ir.Lambda)
	require.True(t, ok)
	assert.Equal(t, 1, lam.Arity)
	arg, ok := lam.Body.(*ir.Argument)
	require.True(t, ok)
	assert.Equal(t, 0, arg.Offset)
	assert.Equal(t, 0, arg.ScopeLevel)
	// the only read of x is also its last read.
	assert.True(t, arg.Moveable)
}

func TestFinalizeLambdaLastUseOnly(t *testing.T) {
	// (lambda (x) (cons x x)): the second x is the last use, not the first.
	top := map[string]types.Value{"cons": &types.Builtin{Name: "cons", ArityN: 2}}
	node, err := resolver.Finalize(lambda([]string{"x"}, call(v("cons"), v("x"), v("x"))), top, "")
	require.NoError(t, err)
	lam := node.(*ir.Lambda)
	c := lam.Body.(*ir.Call)
	first := c.Args[0].(*ir.Argument)
	second := c.Args[1].(*ir.Argument)
	assert.False(t, first.Moveable)
	assert.True(t, second.Moveable)
}

func TestFinalizeNestedLambdaScopeLevel(t *testing.T) {
	// (lambda (x) (lambda (y) x)): x is captured from one level out.
	inner := lambda([]string{"y"}, v("x"))
	node, err := resolver.Finalize(lambda([]string{"x"}, inner), nil, "")
	require.NoError(t, err)
	outer := node.(*ir.Lambda)
	innerLambda := outer.Body.(*ir.Lambda)
	arg := innerLambda.Body.(*ir.Argument)
	assert.Equal(t, 0, arg.Offset)
	assert.Equal(t, 1, arg.ScopeLevel)
}

func TestFinalizeCondRequiresFourItems(t *testing.T) {
	_, err := resolver.Finalize(call(macro(ast.MacroCond), val(1), val(2)), nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ArgumentCountMismatch))
}

func TestFinalizeCondTailPropagation(t *testing.T) {
	body := call(macro(ast.MacroCond), v("x"), v("x"), v("x"))
	node, err := resolver.Finalize(lambda([]string{"x"}, body), nil, "")
	require.NoError(t, err)
	lam := node.(*ir.Lambda)
	cond := lam.Body.(*ir.Cond)
	require.NotNil(t, cond.Test)
	require.NotNil(t, cond.Then)
	require.NotNil(t, cond.Else)
}

func TestFinalizeSelfCall(t *testing.T) {
	// (define count (lambda (n) (count n))) should mark the inner call self.
	body := lambda([]string{"n"}, call(v("count"), v("n")))
	node, err := resolver.Finalize(body, nil, "count")
	require.NoError(t, err)
	lam := node.(*ir.Lambda)
	c := lam.Body.(*ir.Call)
	assert.True(t, c.IsSelf)
	_, isVariable := c.Callee.(*ir.Variable)
	assert.True(t, isVariable)
}

func TestFinalizeMalformedDefineNested(t *testing.T) {
	_, err := resolver.Finalize(call(macro(ast.MacroDefine), v("x"), val(1)), nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.MalformedDefinition))
}
