package ast

import (
	"fmt"
	"strings"

	"github.com/marcusklaas/lisp-parsers/lang/types"
)

type (
	// ValueExpr is a literal value embedded directly in source, e.g. an
	// integer or one of the #t / #f booleans.
	ValueExpr struct {
		Val types.Value
	}

	// OpVarExpr is a bare identifier used in operand or operator position
	// that is not one of the macro keywords. It is resolved by the
	// resolver into either an ir.Argument (bound parameter), an
	// ir.Value (already-defined top-level binding) or left as an
	// ir.Variable (deferred to evaluation time).
	OpVarExpr struct {
		Name string
	}

	// MacroExpr is one of the recognized macro keywords (define, cond,
	// lambda) appearing in operator position.
	MacroExpr struct {
		Kind Macro
	}

	// CallExpr is a parenthesized list of expressions: (op arg1 arg2 ...).
	// Items[0] is the operator position; it may be a MacroExpr, an
	// OpVarExpr naming a builtin or a custom function, or any other
	// expression that is expected to evaluate to a function.
	CallExpr struct {
		Items []Expr
	}
)

func (n *ValueExpr) String() string { return n.Val.String() }
func (n *ValueExpr) Walk(v Visitor) {}
func (n *ValueExpr) expr()          {}

func (n *OpVarExpr) String() string { return n.Name }
func (n *OpVarExpr) Walk(v Visitor) {}
func (n *OpVarExpr) expr()          {}

func (n *MacroExpr) String() string { return n.Kind.String() }
func (n *MacroExpr) Walk(v Visitor) {}
func (n *MacroExpr) expr()          {}

func (n *CallExpr) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
func (n *CallExpr) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
}
func (n *CallExpr) expr() {}

// IsDefine reports whether e is a (define name expr) call, returning the
// name and value expression when it is. A call whose operator is the define
// keyword but whose shape is otherwise malformed (wrong arity, or a name
// that isn't a bare identifier) reports ok=true with val=nil, letting
// callers distinguish "not a define" from "a malformed define".
func IsDefine(e Expr) (name string, val Expr, ok bool) {
	call, isCall := e.(*CallExpr)
	if !isCall || len(call.Items) == 0 {
		return "", nil, false
	}
	mac, isMacro := call.Items[0].(*MacroExpr)
	if !isMacro || mac.Kind != MacroDefine {
		return "", nil, false
	}
	if len(call.Items) != 3 {
		return "", nil, true
	}
	op, isVar := call.Items[1].(*OpVarExpr)
	if !isVar {
		return "", nil, true
	}
	return op.Name, call.Items[2], true
}

var _ fmt.Stringer = (*CallExpr)(nil)
