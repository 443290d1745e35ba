package ast

// Visitor defines the method to implement for a Visitor, which gets called
// for each participating expression in the call to Walk. A node's children
// can be skipped by returning a nil visitor from the call to Visit.
type Visitor interface {
	Visit(n Expr) (w Visitor)
}

// VisitorFunc is a function that implements the Visitor interface.
type VisitorFunc func(n Expr) Visitor

// Visit implements the Visitor interface for VisitorFunc.
func (f VisitorFunc) Visit(n Expr) Visitor {
	return f(n)
}

// Walk visits each expression with Visitor v starting with the provided
// node. If the call to Visit returns a non-nil Visitor, Walk recursively
// visits the children of this node with that visitor.
func Walk(v Visitor, node Expr) {
	if node == nil {
		return
	}
	if w := v.Visit(node); w != nil {
		node.Walk(w)
	}
}
