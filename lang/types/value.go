// Package types defines the value domain of the language: the small,
// closed set of runtime values that expressions evaluate to. There is no
// freezing, no ordering, no iteration protocol and no attribute access —
// the language has exactly four kinds of value (integers, booleans, lists
// and functions) and they are all immutable by construction, so none of
// that machinery is needed.
package types

// Value is the interface implemented by every value the evaluator can
// produce or manipulate.
type Value interface {
	// String returns the value's textual representation, as used for
	// printing results and embedding in error messages.
	String() string

	// Type returns a short, lower-case name for the value's type, e.g.
	// "int", "bool", "list" or "function".
	Type() string
}

// Function is implemented by every callable value, both builtins and
// user-defined closures.
type Function interface {
	Value

	// Arity returns the number of arguments the function expects.
	Arity() int
}
