// Package errors defines the closed set of dynamic error kinds the
// resolver and evaluator can raise: a small int enum paired with an
// array-based String method, rather than a chain of sentinel error values.
package errors

import "fmt"

// Kind identifies the category of a language Error.
type Kind int

// The complete set of dynamic error kinds the language can raise.
const (
	// UnexpectedOperator is raised when a macro keyword (define, cond,
	// lambda) appears somewhere other than the operator position of a
	// call, e.g. (cons define 1).
	UnexpectedOperator Kind = iota
	// ArgumentCountMismatch is raised when a call supplies more arguments
	// than a function's arity, or fewer than a builtin's fixed arity.
	ArgumentCountMismatch
	// ArgumentTypeMismatch is raised when a builtin receives an argument
	// of the wrong runtime type, e.g. (add1 (list)).
	ArgumentTypeMismatch
	// EmptyListEvaluation is raised when a call expression has no items at
	// all, i.e. the source wrote "()".
	EmptyListEvaluation
	// NonFunctionApplication is raised when the operator position
	// evaluates to a non-function value, e.g. (1 2 3).
	NonFunctionApplication
	// SubZero is raised by sub1 when its argument is already zero: the
	// language has no negative integers.
	SubZero
	// EmptyList is raised by car and cdr when applied to the empty list.
	EmptyList
	// UnknownVariable is raised when a name does not resolve to any
	// parameter or top-level binding. Use Error.Name for the offending
	// identifier.
	UnknownVariable
	// MalformedDefinition is raised when a (define ...) call does not have
	// the shape (define NAME EXPR).
	MalformedDefinition
	// BadDefine is raised when (define NAME EXPR) names an identifier that
	// is already bound at top level: redefinition is rejected rather than
	// silently overwriting.
	BadDefine
)

var kindNames = [...]string{
	UnexpectedOperator:     "unexpected-operator",
	ArgumentCountMismatch:  "argument-count-mismatch",
	ArgumentTypeMismatch:   "argument-type-mismatch",
	EmptyListEvaluation:    "empty-list-evaluation",
	NonFunctionApplication: "non-function-application",
	SubZero:                "sub-zero",
	EmptyList:              "empty-list",
	UnknownVariable:        "unknown-variable",
	MalformedDefinition:    "malformed-definition",
	BadDefine:              "bad-define",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the concrete error type raised by the resolver and evaluator.
// Name carries the offending identifier for UnknownVariable and BadDefine;
// it is empty for every other kind.
type Error struct {
	Kind Kind
	Name string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	}
	return e.Kind.String()
}

// New builds an Error of the given kind with no associated name.
func New(k Kind) *Error { return &Error{Kind: k} }

// Named builds an Error of the given kind carrying the offending name,
// for UnknownVariable and BadDefine.
func Named(k Kind, name string) *Error { return &Error{Kind: k, Name: name} }

// Is reports whether err is a language Error of kind k, for use with
// errors.Is-style assertions in tests.
func Is(err error, k Kind) bool {
	le, ok := err.(*Error)
	return ok && le.Kind == k
}
