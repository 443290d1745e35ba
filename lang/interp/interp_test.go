package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusklaas/lisp-parsers/internal/sexpr"
	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/interp"
	"github.com/marcusklaas/lisp-parsers/lang/machine"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

func run(t *testing.T, env *machine.Environment, src string) types.Value {
	t.Helper()
	expr, err := sexpr.Read(src)
	require.NoError(t, err)
	v, err := interp.Evaluate(expr, env)
	require.NoError(t, err)
	return v
}

func runErr(t *testing.T, env *machine.Environment, src string) error {
	t.Helper()
	expr, err := sexpr.Read(src)
	require.NoError(t, err)
	_, err = interp.Evaluate(expr, env)
	require.Error(t, err)
	return err
}

func TestAdd1Chain(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define inc3 (lambda (n) (add1 (add1 (add1 n)))))`)
	got := run(t, env, "(inc3 74)")
	assert.Equal(t, types.Int(77), got)
}

func TestFunctionAddRecursive(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define add
		(lambda (a b)
			(cond (zero? b) a (add (add1 a) (sub1 b)))))`)
	got := run(t, env, "(add 77 12)")
	assert.Equal(t, types.Int(89), got)
}

func TestFunctionMultiply(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define add
		(lambda (a b)
			(cond (zero? b) a (add (add1 a) (sub1 b)))))`)
	run(t, env, `(define mult
		(lambda (a b)
			(cond (zero? b) 0 (add a (mult a (sub1 b))))))`)
	got := run(t, env, "(mult 7 3)")
	assert.Equal(t, types.Int(21), got)
}

func TestDefineRejectsRedefinition(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, "(define x 1)")
	expr, err := sexpr.Read("(define x 2)")
	require.NoError(t, err)
	_, err = interp.Evaluate(expr, env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.BadDefine))
}

func TestIsNullOfEmptyList(t *testing.T) {
	env := machine.NewEnvironment()
	got := run(t, env, "(null? (list))")
	assert.Equal(t, types.True, got)
}

func TestCdrOfSingleton(t *testing.T) {
	env := machine.NewEnvironment()
	got := run(t, env, "(null? (cdr (list 1)))")
	assert.Equal(t, types.True, got)
}

func TestZeroPredicates(t *testing.T) {
	env := machine.NewEnvironment()
	assert.Equal(t, types.True, run(t, env, "(zero? 0)"))
	assert.Equal(t, types.False, run(t, env, "(zero? 5)"))
}

func TestZeroOfListIsTypeMismatch(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "(zero? (list))")
	assert.True(t, errors.Is(err, errors.ArgumentTypeMismatch))
}

func TestZeroTwoArgsIsCountMismatch(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "(zero? 1 2)")
	assert.True(t, errors.Is(err, errors.ArgumentCountMismatch))
}

func TestTooFewArgumentsCurries(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, "(define add2 (lambda (a b) (cons a b)))")
	got := run(t, env, "(add2 1)")
	assert.Equal(t, "function", got.Type())
}

func TestTooManyArgumentsIsCountMismatch(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, "(define id (lambda (a) a))")
	err := runErr(t, env, "(id 1 2)")
	assert.True(t, errors.Is(err, errors.ArgumentCountMismatch))
}

func TestUnexpectedOperator(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "(cons define 1)")
	assert.True(t, errors.Is(err, errors.UnexpectedOperator))
}

func TestUndefinedFunction(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "(undefined-fn 1 2)")
	assert.True(t, errors.Is(err, errors.UnknownVariable))
}

func TestEvalEmptyList(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "()")
	assert.True(t, errors.Is(err, errors.EmptyListEvaluation))
}

func TestSubZero(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "(sub1 0)")
	assert.True(t, errors.Is(err, errors.SubZero))
}

func TestClosuresCaptureEnclosingArgument(t *testing.T) {
	env := machine.NewEnvironment()
	// (lambda (x) (lambda (y) x)) applied to 1, then to 2, must return 1.
	run(t, env, "(define make-const (lambda (x) (lambda (y) x)))")
	got := run(t, env, "((make-const 1) 2)")
	assert.Equal(t, types.Int(1), got)
}

func TestCurrySum2And5(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define add
		(lambda (a b)
			(cond (zero? b) a (add (add1 a) (sub1 b)))))`)
	run(t, env, "(define add5 (add 5))")
	got := run(t, env, "(add5 2)")
	assert.Equal(t, types.Int(7), got)
}

func TestSelfCallThroughNestedLambdaReachesTopLevelName(t *testing.T) {
	env := machine.NewEnvironment()
	// f's own_name reaches (f y) even though it sits inside a lambda
	// nested inside f's body; that inner call must still reach the
	// top-level f, not the returned inner closure itself.
	run(t, env, "(define f (lambda (x) (lambda (y) (f y))))")
	got := run(t, env, "((f 1) 2)")
	closure, ok := got.(*machine.Closure)
	require.True(t, ok)
	assert.Equal(t, 1, closure.ArityN)
}

func TestSelfCallBeforeDefineBindingIsUnknownVariable(t *testing.T) {
	env := machine.NewEnvironment()
	err := runErr(t, env, "(define f (f 1))")
	assert.True(t, errors.Is(err, errors.UnknownVariable))
}

func TestFunP(t *testing.T) {
	env := machine.NewEnvironment()
	assert.Equal(t, types.True, run(t, env, "(fun? car)"))
	assert.Equal(t, types.False, run(t, env, "(fun? 1)"))
}

func TestListBuiltinVariadicEmpty(t *testing.T) {
	env := machine.NewEnvironment()
	got := run(t, env, "(list)")
	assert.Equal(t, "()", got.String())
}

func TestVariableShadowing(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, "(define x 5)")
	// A lambda parameter named x shadows the top-level binding.
	got := run(t, env, "((lambda (x) (add1 x)) 9)")
	assert.Equal(t, types.Int(10), got)
}

func TestMapOverList(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define map
		(lambda (f xs)
			(cond (null? xs) (list) (cons (f (car xs)) (map f (cdr xs))))))`)
	got := run(t, env, "(map add1 (list 1 2 3))")
	assert.Equal(t, "(2 3 4)", got.String())
}

func TestMapWithClosureCapturingOuterLambdaArgument(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define add
		(lambda (a b)
			(cond (zero? b) a (add (add1 a) (sub1 b)))))`)
	run(t, env, `(define map
		(lambda (f xs)
			(cond (null? xs) (list) (cons (f (car xs)) (map f (cdr xs))))))`)
	got := run(t, env, `(map (lambda (f) (f 10))
		(map (lambda (n) (lambda (x) (add x n))) (list 1 2 3 4 5 6 7 8 9 10)))`)
	assert.Equal(t, "(11 12 13 14 15 16 17 18 19 20)", got.String())
}

// sort, grounded on the original Rust test suite's own "sort" scenario:
// mutual recursion through several independently-defined top-level
// functions (filter, not, >, and, append, sort) sharing one environment.
func TestSortViaMutualTopLevelRecursion(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define filter
		(lambda (f xs)
			(cond (null? xs) (list)
				(cond (f (car xs))
					(cons (car xs) (filter f (cdr xs)))
					(filter f (cdr xs))))))`)
	run(t, env, `(define not (lambda (t) (cond t #f #t)))`)
	run(t, env, `(define > (lambda (a b)
		(cond (zero? a) #f
			(cond (zero? b) #t (> (sub1 a) (sub1 b))))))`)
	run(t, env, `(define append
		(lambda (l1 l2)
			(cond (null? l2) l1 (cons (car l2) (append l1 (cdr l2))))))`)
	run(t, env, `(define sort
		(lambda (l)
			(cond (null? l) l
				(append
					(cons (car l) (sort (filter (lambda (x) (not (> x (car l)))) (cdr l))))
					(sort (filter (lambda (x) (> x (car l))) l))))))`)
	got := run(t, env, "(sort (list 5 3 2 10 0 7))")
	assert.Equal(t, "(0 2 3 5 7 10)", got.String())
}

func TestRangeBuiltFromComparisonAndCons(t *testing.T) {
	env := machine.NewEnvironment()
	run(t, env, `(define > (lambda (a b)
		(cond (zero? a) #f
			(cond (zero? b) #t (> (sub1 a) (sub1 b))))))`)
	run(t, env, `(define range
		(lambda (start end)
			(cond (> end start) (cons end (range start (sub1 end))) (list start))))`)
	got := run(t, env, "(range 1 5)")
	assert.Equal(t, "(1 2 3 4 5)", got.String())
}
