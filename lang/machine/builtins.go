package machine

import (
	"github.com/marcusklaas/lisp-parsers/lang/errors"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// Variadic is the Arity() value used by the one builtin, list, that
// accepts any number of arguments. The evaluator skips the fixed-arity
// check for a builtin reporting this arity.
const Variadic = -1

// Builtins is the complete builtin table. It is built once and shared by
// every Environment, since builtins carry no mutable state.
var Builtins = map[string]*types.Builtin{
	"add1":  {Name: "add1", ArityN: 1, Impl: builtinAdd1},
	"sub1":  {Name: "sub1", ArityN: 1, Impl: builtinSub1},
	"zero?": {Name: "zero?", ArityN: 1, Impl: builtinZeroP},
	"null?": {Name: "null?", ArityN: 1, Impl: builtinNullP},
	"cons":  {Name: "cons", ArityN: 2, Impl: builtinCons},
	"car":   {Name: "car", ArityN: 1, Impl: builtinCar},
	"cdr":   {Name: "cdr", ArityN: 1, Impl: builtinCdr},
	"list":  {Name: "list", ArityN: Variadic, Impl: builtinList},
	"int?":  {Name: "int?", ArityN: 1, Impl: builtinIntP},
	"bool?": {Name: "bool?", ArityN: 1, Impl: builtinBoolP},
	"list?": {Name: "list?", ArityN: 1, Impl: builtinListP},
	"fun?":  {Name: "fun?", ArityN: 1, Impl: builtinFunP},
}

func asInt(v types.Value) (types.Int, error) {
	i, ok := v.(types.Int)
	if !ok {
		return 0, errors.New(errors.ArgumentTypeMismatch)
	}
	return i, nil
}

func asList(v types.Value) (*types.List, error) {
	l, ok := v.(*types.List)
	if !ok {
		return nil, errors.New(errors.ArgumentTypeMismatch)
	}
	return l, nil
}

func builtinAdd1(args []types.Value) (types.Value, error) {
	i, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	return i.Add1(), nil
}

func builtinSub1(args []types.Value) (types.Value, error) {
	i, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	dec, ok := i.Sub1()
	if !ok {
		return nil, errors.New(errors.SubZero)
	}
	return dec, nil
}

func builtinZeroP(args []types.Value) (types.Value, error) {
	i, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	return types.Bool(i.IsZero()), nil
}

func builtinNullP(args []types.Value) (types.Value, error) {
	l, err := asList(args[0])
	if err != nil {
		return nil, err
	}
	return types.Bool(l.IsEmpty()), nil
}

func builtinCons(args []types.Value) (types.Value, error) {
	rest, err := asList(args[1])
	if err != nil {
		return nil, err
	}
	return types.Cons(args[0], rest), nil
}

func builtinCar(args []types.Value) (types.Value, error) {
	l, err := asList(args[0])
	if err != nil {
		return nil, err
	}
	h, ok := l.Head()
	if !ok {
		return nil, errors.New(errors.EmptyList)
	}
	return h, nil
}

func builtinCdr(args []types.Value) (types.Value, error) {
	l, err := asList(args[0])
	if err != nil {
		return nil, err
	}
	t, ok := l.Tail()
	if !ok {
		return nil, errors.New(errors.EmptyList)
	}
	return t, nil
}

func builtinList(args []types.Value) (types.Value, error) {
	l := types.Empty
	for i := len(args) - 1; i >= 0; i-- {
		l = types.Cons(args[i], l)
	}
	return l, nil
}

func builtinIntP(args []types.Value) (types.Value, error) {
	_, ok := args[0].(types.Int)
	return types.Bool(ok), nil
}

func builtinBoolP(args []types.Value) (types.Value, error) {
	_, ok := args[0].(types.Bool)
	return types.Bool(ok), nil
}

func builtinListP(args []types.Value) (types.Value, error) {
	_, ok := args[0].(*types.List)
	return types.Bool(ok), nil
}

func builtinFunP(args []types.Value) (types.Value, error) {
	_, ok := args[0].(types.Function)
	return types.Bool(ok), nil
}
