package function

import (
	"fmt"

	"github.com/funvibe/lazygraph/graft"
	"github.com/funvibe/lazygraph/types"
)

// Call applies a function value to host or typed arguments, producing a
// value of the function's declared return type. Arguments are bound and
// promoted against the function's own type, so shape and type mismatches
// surface here rather than at compute time. The callee's fragment is
// isolated before embedding: calling the same function value twice never
// entangles the two call sites.
func Call(fn types.Value, args []any, kwargs map[string]any) (types.Value, error) {
	t := fn.Type()
	argTypes := ArgTypes(t)
	if argTypes == nil && t.Generic() != Function {
		return nil, fmt.Errorf("cannot call a value of type %s", t)
	}
	kwTypes := KwargTypes(t)
	ret := ReturnType(t)
	if ret == nil {
		return nil, fmt.Errorf("cannot call the generic type %s; it has no bound signature", t)
	}

	sig := &types.Signature{Function: t.String(), Return: ret}
	for i, at := range argTypes {
		sig.Args = append(sig.Args, &types.ArgSpec{
			Name:  fmt.Sprintf("arg%d", i),
			Types: []*types.Type{at},
		})
	}
	for _, e := range kwTypes {
		sig.Args = append(sig.Args, &types.ArgSpec{
			Name:  e.Key,
			Types: []*types.Type{e.Type},
		})
	}
	bound, err := sig.Bind(nil, args, kwargs)
	if err != nil {
		return nil, err
	}
	positional := bound.Args[:len(argTypes)]
	named := make(map[string]types.Value, len(kwTypes))
	for i, e := range kwTypes {
		named[e.Key] = bound.Args[len(argTypes)+i]
	}

	callee, err := types.FromGraft(t, graft.Isolate(fn.Graft()), fn.Params())
	if err != nil {
		return nil, err
	}
	return types.FromApply(ret, callee, positional, named)
}

// FromValue wraps an already-built value into a function over its free
// parameters: each parameter becomes a keyword argument, in first-seen
// order, and the result is a function with no free parameters of its own.
// Wrapping a value with no parameters yields a nullary function.
func FromValue(v types.Value) (types.Value, error) {
	if _, ok := v.(*types.ParameterValue); ok {
		return nil, fmt.Errorf("cannot wrap a bare parameter as a function; build an expression over it first")
	}
	params := v.Params()
	names := make([]string, len(params))
	entries := make([]types.MapEntry, len(params))
	for i, p := range params {
		names[i] = p.Name()
		entries[i] = types.MapEntry{Key: p.Name(), Type: p.Type()}
	}
	fnType, err := FunctionOf(nil, entries, v.Type())
	if err != nil {
		return nil, err
	}
	fg, err := graft.FunctionGraft(v.Graft(), names...)
	if err != nil {
		return nil, err
	}
	return types.FromGraft(fnType, fg, nil)
}
