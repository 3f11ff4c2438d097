package function

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/funvibe/lazygraph/graft"
	"github.com/funvibe/lazygraph/internal/config"
	"github.com/funvibe/lazygraph/types"
	"github.com/funvibe/lazygraph/types/containers"
)

// Trace captures a Go func as a function value by calling it exactly once
// with a fresh placeholder parameter per declared argument type and
// wrapping the fragment its body built. The func must not be variadic, its
// arity must match argTypes, and each of its parameters must accept a
// Value. It returns either a single result or a result and an error.
//
// The placeholder names are freshly synthesized, so tracing the same func
// twice yields structurally equal but independently named fragments, and
// formals can never collide with captured outer parameters.
//
// The result is promoted to returnType when one is given; with a nil
// returnType the function's return type is inferred from the host shape of
// the result. References the body leaves free, other than the synthesized
// formals, survive as the traced value's own parameters.
func Trace(fn any, argTypes []*types.Type, returnType *types.Type) (types.Value, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, types.NewClosureTracingError("only a func can be traced, not %T", fn)
	}
	ft := rv.Type()
	if ft.IsVariadic() {
		return nil, types.NewClosureTracingError("variadic funcs cannot be traced")
	}
	if ft.NumIn() != len(argTypes) {
		return nil, types.NewClosureTracingError(
			"func takes %d arguments but %d argument types were declared", ft.NumIn(), len(argTypes))
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == reflect.TypeOf((*error)(nil)).Elem():
	default:
		return nil, types.NewClosureTracingError(
			"func must return one result, or a result and an error")
	}

	names := make([]string, len(argTypes))
	formals := make([]*types.ParameterValue, len(argTypes))
	in := make([]reflect.Value, len(argTypes))
	for i, at := range argTypes {
		if at == nil || types.IsGeneric(at) {
			return nil, types.NewClosureTracingError("argument type %d must be a concrete type, got %s", i, at)
		}
		names[i] = fmt.Sprintf("%s%d_%s", config.TracedParamPrefix, i, graft.Guid())
		formals[i] = types.Parameter(names[i], at)
		arg := reflect.ValueOf(formals[i])
		if !arg.Type().AssignableTo(ft.In(i)) {
			return nil, types.NewClosureTracingError(
				"parameter %d of the func must accept a value (is %s)", i, ft.In(i))
		}
		in[i] = arg
	}

	out := rv.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	raw := out[0].Interface()

	var body types.Value
	var err error
	if returnType != nil {
		body, err = types.Promote(raw, []*types.Type{returnType})
		if err != nil {
			return nil, types.NewClosureTracingError(
				"the func's result does not fit the declared return type: %v", err)
		}
	} else {
		body, err = containers.Proxify(raw)
		if err != nil {
			return nil, types.NewClosureTracingError("the func's result has no proxy type: %v", err)
		}
	}

	fg, err := graft.FunctionGraft(body.Graft(), names...)
	if err != nil {
		return nil, err
	}
	fnType, err := FunctionOf(argTypes, nil, body.Type())
	if err != nil {
		return nil, err
	}
	free := types.WithoutParams(body.Params(), names)

	types.Logger().Debug("traced closure",
		zap.String("type", fnType.String()),
		zap.Int("free_parameters", len(free)))
	return types.FromGraft(fnType, fg, free)
}
