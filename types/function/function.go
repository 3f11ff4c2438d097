// Package function declares the Function proxy type and closure tracing:
// turning an ordinary Go func over typed Values into a first-class,
// serializable function value by calling it once with placeholder
// arguments and capturing the fragment its body builds.
package function

import (
	"github.com/funvibe/lazygraph/internal/config"
	"github.com/funvibe/lazygraph/types"
)

// Function is parameterized by its positional argument types, one
// map-shaped parameter naming its keyword argument types (possibly empty),
// and its return type, in that order:
//
//	Function[Int, Int, {}, Int]
//	Function[{"x": Int, "y": Str}, Bool]
//
// A bare function value cannot be computed on its own; it must be called
// and the result computed instead.
var Function *types.Type

func init() {
	Function = types.MustRegister(config.FunctionTypeName, &types.Type{
		Parameterizable: true,
		NotComputable:   true,
		ValidateParams:  validateFunction,
		SubtypeOverride: functionSubtype,
	})
}

// FunctionOf returns the canonical Function type over the given positional
// argument types, keyword argument types, and return type.
func FunctionOf(args []*types.Type, kwargs []types.MapEntry, ret *types.Type) (*types.Type, error) {
	params := make([]types.Param, 0, len(args)+2)
	for _, a := range args {
		params = append(params, types.TypeParam(a))
	}
	params = append(params, types.MapParam(kwargs...), types.TypeParam(ret))
	return types.Instantiate(Function, params...)
}

// MustFunctionOf is FunctionOf for declaration-time call sites.
func MustFunctionOf(args []*types.Type, kwargs []types.MapEntry, ret *types.Type) *types.Type {
	t, err := FunctionOf(args, kwargs, ret)
	if err != nil {
		panic(err)
	}
	return t
}

func validateFunction(generic *types.Type, params []types.Param) error {
	if len(params) < 2 {
		return types.NewTypeValidationError(generic,
			"Function takes at least a keyword-argument map and a return type")
	}
	if params[len(params)-1].Type == nil {
		return types.NewTypeValidationError(generic, "the last Function parameter must be the return type")
	}
	if params[len(params)-2].Map == nil {
		return types.NewTypeValidationError(generic,
			"the second-to-last Function parameter must be the keyword-argument map")
	}
	for i, p := range params[:len(params)-2] {
		if p.Type == nil {
			return types.NewTypeValidationError(generic,
				"Function argument parameter %d must be a type", i)
		}
	}
	return nil
}

// ArgTypes returns the positional argument types of a concrete Function
// type, or nil if t is not one.
func ArgTypes(t *types.Type) []*types.Type {
	params, ok := functionParams(t)
	if !ok {
		return nil
	}
	out := make([]*types.Type, len(params)-2)
	for i, p := range params[:len(params)-2] {
		out[i] = p.Type
	}
	return out
}

// KwargTypes returns the ordered keyword argument types of a concrete
// Function type, or nil if t is not one.
func KwargTypes(t *types.Type) []types.MapEntry {
	params, ok := functionParams(t)
	if !ok {
		return nil
	}
	return params[len(params)-2].Map
}

// ReturnType returns the return type of a concrete Function type, or nil
// if t is not one.
func ReturnType(t *types.Type) *types.Type {
	params, ok := functionParams(t)
	if !ok {
		return nil
	}
	return params[len(params)-1].Type
}

func functionParams(t *types.Type) ([]types.Param, bool) {
	if t == nil || t.Generic() != Function || !t.HasParams() {
		return nil, false
	}
	return t.TypeParams(), true
}

// functionSubtype replaces the default covariant comparison for Function
// instances: a is usable where b is expected iff a accepts everything b's
// caller may pass (contravariant arguments) and returns something the
// caller may rely on (covariant return).
func functionSubtype(a, b *types.Type) bool {
	ap, aok := functionParams(a)
	bp, bok := functionParams(b)
	if !aok || !bok || len(ap) != len(bp) {
		return false
	}
	if !types.IsSubtype(ap[len(ap)-1].Type, bp[len(bp)-1].Type) {
		return false
	}
	for i := range ap[:len(ap)-2] {
		if !types.IsSubtype(bp[i].Type, ap[i].Type) {
			return false
		}
	}
	aKw, bKw := ap[len(ap)-2].Map, bp[len(bp)-2].Map
	if len(aKw) != len(bKw) {
		return false
	}
	aTypes := make(map[string]*types.Type, len(aKw))
	for _, e := range aKw {
		aTypes[e.Key] = e.Type
	}
	for _, e := range bKw {
		accepted, ok := aTypes[e.Key]
		if !ok || !types.IsSubtype(e.Type, accepted) {
			return false
		}
	}
	return true
}
