// Package containers declares the parametric container types List, Tuple,
// Dict, and Struct, with element-wise promotion from host slices and maps.
package containers

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/lazygraph/internal/config"
	"github.com/funvibe/lazygraph/types"
	"github.com/funvibe/lazygraph/types/primitives"
)

var (
	// List is homogeneous: List[T].
	List = types.MustRegister(config.ListTypeName, &types.Type{
		Parameterizable: true,
		ValidateParams:  validateList,
		Strategies: []types.PromotionStrategy{
			{Name: "host-slice", Promote: promoteList},
		},
	})

	// Tuple is fixed-length and heterogeneous: Tuple[T1, ..., Tn].
	Tuple = types.MustRegister(config.TupleTypeName, &types.Type{
		Parameterizable: true,
		ValidateParams:  validateTuple,
		Strategies: []types.PromotionStrategy{
			{Name: "host-slice", Promote: promoteTuple},
		},
	})

	// Dict maps a restricted key type to a value type: Dict[K, V].
	Dict = types.MustRegister(config.DictTypeName, &types.Type{
		Parameterizable: true,
		ValidateParams:  validateDict,
		Strategies: []types.PromotionStrategy{
			{Name: "host-map", Promote: promoteDict},
		},
	})

	// Struct has one map-shaped parameter naming its fields:
	// Struct[{"a": Int, "b": Str}].
	Struct = types.MustRegister(config.StructTypeName, &types.Type{
		Parameterizable: true,
		ValidateParams:  validateStruct,
		Strategies: []types.PromotionStrategy{
			{Name: "host-map", Promote: promoteStruct},
		},
	})
)

// dictKeyTypes are the only types allowed as a Dict key.
func dictKeyTypes() []*types.Type {
	return []*types.Type{primitives.Str, primitives.Int, primitives.Float, primitives.Any}
}

// ListOf returns the canonical List[elem].
func ListOf(elem *types.Type) *types.Type {
	return types.MustInstantiate(List, types.TypeParam(elem))
}

// TupleOf returns the canonical Tuple over the given element types.
func TupleOf(elems ...*types.Type) *types.Type {
	params := make([]types.Param, len(elems))
	for i, e := range elems {
		params[i] = types.TypeParam(e)
	}
	return types.MustInstantiate(Tuple, params...)
}

// DictOf returns the canonical Dict[key, value].
func DictOf(key, value *types.Type) *types.Type {
	return types.MustInstantiate(Dict, types.TypeParam(key), types.TypeParam(value))
}

// StructOf returns the canonical Struct over the given ordered fields.
func StructOf(fields ...types.MapEntry) *types.Type {
	return types.MustInstantiate(Struct, types.MapParam(fields...))
}

func validateList(generic *types.Type, params []types.Param) error {
	if len(params) != 1 || params[0].Type == nil {
		return types.NewTypeValidationError(generic, "List takes exactly one element type")
	}
	return nil
}

func validateTuple(generic *types.Type, params []types.Param) error {
	for i, p := range params {
		if p.Type == nil {
			return types.NewTypeValidationError(generic, "Tuple parameter %d must be a type", i)
		}
	}
	return nil
}

func validateDict(generic *types.Type, params []types.Param) error {
	if len(params) != 2 || params[0].Type == nil || params[1].Type == nil {
		return types.NewTypeValidationError(generic, "Dict takes exactly a key type and a value type")
	}
	for _, k := range dictKeyTypes() {
		if params[0].Type == k {
			return nil
		}
	}
	return types.NewTypeValidationError(generic,
		"Dict keys must be Str, Int, Float, or Any, not %s", params[0].Type)
}

func validateStruct(generic *types.Type, params []types.Param) error {
	if len(params) != 1 || params[0].Map == nil {
		return types.NewTypeValidationError(generic, "Struct takes exactly one field map")
	}
	return nil
}

// hostSlice reflects v as a generic element list, accepting any host slice
// or array.
func hostSlice(v any) ([]any, bool) {
	if vs, ok := v.([]any); ok {
		return vs, true
	}
	if vs, ok := v.([]types.Value); ok {
		out := make([]any, len(vs))
		for i, e := range vs {
			out[i] = e
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func promoteList(t *types.Type, v any) (types.Value, error) {
	elems, ok := hostSlice(v)
	if !ok {
		return nil, types.NotPromotable()
	}
	elemType := t.TypeParams()[0].Type
	promoted := make([]types.Value, len(elems))
	for i, e := range elems {
		pe, err := types.Promote(e, []*types.Type{elemType})
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		promoted[i] = pe
	}
	return types.FromApply(t, "list", promoted, nil)
}

func promoteTuple(t *types.Type, v any) (types.Value, error) {
	elems, ok := hostSlice(v)
	if !ok {
		return nil, types.NotPromotable()
	}
	params := t.TypeParams()
	if len(elems) != len(params) {
		return nil, fmt.Errorf("expected %d elements, got %d", len(params), len(elems))
	}
	promoted := make([]types.Value, len(elems))
	for i, e := range elems {
		pe, err := types.Promote(e, []*types.Type{params[i].Type})
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		promoted[i] = pe
	}
	return types.FromApply(t, "tuple", promoted, nil)
}

// promoteDict promotes a host map, emitting alternating key and value
// arguments in deterministic key order.
func promoteDict(t *types.Type, v any) (types.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, types.NotPromotable()
	}
	keyType := t.TypeParams()[0].Type
	valType := t.TypeParams()[1].Type

	type pair struct {
		repr string
		key  any
		val  any
	}
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		pairs = append(pairs, pair{repr: fmt.Sprintf("%v", k), key: k, val: iter.Value().Interface()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].repr < pairs[j].repr })

	args := make([]types.Value, 0, 2*len(pairs))
	for _, p := range pairs {
		pk, err := types.Promote(p.key, []*types.Type{keyType})
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", p.key, err)
		}
		pv, err := types.Promote(p.val, []*types.Type{valType})
		if err != nil {
			return nil, fmt.Errorf("value for key %v: %w", p.key, err)
		}
		args = append(args, pk, pv)
	}
	return types.FromApply(t, "dict", args, nil)
}

func promoteStruct(t *types.Type, v any) (types.Value, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, types.NotPromotable()
	}
	fields := t.TypeParams()[0].Map
	kwargs := make(map[string]types.Value, len(fields))
	for _, f := range fields {
		raw, ok := m[f.Key]
		if !ok {
			return nil, fmt.Errorf("missing field %q", f.Key)
		}
		pv, err := types.Promote(raw, []*types.Type{f.Type})
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		kwargs[f.Key] = pv
	}
	if len(m) != len(fields) {
		known := make(map[string]bool, len(fields))
		for _, f := range fields {
			known[f.Key] = true
		}
		for name := range m {
			if !known[name] {
				return nil, fmt.Errorf("unexpected field %q", name)
			}
		}
	}
	return types.FromApply(t, "struct", nil, kwargs)
}
