package containers

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/lazygraph/types"
	"github.com/funvibe/lazygraph/types/primitives"
)

// Proxify coerces an arbitrary host value into a typed Value, inferring the
// proxy type from the host shape: literals become their primitive type,
// slices become Tuples over their inferred element types, and string-keyed
// maps become Structs over their inferred field types. Already-typed Values
// pass through unchanged. Shapes with no defined mapping fail; in
// particular a bare Go func carries no inferable argument types and must be
// traced against declared types instead.
func Proxify(v any) (types.Value, error) {
	switch tv := v.(type) {
	case types.Value:
		return tv, nil
	case nil:
		return types.FromLiteral(primitives.None, nil)
	case bool:
		return types.FromLiteral(primitives.Bool, tv)
	case string:
		return types.FromLiteral(primitives.Str, tv)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return types.FromLiteral(primitives.Int, tv)
	case float32, float64:
		return types.FromLiteral(primitives.Float, tv)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems, _ := hostSlice(v)
		vals := make([]types.Value, len(elems))
		elemTypes := make([]*types.Type, len(elems))
		for i, e := range elems {
			pv, err := Proxify(e)
			if err != nil {
				return nil, err
			}
			vals[i] = pv
			elemTypes[i] = pv.Type()
		}
		return types.FromApply(TupleOf(elemTypes...), "tuple", vals, nil)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		fields := make([]types.MapEntry, len(keys))
		kwargs := make(map[string]types.Value, len(keys))
		for i, k := range keys {
			pv, err := Proxify(rv.MapIndex(reflect.ValueOf(k)).Interface())
			if err != nil {
				return nil, err
			}
			fields[i] = types.MapEntry{Key: k, Type: pv.Type()}
			kwargs[k] = pv
		}
		return types.FromApply(StructOf(fields...), "struct", nil, kwargs)
	case reflect.Func:
		return nil, fmt.Errorf("cannot infer a function type for %T; trace it against declared argument and return types", v)
	}
	return nil, fmt.Errorf("no proxy type can represent %T", v)
}
