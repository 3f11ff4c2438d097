// Package primitives declares the leaf proxy types: Any, None, Bool, Str,
// and the Number family. Each carries its promotion strategies from host
// values; everything else about their behavior is built from application
// nodes, the same as any other proxy type.
package primitives

import (
	"github.com/funvibe/lazygraph/internal/config"
	"github.com/funvibe/lazygraph/types"
)

var (
	// Any casts to anything, and anything promotes to Any.
	Any = types.MustRegister(config.AnyTypeName, &types.Type{
		Castable: true,
		Strategies: []types.PromotionStrategy{
			{Name: "wrap", Promote: promoteAny},
		},
	})

	// Number is the nominal parent of Int and Float.
	Number = types.MustRegister(config.NumberTypeName, &types.Type{})

	Bool = types.MustRegister(config.BoolTypeName, &types.Type{
		Strategies: []types.PromotionStrategy{
			{Name: "host-bool", Promote: promoteBool},
		},
	})

	Int = types.MustRegister(config.IntTypeName, &types.Type{
		Parent: Number,
		Strategies: []types.PromotionStrategy{
			{Name: "host-int", Promote: promoteInt},
		},
	})

	// Float promotes host floats and, non-lossily, host ints. The reverse
	// (host float to Int) is rejected.
	Float = types.MustRegister(config.FloatTypeName, &types.Type{
		Parent: Number,
		Strategies: []types.PromotionStrategy{
			{Name: "host-float", Promote: promoteFloat},
			{Name: "host-int", Promote: promoteInt},
		},
	})

	Str = types.MustRegister(config.StrTypeName, &types.Type{
		Strategies: []types.PromotionStrategy{
			{Name: "host-string", Promote: promoteStr},
		},
	})

	None = types.MustRegister(config.NoneTypeName, &types.Type{
		Strategies: []types.PromotionStrategy{
			{Name: "host-nil", Promote: promoteNone},
		},
	})
)

func promoteAny(t *types.Type, v any) (types.Value, error) {
	if val, ok := v.(types.Value); ok {
		return types.Cast(val, t)
	}
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		[]any, map[string]any:
		return types.FromLiteral(t, v)
	}
	return nil, types.NotPromotable()
}

func promoteBool(t *types.Type, v any) (types.Value, error) {
	if b, ok := v.(bool); ok {
		return types.FromLiteral(t, b)
	}
	return nil, types.NotPromotable()
}

func promoteInt(t *types.Type, v any) (types.Value, error) {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return types.FromLiteral(t, v)
	}
	return nil, types.NotPromotable()
}

func promoteFloat(t *types.Type, v any) (types.Value, error) {
	switch v.(type) {
	case float32, float64:
		return types.FromLiteral(t, v)
	}
	return nil, types.NotPromotable()
}

func promoteStr(t *types.Type, v any) (types.Value, error) {
	if s, ok := v.(string); ok {
		return types.FromLiteral(t, s)
	}
	return nil, types.NotPromotable()
}

func promoteNone(t *types.Type, v any) (types.Value, error) {
	if v == nil {
		return types.FromLiteral(t, nil)
	}
	return nil, types.NotPromotable()
}
