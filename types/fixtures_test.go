package types

// Shared test fixtures. A small nominal hierarchy (Mass <: Quantity), a
// one-parameter generic (Vec), a record-style generic with a map-shaped
// parameter (Rec), and a castable wildcard (Free).

var (
	tQuantity = MustRegister("Quantity", &Type{})

	tMass = MustRegister("Mass", &Type{
		Parent: tQuantity,
		Strategies: []PromotionStrategy{
			{Name: "host-int", Promote: promoteHostInt},
		},
	})

	tLabel = MustRegister("Label", &Type{
		Strategies: []PromotionStrategy{
			{Name: "host-string", Promote: promoteHostString},
		},
	})

	tFree = MustRegister("Free", &Type{Castable: true})

	tVec = MustRegister("Vec", &Type{Parameterizable: true})

	tRec = MustRegister("Rec", &Type{Parameterizable: true})
)

func promoteHostInt(t *Type, v any) (Value, error) {
	if n, ok := v.(int); ok {
		return FromLiteral(t, n)
	}
	return nil, NotPromotable()
}

func promoteHostString(t *Type, v any) (Value, error) {
	if s, ok := v.(string); ok {
		return FromLiteral(t, s)
	}
	return nil, NotPromotable()
}

func mustLiteral(t *Type, v any) Value {
	val, err := FromLiteral(t, v)
	if err != nil {
		panic(err)
	}
	return val
}
