package types

import (
	"testing"
)

func TestCanonicalIdentity(t *testing.T) {
	a := MustInstantiate(tVec, TypeParam(tMass))
	b := MustInstantiate(tVec, TypeParam(tMass))
	if a != b {
		t.Fatal("structurally equal instantiations must return the same descriptor")
	}

	nested1 := MustInstantiate(tVec, TypeParam(a))
	nested2 := MustInstantiate(tVec, TypeParam(MustInstantiate(tVec, TypeParam(tMass))))
	if nested1 != nested2 {
		t.Error("canonical identity must hold through nesting")
	}

	if MustInstantiate(tVec, TypeParam(tLabel)) == a {
		t.Error("different parameters must produce different descriptors")
	}
}

func TestCanonicalIdentityMapOrder(t *testing.T) {
	a := MustInstantiate(tRec, MapParam(
		MapEntry{Key: "x", Type: tMass},
		MapEntry{Key: "y", Type: tLabel},
	))
	b := MustInstantiate(tRec, MapParam(
		MapEntry{Key: "y", Type: tLabel},
		MapEntry{Key: "x", Type: tMass},
	))
	if a != b {
		t.Error("map-shaped parameters are structurally order-insensitive")
	}
}

func TestCanonicalIdentityLiterals(t *testing.T) {
	a := MustInstantiate(tVec, TypeParam(tMass), LitParam(int64(2)))
	b := MustInstantiate(tVec, TypeParam(tMass), LitParam(int64(2)))
	c := MustInstantiate(tVec, TypeParam(tMass), LitParam(int64(3)))
	if a != b || a == c {
		t.Error("literal parameters participate in identity")
	}
}

func TestInstantiateValidation(t *testing.T) {
	unregistered := &Type{Name: "Loose"}
	tests := []struct {
		name   string
		params []Param
	}{
		{name: "no parameters", params: nil},
		{name: "empty param", params: []Param{{}}},
		{name: "unregistered type", params: []Param{TypeParam(unregistered)}},
		{name: "bad literal kind", params: []Param{LitParam(3)}},
		{name: "empty map key", params: []Param{MapParam(MapEntry{Key: "", Type: tMass})}},
		{name: "duplicate map key", params: []Param{MapParam(
			MapEntry{Key: "x", Type: tMass},
			MapEntry{Key: "x", Type: tLabel},
		)}},
		{name: "nil map value", params: []Param{MapParam(MapEntry{Key: "x"})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Instantiate(tVec, tt.params...)
			if _, ok := err.(*TypeValidationError); !ok {
				t.Errorf("expected *TypeValidationError, got %v", err)
			}
		})
	}
}

func TestInstantiateNonGeneric(t *testing.T) {
	if _, err := Instantiate(tMass, TypeParam(tMass)); err == nil {
		t.Error("a leaf type cannot be parameterized")
	}
	concrete := MustInstantiate(tVec, TypeParam(tMass))
	if _, err := Instantiate(concrete, TypeParam(tMass)); err == nil {
		t.Error("a concrete instance cannot be parameterized again")
	}
}

func TestInstantiateValidateParamsHook(t *testing.T) {
	unary := MustRegister("UnaryFixture", &Type{
		Parameterizable: true,
		ValidateParams: func(generic *Type, params []Param) error {
			if len(params) != 1 {
				return NewTypeValidationError(generic, "takes exactly one parameter")
			}
			return nil
		},
	})
	if _, err := Instantiate(unary, TypeParam(tMass), TypeParam(tMass)); err == nil {
		t.Error("the generic's own validation hook must run")
	}
	if _, err := Instantiate(unary, TypeParam(tMass)); err != nil {
		t.Errorf("valid instantiation failed: %v", err)
	}
}

func TestTypeString(t *testing.T) {
	v := MustInstantiate(tVec, TypeParam(tMass))
	if got := v.String(); got != "Vec[Mass]" {
		t.Errorf("String() = %q, want Vec[Mass]", got)
	}
	r := MustInstantiate(tRec, MapParam(MapEntry{Key: "x", Type: tMass}))
	if got := r.String(); got != `Rec[{"x": Mass}]` {
		t.Errorf("String() = %q", got)
	}
}
