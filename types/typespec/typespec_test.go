package typespec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/lazygraph/types"
	"github.com/funvibe/lazygraph/types/containers"
	"github.com/funvibe/lazygraph/types/function"
	"github.com/funvibe/lazygraph/types/primitives"
)

// Ranked exercises literal parameters (an array-rank-style generic).
var tRanked = types.MustRegister("Ranked", &types.Type{Parameterizable: true})

func TestEncodeLeaf(t *testing.T) {
	spec, err := Encode(primitives.Int)
	require.NoError(t, err)
	require.True(t, spec.IsBare())

	wire, err := MarshalString(spec)
	require.NoError(t, err)
	require.Equal(t, `"Int"`, wire)
}

func TestEncodeListOfInt(t *testing.T) {
	spec, err := Encode(containers.ListOf(primitives.Int))
	require.NoError(t, err)

	wire, err := MarshalString(spec)
	require.NoError(t, err)
	require.JSONEq(t, `{"type": "List", "params": ["Int"]}`, wire)
}

func TestEncodeNestedTuple(t *testing.T) {
	tup := containers.TupleOf(primitives.Str, containers.ListOf(primitives.Int))
	spec, err := Encode(tup)
	require.NoError(t, err)

	wire, err := MarshalString(spec)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Tuple","params":["Str",{"type":"List","params":["Int"]}]}`, wire)
}

func TestEncodeStructPairs(t *testing.T) {
	st := containers.StructOf(
		types.MapEntry{Key: "x", Type: primitives.Int},
		types.MapEntry{Key: "label", Type: primitives.Str},
	)
	spec, err := Encode(st)
	require.NoError(t, err)

	wire, err := MarshalString(spec)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Struct","params":[[["x","Int"],["label","Str"]]]}`, wire)
}

func TestEncodeGenericFails(t *testing.T) {
	_, err := Encode(containers.List)
	var sErr *types.SerializationError
	require.ErrorAs(t, err, &sErr)
}

func TestDecodeUnknownName(t *testing.T) {
	_, err := Decode(Spec{Name: "Bogus"})
	var sErr *types.SerializationError
	require.ErrorAs(t, err, &sErr)

	_, err = Decode(Spec{Type: "Bogus", Params: []ParamSpec{{Spec: &Spec{Name: "Int"}}}})
	require.ErrorAs(t, err, &sErr)
}

func TestRoundTripIdentity(t *testing.T) {
	subjects := []*types.Type{
		primitives.Int,
		primitives.None,
		containers.ListOf(primitives.Int),
		containers.ListOf(containers.ListOf(primitives.Float)),
		containers.TupleOf(primitives.Str, primitives.Bool),
		containers.DictOf(primitives.Str, containers.ListOf(primitives.Int)),
		containers.StructOf(types.MapEntry{Key: "m", Type: primitives.Int}),
		function.MustFunctionOf([]*types.Type{primitives.Int}, nil, primitives.Int),
		types.MustInstantiate(tRanked, types.TypeParam(primitives.Float), types.LitParam(int64(3))),
	}
	for _, subject := range subjects {
		spec, err := Encode(subject)
		require.NoError(t, err, subject.String())

		wire, err := MarshalString(spec)
		require.NoError(t, err, subject.String())
		parsed, err := UnmarshalString(wire)
		require.NoError(t, err, subject.String())

		decoded, err := Decode(parsed)
		require.NoError(t, err, subject.String())
		require.Same(t, subject, decoded, "decode(encode(T)) must be the canonical descriptor for %s", subject)
	}
}

func TestStringLiteralParamRoundTrip(t *testing.T) {
	// A string literal that is not a registered name survives the wire
	// as a literal, not a nested typespec.
	ranked := types.MustInstantiate(tRanked, types.TypeParam(primitives.Int), types.LitParam("meters"))
	spec, err := Encode(ranked)
	require.NoError(t, err)

	wire, err := MarshalString(spec)
	require.NoError(t, err)
	parsed, err := UnmarshalString(wire)
	require.NoError(t, err)

	decoded, err := Decode(parsed)
	require.NoError(t, err)
	require.Same(t, ranked, decoded)
}

func TestNamedConcreteEncodesAsBareName(t *testing.T) {
	base := containers.StructOf(types.MapEntry{Key: "lat", Type: primitives.Float})
	named := types.MustDeriveNamed("SampleRecord", base)

	spec, err := Encode(named)
	require.NoError(t, err)
	require.Equal(t, "SampleRecord", spec.Name)

	decoded, err := Decode(spec)
	require.NoError(t, err)
	require.Same(t, named, decoded)
}

func TestMarshallingKind(t *testing.T) {
	spec, err := Encode(containers.ListOf(primitives.Int))
	require.NoError(t, err)
	kind, err := MarshallingKind(spec)
	require.NoError(t, err)
	require.Equal(t, "List", kind)

	kind, err = MarshallingKind(Spec{Name: "Int"})
	require.NoError(t, err)
	require.Equal(t, "Int", kind)

	fnSpec, err := Encode(function.MustFunctionOf(nil, nil, primitives.Int))
	require.NoError(t, err)
	_, err = MarshallingKind(fnSpec)
	var sErr *types.SerializationError
	require.ErrorAs(t, err, &sErr)
	require.Contains(t, err.Error(), "Function")
}

func TestMalformedWire(t *testing.T) {
	for _, wire := range []string{``, `{}`, `{"params":["Int"]}`, `123`} {
		_, err := UnmarshalString(wire)
		if err == nil {
			// A bare number parses as a Spec only through a param position;
			// a top-level number is not a typespec.
			t.Errorf("expected %q to be rejected", wire)
		}
	}
}

func TestProtoRoundTrip(t *testing.T) {
	subject := containers.DictOf(primitives.Str, containers.TupleOf(primitives.Int, primitives.Float))
	spec, err := Encode(subject)
	require.NoError(t, err)

	pb, err := ToProto(spec)
	require.NoError(t, err)
	back, err := FromProto(pb)
	require.NoError(t, err)

	decoded, err := Decode(back)
	require.NoError(t, err)
	require.Same(t, subject, decoded)
}

func TestFromProtoNil(t *testing.T) {
	_, err := FromProto(nil)
	require.Error(t, err)
}
