package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParameterValue(t *testing.T) {
	p := Parameter("threshold", tMass)
	require.Equal(t, "threshold", p.Name())
	require.Equal(t, tMass, p.Type())
	require.Equal(t, "threshold", p.Graft().Returns())
	// A parameter's set contains itself.
	require.Equal(t, []*ParameterValue{p}, p.Params())
}

func TestConstantHasNoParams(t *testing.T) {
	c := Constant("pi", tMass)
	require.Empty(t, c.Params())
	require.Equal(t, "pi", c.Graft().Returns())
}

func TestFromGraftRejectsGeneric(t *testing.T) {
	g := Parameter("x", tMass).Graft()
	_, err := FromGraft(tVec, g, nil)
	require.Error(t, err)
}

func TestFromLiteralRejectsGeneric(t *testing.T) {
	_, err := FromLiteral(tVec, 5)
	var vErr *TypeValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestGraftReturnsACopy(t *testing.T) {
	v := mustLiteral(tMass, 5)
	g := v.Graft()
	g["rogue"] = true
	g[g.Returns()] = 99

	fresh := v.Graft()
	require.NotContains(t, fresh, "rogue")
	require.Equal(t, 5, fresh[fresh.Returns()])

	p := Parameter("x", tMass)
	pg := p.Graft()
	pg["rogue"] = true
	require.NotContains(t, p.Graft(), "rogue")
}

func TestFromApplyUnionsParams(t *testing.T) {
	p1 := Parameter("a", tMass)
	p2 := Parameter("b", tMass)

	sum, err := FromApply(tMass, "add", []Value{p1, p2}, nil)
	require.NoError(t, err)
	require.Equal(t, []*ParameterValue{p1, p2}, sum.Params())

	// Re-using a parameter does not duplicate it; first-seen order holds.
	again, err := FromApply(tMass, "add", []Value{sum, p1}, nil)
	require.NoError(t, err)
	require.Equal(t, []*ParameterValue{p1, p2}, again.Params())
}

func TestFromApplyKwargParams(t *testing.T) {
	p := Parameter("fill", tMass)
	base := mustLiteral(tMass, 1)
	v, err := FromApply(tMass, "mask", []Value{base}, map[string]Value{"fill": p})
	require.NoError(t, err)
	require.Len(t, v.Params(), 1)
	require.Equal(t, "fill", v.Params()[0].Name())
}

func TestFromApplyRejectsBadFunction(t *testing.T) {
	_, err := FromApply(tMass, 42, nil, nil)
	require.Error(t, err)
}

func TestWithoutParams(t *testing.T) {
	p1 := Parameter("x", tMass)
	p2 := Parameter("y", tMass)
	left := WithoutParams([]*ParameterValue{p1, p2}, []string{"x"})
	require.Equal(t, []*ParameterValue{p2}, left)
	require.Empty(t, WithoutParams([]*ParameterValue{p1}, []string{"x"}))
}

func TestCastKeepsFragment(t *testing.T) {
	v := mustLiteral(tMass, 5)
	cast, err := Cast(v, tQuantity)
	require.NoError(t, err)
	require.Equal(t, tQuantity, cast.Type())
	require.Equal(t, v.Graft().Returns(), cast.Graft().Returns())
}
