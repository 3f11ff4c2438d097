package primitives

import (
	"fmt"

	"github.com/funvibe/lazygraph/types"
)

// numericSignatures are the shared arithmetic shapes: Int op Int stays
// Int, anything involving a Float widens to Float. Tried in order; the
// first whose promotions all succeed names the result type.
func numericSignatures(op string) []*types.Signature {
	return []*types.Signature{
		{
			Function: op,
			Args: []*types.ArgSpec{
				{Name: "a", Types: []*types.Type{Int}},
				{Name: "b", Types: []*types.Type{Int}},
			},
			Return: Int,
		},
		{
			Function: op,
			Args: []*types.ArgSpec{
				{Name: "a", Types: []*types.Type{Float}},
				{Name: "b", Types: []*types.Type{Float, Int}},
			},
			Return: Float,
		},
	}
}

var addSignatures = append(numericSignatures("add"), &types.Signature{
	Function: "add",
	Args: []*types.ArgSpec{
		{Name: "a", Types: []*types.Type{Str}},
		{Name: "b", Types: []*types.Type{Str}},
	},
	Return: Str,
})

var mulSignatures = append(numericSignatures("mul"), &types.Signature{
	// String repetition takes the string on the left.
	Function: "mul",
	Args: []*types.ArgSpec{
		{Name: "a", Types: []*types.Type{Str}},
		{Name: "b", Types: []*types.Type{Int}},
	},
	Return: Str,
})

// Add builds the application node for adding two operands: numeric
// addition or string concatenation.
func Add(a, b any) (types.Value, error) {
	return binaryOp(addSignatures, "add", a, b)
}

// Mul builds the application node for multiplying two operands: numeric
// multiplication or string repetition.
func Mul(a, b any) (types.Value, error) {
	return binaryOp(mulSignatures, "mul", a, b)
}

// binaryOp dispatches an operand pair, then retries the reflected form
// with the operands swapped before giving up. The returned error reports
// the forward failure first.
func binaryOp(sigs []*types.Signature, op string, a, b any) (types.Value, error) {
	v, err := types.DispatchApply(sigs, nil, []any{a, b}, nil)
	if err == nil {
		return v, nil
	}
	v, rerr := types.DispatchApply(sigs, nil, []any{b, a}, nil)
	if rerr == nil {
		return v, nil
	}
	return nil, fmt.Errorf("%s: %w (reflected attempt also failed: %v)", op, err, rerr)
}
