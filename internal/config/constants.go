package config

// Built-in type names
const (
	AnyTypeName      = "Any"
	BoolTypeName     = "Bool"
	IntTypeName      = "Int"
	FloatTypeName    = "Float"
	NumberTypeName   = "Number"
	StrTypeName      = "Str"
	NoneTypeName     = "None"
	ListTypeName     = "List"
	TupleTypeName    = "Tuple"
	DictTypeName     = "Dict"
	StructTypeName   = "Struct"
	FunctionTypeName = "Function"
)

// Reserved graft keys. Every other key in a graft names a binding.
const (
	ReturnsKey    = "returns"
	ParametersKey = "parameters"
)

// TracedParamPrefix prefixes the synthesized formal-parameter names used
// when tracing a closure. The suffix is a fresh guid, so formals can never
// collide with user-named outer parameters.
const TracedParamPrefix = "param"
