package typespec

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/funvibe/lazygraph/types"
)

// Typespecs travel to the execution engine inside protobuf envelopes
// alongside the serialized graph, as a structpb.Value carrying the same
// shape as the JSON wire form.

// ToProto converts a typespec to its protobuf carriage form.
func ToProto(s Spec) (*structpb.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	v, err := structpb.NewValue(raw)
	if err != nil {
		return nil, types.NewSerializationError("typespec is not protobuf-representable: %v", err)
	}
	return v, nil
}

// FromProto parses a typespec from its protobuf carriage form.
func FromProto(v *structpb.Value) (Spec, error) {
	if v == nil {
		return Spec{}, types.NewSerializationError("nil typespec value")
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return Spec{}, err
	}
	var s Spec
	if err := json.Unmarshal(b, &s); err != nil {
		return Spec{}, err
	}
	return s, nil
}
