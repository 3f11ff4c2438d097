// Package typespec encodes type descriptors to their compact wire form and
// back. The wire form is either a bare registered name, or a composite
// {"type": name, "params": [...]} object whose params are themselves
// typespecs, raw literals, or lists of [key, typespec] pairs for
// map-shaped parameters. Decoding always lands on the canonical descriptor
// for the encoded type, so Decode(Encode(T)) == T by pointer identity.
package typespec

import (
	"github.com/funvibe/lazygraph/types"
)

// Spec is one parsed typespec: exactly one of Name (bare form) or
// Type+Params (composite form) is set.
type Spec struct {
	Name   string
	Type   string
	Params []ParamSpec
}

// ParamSpec is one element of a composite's parameter list: a nested
// typespec, a raw literal (int64, float64, bool, string), or ordered
// [key, typespec] pairs for a map-shaped parameter.
type ParamSpec struct {
	Spec  *Spec
	Lit   any
	Pairs []PairSpec
}

// PairSpec is one [key, typespec] pair of a map-shaped parameter.
type PairSpec struct {
	Key  string
	Spec Spec
}

// IsBare reports whether s is the bare-name form.
func (s Spec) IsBare() bool { return s.Name != "" }

// Encode produces the wire typespec for a concrete type. Named-concrete
// types encode as their bare registered name; everything else encodes as a
// composite over its generic ancestor. Still-generic types cannot be
// serialized.
func Encode(t *types.Type) (Spec, error) {
	if t == nil {
		return Spec{}, types.NewSerializationError("cannot serialize a nil type")
	}
	if types.IsGeneric(t) {
		return Spec{}, types.NewSerializationError(
			"can only serialize concrete types, not the generic type %s", t)
	}

	name := t.Generic().Name
	if t.NamedConcrete {
		name = t.Name
	}
	registered, ok := types.Lookup(name)
	if !ok {
		return Spec{}, types.NewSerializationError(
			"%q is not in the types registry; cannot serialize it", name)
	}
	if !t.NamedConcrete && registered != t.Generic() {
		return Spec{}, types.NewSerializationError(
			"%s is not the type registered for the name %q", t, name)
	}

	if !t.HasParams() || t.NamedConcrete {
		return Spec{Name: name}, nil
	}

	params := t.TypeParams()
	encoded := make([]ParamSpec, len(params))
	for i, p := range params {
		ps, err := encodeParam(p)
		if err != nil {
			return Spec{}, err
		}
		encoded[i] = ps
	}
	return Spec{Type: name, Params: encoded}, nil
}

func encodeParam(p types.Param) (ParamSpec, error) {
	switch {
	case p.Type != nil:
		nested, err := Encode(p.Type)
		if err != nil {
			return ParamSpec{}, err
		}
		return ParamSpec{Spec: &nested}, nil
	case p.Map != nil:
		pairs := make([]PairSpec, len(p.Map))
		for i, e := range p.Map {
			nested, err := Encode(e.Type)
			if err != nil {
				return ParamSpec{}, err
			}
			pairs[i] = PairSpec{Key: e.Key, Spec: nested}
		}
		return ParamSpec{Pairs: pairs}, nil
	default:
		return ParamSpec{Lit: p.Lit}, nil
	}
}

// Decode resolves a wire typespec to the canonical type descriptor,
// instantiating concrete parametric types as needed. Unknown names fail
// with *SerializationError.
func Decode(s Spec) (*types.Type, error) {
	if s.IsBare() {
		t, ok := types.Lookup(s.Name)
		if !ok {
			return nil, types.NewSerializationError("no known type %q", s.Name)
		}
		return t, nil
	}
	if s.Type == "" {
		return nil, types.NewSerializationError("invalid typespec: neither a bare name nor a composite")
	}
	generic, ok := types.Lookup(s.Type)
	if !ok {
		return nil, types.NewSerializationError("no known type %q", s.Type)
	}
	params := make([]types.Param, len(s.Params))
	for i, ps := range s.Params {
		p, err := decodeParam(ps)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	t, err := types.Instantiate(generic, params...)
	if err != nil {
		return nil, types.NewSerializationError("decoding %q: %v", s.Type, err)
	}
	return t, nil
}

func decodeParam(ps ParamSpec) (types.Param, error) {
	switch {
	case ps.Spec != nil:
		t, err := Decode(*ps.Spec)
		if err != nil {
			return types.Param{}, err
		}
		return types.TypeParam(t), nil
	case ps.Pairs != nil:
		entries := make([]types.MapEntry, len(ps.Pairs))
		for i, pair := range ps.Pairs {
			t, err := Decode(pair.Spec)
			if err != nil {
				return types.Param{}, err
			}
			entries[i] = types.MapEntry{Key: pair.Key, Type: t}
		}
		return types.MapParam(entries...), nil
	default:
		return types.LitParam(ps.Lit), nil
	}
}

// MarshallingKind returns the registered name of the typespec's outer
// generic, which callers use to pick an unmarshaller for a computed
// result. Types marked not independently computable (bare functions)
// cannot be the outer type of a computed result.
func MarshallingKind(s Spec) (string, error) {
	name := s.Name
	if name == "" {
		name = s.Type
	}
	if name == "" {
		return "", types.NewSerializationError("invalid typespec: neither a bare name nor a composite")
	}
	t, ok := types.Lookup(name)
	if !ok {
		return "", types.NewSerializationError("no known type %q", name)
	}
	if t.NotComputable {
		return "", types.NewSerializationError(
			"%q is not a computable type; call it and compute the result, not the value itself", name)
	}
	return name, nil
}
