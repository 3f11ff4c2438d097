package typespec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/funvibe/lazygraph/types"
)

// The JSON wire form: a bare name marshals as a string, a composite as
// {"type": name, "params": [...]}, and a map-shaped parameter as a list of
// [key, typespec] pairs.

func (s Spec) MarshalJSON() ([]byte, error) {
	if s.IsBare() {
		return json.Marshal(s.Name)
	}
	params := make([]json.RawMessage, len(s.Params))
	for i, p := range s.Params {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		params[i] = b
	}
	return json.Marshal(map[string]any{"type": s.Type, "params": params})
}

func (s *Spec) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return types.NewSerializationError("empty typespec")
	}
	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*s = Spec{Name: name}
		return nil
	}
	var composite struct {
		Type   string            `json:"type"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(trimmed, &composite); err != nil {
		return types.NewSerializationError("malformed typespec: %v", err)
	}
	if composite.Type == "" {
		return types.NewSerializationError("malformed typespec: missing \"type\"")
	}
	params := make([]ParamSpec, len(composite.Params))
	for i, raw := range composite.Params {
		if err := json.Unmarshal(raw, &params[i]); err != nil {
			return err
		}
	}
	*s = Spec{Type: composite.Type, Params: params}
	return nil
}

func (p ParamSpec) MarshalJSON() ([]byte, error) {
	switch {
	case p.Spec != nil:
		return json.Marshal(*p.Spec)
	case p.Pairs != nil:
		pairs := make([][2]json.RawMessage, len(p.Pairs))
		for i, pair := range p.Pairs {
			key, err := json.Marshal(pair.Key)
			if err != nil {
				return nil, err
			}
			spec, err := json.Marshal(pair.Spec)
			if err != nil {
				return nil, err
			}
			pairs[i] = [2]json.RawMessage{key, spec}
		}
		return json.Marshal(pairs)
	default:
		switch p.Lit.(type) {
		case int64, float64, bool, string:
			return json.Marshal(p.Lit)
		}
		return nil, types.NewSerializationError("unencodable literal parameter %v (%T)", p.Lit, p.Lit)
	}
}

func (p *ParamSpec) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return types.NewSerializationError("empty typespec parameter")
	}
	switch trimmed[0] {
	case '"', '{':
		// Could be a nested typespec or a string literal; a bare name and
		// a string literal are indistinguishable on the wire, so strings
		// decode as specs and Decode falls back accordingly.
		if trimmed[0] == '{' || looksLikeName(trimmed) {
			var nested Spec
			if err := json.Unmarshal(trimmed, &nested); err != nil {
				return err
			}
			*p = ParamSpec{Spec: &nested}
			return nil
		}
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*p = ParamSpec{Lit: s}
		return nil
	case '[':
		var rawPairs [][2]json.RawMessage
		if err := json.Unmarshal(trimmed, &rawPairs); err != nil {
			return types.NewSerializationError("malformed map-shaped parameter: %v", err)
		}
		pairs := make([]PairSpec, len(rawPairs))
		for i, rp := range rawPairs {
			if err := json.Unmarshal(rp[0], &pairs[i].Key); err != nil {
				return err
			}
			if err := json.Unmarshal(rp[1], &pairs[i].Spec); err != nil {
				return err
			}
		}
		*p = ParamSpec{Pairs: pairs}
		return nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*p = ParamSpec{Lit: v}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return types.NewSerializationError("malformed typespec parameter %s", trimmed)
		}
		if i, err := n.Int64(); err == nil && !bytes.ContainsAny(trimmed, ".eE") {
			*p = ParamSpec{Lit: i}
			return nil
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		*p = ParamSpec{Lit: f}
		return nil
	}
}

// looksLikeName reports whether a JSON string denotes a registered type
// name rather than a raw string literal.
func looksLikeName(b []byte) bool {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return false
	}
	_, ok := types.Lookup(s)
	return ok
}

// MarshalString is a convenience wrapper producing the wire string.
func MarshalString(s Spec) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshalling typespec: %w", err)
	}
	return string(b), nil
}

// UnmarshalString parses a wire string.
func UnmarshalString(data string) (Spec, error) {
	var s Spec
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return Spec{}, err
	}
	return s, nil
}
