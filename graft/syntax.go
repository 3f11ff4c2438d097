package graft

import (
	"fmt"
	"sort"

	"github.com/funvibe/lazygraph/internal/config"
)

// IsKey reports whether s can name a binding in a graft.
func IsKey(s string) bool {
	return s != config.ReturnsKey && s != config.ParametersKey
}

// IsLiteral reports whether v is a JSON-primitive value that can appear
// directly as a binding (string, bool, nil, or any numeric type).
func IsLiteral(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// IsQuotedJSON reports whether v is a quoted JSON expression: a one-element
// sequence wrapping a sequence or mapping, which the interpreter treats as
// a literal rather than an application.
func IsQuotedJSON(v any) bool {
	seq, ok := v.([]any)
	if !ok || len(seq) != 1 {
		return false
	}
	switch seq[0].(type) {
	case []any, map[string]any:
		return true
	}
	return false
}

// IsApplication reports whether v is an application expression:
// a sequence of binding keys, optionally ending in a mapping of named
// arguments to binding keys.
func IsApplication(v any) bool {
	seq, ok := v.([]any)
	if !ok || len(seq) == 0 {
		return false
	}
	last := len(seq) - 1
	for _, e := range seq[:last] {
		k, ok := e.(string)
		if !ok || !IsKey(k) {
			return false
		}
	}
	if k, ok := seq[last].(string); ok {
		return IsKey(k)
	}
	if named, ok := seq[last].(map[string]any); ok && len(seq) > 1 {
		for name, val := range named {
			k, ok := val.(string)
			if !ok || !IsKey(name) || !IsKey(k) {
				return false
			}
		}
		return true
	}
	return false
}

// IsParams reports whether names is a valid formal-parameter list:
// unique, non-reserved key names.
func IsParams(names []string) bool {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !IsKey(n) || seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

// IsGraft reports whether g is graft-like: it has a root binding.
func IsGraft(g Graft) bool {
	if g == nil {
		return false
	}
	_, ok := g[config.ReturnsKey].(string)
	return ok
}

// IsKeyref reports whether g is a bare named reference: a graft with a root
// and no bindings of its own.
func IsKeyref(g Graft) bool {
	return IsGraft(g) && len(g) == 1
}

// CheckArgs validates the shape of a call against a formal-parameter list:
// positional arguments may not exceed the formals, named arguments must be
// a subset of the formals, and every formal must be supplied exactly once.
func CheckArgs(nPositional int, named map[string]bool, paramNames []string) error {
	if nPositional > len(paramNames) {
		return fmt.Errorf("too many positional arguments: expected %d, got %d", len(paramNames), nPositional)
	}
	missing := paramNames[nPositional:]
	if len(named) == 0 {
		if len(missing) > 0 {
			return fmt.Errorf("missing required arguments: %v", missing)
		}
		return nil
	}
	formals := make(map[string]bool, len(paramNames))
	for _, n := range paramNames {
		formals[n] = true
	}
	var unexpected []string
	for n := range named {
		if !formals[n] {
			unexpected = append(unexpected, n)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return fmt.Errorf("unexpected named arguments: %v", unexpected)
	}
	var stillMissing []string
	for _, n := range missing {
		if !named[n] {
			stillMissing = append(stillMissing, n)
		}
	}
	if len(stillMissing) > 0 {
		return fmt.Errorf("missing required arguments: %v", stillMissing)
	}
	return nil
}
