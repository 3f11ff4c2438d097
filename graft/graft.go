// Package graft assembles the graph fragments ("grafts") that describe a
// delayed computation. A graft is a JSON-compatible mapping from keys to
// literals, quoted JSON, application expressions, or nested sub-grafts.
// The "returns" key names the root; a "parameters" list marks a fragment
// as a function value. Grafts are never mutated after they are returned:
// every operation here composes new mappings, so a finished fragment can be
// shared between larger expressions safely.
package graft

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/funvibe/lazygraph/internal/config"
)

// Graft is one graph fragment.
type Graft map[string]any

var guidCounter atomic.Int64

// Guid returns a key that is unique for the lifetime of the process.
func Guid() string {
	return strconv.FormatInt(guidCounter.Add(1), 10)
}

// Parameters returns the ordered formal-parameter names of a function
// fragment, or nil for a value fragment.
func (g Graft) Parameters() []string {
	params, ok := g[config.ParametersKey].([]string)
	if !ok {
		return nil
	}
	out := make([]string, len(params))
	copy(out, params)
	return out
}

// IsFunction reports whether g is a function fragment.
func (g Graft) IsFunction() bool {
	_, ok := g[config.ParametersKey]
	return ok
}

// Returns gives the key of the fragment's root binding.
func (g Graft) Returns() string {
	root, _ := g[config.ReturnsKey].(string)
	return root
}

// Clone returns a shallow-enough copy of g: the top-level mapping and every
// nested mapping or sequence is copied, literals are shared.
func (g Graft) Clone() Graft {
	out := make(Graft, len(g))
	for k, v := range g {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Graft:
		return x.Clone()
	case map[string]any:
		return Graft(x).Clone()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	default:
		return v
	}
}

// JSON serializes the fragment for transmission.
func (g Graft) JSON() ([]byte, error) {
	return json.Marshal(map[string]any(g))
}

func (g Graft) String() string {
	b, err := g.JSON()
	if err != nil {
		return fmt.Sprintf("graft<unencodable: %v>", err)
	}
	return string(b)
}

// ValueGraft builds the single-node fragment for a host value: primitives
// bind directly, sequences and mappings are quoted so the interpreter does
// not mistake them for expressions.
func ValueGraft(v any) (Graft, error) {
	key := Guid()
	switch {
	case IsLiteral(v):
		return Graft{key: v, config.ReturnsKey: key}, nil
	default:
		switch v.(type) {
		case []any, map[string]any:
			return Graft{key: []any{v}, config.ReturnsKey: key}, nil
		}
		return nil, fmt.Errorf("value must be a JSON primitive, sequence, or mapping, not %T", v)
	}
}

// Keyref builds a fragment referring to a name bound elsewhere: a function
// parameter, or a builtin of the execution engine.
func Keyref(name string) Graft {
	return Graft{config.ReturnsKey: name}
}

// Apply builds the fragment for calling a function with the given
// positional and named argument fragments. The function may be a builtin
// name (string) or a fragment; argument fragments are merged into the
// result, renaming any colliding keys.
func Apply(function any, args []Graft, kwargs map[string]Graft) (Graft, error) {
	result := Graft{}

	var functionKey string
	switch fn := function.(type) {
	case string:
		functionKey = fn
	case Graft:
		if !IsGraft(fn) {
			return nil, fmt.Errorf("function graft has no root binding: %v", fn)
		}
		if fn.IsFunction() {
			// An actual function object: embed it as a sub-graft in its
			// own scope.
			named := make(map[string]bool, len(kwargs))
			for name := range kwargs {
				named[name] = true
			}
			if err := CheckArgs(len(args), named, fn.Parameters()); err != nil {
				return nil, err
			}
			functionKey = Guid()
			result[functionKey] = fn.Clone()
		} else {
			// The fragment is the value it returns; inline it. This is the
			// higher-order case, where the callee is itself an apply
			// expression returning a function. The argument shape cannot be
			// checked without interpreting the graft.
			functionKey = mergeInto(result, fn)
		}
	default:
		return nil, fmt.Errorf("expected a graft or a string as the function, got %T", function)
	}

	argKey := func(arg Graft) (string, error) {
		if !IsGraft(arg) {
			return "", fmt.Errorf("argument graft has no root binding: %v", arg)
		}
		if arg.IsFunction() {
			key := Guid()
			result[key] = arg.Clone()
			return key, nil
		}
		return mergeInto(result, arg), nil
	}

	expr := []any{functionKey}
	for _, arg := range args {
		key, err := argKey(arg)
		if err != nil {
			return nil, err
		}
		expr = append(expr, key)
	}
	if len(kwargs) > 0 {
		names := make([]string, 0, len(kwargs))
		for name := range kwargs {
			names = append(names, name)
		}
		sort.Strings(names)
		named := make(map[string]any, len(kwargs))
		for _, name := range names {
			key, err := argKey(kwargs[name])
			if err != nil {
				return nil, err
			}
			named[name] = key
		}
		expr = append(expr, named)
	}

	key := Guid()
	result[key] = expr
	result[config.ReturnsKey] = key
	return result, nil
}

// FunctionGraft wraps a body fragment into a standalone function fragment
// tagged with the ordered formal-parameter names. The body should refer to
// the formals via Keyref; this is not validated.
func FunctionGraft(result Graft, params ...string) (Graft, error) {
	if !IsParams(params) {
		return nil, fmt.Errorf("invalid parameters for a graft: %v", params)
	}
	if !IsGraft(result) {
		return nil, fmt.Errorf("function body has no root binding: %v", result)
	}
	names := make([]string, len(params))
	copy(names, params)
	if result.IsFunction() {
		// The body is itself a function object; nest it in a new scope so
		// the wrapper's formals do not collide with the inner ones.
		key := Guid()
		return Graft{config.ParametersKey: names, key: result.Clone(), config.ReturnsKey: key}, nil
	}
	out := result.Clone()
	out[config.ParametersKey] = names
	return out, nil
}
