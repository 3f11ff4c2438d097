package types

import (
	"fmt"

	"github.com/funvibe/lazygraph/graft"
)

// Value is a typed handle onto one node of a lazily-built expression
// graph. A Value owns exactly one fragment and the set of free parameters
// that fragment transitively depends on. Values are immutable after
// construction; operations compose fragments, never mutate them.
type Value interface {
	Type() *Type
	// Graft returns a copy of the value's fragment. The fragment a value
	// owns is never exposed directly, so no caller can mutate it.
	Graft() graft.Graft
	// Params returns the free parameters the value's fragment depends on,
	// deduplicated by name, in first-seen order.
	Params() []*ParameterValue
}

// ParameterValue is a named, typed placeholder that must be supplied
// externally: a deferred input, or a variable captured from an enclosing
// closure. Its fragment is a bare named reference, and its parameter set
// contains itself.
type ParameterValue struct {
	name string
	typ  *Type
	g    graft.Graft
}

// Parameter builds a free named reference of the given type.
func Parameter(name string, t *Type) *ParameterValue {
	return &ParameterValue{name: name, typ: t, g: graft.Keyref(name)}
}

func (p *ParameterValue) Name() string              { return p.name }
func (p *ParameterValue) Type() *Type               { return p.typ }
func (p *ParameterValue) Graft() graft.Graft        { return p.g.Clone() }
func (p *ParameterValue) Params() []*ParameterValue { return []*ParameterValue{p} }

func (p *ParameterValue) String() string {
	return fmt.Sprintf("parameter %q of type %s", p.name, p.typ)
}

// proxyValue is the standard Value implementation produced by the
// construction policy below.
type proxyValue struct {
	typ    *Type
	g      graft.Graft
	params []*ParameterValue
}

func (v *proxyValue) Type() *Type               { return v.typ }
func (v *proxyValue) Graft() graft.Graft        { return v.g.Clone() }
func (v *proxyValue) Params() []*ParameterValue { return v.params }

func (v *proxyValue) String() string {
	return fmt.Sprintf("<%s>", v.typ)
}

// FromLiteral wraps a host value as a single-node fragment of type t.
func FromLiteral(t *Type, v any) (Value, error) {
	if IsGeneric(t) {
		return nil, NewTypeValidationError(t, "cannot construct a value of the generic type %s", t)
	}
	g, err := graft.ValueGraft(v)
	if err != nil {
		return nil, err
	}
	return &proxyValue{typ: t, g: g}, nil
}

// Constant builds a reference to a process-wide named constant of the
// execution engine. Unlike Parameter, it contributes nothing to the
// parameter set.
func Constant(name string, t *Type) Value {
	return &proxyValue{typ: t, g: graft.Keyref(name)}
}

// FromGraft re-types an existing fragment as t, keeping the given free
// parameters. This is the cast operation: it never touches the fragment.
func FromGraft(t *Type, g graft.Graft, params []*ParameterValue) (Value, error) {
	if IsGeneric(t) {
		return nil, NewTypeValidationError(t, "cannot construct a value of the generic type %s", t)
	}
	if !graft.IsGraft(g) {
		return nil, fmt.Errorf("fragment has no root binding: %v", g)
	}
	return &proxyValue{typ: t, g: g, params: unionParams(params)}, nil
}

// Cast re-types a value, keeping its fragment and parameter set.
func Cast(v Value, t *Type) (Value, error) {
	return FromGraft(t, v.Graft(), v.Params())
}

// FromApply builds an application node: function applied to the given
// ordered and named argument values, producing a value of type t. The
// arguments' fragments are merged (colliding keys renamed) into one
// combined fragment rooted at the application, and the result's parameter
// set is the union of every consumed value's parameter set. The function
// may be a builtin name (string) or a function-typed Value.
func FromApply(t *Type, function any, args []Value, kwargs map[string]Value) (Value, error) {
	if IsGeneric(t) {
		return nil, NewTypeValidationError(t, "cannot construct a value of the generic type %s", t)
	}

	var fn any
	var paramSets [][]*ParameterValue
	switch f := function.(type) {
	case string:
		fn = f
	case Value:
		fn = f.Graft()
		paramSets = append(paramSets, f.Params())
	default:
		return nil, fmt.Errorf("function must be a builtin name or a Value, not %T", function)
	}

	argGrafts := make([]graft.Graft, len(args))
	for i, a := range args {
		argGrafts[i] = a.Graft()
		paramSets = append(paramSets, a.Params())
	}
	kwargGrafts := make(map[string]graft.Graft, len(kwargs))
	for name, a := range kwargs {
		kwargGrafts[name] = a.Graft()
		paramSets = append(paramSets, a.Params())
	}

	g, err := graft.Apply(fn, argGrafts, kwargGrafts)
	if err != nil {
		return nil, err
	}
	return &proxyValue{typ: t, g: g, params: unionParams(paramSets...)}, nil
}

// unionParams unions parameter sets, deduplicating by name and keeping
// first-seen order.
func unionParams(sets ...[]*ParameterValue) []*ParameterValue {
	var out []*ParameterValue
	seen := map[string]bool{}
	for _, set := range sets {
		for _, p := range set {
			if !seen[p.name] {
				seen[p.name] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// WithoutParams returns a copy of v's parameter set minus the named
// parameters. Closure tracing uses this to subtract the synthesized
// formals, leaving only genuinely free references.
func WithoutParams(params []*ParameterValue, names []string) []*ParameterValue {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var out []*ParameterValue
	for _, p := range params {
		if !drop[p.name] {
			out = append(out, p)
		}
	}
	return out
}
