// Package types implements the proxy type system: a registry of named leaf
// and generic types, canonical parametric instantiation, covariant subtype
// checking, value promotion, multi-signature dispatch, and the construction
// policy tying typed values to graph fragments.
//
// Types are plain data, not Go runtime types: a *Type is a descriptor, and
// the subtype relation is a pure function over descriptors. Concrete
// parametric types are interned, so two structurally equal instantiations
// are always the same pointer and `a == b` is a safe identity check.
package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Type describes a leaf type (Int), a generic type (List), or a concrete
// instance of a generic (List[Int]). Leaf and generic descriptors are
// declared with struct literals and registered once; concrete instances
// are only ever produced by Instantiate.
type Type struct {
	// Name is the registered name of a leaf or generic type.
	Name string
	// Parent is the nominal supertype, if any (e.g. Int's parent is Number).
	Parent *Type
	// Parameterizable marks a generic type: one that accepts type
	// parameters. A Parameterizable type with no params bound is generic;
	// a non-Parameterizable type with no params is an ordinary leaf.
	Parameterizable bool
	// NamedConcrete marks a type that serializes as a bare name even if it
	// is an instance of a generic (e.g. a Struct subtype registered under
	// its own name).
	NamedConcrete bool
	// NotComputable marks a type whose values cannot be independently
	// computed and unmarshalled (e.g. a bare function value).
	NotComputable bool
	// Castable marks a type whose values may be re-typed to any requested
	// type during promotion (Any).
	Castable bool
	// Strategies is the ordered list of named promotion rules for the type.
	Strategies []PromotionStrategy
	// ValidateParams, if set, applies extra validation during Instantiate.
	ValidateParams func(generic *Type, params []Param) error
	// SubtypeOverride, if set on a generic, replaces the default covariant
	// parameter comparison for instances of that generic (Function uses
	// this for contravariant arguments).
	SubtypeOverride func(a, b *Type) bool

	// Set by Instantiate on concrete instances.
	generic *Type
	params  []Param

	// Canonical-instance cache, held on the generic. Populated lazily with
	// insert-if-absent semantics; never evicted.
	mu       sync.Mutex
	concrete map[string]*Type
}

// Param is one type parameter: exactly one of Type, Lit, or Map is set.
// Lit holds a raw literal (int64, float64, bool, or string) used for
// non-type parameters such as array rank. Map holds an ordered mapping
// from field or argument names to types.
type Param struct {
	Type *Type
	Lit  any
	Map  []MapEntry
}

// MapEntry is one key of a map-shaped type parameter.
type MapEntry struct {
	Key  string
	Type *Type
}

// TypeParam wraps a type as a parameter.
func TypeParam(t *Type) Param { return Param{Type: t} }

// LitParam wraps a raw literal as a parameter.
func LitParam(v any) Param { return Param{Lit: v} }

// MapParam wraps an ordered name-to-type mapping as a parameter. An empty
// mapping is still a bound parameter, distinct from no parameter at all.
func MapParam(entries ...MapEntry) Param {
	if entries == nil {
		entries = []MapEntry{}
	}
	return Param{Map: entries}
}

// Generic returns the generic ancestor of t: the unparameterized type it
// was instantiated from, or t itself if it has no parameters bound.
func (t *Type) Generic() *Type {
	if t.generic != nil {
		return t.generic
	}
	return t
}

// TypeParams returns the bound parameters of a concrete instance, or nil.
func (t *Type) TypeParams() []Param {
	if t.params == nil {
		return nil
	}
	out := make([]Param, len(t.params))
	copy(out, t.params)
	return out
}

// HasParams reports whether t has type parameters bound.
func (t *Type) HasParams() bool { return t.params != nil }

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	if t.params == nil {
		return t.Name
	}
	parts := make([]string, len(t.params))
	for i, p := range t.params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s[%s]", t.Generic().Name, strings.Join(parts, ", "))
}

func (p Param) String() string {
	switch {
	case p.Type != nil:
		return p.Type.String()
	case p.Map != nil:
		parts := make([]string, len(p.Map))
		for i, e := range p.Map {
			parts[i] = fmt.Sprintf("%q: %s", e.Key, e.Type)
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case p.Lit != nil:
		if s, ok := p.Lit.(string); ok {
			return strconv.Quote(s)
		}
		return fmt.Sprintf("%v", p.Lit)
	default:
		return "<empty param>"
	}
}

// paramKey produces the canonical cache key for a parameter list. Nested
// concrete types are canonical themselves, so their pointer identity is a
// valid structural fingerprint. Map-shaped parameters are keyed in sorted
// order: two instantiations whose maps hold the same entries are the same
// concrete type regardless of entry order.
func paramKey(params []Param) string {
	sb := &strings.Builder{}
	for _, p := range params {
		switch {
		case p.Type != nil:
			fmt.Fprintf(sb, "t:%p;", p.Type)
		case p.Map != nil:
			keys := make([]string, len(p.Map))
			byKey := make(map[string]*Type, len(p.Map))
			for i, e := range p.Map {
				keys[i] = e.Key
				byKey[e.Key] = e.Type
			}
			sort.Strings(keys)
			sb.WriteString("m:{")
			for _, k := range keys {
				fmt.Fprintf(sb, "%q=%p;", k, byKey[k])
			}
			sb.WriteString("};")
		default:
			fmt.Fprintf(sb, "l:%T:%v;", p.Lit, p.Lit)
		}
	}
	return sb.String()
}
