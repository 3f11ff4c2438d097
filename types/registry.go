package types

import (
	"sort"
	"sync"
)

// The process-wide type registry. Names are unique and append-only:
// registration happens during static initialization, reads happen from
// promotion, subtype checks, and typespec decoding.
var registry = struct {
	mu    sync.RWMutex
	types map[string]*Type
}{
	types: make(map[string]*Type),
}

// Register binds a name to a leaf or generic type. Registering the same
// descriptor twice is a no-op; registering a different descriptor under a
// taken name fails with *TypeRegistrationError.
func Register(name string, t *Type) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if existing, ok := registry.types[name]; ok {
		if existing == t {
			return nil
		}
		return NewTypeRegistrationError(name, existing, t)
	}
	if t.Name == "" {
		t.Name = name
	}
	registry.types[name] = t
	return nil
}

// MustRegister is Register for init-time call sites, where a duplicate
// name is fatal. It returns the type for convenient declaration chaining.
func MustRegister(name string, t *Type) *Type {
	if err := Register(name, t); err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves a registered name.
func Lookup(name string) (*Type, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	t, ok := registry.types[name]
	return t, ok
}

// RegisteredNames returns all registered type names, sorted.
func RegisteredNames() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.types))
	for name := range registry.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isRegistered reports whether t's generic ancestor is the descriptor
// registered under its name. Concrete instances are not in the registry
// themselves, but their generic must be.
func isRegistered(t *Type) bool {
	g := t.Generic()
	registered, ok := Lookup(g.Name)
	return ok && registered == g
}

// DeriveNamed registers a named concrete alias of an existing concrete
// type: a type that behaves as its base (same promotion behavior, subtype
// of the base) but serializes as a bare name of its own. This is how
// domain-specific record types are built on top of Struct.
func DeriveNamed(name string, base *Type) (*Type, error) {
	if base == nil || IsGeneric(base) {
		return nil, NewTypeValidationError(base, "a named concrete type must alias a concrete type")
	}
	t := &Type{
		Name:          name,
		Parent:        base,
		NamedConcrete: true,
		NotComputable: base.NotComputable,
	}
	t.Strategies = []PromotionStrategy{{
		Name: "as-" + name,
		Promote: func(target *Type, v any) (Value, error) {
			promoted, err := Promote(v, []*Type{base})
			if err != nil {
				return nil, err
			}
			return Cast(promoted, target)
		},
	}}
	if err := Register(name, t); err != nil {
		return nil, err
	}
	return t, nil
}

// MustDeriveNamed is DeriveNamed for init-time call sites.
func MustDeriveNamed(name string, base *Type) *Type {
	t, err := DeriveNamed(name, base)
	if err != nil {
		panic(err)
	}
	return t
}
