package types

// IsSubtype reports whether a may be used wherever b is expected. The
// relation is covariant: a's generic ancestor must be a nominal subtype of
// b's generic ancestor, and either b is still generic (any parameters
// pass) or every parameter of a must recursively be a subtype of the
// corresponding parameter of b. Literal parameters compare by equality;
// map-shaped parameters require equal key sets with covariant values.
func IsSubtype(a, b *Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	ga, gb := a.Generic(), b.Generic()
	if !nominalSubtype(ga, gb) {
		return false
	}
	if !b.HasParams() {
		return true
	}
	if gb.SubtypeOverride != nil {
		return gb.SubtypeOverride(a, b)
	}
	if !a.HasParams() {
		// A named concrete type has no parameters of its own; it is a
		// subtype of exactly the instance it aliases (and its ancestors).
		for c := a.Parent; c != nil; c = c.Parent {
			if c == b {
				return true
			}
		}
		return false
	}
	return paramsSubtype(a.params, b.params)
}

func nominalSubtype(a, b *Type) bool {
	// The parent chain may pass through concrete instances (a named
	// concrete type's parent is the instance it aliases), so compare
	// generic ancestors along the way.
	for c := a; c != nil; c = c.Parent {
		if c == b || c.Generic() == b {
			return true
		}
	}
	return false
}

func paramsSubtype(a, b []Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !paramSubtype(a[i], b[i]) {
			return false
		}
	}
	return true
}

func paramSubtype(a, b Param) bool {
	switch {
	case a.Type != nil && b.Type != nil:
		return IsSubtype(a.Type, b.Type)
	case a.Map != nil && b.Map != nil:
		if len(a.Map) != len(b.Map) {
			return false
		}
		bTypes := make(map[string]*Type, len(b.Map))
		for _, e := range b.Map {
			bTypes[e.Key] = e.Type
		}
		for _, e := range a.Map {
			super, ok := bTypes[e.Key]
			if !ok || !IsSubtype(e.Type, super) {
				return false
			}
		}
		return true
	case a.Lit != nil && b.Lit != nil:
		return a.Lit == b.Lit
	default:
		return false
	}
}

// IsGeneric reports whether t still has unbound type parameters: it is a
// parameterizable type with none bound, or any of its bound parameters is
// itself generic (recursing into map-shaped parameters).
func IsGeneric(t *Type) bool {
	if t == nil {
		return false
	}
	if !t.HasParams() {
		return t.Parameterizable
	}
	for _, p := range t.params {
		if paramGeneric(p) {
			return true
		}
	}
	return false
}

func paramGeneric(p Param) bool {
	switch {
	case p.Type != nil:
		return IsGeneric(p.Type)
	case p.Map != nil:
		for _, e := range p.Map {
			if IsGeneric(e.Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
