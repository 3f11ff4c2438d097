package types

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger installs a logger for debug output from dispatch and tracing.
// The default is a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the current debug logger.
func Logger() *zap.Logger { return logger }

// Instantiate returns the canonical concrete type for a generic applied to
// a parameter list. The first request for a given (generic, params) pair
// constructs and caches the instance; every later structurally-equal
// request returns that same pointer. Malformed parameters fail with
// *TypeValidationError.
func Instantiate(generic *Type, params ...Param) (*Type, error) {
	if generic == nil {
		return nil, NewTypeValidationError(generic, "generic type is nil")
	}
	if !generic.Parameterizable {
		return nil, NewTypeValidationError(generic, "%s is not a generic type", generic.Name)
	}
	if generic.HasParams() {
		return nil, NewTypeValidationError(generic,
			"%s already has type parameters applied and cannot be parameterized again", generic)
	}
	if err := validateParams(generic, params); err != nil {
		return nil, err
	}
	if generic.ValidateParams != nil {
		if err := generic.ValidateParams(generic, params); err != nil {
			return nil, err
		}
	}

	key := paramKey(params)

	// Insert-if-absent under the generic's lock: concurrent first requests
	// for the same parameters must still observe one canonical instance.
	generic.mu.Lock()
	defer generic.mu.Unlock()
	if generic.concrete == nil {
		generic.concrete = make(map[string]*Type)
	}
	if existing, ok := generic.concrete[key]; ok {
		return existing, nil
	}

	bound := make([]Param, len(params))
	copy(bound, params)
	instance := &Type{
		Name:            generic.Name,
		Parent:          generic.Parent,
		Parameterizable: false,
		NotComputable:   generic.NotComputable,
		Strategies:      generic.Strategies,
		SubtypeOverride: generic.SubtypeOverride,
		generic:         generic,
		params:          bound,
	}
	generic.concrete[key] = instance
	return instance, nil
}

// MustInstantiate is Instantiate for init-time call sites.
func MustInstantiate(generic *Type, params ...Param) *Type {
	t, err := Instantiate(generic, params...)
	if err != nil {
		panic(err)
	}
	return t
}

func validateParams(generic *Type, params []Param) error {
	if len(params) == 0 {
		return NewTypeValidationError(generic, "at least one type parameter is required")
	}
	for i, p := range params {
		set := 0
		if p.Type != nil {
			set++
		}
		if p.Lit != nil {
			set++
		}
		if p.Map != nil {
			set++
		}
		if set != 1 {
			return NewTypeValidationError(generic,
				"parameter %d must be exactly one of a type, a literal, or a name→type map", i)
		}
		switch {
		case p.Type != nil:
			if !isRegistered(p.Type) {
				return NewTypeValidationError(generic,
					"parameter %d: type %s is not registered", i, p.Type)
			}
		case p.Lit != nil:
			switch p.Lit.(type) {
			case int64, float64, bool, string:
			default:
				return NewTypeValidationError(generic,
					"parameter %d: literal parameters must be int64, float64, bool, or string, not %T",
					i, p.Lit)
			}
		case p.Map != nil:
			seen := make(map[string]bool, len(p.Map))
			for _, e := range p.Map {
				if e.Key == "" {
					return NewTypeValidationError(generic, "parameter %d: empty map key", i)
				}
				if seen[e.Key] {
					return NewTypeValidationError(generic,
						"parameter %d: duplicate map key %q", i, e.Key)
				}
				seen[e.Key] = true
				if e.Type == nil || !isRegistered(e.Type) {
					return NewTypeValidationError(generic,
						"parameter %d: map value for %q is not a registered type", i, e.Key)
				}
			}
		}
	}
	return nil
}
