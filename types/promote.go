package types

import (
	"errors"
	"fmt"
)

// PromoteFunc is one promotion rule: it either yields a Value of the
// target type or reports why the host value was rejected. Rules return
// errors rather than panicking so candidates can be retried in order.
type PromoteFunc func(target *Type, v any) (Value, error)

// PromotionStrategy is a named promotion rule. Each type carries an
// ordered list of strategies; naming them keeps the list declarative and
// testable in isolation.
type PromotionStrategy struct {
	Name    string
	Promote PromoteFunc
}

// errNotPromotable distinguishes "no rule matched" from rule-internal
// failures when aggregating candidate errors.
var errNotPromotable = errors.New("no promotion rule accepted the value")

// Promote converts v to the first of candidates that accepts it. A value
// that already has the exact (or a sub-) type of a candidate is returned
// unchanged; a castable value (Any) is re-typed without touching its
// fragment; otherwise the candidate's own promotion strategies run in
// order. On total failure the returned *PromotionError lists the rejection
// reason for every candidate.
func Promote(v any, candidates []*Type) (Value, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("promote: no candidate types given")
	}
	reasons := make([]error, len(candidates))
	for i, target := range candidates {
		promoted, err := promoteTo(target, v)
		if err == nil {
			return promoted, nil
		}
		reasons[i] = err
	}
	return nil, newPromotionError(v, candidates, reasons)
}

func promoteTo(target *Type, v any) (Value, error) {
	if target == nil {
		return nil, fmt.Errorf("target type is nil")
	}
	if IsGeneric(target) {
		return nil, fmt.Errorf("cannot promote to the generic type %s", target)
	}

	if val, ok := v.(Value); ok {
		// Identity: the value is already acceptable as-is.
		if IsSubtype(val.Type(), target) {
			return val, nil
		}
		// Casting: values of a castable type (Any) adopt the target type
		// with their fragment unchanged.
		if val.Type().Generic().Castable {
			return Cast(val, target)
		}
	}

	for _, s := range target.Strategies {
		promoted, err := s.Promote(target, v)
		if err == nil {
			return promoted, nil
		}
		if !errors.Is(err, errNotPromotable) {
			return nil, fmt.Errorf("strategy %s: %w", s.Name, err)
		}
	}

	if val, ok := v.(Value); ok {
		return nil, fmt.Errorf("a %s is not a %s and cannot become one", val.Type(), target)
	}
	return nil, fmt.Errorf("%T is not promotable to %s", v, target)
}

// NotPromotable is returned by promotion strategies that do not apply to
// the given host value, letting the next strategy or candidate be tried.
func NotPromotable() error { return errNotPromotable }
