package types

import (
	"fmt"
	"strings"
)

// TypeRegistrationError indicates a name was registered twice with
// different types. Registration happens during static initialization, so
// this is always a programming error.
type TypeRegistrationError struct {
	Name     string
	Existing *Type
	New      *Type
}

func (e *TypeRegistrationError) Error() string {
	return fmt.Sprintf("while registering %s: there was already a type registered for the name %s: %s",
		e.New, e.Name, e.Existing)
}

func NewTypeRegistrationError(name string, existing, newType *Type) *TypeRegistrationError {
	return &TypeRegistrationError{Name: name, Existing: existing, New: newType}
}

// TypeValidationError indicates malformed parameters passed to Instantiate.
type TypeValidationError struct {
	Generic *Type
	Reason  string
}

func (e *TypeValidationError) Error() string {
	return fmt.Sprintf("invalid type parameters for %s: %s", e.Generic, e.Reason)
}

func NewTypeValidationError(generic *Type, format string, args ...any) *TypeValidationError {
	return &TypeValidationError{Generic: generic, Reason: fmt.Sprintf(format, args...)}
}

// PromotionError indicates a value could not become any of the required
// types. It carries the rejection reason for every attempted candidate, so
// the aggregated message is self-contained.
type PromotionError struct {
	Value      any
	Candidates []*Type
	Reasons    []error
}

func (e *PromotionError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "cannot promote %v (%T) to %s", e.Value, e.Value, strings.Join(names, " or "))
	for i, reason := range e.Reasons {
		if reason != nil {
			fmt.Fprintf(sb, "\n  %s: %v", names[i], reason)
		}
	}
	return sb.String()
}

func newPromotionError(value any, candidates []*Type, reasons []error) *PromotionError {
	return &PromotionError{Value: value, Candidates: candidates, Reasons: reasons}
}

// ArgumentTypeError indicates one argument of a call failed to bind or
// promote. It names the argument, the function, and the expected types.
type ArgumentTypeError struct {
	Argument string
	Function string
	Expected []*Type
	Cause    error
}

func (e *ArgumentTypeError) Error() string {
	names := make([]string, len(e.Expected))
	for i, c := range e.Expected {
		names[i] = c.String()
	}
	that := "that"
	if len(e.Expected) > 1 {
		that = "those"
	}
	return fmt.Sprintf("argument %q to function %s: expected %s or an object promotable to %s: %v",
		e.Argument, e.Function, strings.Join(names, ", "), that, e.Cause)
}

func (e *ArgumentTypeError) Unwrap() error { return e.Cause }

// DispatchError indicates no signature matched a call. It aggregates the
// failure of every signature tried.
type DispatchError struct {
	Function   string
	Signatures []*Signature
	Failures   []error
}

func (e *DispatchError) Error() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "no signature of %s matched the call; tried %d:", e.Function, len(e.Signatures))
	for i, sig := range e.Signatures {
		fmt.Fprintf(sb, "\n  %s: %v", sig, e.Failures[i])
	}
	return sb.String()
}

// ClosureTracingError indicates a callable of unsupported shape was passed
// to tracing, or its traced body could not be promoted to the declared
// return type.
type ClosureTracingError struct {
	Reason string
}

func (e *ClosureTracingError) Error() string { return e.Reason }

func NewClosureTracingError(format string, args ...any) *ClosureTracingError {
	return &ClosureTracingError{Reason: fmt.Sprintf(format, args...)}
}

// SerializationError indicates an unknown name on decode or an attempt to
// encode a still-generic type.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string { return e.Reason }

func NewSerializationError(format string, args ...any) *SerializationError {
	return &SerializationError{Reason: fmt.Sprintf(format, args...)}
}
