package types

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ArgSpec declares one parameter of a Signature: its name, the candidate
// types its argument may be promoted to, and an optional default. Exactly
// one of Types, Lazy, or FromReceiver supplies the candidates:
//
//   - Types: the usual static list.
//   - Lazy: deferred resolution, run once on first use. This supports
//     self-referential types that are not nameable at declaration time.
//   - FromReceiver: resolved per call from the receiver instance, for
//     generic types whose parameter types vary by instance.
type ArgSpec struct {
	Name         string
	Types        []*Type
	Lazy         func() []*Type
	FromReceiver func(recv Value) []*Type
	Default      any
	HasDefault   bool
	// Variadic marks a catch-all for remaining positional arguments; each
	// one is promoted individually. Must be the last positional spec.
	Variadic bool
	// KeywordCatchAll marks a catch-all for remaining named arguments.
	KeywordCatchAll bool

	lazyOnce  sync.Once
	lazyTypes []*Type
}

func (a *ArgSpec) candidates(recv Value) []*Type {
	switch {
	case a.Types != nil:
		return a.Types
	case a.Lazy != nil:
		a.lazyOnce.Do(func() { a.lazyTypes = a.Lazy() })
		return a.lazyTypes
	case a.FromReceiver != nil:
		return a.FromReceiver(recv)
	default:
		return nil
	}
}

// Signature is an ordered parameter list plus a return type, used both for
// promotion-based argument binding and for constructing application nodes.
type Signature struct {
	// Function names the operation, for diagnostics and node construction.
	Function string
	// Receiver marks a method signature: the receiver is bound separately
	// and never promoted.
	Receiver bool
	Args     []*ArgSpec
	Return   *Type
	// ReturnFor, if set, derives the return type from the receiver
	// instance instead of Return.
	ReturnFor func(recv Value) *Type
}

// ReturnType resolves the signature's declared return type for a call.
func (s *Signature) ReturnType(recv Value) *Type {
	if s.ReturnFor != nil {
		return s.ReturnFor(recv)
	}
	return s.Return
}

func (s *Signature) String() string {
	parts := make([]string, 0, len(s.Args))
	for _, a := range s.Args {
		names := "?"
		if a.Types != nil {
			ts := make([]string, len(a.Types))
			for i, t := range a.Types {
				ts[i] = t.String()
			}
			names = strings.Join(ts, "|")
		}
		p := fmt.Sprintf("%s: %s", a.Name, names)
		if a.Variadic {
			p = "..." + p
		}
		if a.KeywordCatchAll {
			p = "**" + p
		}
		parts = append(parts, p)
	}
	ret := "?"
	if s.Return != nil {
		ret = s.Return.String()
	}
	return fmt.Sprintf("%s(%s) -> %s", s.Function, strings.Join(parts, ", "), ret)
}

// BoundCall holds a call's arguments after binding and promotion.
type BoundCall struct {
	Args   []Value
	Kwargs map[string]Value
}

// Bind matches a call's actual arguments against the signature's shape and
// promotes each one (or its default) to the parameter's candidate types.
// Shape mismatches (arity, unknown keyword names) return a plain error;
// promotion failures return an *ArgumentTypeError naming the offending
// argument, the function, and the expected types.
func (s *Signature) Bind(recv Value, args []any, kwargs map[string]any) (*BoundCall, error) {
	remaining := make(map[string]any, len(kwargs))
	for name, v := range kwargs {
		remaining[name] = v
	}

	bound := &BoundCall{}
	argIdx := 0
	for _, spec := range s.Args {
		switch {
		case spec.Variadic:
			for ; argIdx < len(args); argIdx++ {
				v, err := s.promoteArg(spec, recv, args[argIdx], fmt.Sprintf("%s[%d]", spec.Name, argIdx))
				if err != nil {
					return nil, err
				}
				bound.Args = append(bound.Args, v)
			}
		case spec.KeywordCatchAll:
			for name, raw := range remaining {
				v, err := s.promoteArg(spec, recv, raw, name)
				if err != nil {
					return nil, err
				}
				if bound.Kwargs == nil {
					bound.Kwargs = map[string]Value{}
				}
				bound.Kwargs[name] = v
				delete(remaining, name)
			}
		default:
			var raw any
			switch {
			case argIdx < len(args):
				raw = args[argIdx]
				argIdx++
			default:
				if kwarg, ok := remaining[spec.Name]; ok {
					raw = kwarg
					delete(remaining, spec.Name)
				} else if spec.HasDefault {
					raw = spec.Default
				} else {
					return nil, fmt.Errorf("%s: missing required argument %q", s.Function, spec.Name)
				}
			}
			v, err := s.promoteArg(spec, recv, raw, spec.Name)
			if err != nil {
				return nil, err
			}
			bound.Args = append(bound.Args, v)
		}
	}

	if argIdx < len(args) {
		return nil, fmt.Errorf("%s: too many positional arguments: expected %d, got %d",
			s.Function, argIdx, len(args))
	}
	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		return nil, fmt.Errorf("%s: unexpected named arguments %v", s.Function, names)
	}
	return bound, nil
}

func (s *Signature) promoteArg(spec *ArgSpec, recv Value, raw any, argName string) (Value, error) {
	candidates := spec.candidates(recv)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: no candidate types declared for argument %q", s.Function, spec.Name)
	}
	v, err := Promote(raw, candidates)
	if err != nil {
		return nil, &ArgumentTypeError{
			Argument: argName,
			Function: s.Function,
			Expected: candidates,
			Cause:    err,
		}
	}
	return v, nil
}

// TypecheckPromote wraps an implementation with argument binding and
// promotion against a signature, so the implementation only ever sees
// promoted Values.
func TypecheckPromote(sig *Signature, impl func(recv Value, args []Value, kwargs map[string]Value) (Value, error)) func(recv Value, args []any, kwargs map[string]any) (Value, error) {
	return func(recv Value, args []any, kwargs map[string]any) (Value, error) {
		bound, err := sig.Bind(recv, args, kwargs)
		if err != nil {
			return nil, err
		}
		return impl(recv, bound.Args, bound.Kwargs)
	}
}

// Dispatch tries each signature in order and picks the first whose shape
// the arguments can be bound to and whose promotions all succeed. If none
// matches, the *DispatchError enumerates every signature with its failure.
func Dispatch(sigs []*Signature, recv Value, args []any, kwargs map[string]any) (*Signature, *BoundCall, error) {
	if len(sigs) == 0 {
		return nil, nil, fmt.Errorf("dispatch: no signatures given")
	}
	failures := make([]error, len(sigs))
	for i, sig := range sigs {
		bound, err := sig.Bind(recv, args, kwargs)
		if err == nil {
			logger.Debug("dispatch matched",
				zap.String("function", sig.Function),
				zap.String("signature", sig.String()),
				zap.Int("tried", i+1))
			return sig, bound, nil
		}
		failures[i] = err
	}
	return nil, nil, &DispatchError{
		Function:   sigs[0].Function,
		Signatures: sigs,
		Failures:   failures,
	}
}

// DispatchApply dispatches a call and builds the resulting application
// node, typed as the chosen signature's declared return type. For method
// signatures the receiver becomes the node's leading argument.
func DispatchApply(sigs []*Signature, recv Value, args []any, kwargs map[string]any) (Value, error) {
	sig, bound, err := Dispatch(sigs, recv, args, kwargs)
	if err != nil {
		return nil, err
	}
	allArgs := bound.Args
	if sig.Receiver && recv != nil {
		allArgs = append([]Value{recv}, allArgs...)
	}
	return FromApply(sig.ReturnType(recv), sig.Function, allArgs, bound.Kwargs)
}
