package eskema

import (
	"context"

	"github.com/eskema/eskema/i18n"
)

// Validator is the fundamental unit of validation: a pure function from a
// dynamic value to a Result, plus the declarative nullable/optional flags.
// Validators are immutable values; every modifier returns a copy, so the same
// Validator can be shared and reused across schemas and across concurrent
// validation calls without locking.
//
// The zero Validator is vacuously valid.
type Validator struct {
	// eval is the synchronous-or-asynchronous evaluation function. A nil
	// error is guaranteed on every path when async is false.
	eval func(ctx context.Context, v any) (Result, error)
	// when is set only for parent-aware conditionals built with When.
	// Structural traversal dispatches on it instead of probing with type
	// checks.
	when *whenSpec
	// expect declares what the validator expects, so negating combinators
	// can explain a pass ("not <message>").
	expect *Expectation
	// override, when set, replaces a failing result's expectations.
	override *Expectation

	async    bool
	nullable bool
	optional bool
}

// whenSpec holds the three legs of a parent-aware conditional.
type whenSpec struct {
	cond      Validator
	then      Validator
	otherwise Validator
}

// scope carries a value through evaluation together with its surrounding
// context: the enclosing keyed structure (if any) and whether the value was
// actually present in it. Absence and explicit null are distinct.
type scope struct {
	value   any
	parent  map[string]any
	present bool
}

// New wraps a synchronous validation function as a Validator.
func New(fn func(v any) Result) Validator {
	return Validator{eval: func(_ context.Context, v any) (Result, error) {
		return fn(v), nil
	}}
}

// NewAsync wraps an asynchronous validation function as a Validator. The
// resulting Validator only works through ValidateAsync; the synchronous entry
// points panic with ErrAsyncValidator.
func NewAsync(fn func(ctx context.Context, v any) (Result, error)) Validator {
	return Validator{eval: fn, async: true}
}

// Validate evaluates v synchronously. It panics with ErrAsyncValidator when
// any asynchronous member participates in the composition; use ValidateAsync
// for those.
func (vd Validator) Validate(v any) Result {
	if vd.async {
		panic(ErrAsyncValidator)
	}
	r, _ := vd.run(context.Background(), scope{value: v, present: true})
	return r
}

// ValidateAsync evaluates v, awaiting any asynchronous members in order. It
// works for any sync/async mix; for a fully synchronous composition it
// returns a Result equal to Validate's.
func (vd Validator) ValidateAsync(ctx context.Context, v any) (Result, error) {
	return vd.run(ctx, scope{value: v, present: true})
}

// IsValid reports whether v satisfies the validator.
func (vd Validator) IsValid(v any) bool { return vd.Validate(v).IsValid() }

// IsNotValid reports whether v violates the validator.
func (vd Validator) IsNotValid(v any) bool { return !vd.IsValid(v) }

// IsAsync reports whether any asynchronous member participates.
func (vd Validator) IsAsync() bool { return vd.async }

// Nullable returns a copy that accepts an explicit null value as valid when
// the value is known to be present.
func (vd Validator) Nullable() Validator {
	vd.nullable = true
	return vd
}

// Optional returns a copy that accepts the complete absence of a value (a
// missing map key) as valid.
func (vd Validator) Optional() Validator {
	vd.optional = true
	return vd
}

// CopyWith is the canonical cloning primitive: it returns a copy with the
// nullable/optional flags replaced where a non-nil pointer is given.
func (vd Validator) CopyWith(nullable, optional *bool) Validator {
	if nullable != nil {
		vd.nullable = *nullable
	}
	if optional != nil {
		vd.optional = *optional
	}
	return vd
}

// WithExpectation returns a copy whose failures report exp instead of the
// underlying expectations, and whose declared expectation (used by Not and
// None to explain passes) is exp.
func (vd Validator) WithExpectation(exp Expectation) Validator {
	vd.expect = &exp
	vd.override = &exp
	return vd
}

// describe returns the declared expectation, falling back to a generic one.
func (vd Validator) describe() Expectation {
	if vd.expect != nil {
		return *vd.expect
	}
	return Expectation{Code: CodeInvalidValue, Message: i18n.T(CodeInvalidValue, nil)}
}

// run is the single evaluation path shared by the sync and async entry
// points and by structural traversal.
func (vd Validator) run(ctx context.Context, sc scope) (Result, error) {
	if !sc.present && vd.optional {
		return Valid(nil), nil
	}
	if sc.present && sc.value == nil && vd.nullable {
		return Valid(nil), nil
	}
	if vd.when != nil {
		return vd.runWhen(ctx, sc)
	}
	if !sc.present {
		return vd.finish(sc, Invalid(nil, Expectation{
			Code:    CodeKeyRequired,
			Message: i18n.T(CodeKeyRequired, nil),
		})), nil
	}
	if vd.eval == nil {
		return Valid(sc.value), nil
	}
	r, err := vd.eval(ctx, sc.value)
	if err != nil {
		return Result{}, err
	}
	return vd.finish(sc, r), nil
}

// runWhen dispatches a parent-aware conditional: the condition is evaluated
// against the enclosing keyed structure, then the chosen branch validates the
// field value. Invoking it without a parent is a usage error and yields a
// distinguishable misuse failure.
func (vd Validator) runWhen(ctx context.Context, sc scope) (Result, error) {
	if sc.parent == nil {
		return Invalid(sc.value, Expectation{
			Code:    CodeParentRequired,
			Message: i18n.T(CodeParentRequired, nil),
			Value:   sc.value,
		}), nil
	}
	condRes, err := vd.when.cond.run(ctx, scope{value: sc.parent, parent: sc.parent, present: true})
	if err != nil {
		return Result{}, err
	}
	branch := vd.when.otherwise
	if condRes.IsValid() {
		branch = vd.when.then
	}
	r, err := branch.run(ctx, sc)
	if err != nil {
		return Result{}, err
	}
	return vd.finish(sc, r), nil
}

// finish applies the expectation override to a failing result.
func (vd Validator) finish(sc scope, r Result) Result {
	if r.IsValid() || vd.override == nil {
		return r
	}
	o := *vd.override
	o.Value = sc.value
	return Invalid(r.Value, o)
}
