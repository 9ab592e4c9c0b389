package eskema

import "context"

// anyAsync reports whether any child has asynchronous members.
func anyAsync(children []Validator) bool {
	for _, c := range children {
		if c.async {
			return true
		}
	}
	return false
}

// All is conjunction with short-circuit semantics: children are evaluated in
// order and the first failing child's Result is returned as-is. Each child
// receives the value produced by the previous child, so successful
// transformations thread forward and All doubles as a pipeline. An empty
// child list is vacuously valid.
func All(children ...Validator) Validator {
	return Validator{
		async: anyAsync(children),
		eval: func(ctx context.Context, v any) (Result, error) {
			cur := v
			for _, c := range children {
				r, err := c.run(ctx, scope{value: cur, present: true})
				if err != nil {
					return Result{}, err
				}
				if !r.IsValid() {
					return r, nil
				}
				cur = r.Value
			}
			return Valid(cur), nil
		},
	}
}

// AllCollect is conjunction in collecting mode: every child is evaluated
// against the original input value and every failing child's expectations are
// merged into one Result. No value threading happens because a value of
// ambiguous provenance must not flow through independently evaluated
// branches.
func AllCollect(children ...Validator) Validator {
	return Validator{
		async: anyAsync(children),
		eval: func(ctx context.Context, v any) (Result, error) {
			var exps []Expectation
			for _, c := range children {
				r, err := c.run(ctx, scope{value: v, present: true})
				if err != nil {
					return Result{}, err
				}
				if !r.IsValid() {
					exps = append(exps, r.Expectations...)
				}
			}
			if len(exps) > 0 {
				return Invalid(v, exps...), nil
			}
			return Valid(v), nil
		},
	}
}

// Any is disjunction: children are evaluated in order and the first valid
// Result is returned, never re-running earlier children. If all fail, the
// failure concatenates every child's expectations. An empty child list fails
// closed.
func Any(children ...Validator) Validator {
	return Validator{
		async: anyAsync(children),
		eval: func(ctx context.Context, v any) (Result, error) {
			var exps []Expectation
			for _, c := range children {
				r, err := c.run(ctx, scope{value: v, present: true})
				if err != nil {
					return Result{}, err
				}
				if r.IsValid() {
					return r, nil
				}
				exps = append(exps, r.Expectations...)
			}
			return Invalid(v, exps...), nil
		},
	}
}

// None succeeds iff every child fails. Each passing child contributes its
// declared expectation rewritten to "not <message>", explaining why the value
// matched something it should not have. An empty child list is vacuously
// valid.
func None(children ...Validator) Validator {
	return Validator{
		async: anyAsync(children),
		eval: func(ctx context.Context, v any) (Result, error) {
			var exps []Expectation
			for _, c := range children {
				r, err := c.run(ctx, scope{value: v, present: true})
				if err != nil {
					return Result{}, err
				}
				if r.IsValid() {
					exps = append(exps, c.describe().Negated().WithValue(v))
				}
			}
			if len(exps) > 0 {
				return Invalid(v, exps...), nil
			}
			return Valid(v), nil
		},
	}
}

// Not negates a single child: a passing child produces a failure whose
// expectation is the child's declared expectation rewritten to
// "not <message>" (override with WithExpectation for a custom message); a
// failing child produces success. The negated expectation also becomes the
// declared expectation, so stacked negations keep rewriting the message.
func Not(child Validator) Validator {
	neg := child.describe().Negated()
	return Validator{
		async:  child.async,
		expect: &neg,
		eval: func(ctx context.Context, v any) (Result, error) {
			r, err := child.run(ctx, scope{value: v, present: true})
			if err != nil {
				return Result{}, err
			}
			if r.IsValid() {
				return Invalid(v, neg.WithValue(v)), nil
			}
			return Valid(v), nil
		},
	}
}

// When builds a parent-aware conditional: cond is evaluated against the
// enclosing keyed structure (not the field's own value); if it passes, then
// validates the field value, otherwise otherwise does. Invoking the returned
// Validator outside a structural schema yields a misuse.parent_required
// failure because there is no parent to inspect.
func When(cond, then, otherwise Validator) Validator {
	return Validator{
		async: cond.async || then.async || otherwise.async,
		when:  &whenSpec{cond: cond, then: then, otherwise: otherwise},
	}
}
