package eskema

import "github.com/eskema/eskema/i18n"

// Result is the outcome of one validation call: the (possibly transformed)
// value plus an ordered list of expectations. Validity is derived from the
// expectation list, never stored separately, so the invariant
// IsValid() == len(Expectations) == 0 holds by construction.
//
// A valid Result's Value reflects any coercions applied along the path that
// produced it; callers must not assume it equals the input value.
type Result struct {
	Value        any
	Expectations []Expectation
}

// Valid returns a successful Result carrying v.
func Valid(v any) Result { return Result{Value: v} }

// Invalid returns a failing Result carrying v and the given expectations.
// When no expectation is supplied a generic one is added so that a failing
// Result can never be mistaken for a valid one.
func Invalid(v any, exps ...Expectation) Result {
	if len(exps) == 0 {
		exps = []Expectation{{
			Code:    CodeInvalidValue,
			Message: i18n.T(CodeInvalidValue, nil),
			Value:   v,
		}}
	}
	return Result{Value: v, Expectations: exps}
}

// IsValid reports whether the validation succeeded.
func (r Result) IsValid() bool { return len(r.Expectations) == 0 }

// withPathPrefix returns a copy whose expectations all have seg prepended to
// their paths. Valid results are returned unchanged.
func (r Result) withPathPrefix(seg string) Result {
	if r.IsValid() {
		return r
	}
	exps := make([]Expectation, len(r.Expectations))
	for i, e := range r.Expectations {
		exps[i] = e.WithPathPrefix(seg)
	}
	return Result{Value: r.Value, Expectations: exps}
}
