package eskema

import (
	"context"
	"strconv"

	"github.com/eskema/eskema/i18n"
)

// EskemaList builds a positional sequence schema: one Validator per index,
// and the subject must be a sequence of exactly that length. Failing elements
// report their expectations with [index] prepended to the path.
func EskemaList(items ...Validator) Validator {
	return Validator{
		async: anyAsync(items),
		eval: func(ctx context.Context, v any) (Result, error) {
			seq, ok := v.([]any)
			if !ok {
				return Invalid(v, typeExpectation("List", v)), nil
			}
			if len(seq) != len(items) {
				return Invalid(v, Expectation{
					Code:    CodeLengthMismatch,
					Message: i18n.T(CodeLengthMismatch, nil),
					Value:   v,
					Data:    map[string]any{"expected": len(items), "actual": len(seq)},
				}), nil
			}
			out := make([]any, len(seq))
			for i, item := range items {
				r, err := item.run(ctx, scope{value: seq[i], present: true})
				if err != nil {
					return Result{}, err
				}
				if !r.IsValid() {
					return r.withPathPrefix("[" + strconv.Itoa(i) + "]"), nil
				}
				out[i] = r.Value
			}
			return Valid(out), nil
		},
	}
}

// ListEach builds a uniform sequence schema: one Validator applied to every
// element, short-circuiting on the first failing element.
func ListEach(item Validator) Validator { return listEach(item, false) }

// ListEachCollect is ListEach in collecting mode: every element is evaluated
// and all failures are merged into one Result.
func ListEachCollect(item Validator) Validator { return listEach(item, true) }

func listEach(item Validator, collect bool) Validator {
	return Validator{
		async: item.async,
		eval: func(ctx context.Context, v any) (Result, error) {
			seq, ok := v.([]any)
			if !ok {
				return Invalid(v, typeExpectation("List", v)), nil
			}
			out := make([]any, len(seq))
			var exps []Expectation
			for i, el := range seq {
				r, err := item.run(ctx, scope{value: el, present: true})
				if err != nil {
					return Result{}, err
				}
				if !r.IsValid() {
					r = r.withPathPrefix("[" + strconv.Itoa(i) + "]")
					if !collect {
						return r, nil
					}
					exps = append(exps, r.Expectations...)
					continue
				}
				out[i] = r.Value
			}
			if len(exps) > 0 {
				return Invalid(v, exps...), nil
			}
			return Valid(out), nil
		},
	}
}
