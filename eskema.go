package eskema

import (
	"context"
	"sort"

	"github.com/eskema/eskema/i18n"
)

// Field pairs a key name with the Validator for its value. Fields are
// traversed in declaration order, which determines which failure is reported
// first under short-circuit aggregation.
type Field struct {
	Name      string
	Validator Validator
}

// F is a shorthand Field constructor for schema literals.
func F(name string, v Validator) Field { return Field{Name: name, Validator: v} }

// Eskema builds a keyed-map schema. Each declared field is looked up in the
// input map; absence and explicit null are distinguished, so the field's
// optional/nullable flags apply independently. Failing fields report their
// expectations with the field name prepended to the path. Undeclared keys are
// ignored and copied through to the output value unchanged. The first failing
// field short-circuits the traversal.
func Eskema(fields ...Field) Validator {
	return newEskema(fields, false, false)
}

// EskemaStrict is Eskema plus rejection of undeclared keys, reporting every
// offending key name.
func EskemaStrict(fields ...Field) Validator {
	return newEskema(fields, true, false)
}

// EskemaCollect is Eskema in collecting mode: every field is evaluated and
// all failures are merged into one Result.
func EskemaCollect(fields ...Field) Validator {
	return newEskema(fields, false, true)
}

// EskemaStrictCollect combines strict unknown-key handling with collecting
// mode.
func EskemaStrictCollect(fields ...Field) Validator {
	return newEskema(fields, true, true)
}

func newEskema(fields []Field, strict, collect bool) Validator {
	async := false
	for _, f := range fields {
		if f.Validator.async {
			async = true
			break
		}
	}
	return Validator{
		async: async,
		eval: func(ctx context.Context, v any) (Result, error) {
			m, ok := v.(map[string]any)
			if !ok {
				return Invalid(v, typeExpectation("Map", v)), nil
			}
			out := make(map[string]any, len(m))
			var exps []Expectation
			for _, f := range fields {
				val, present := m[f.Name]
				r, err := f.Validator.run(ctx, scope{value: val, parent: m, present: present})
				if err != nil {
					return Result{}, err
				}
				if !r.IsValid() {
					r = r.withPathPrefix("." + f.Name)
					if !collect {
						return r, nil
					}
					exps = append(exps, r.Expectations...)
					continue
				}
				if present || !f.Validator.optional {
					out[f.Name] = r.Value
				}
			}
			if strict {
				if unknown := unknownKeyExpectations(fields, m); len(unknown) > 0 {
					if !collect {
						return Invalid(v, unknown[0]), nil
					}
					exps = append(exps, unknown...)
				}
			} else {
				copyUnknownKeys(fields, m, out)
			}
			if len(exps) > 0 {
				return Invalid(v, exps...), nil
			}
			return Valid(out), nil
		},
	}
}

// unknownKeyExpectations reports undeclared keys in key-sorted order for
// deterministic error selection.
func unknownKeyExpectations(fields []Field, m map[string]any) []Expectation {
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f.Name] = struct{}{}
	}
	var keys []string
	for k := range m {
		if _, ok := declared[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	exps := make([]Expectation, 0, len(keys))
	for _, k := range keys {
		exps = append(exps, Expectation{
			Code:    CodeUnknownKey,
			Message: i18n.T(CodeUnknownKey, nil),
			Path:    "." + k,
			Value:   m[k],
			Data:    map[string]any{"key": k},
		})
	}
	return exps
}

func copyUnknownKeys(fields []Field, m, out map[string]any) {
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f.Name] = struct{}{}
	}
	for k, v := range m {
		if _, ok := declared[k]; !ok {
			out[k] = v
		}
	}
}

// typeExpectation builds the standard invalid-type expectation.
func typeExpectation(expected string, v any) Expectation {
	return Expectation{
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": expected}),
		Value:   v,
		Data:    map[string]any{"expected": expected, "actual": typeName(v)},
	}
}
