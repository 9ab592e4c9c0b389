// Package dsl provides the fluent builder chain for constructing validators
// as a single linear narrative: pick a typed entry point, append constraints,
// optionally pivot the value's type with a coercion, constrain the new type,
// and Build the result into an eskema.Validator.
//
//	v := dsl.String().ToInt().Add(eskema.Gte(10)).Build()
//	res := v.Validate("42") // valid, res.Value == int64(42)
//
// At most one coercion is active per chain. Builder-built validators satisfy
// the same contract as directly composed ones, so both styles interoperate
// freely.
package dsl
