package eskema

// Package eskema provides:
//
// - Composable validation of dynamic values (primitives, maps, sequences)
// - A stable diagnostic model via Result/Expectation (path, code, message, data)
// - Logical combinators (All, Any, None, Not, When) with short-circuit and
//   collecting conjunction modes
// - Structural map/list schemas with path-qualified failures
// - A fluent coercion chain under dsl/ for "check X, convert to Y, check Y"
//
// Design policy:
// - Keep the value model and combinators in the root package; place the
//   fluent builder under dsl/ and message dictionaries under i18n/.
// - Validators are immutable values; every modifier returns a copy.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v := eskema.Eskema(
//		eskema.F("name", eskema.IsString()),
//		eskema.F("age", eskema.All(eskema.IsInt(), eskema.Gte(0))),
//	)
//	res := v.Validate(payload)
//	res, err := v.ValidateAsync(ctx, payload)
//
//	out, err := eskema.Ensure(v, payload) // error-based control flow
//
