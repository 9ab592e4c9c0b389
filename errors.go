package eskema

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrAsyncValidator signals that a synchronous entry point was invoked on a
// composition containing at least one asynchronous member. This is a usage
// error, raised as a panic rather than returned, so it can never be mistaken
// for a validation outcome.
var ErrAsyncValidator = errors.New("eskema: validator has asynchronous members; use ValidateAsync")

// ValidationError adapts a failing Result into a Go error for callers that
// prefer error-based control flow at a boundary. It carries the full Result.
type ValidationError struct {
	Result Result
}

// Error summarizes the first few expectations.
func (e *ValidationError) Error() string {
	exps := e.Result.Expectations
	if len(exps) == 0 {
		return "eskema: validation failed"
	}
	const maxShown = 3
	b := &strings.Builder{}
	b.WriteString("eskema: ")
	n := len(exps)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(exps[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidationError extracts a *ValidationError from an error using errors.As
// internally.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Ensure validates v and converts a failing Result into a *ValidationError.
// On success it returns the (possibly coercion-transformed) value.
func Ensure(vd Validator, v any) (any, error) {
	r := vd.Validate(v)
	if !r.IsValid() {
		return nil, &ValidationError{Result: r}
	}
	return r.Value, nil
}

// EnsureAsync is Ensure for compositions that may contain asynchronous
// members.
func EnsureAsync(ctx context.Context, vd Validator, v any) (any, error) {
	r, err := vd.ValidateAsync(ctx, v)
	if err != nil {
		return nil, err
	}
	if !r.IsValid() {
		return nil, &ValidationError{Result: r}
	}
	return r.Value, nil
}
