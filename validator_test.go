package eskema_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	eskema "github.com/eskema/eskema"
)

func TestValidator_ValidityEqualsEmptyExpectations(t *testing.T) {
	vs := []eskema.Validator{
		eskema.IsString(),
		eskema.All(eskema.IsInt(), eskema.Gte(0)),
		eskema.Any(eskema.IsString(), eskema.IsInt()),
		eskema.Not(eskema.IsString()),
	}
	inputs := []any{"x", 1, nil, true, map[string]any{}, []any{1}}
	for _, vd := range vs {
		for _, in := range inputs {
			r := vd.Validate(in)
			if r.IsValid() != (len(r.Expectations) == 0) {
				t.Fatalf("invariant broken for input %#v: %#v", in, r)
			}
		}
	}
}

func TestValidator_NullableOptionalAreCopies(t *testing.T) {
	base := eskema.IsString()
	n := base.Nullable()
	o := base.Optional()

	if base.Validate(nil).IsValid() {
		t.Fatalf("base must reject null")
	}
	if !n.Validate(nil).IsValid() {
		t.Fatalf("nullable copy must accept null")
	}
	if o.Validate(nil).IsValid() {
		t.Fatalf("optional affects absence, not explicit null")
	}
	// The original stays untouched.
	if base.Validate(nil).IsValid() {
		t.Fatalf("modifier mutated the shared validator")
	}
}

func TestValidator_CopyWith(t *testing.T) {
	yes := true
	vd := eskema.IsString().CopyWith(&yes, nil)
	if !vd.Validate(nil).IsValid() {
		t.Fatalf("CopyWith(nullable=true) must accept null")
	}
	no := false
	back := vd.CopyWith(&no, nil)
	if back.Validate(nil).IsValid() {
		t.Fatalf("CopyWith(nullable=false) must reject null")
	}
}

func TestValidator_WithExpectationOverridesFailure(t *testing.T) {
	vd := eskema.IsInt().WithExpectation(eskema.Expectation{
		Code:    "user.bad_age",
		Message: "an age",
	})
	r := vd.Validate("nope")
	if r.IsValid() {
		t.Fatalf("expected failure")
	}
	if len(r.Expectations) != 1 || r.Expectations[0].Code != "user.bad_age" {
		t.Fatalf("override not applied: %#v", r.Expectations)
	}
	if r.Expectations[0].Value != "nope" {
		t.Fatalf("override must carry the failing value")
	}
	if !vd.Validate(3).IsValid() {
		t.Fatalf("override must not affect success")
	}
}

func TestValidator_SyncPanicsOnAsyncMember(t *testing.T) {
	async := eskema.NewAsync(func(ctx context.Context, v any) (eskema.Result, error) {
		return eskema.Valid(v), nil
	})
	chains := []eskema.Validator{
		async,
		eskema.All(eskema.IsString(), async),
		eskema.Any(async, eskema.IsString()),
		eskema.None(async),
		eskema.Not(async),
		eskema.Eskema(eskema.F("a", async)),
		eskema.ListEach(async),
	}
	for i, vd := range chains {
		func() {
			defer func() {
				rec := recover()
				if rec == nil {
					t.Fatalf("chain %d: expected panic", i)
				}
				err, ok := rec.(error)
				if !ok || !errors.Is(err, eskema.ErrAsyncValidator) {
					t.Fatalf("chain %d: unexpected panic value %v", i, rec)
				}
			}()
			vd.Validate("x")
		}()
	}
}

func TestValidator_AsyncEntryPointWorksForAnyMix(t *testing.T) {
	ctx := context.Background()
	async := eskema.NewAsync(func(ctx context.Context, v any) (eskema.Result, error) {
		s, ok := v.(string)
		if !ok || s == "" {
			return eskema.Invalid(v, eskema.Expectation{Code: "user.empty", Message: "a non-empty name", Value: v}), nil
		}
		return eskema.Valid(s), nil
	})
	vd := eskema.All(eskema.IsString(), async)
	if !vd.IsAsync() {
		t.Fatalf("composition must be flagged async")
	}
	r, err := vd.ValidateAsync(ctx, "reo")
	if err != nil || !r.IsValid() {
		t.Fatalf("unexpected outcome: %v %#v", err, r)
	}
	r, err = vd.ValidateAsync(ctx, "")
	if err != nil || r.IsValid() {
		t.Fatalf("expected failure: %v %#v", err, r)
	}
}

func TestValidator_SyncAndAsyncAgreeOnSyncChains(t *testing.T) {
	vd := eskema.Eskema(
		eskema.F("name", eskema.IsString()),
		eskema.F("age", eskema.All(eskema.IsInt(), eskema.Gte(0))),
	)
	inputs := []any{
		map[string]any{"name": "a", "age": 3},
		map[string]any{"name": 1, "age": -1},
		"not a map",
	}
	for _, in := range inputs {
		sync := vd.Validate(in)
		async, err := vd.ValidateAsync(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(sync, async) {
			t.Fatalf("sync/async mismatch for %#v:\n%#v\n%#v", in, sync, async)
		}
	}
}

func TestEnsure_ValidationErrorRoundTrip(t *testing.T) {
	vd := eskema.IsInt()
	out, err := eskema.Ensure(vd, 7)
	if err != nil || out != 7 {
		t.Fatalf("unexpected: %v %v", out, err)
	}
	_, err = eskema.Ensure(vd, "x")
	if err == nil {
		t.Fatalf("expected error")
	}
	ve, ok := eskema.AsValidationError(err)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Result.IsValid() || len(ve.Result.Expectations) == 0 {
		t.Fatalf("error must carry the failing result")
	}
	if ve.Error() == "" {
		t.Fatalf("expected a summary message")
	}
}

func TestEnsureAsync(t *testing.T) {
	async := eskema.NewAsync(func(ctx context.Context, v any) (eskema.Result, error) {
		return eskema.Valid(v), nil
	})
	out, err := eskema.EnsureAsync(context.Background(), async, "v")
	if err != nil || out != "v" {
		t.Fatalf("unexpected: %v %v", out, err)
	}
}

func TestValidator_ZeroValueIsVacuouslyValid(t *testing.T) {
	var vd eskema.Validator
	if !vd.Validate("anything").IsValid() {
		t.Fatalf("zero validator must be valid")
	}
}
