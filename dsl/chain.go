package dsl

import (
	eskema "github.com/eskema/eskema"
	"github.com/eskema/eskema/i18n"
)

// CoercionKind tags the type-changing pivot installed in a chain.
type CoercionKind int

const (
	KindCustom CoercionKind = iota
	KindInt
	KindDouble
	KindBool
	KindString
	KindDate
	KindJSON
)

// CoerceOpt adjusts how a coercion is installed.
type CoerceOpt int

const (
	// KeepConstraints preserves the pre-coercion constraint list when a
	// coercion is installed: the original value is validated by the
	// preserved pre-list and the transformed value by the post-list.
	KeepConstraints CoerceOpt = iota
)

// coercion is the single type-changing pivot of a chain.
type coercion struct {
	kind CoercionKind
	fn   func(v any) (any, *eskema.Expectation)
}

// Chain is the fluent builder accumulator: an ordered pre-coercion constraint
// list, at most one coercion, and an ordered post-coercion constraint list.
// It is a single-owner mutable object during construction; Build freezes it
// into an immutable, shareable Validator.
type Chain struct {
	pre     []eskema.Validator
	post    []eskema.Validator
	co      *coercion
	keepPre bool
	pivots  []eskema.Validator

	nullable bool
	optional bool
}

func seeded(base eskema.Validator) *Chain {
	return &Chain{pre: []eskema.Validator{base}}
}

// Add appends constraints to whichever list is currently active: pre-coercion
// if no coercion has been installed yet, post-coercion otherwise.
func (c *Chain) Add(vs ...eskema.Validator) *Chain {
	if c.co == nil {
		c.pre = append(c.pre, vs...)
	} else {
		c.post = append(c.post, vs...)
	}
	return c
}

// coerce installs a coercion. At most one coercion is active per chain:
// re-applying the same built-in kind is idempotent on the kind and keeps the
// accumulated post constraints; switching to a different built-in kind
// replaces the coercion and discards post constraints whose target type no
// longer applies; when either side is custom the functions compose.
// Installing a coercion discards the pre-coercion list unless KeepConstraints
// was requested.
func (c *Chain) coerce(kind CoercionKind, fn func(any) (any, *eskema.Expectation), opts []CoerceOpt) *Chain {
	for _, o := range opts {
		if o == KeepConstraints {
			c.keepPre = true
		}
	}
	switch {
	case c.co == nil:
		c.co = &coercion{kind: kind, fn: fn}
	case c.co.kind == kind && kind != KindCustom:
		// Same built-in kind: keep the pivot and the accumulated constraints.
	case c.co.kind == KindCustom || kind == KindCustom:
		prev := c.co.fn
		next := fn
		c.co = &coercion{kind: KindCustom, fn: func(v any) (any, *eskema.Expectation) {
			mid, exp := prev(v)
			if exp != nil {
				return nil, exp
			}
			return next(mid)
		}}
	default:
		c.co = &coercion{kind: kind, fn: fn}
		c.post = nil
	}
	return c
}

// Pluck prepends a value-pivoting transform that extracts the named key from
// a keyed map before the rest of the chain runs.
func (c *Chain) Pluck(key string) *Chain {
	c.pivots = append(c.pivots, eskema.New(func(v any) eskema.Result {
		m, ok := v.(map[string]any)
		if !ok {
			return eskema.Invalid(v, typeExpectation("Map", v))
		}
		val, present := m[key]
		if !present {
			return eskema.Invalid(v, eskema.Expectation{
				Code:    eskema.CodeKeyRequired,
				Message: i18n.T(eskema.CodeKeyRequired, nil),
				Path:    "." + key,
				Data:    map[string]any{"key": key},
			})
		}
		return eskema.Valid(val)
	}))
	return c
}

// Pick prepends a value-pivoting transform that reduces a keyed map to the
// subset of the named keys (absent keys are simply omitted).
func (c *Chain) Pick(keys ...string) *Chain {
	c.pivots = append(c.pivots, eskema.New(func(v any) eskema.Result {
		m, ok := v.(map[string]any)
		if !ok {
			return eskema.Invalid(v, typeExpectation("Map", v))
		}
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			if val, present := m[k]; present {
				out[k] = val
			}
		}
		return eskema.Valid(out)
	}))
	return c
}

// Nullable marks the finished Validator as accepting explicit null.
func (c *Chain) Nullable() *Chain {
	c.nullable = true
	return c
}

// Optional marks the finished Validator as accepting absence.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

// Build finalizes the chain into a single immutable Validator. The parts
// compose in order: pivoting prefix transforms, the coercion-aware core
// (preserved pre-list, coercion, post-list, joined by conjunction with value
// threading), then the nullable/optional flags wrapping the whole.
func (c *Chain) Build() eskema.Validator {
	parts := append([]eskema.Validator{}, c.pivots...)
	if c.co == nil {
		parts = append(parts, c.pre...)
		parts = append(parts, c.post...)
	} else {
		if c.keepPre {
			parts = append(parts, c.pre...)
		}
		parts = append(parts, coerceValidator(c.co))
		parts = append(parts, c.post...)
	}
	vd := eskema.All(parts...)
	if c.nullable {
		vd = vd.Nullable()
	}
	if c.optional {
		vd = vd.Optional()
	}
	return vd
}

// coerceValidator wraps the pivot as a transforming Validator so it slots
// into the threading conjunction.
func coerceValidator(co *coercion) eskema.Validator {
	fn := co.fn
	return eskema.New(func(v any) eskema.Result {
		out, exp := fn(v)
		if exp != nil {
			return eskema.Invalid(v, *exp)
		}
		return eskema.Valid(out)
	})
}

func typeExpectation(expected string, v any) eskema.Expectation {
	return eskema.Expectation{
		Code:    eskema.CodeInvalidType,
		Message: i18n.T(eskema.CodeInvalidType, map[string]string{"expected": expected}),
		Value:   v,
		Data:    map[string]any{"expected": expected},
	}
}
