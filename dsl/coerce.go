package dsl

import (
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	eskema "github.com/eskema/eskema"
	"github.com/eskema/eskema/i18n"
)

// ToInt installs an integer coercion: numeric strings, whole-valued floats,
// and json.Number pivot to int64.
func (c *Chain) ToInt(opts ...CoerceOpt) *Chain {
	return c.coerce(KindInt, toIntValue, opts)
}

// ToDouble installs a floating-point coercion.
func (c *Chain) ToDouble(opts ...CoerceOpt) *Chain {
	return c.coerce(KindDouble, toDoubleValue, opts)
}

// ToBool installs a boolean coercion: the strings "true" and "false" pivot to
// bool.
func (c *Chain) ToBool(opts ...CoerceOpt) *Chain {
	return c.coerce(KindBool, toBoolValue, opts)
}

// ToString installs a string coercion for scalar values.
func (c *Chain) ToString(opts ...CoerceOpt) *Chain {
	return c.coerce(KindString, toStringValue, opts)
}

// ToDate installs a date coercion: RFC3339/RFC3339Nano strings pivot to
// time.Time.
func (c *Chain) ToDate(opts ...CoerceOpt) *Chain {
	return c.coerce(KindDate, toDateValue, opts)
}

// FromJSON installs a JSON coercion: a string (or byte slice) holding a JSON
// document pivots to the decoded dynamic value.
func (c *Chain) FromJSON(opts ...CoerceOpt) *Chain {
	return c.coerce(KindJSON, fromJSONValue, opts)
}

// To installs a custom coercion. Custom coercions compose function-style with
// whatever pivot is already installed, so bespoke transforms can layer.
func (c *Chain) To(fn func(v any) (any, error), opts ...CoerceOpt) *Chain {
	return c.coerce(KindCustom, func(v any) (any, *eskema.Expectation) {
		out, err := fn(v)
		if err != nil {
			exp := coerceFailed("custom", v)
			exp.Data["error"] = err.Error()
			return nil, exp
		}
		return out, nil
	}, opts)
}

// ---- conversions ----

func coerceFailed(kind string, v any) *eskema.Expectation {
	return &eskema.Expectation{
		Code:    eskema.CodeCoerceFailed,
		Message: i18n.T(eskema.CodeCoerceFailed, map[string]string{"kind": kind}),
		Value:   v,
		Data:    map[string]any{"kind": kind},
	}
}

func toIntValue(v any) (any, *eskema.Expectation) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n), nil
		}
	case float32:
		if f := float64(n); f == math.Trunc(f) {
			return int64(f), nil
		}
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, nil
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, nil
		}
	}
	return nil, coerceFailed("integer", v)
}

func toDoubleValue(v any) (any, *eskema.Expectation) {
	switch n := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, nil
		}
	case json.Number:
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return f, nil
		}
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return nil, coerceFailed("double", v)
}

func toBoolValue(v any) (any, *eskema.Expectation) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch b {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, coerceFailed("boolean", v)
}

func toStringValue(v any) (any, *eskema.Expectation) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case int:
		return strconv.Itoa(s), nil
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), nil
	case json.Number:
		return string(s), nil
	}
	return nil, coerceFailed("string", v)
}

// toDateValue accepts RFC3339Nano first and falls back to RFC3339, so both
// fractional and whole-second timestamps parse.
func toDateValue(v any) (any, *eskema.Expectation) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, nil
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, nil
		}
	}
	return nil, coerceFailed("date", v)
}

func fromJSONValue(v any) (any, *eskema.Expectation) {
	var data []byte
	switch s := v.(type) {
	case string:
		data = []byte(s)
	case []byte:
		data = s
	default:
		return nil, coerceFailed("json", v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		exp := coerceFailed("json", v)
		exp.Data["error"] = err.Error()
		return nil, exp
	}
	return out, nil
}
