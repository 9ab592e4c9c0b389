package eskema

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/eskema/eskema/i18n"
)

// Type-checking leaf predicates. The zero-argument ones are process-wide
// immutable singletons initialized once at startup; construction is
// deterministic and side-effect-free, and since Validators are pure values
// sharing them introduces no lifecycle hazard.
var (
	isString = typeCheck("String", func(v any) bool { _, ok := v.(string); return ok })
	isBool   = typeCheck("Bool", func(v any) bool { _, ok := v.(bool); return ok })
	isInt    = typeCheck("Int", isIntValue)
	isDouble = typeCheck("Double", isDoubleValue)
	isNumber = typeCheck("Num", func(v any) bool { _, ok := toFloat(v); return ok })
	isMap    = typeCheck("Map", func(v any) bool { _, ok := v.(map[string]any); return ok })
	isList   = typeCheck("List", func(v any) bool { _, ok := v.([]any); return ok })
	isNull   = typeCheck("Null", func(v any) bool { return v == nil })
)

// IsString accepts string values.
func IsString() Validator { return isString }

// IsBool accepts bool values.
func IsBool() Validator { return isBool }

// IsInt accepts integer values, including whole-valued floats and
// json.Number as produced by JSON decoding.
func IsInt() Validator { return isInt }

// IsDouble accepts floating-point values (and json.Number).
func IsDouble() Validator { return isDouble }

// IsNumber accepts any numeric value.
func IsNumber() Validator { return isNumber }

// IsMap accepts keyed maps.
func IsMap() Validator { return isMap }

// IsList accepts sequences.
func IsList() Validator { return isList }

// IsNull accepts only an explicit null.
func IsNull() Validator { return isNull }

func typeCheck(name string, ok func(any) bool) Validator {
	exp := Expectation{
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": name}),
		Data:    map[string]any{"expected": name},
	}
	vd := New(func(v any) Result {
		if ok(v) {
			return Valid(v)
		}
		e := exp
		e.Value = v
		e.Data = map[string]any{"expected": name, "actual": typeName(v)}
		return Invalid(v, e)
	})
	vd.expect = &exp
	return vd
}

// Gte accepts numeric values greater than or equal to min.
func Gte(min float64) Validator {
	return boundCheck(fmt.Sprintf("a value >= %v", min), map[string]any{"min": min},
		func(f float64) bool { return f >= min })
}

// Lte accepts numeric values less than or equal to max.
func Lte(max float64) Validator {
	return boundCheck(fmt.Sprintf("a value <= %v", max), map[string]any{"max": max},
		func(f float64) bool { return f <= max })
}

// InRange accepts numeric values within [min, max].
func InRange(min, max float64) Validator {
	return boundCheck(fmt.Sprintf("a value within [%v, %v]", min, max),
		map[string]any{"min": min, "max": max},
		func(f float64) bool { return f >= min && f <= max })
}

func boundCheck(msg string, data map[string]any, ok func(float64) bool) Validator {
	exp := Expectation{Code: CodeOutOfBounds, Message: msg, Data: data}
	vd := New(func(v any) Result {
		f, isNum := toFloat(v)
		if !isNum {
			return Invalid(v, typeExpectation("Num", v))
		}
		if !ok(f) {
			e := exp
			e.Value = v
			return Invalid(v, e)
		}
		return Valid(v)
	})
	vd.expect = &exp
	return vd
}

// Eq accepts values deeply equal to expected.
func Eq(expected any) Validator {
	exp := Expectation{
		Code:    CodeNotEqual,
		Message: fmt.Sprintf("a value equal to %s", renderValue(expected)),
		Data:    map[string]any{"expected": expected},
	}
	vd := New(func(v any) Result {
		if reflect.DeepEqual(v, expected) {
			return Valid(v)
		}
		e := exp
		e.Value = v
		return Invalid(v, e)
	})
	vd.expect = &exp
	return vd
}

// MinLen accepts strings, sequences, and maps of at least n elements.
func MinLen(n int) Validator {
	exp := Expectation{
		Code:    CodeTooShort,
		Message: fmt.Sprintf("a length of at least %d", n),
		Data:    map[string]any{"min": n},
	}
	vd := New(func(v any) Result {
		l, ok := lengthOf(v)
		if !ok {
			return Invalid(v, typeExpectation("String, List or Map", v))
		}
		if l < n {
			e := exp
			e.Value = v
			e.Data = map[string]any{"min": n, "actual": l}
			return Invalid(v, e)
		}
		return Valid(v)
	})
	vd.expect = &exp
	return vd
}

// MaxLen accepts strings, sequences, and maps of at most n elements.
func MaxLen(n int) Validator {
	exp := Expectation{
		Code:    CodeTooLong,
		Message: fmt.Sprintf("a length of at most %d", n),
		Data:    map[string]any{"max": n},
	}
	vd := New(func(v any) Result {
		l, ok := lengthOf(v)
		if !ok {
			return Invalid(v, typeExpectation("String, List or Map", v))
		}
		if l > n {
			e := exp
			e.Value = v
			e.Data = map[string]any{"max": n, "actual": l}
			return Invalid(v, e)
		}
		return Valid(v)
	})
	vd.expect = &exp
	return vd
}

// ---- dynamic value helpers ----

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len(t), true
	case []any:
		return len(t), true
	case map[string]any:
		return len(t), true
	default:
		return 0, false
	}
}

// toFloat widens any numeric representation a JSON-shaped payload can carry
// into a float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func isIntValue(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case json.Number:
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	default:
		return false
	}
}

func isDoubleValue(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, ok := toFloat(v)
		return ok
	default:
		return false
	}
}

// typeName names a dynamic value's nominal type for diagnostics.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "Null"
	case string:
		return "String"
	case bool:
		return "Bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "Int"
	case float32, float64:
		return "Double"
	case json.Number:
		return "Num"
	case map[string]any:
		return "Map"
	case []any:
		return "List"
	default:
		return reflect.TypeOf(v).String()
	}
}
