package eskema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Expectation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "type.invalid"
	CodeKeyRequired    = "map.key_required"
	CodeUnknownKey     = "map.unknown_key"
	CodeLengthMismatch = "list.length_mismatch"
	CodeOutOfBounds    = "value.range_out_of_bounds"
	CodeNotEqual       = "value.not_equal"
	CodeTooShort       = "value.too_short"
	CodeTooLong        = "value.too_long"
	CodeInvalidValue   = "value.invalid"
	CodeCoerceFailed   = "coerce.failed"
	// Misuse signals (programming errors surfaced as distinguishable failures)
	CodeParentRequired = "misuse.parent_required"
	// Input decoding failures
	CodeMalformedJSON = "json.malformed"
	CodeTooLarge      = "json.too_large"
	CodeMalformedYAML = "yaml.malformed"
)

// Expectation describes one failed constraint: what was expected, the value
// that failed, and where inside a nested structure the failure occurred.
// Expectations are pure value objects; modifiers return copies.
type Expectation struct {
	Message string // Noun phrase completing "expected ..." (for example: a value of type String).
	Value   any    // The value that failed the constraint.
	Path    string // Dotted/bracketed location (for example: .user[2].age). Empty at the root.
	Code    string // Namespaced machine-readable code (for example: value.range_out_of_bounds).
	// Data carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and programmatic handling.
	Data map[string]any
}

// WithMessage returns a copy with the message replaced.
func (e Expectation) WithMessage(msg string) Expectation {
	e.Message = msg
	return e
}

// WithValue returns a copy with the failing value replaced.
func (e Expectation) WithValue(v any) Expectation {
	e.Value = v
	return e
}

// WithPathPrefix returns a copy with seg prepended to the path. Structural
// validators use this to qualify child failures as they propagate up.
func (e Expectation) WithPathPrefix(seg string) Expectation {
	e.Path = seg + e.Path
	return e
}

// Negated returns a copy whose message is rewritten to "not <message>".
// The code and data are preserved so programmatic handling keeps working.
func (e Expectation) Negated() Expectation {
	e.Message = "not " + e.Message
	return e
}

// String renders the expectation as "<path>: expected <message> (value: <v>)".
func (e Expectation) String() string {
	path := e.Path
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("%s: expected %s (value: %s)", path, e.Message, renderValue(e.Value))
}

// renderValue pretty-prints a dynamic value for diagnostics. JSON encoding is
// used when possible so strings stay quoted and structures stay readable.
func renderValue(v any) string {
	if v == nil {
		return "null"
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
