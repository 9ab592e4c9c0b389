package eskema

import (
	"bytes"
	"context"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/eskema/eskema/i18n"
)

// DecodeOpt bundles input-decoding options for the Validate* helpers.
type DecodeOpt struct {
	// UseNumber preserves JSON numbers as json.Number instead of float64.
	UseNumber bool
	// MaxBytes caps the input size; larger inputs fail with json.too_large.
	// Zero means no cap.
	MaxBytes int64
}

// ValidateJSON decodes a JSON document and validates the resulting dynamic
// value. Decoding failures are ordinary failing Results, not errors.
func ValidateJSON(vd Validator, data []byte, opts ...DecodeOpt) Result {
	v, exp := decodeJSON(data, lastOpt(opts))
	if exp != nil {
		return Invalid(nil, *exp)
	}
	return vd.Validate(v)
}

// ValidateJSONAsync is ValidateJSON for compositions that may contain
// asynchronous members.
func ValidateJSONAsync(ctx context.Context, vd Validator, data []byte, opts ...DecodeOpt) (Result, error) {
	v, exp := decodeJSON(data, lastOpt(opts))
	if exp != nil {
		return Invalid(nil, *exp), nil
	}
	return vd.ValidateAsync(ctx, v)
}

// ValidateJSONReader reads and validates a JSON document from r. When
// MaxBytes is set the cap is enforced up front.
func ValidateJSONReader(vd Validator, r io.Reader, opts ...DecodeOpt) Result {
	opt := lastOpt(opts)
	var data []byte
	var err error
	if opt.MaxBytes > 0 {
		data, err = io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
	} else {
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return Invalid(nil, Expectation{
			Code:    CodeMalformedJSON,
			Message: i18n.T(CodeMalformedJSON, nil),
			Data:    map[string]any{"error": err.Error()},
		})
	}
	return ValidateJSON(vd, data, opt)
}

// ValidateYAML decodes a YAML document and validates the resulting dynamic
// value. yaml.v3 yields the same map/sequence shapes JSON decoding does.
func ValidateYAML(vd Validator, data []byte, opts ...DecodeOpt) Result {
	v, exp := decodeYAML(data, lastOpt(opts))
	if exp != nil {
		return Invalid(nil, *exp)
	}
	return vd.Validate(v)
}

// ValidateYAMLAsync is ValidateYAML for compositions that may contain
// asynchronous members.
func ValidateYAMLAsync(ctx context.Context, vd Validator, data []byte, opts ...DecodeOpt) (Result, error) {
	v, exp := decodeYAML(data, lastOpt(opts))
	if exp != nil {
		return Invalid(nil, *exp), nil
	}
	return vd.ValidateAsync(ctx, v)
}

func lastOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return DecodeOpt{}
}

func decodeJSON(data []byte, opt DecodeOpt) (any, *Expectation) {
	if exp := checkSize(len(data), opt); exp != nil {
		return nil, exp
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if opt.UseNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &Expectation{
			Code:    CodeMalformedJSON,
			Message: i18n.T(CodeMalformedJSON, nil),
			Data:    map[string]any{"error": err.Error()},
		}
	}
	return v, nil
}

func decodeYAML(data []byte, opt DecodeOpt) (any, *Expectation) {
	if exp := checkSize(len(data), opt); exp != nil {
		return nil, exp
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &Expectation{
			Code:    CodeMalformedYAML,
			Message: i18n.T(CodeMalformedYAML, nil),
			Data:    map[string]any{"error": err.Error()},
		}
	}
	return v, nil
}

func checkSize(n int, opt DecodeOpt) *Expectation {
	if opt.MaxBytes > 0 && int64(n) > opt.MaxBytes {
		return &Expectation{
			Code:    CodeTooLarge,
			Message: i18n.T(CodeTooLarge, nil),
			Data:    map[string]any{"max_bytes": opt.MaxBytes, "actual": n},
		}
	}
	return nil
}
