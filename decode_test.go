package eskema_test

import (
	"strings"
	"testing"

	eskema "github.com/eskema/eskema"
)

func TestValidateJSON_MatchesPreDecodedValidation(t *testing.T) {
	schema := eskema.Eskema(
		eskema.F("name", eskema.IsString()),
		eskema.F("age", eskema.All(eskema.IsInt(), eskema.Gte(0))),
	)
	r := eskema.ValidateJSON(schema, []byte(`{"name":"reo","age":3}`))
	if !r.IsValid() {
		t.Fatalf("unexpected failure: %#v", r.Expectations)
	}
	r = eskema.ValidateJSON(schema, []byte(`{"name":"reo","age":-1}`))
	if r.IsValid() || r.Expectations[0].Path != ".age" {
		t.Fatalf("expected .age failure, got %#v", r.Expectations)
	}
}

func TestValidateJSON_MalformedInputIsAFailingResult(t *testing.T) {
	r := eskema.ValidateJSON(eskema.IsMap(), []byte(`{"name":`))
	if r.IsValid() {
		t.Fatalf("expected failure")
	}
	if r.Expectations[0].Code != eskema.CodeMalformedJSON {
		t.Fatalf("expected json.malformed, got %q", r.Expectations[0].Code)
	}
}

func TestValidateJSON_MaxBytes(t *testing.T) {
	r := eskema.ValidateJSON(eskema.IsMap(), []byte(`{"a":"bbbbbbbb"}`), eskema.DecodeOpt{MaxBytes: 4})
	if r.IsValid() || r.Expectations[0].Code != eskema.CodeTooLarge {
		t.Fatalf("expected json.too_large, got %#v", r)
	}
}

func TestValidateJSONReader(t *testing.T) {
	schema := eskema.Eskema(eskema.F("ok", eskema.IsBool()))
	r := eskema.ValidateJSONReader(schema, strings.NewReader(`{"ok":true}`))
	if !r.IsValid() {
		t.Fatalf("unexpected failure: %#v", r.Expectations)
	}
	r = eskema.ValidateJSONReader(schema, strings.NewReader(`{"ok":true}`), eskema.DecodeOpt{MaxBytes: 3})
	if r.IsValid() || r.Expectations[0].Code != eskema.CodeTooLarge {
		t.Fatalf("expected json.too_large, got %#v", r)
	}
}

func TestValidateJSON_UseNumberKeepsIntegersIntact(t *testing.T) {
	schema := eskema.Eskema(eskema.F("n", eskema.IsInt()))
	r := eskema.ValidateJSON(schema, []byte(`{"n":9007199254740993}`), eskema.DecodeOpt{UseNumber: true})
	if !r.IsValid() {
		t.Fatalf("unexpected failure: %#v", r.Expectations)
	}
}

func TestValidateYAML(t *testing.T) {
	schema := eskema.Eskema(
		eskema.F("name", eskema.IsString()),
		eskema.F("tags", eskema.ListEach(eskema.IsString())),
	)
	doc := []byte("name: reo\ntags:\n  - dev\n  - go\n")
	r := eskema.ValidateYAML(schema, doc)
	if !r.IsValid() {
		t.Fatalf("unexpected failure: %#v", r.Expectations)
	}

	bad := []byte("name: reo\ntags:\n  - 1\n")
	r = eskema.ValidateYAML(schema, bad)
	if r.IsValid() || r.Expectations[0].Path != ".tags[0]" {
		t.Fatalf("expected .tags[0] failure, got %#v", r.Expectations)
	}
}

func TestValidateYAML_Malformed(t *testing.T) {
	r := eskema.ValidateYAML(eskema.IsMap(), []byte("a: [unclosed"))
	if r.IsValid() || r.Expectations[0].Code != eskema.CodeMalformedYAML {
		t.Fatalf("expected yaml.malformed, got %#v", r)
	}
}
