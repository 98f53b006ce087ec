package analysis

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeFencedResponse(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"description\": \"casual look\", \"colors\": [\"Red\", \"#112233\", \"notacolor\"]}\n```\nHope that helps!"

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if result["description"] != "casual look" {
		t.Fatalf("description = %v", result["description"])
	}

	want := []string{"#EF4444", "#112233", FallbackHex}
	if got, _ := result["colors"].([]string); !reflect.DeepEqual(got, want) {
		t.Fatalf("colors = %v, want %v", result["colors"], want)
	}
}

func TestNormalizeNoObject(t *testing.T) {
	if _, err := Normalize("the model refused to answer"); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v", err)
	}
}

func TestNormalizeInvalidJSON(t *testing.T) {
	if _, err := Normalize("{not valid json}"); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestNormalizeWithoutColors(t *testing.T) {
	result, err := Normalize(`{"description": "plain"}`)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, ok := result["colors"]; ok {
		t.Fatalf("colors key should be absent, got %v", result["colors"])
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare object", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "prose around object", raw: `sure: {"a":1} done`, want: `{"a":1}`},
		{name: "nested braces", raw: `x {"a":{"b":2}} y`, want: `{"a":{"b":2}}`},
		{name: "no braces", raw: "nothing here", wantErr: true},
		{name: "reversed braces", raw: "} {", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSONObject) {
					t.Fatalf("expected ErrNoJSONObject, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONObject: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
