package recommendations

import (
	"errors"
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	raw := "Here you go:\n[{\"day_name\": \"Monday\"}, {\"day_name\": \"Tuesday\"}]\nEnjoy."

	entries, err := ExtractJSONArray(raw)
	if err != nil {
		t.Fatalf("ExtractJSONArray: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["day_name"] != "Monday" {
		t.Fatalf("first entry = %v", entries[0])
	}
}

func TestExtractJSONArrayTrailingComma(t *testing.T) {
	raw := `[{"title": "Look one"}, {"title": "Look two"},]`

	entries, err := ExtractJSONArray(raw)
	if err != nil {
		t.Fatalf("ExtractJSONArray with trailing comma: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestExtractJSONArrayMissing(t *testing.T) {
	if _, err := ExtractJSONArray("no array here"); !errors.Is(err, ErrBadModelOutput) {
		t.Fatalf("expected ErrBadModelOutput, got %v", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	raw := "```json\n[1, 2]\n```"
	if got := StripCodeFences(raw); got != "[1, 2]" {
		t.Fatalf("StripCodeFences = %q", got)
	}
}

func TestExtractJSONObjectSmartQuotes(t *testing.T) {
	raw := "{“advice”: “layer up”}"

	data, err := ExtractJSONObject(raw)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if data["advice"] != "layer up" {
		t.Fatalf("advice = %v", data["advice"])
	}
}
