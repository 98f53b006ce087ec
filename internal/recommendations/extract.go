package recommendations

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFencePattern     = regexp.MustCompile("```(?:json)?\\s*")
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// StripCodeFences removes markdown code fences the model sometimes wraps its
// JSON in.
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
}

// SanitizeJSON applies best-effort cleanup to JSON-like model output: smart
// quotes become plain quotes and trailing commas are removed.
func SanitizeJSON(raw string) string {
	raw = strings.NewReplacer("“", `"`, "”", `"`).Replace(raw)
	raw = trailingCommaPattern.ReplaceAllString(raw, "$1")
	return strings.TrimSpace(raw)
}

// ExtractJSONArray slices the first '[' through the last ']' out of the text
// and parses it, retrying once after sanitization.
func ExtractJSONArray(text string) ([]map[string]any, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array found", ErrBadModelOutput)
	}
	raw := text[start : end+1]

	var out []map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	return out, nil
}

// ExtractJSONObject slices the first '{' through the last '}' out of the text
// and parses it, retrying once after sanitization.
func ExtractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrBadModelOutput)
	}
	raw := text[start : end+1]

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	return out, nil
}
