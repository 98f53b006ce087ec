package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSONObject indicates the raw text contained no {...} region.
	ErrNoJSONObject = errors.New("no JSON object found in response")
	// ErrInvalidJSON indicates the extracted region was not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON in response")
)

// Result is the analysis payload persisted for a completed record. Every key
// is optional; readers must not assume any shape beyond "colors is a list of
// hex strings when present".
type Result map[string]any

// ExtractJSONObject slices the raw model text from the first '{' to the last
// '}' inclusive. Providers wrap the object in prose or markdown fences; the
// slice-then-parse contract keeps extraction deterministic and testable apart
// from the network call.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSONObject
	}
	return raw[start : end+1], nil
}

// Normalize extracts a JSON object from raw response text, parses it, and
// canonicalizes the colors field when present. Extraction and parse failures
// are reported distinctly; color canonicalization never fails.
func Normalize(raw string) (Result, error) {
	extracted, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal([]byte(extracted), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if rawColors, ok := result["colors"].([]any); ok {
		colors := make([]string, 0, len(rawColors))
		for _, c := range rawColors {
			if s, ok := c.(string); ok {
				colors = append(colors, s)
			}
		}
		result["colors"] = CanonicalizeColors(colors)
	}

	return result, nil
}
