package outfits

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxTagsPerOutfit caps how many tags one outfit can carry.
const MaxTagsPerOutfit = 15

// MaxTagLength caps the length of a single normalized tag.
const MaxTagLength = 30

// NormalizeTag lowercases and trims a tag and validates its shape. Tags are
// limited to letters, digits, spaces, and hyphens.
func NormalizeTag(raw string) (string, error) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidInput)
	}
	if len(tag) > MaxTagLength {
		return "", fmt.Errorf("%w: tag longer than %d characters", ErrInvalidInput, MaxTagLength)
	}
	for _, r := range tag {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			continue
		}
		return "", fmt.Errorf("%w: tag contains invalid character %q", ErrInvalidInput, r)
	}
	return tag, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func removeTag(tags []string, tag string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
