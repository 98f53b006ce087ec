package analysis

import (
	"regexp"
	"strings"
)

// FallbackHex is used for color names the table does not know. The UI renders
// every entry as a swatch, so an unrecognized name must still become a hex code.
const FallbackHex = "#9CA3AF"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// colorNameToHex maps common color names from model output to display hex codes.
var colorNameToHex = map[string]string{
	"red":        "#EF4444",
	"crimson":    "#DC143C",
	"dark red":   "#8B0000",
	"pink":       "#EC4899",
	"rose":       "#F43F5E",
	"orange":     "#F97316",
	"amber":      "#FBBF24",
	"yellow":     "#FBBF24",
	"lime":       "#84CC16",
	"green":      "#22C55E",
	"emerald":    "#10B981",
	"teal":       "#14B8A6",
	"cyan":       "#06B6D4",
	"blue":       "#3B82F6",
	"sky blue":   "#0EA5E9",
	"indigo":     "#4F46E5",
	"purple":     "#A855F7",
	"violet":     "#7C3AED",
	"magenta":    "#D946EF",
	"white":      "#FFFFFF",
	"gray":       "#6B7280",
	"grey":       "#6B7280",
	"dark gray":  "#374151",
	"light gray": "#D1D5DB",
	"black":      "#000000",
	"navy":       "#000080",
	"brown":      "#92400E",
	"gold":       "#FFD700",
	"silver":     "#C0C0C0",
	"beige":      "#F5F5DC",
	"cream":      "#FFFDD0",
	"olive":      "#808000",
	"maroon":     "#800000",
	"peach":      "#FFDAB9",
	"lavender":   "#E6E6FA",
	"charcoal":   "#36454F",
}

// CanonicalizeColors maps each entry to a hex code: valid hex strings pass
// through, known names are looked up case-insensitively, and everything else
// degrades to FallbackHex. It never fails and is idempotent.
func CanonicalizeColors(colors []string) []string {
	out := make([]string, 0, len(colors))
	for _, color := range colors {
		c := strings.ToLower(strings.TrimSpace(color))
		if hexColorPattern.MatchString(c) {
			out = append(out, c)
			continue
		}
		if hex, ok := colorNameToHex[c]; ok {
			out = append(out, hex)
			continue
		}
		out = append(out, FallbackHex)
	}
	return out
}
