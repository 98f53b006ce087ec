package analysis

import (
	"reflect"
	"testing"
)

func TestCanonicalizeColors(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "known names",
			in:   []string{"Red", "teal", "Navy"},
			want: []string{"#EF4444", "#14B8A6", "#000080"},
		},
		{
			name: "hex passthrough lowercased",
			in:   []string{"#112233", "#AABBCC"},
			want: []string{"#112233", "#aabbcc"},
		},
		{
			name: "unknown falls back",
			in:   []string{"notacolor", "#12", "chartreuse-ish"},
			want: []string{FallbackHex, FallbackHex, FallbackHex},
		},
		{
			name: "whitespace and case insensitive",
			in:   []string{"  Sky Blue ", "DARK GRAY"},
			want: []string{"#0EA5E9", "#374151"},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalizeColors(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("CanonicalizeColors(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeColorsIdempotent(t *testing.T) {
	in := []string{"Red", "#112233", "notacolor"}
	once := CanonicalizeColors(in)
	twice := CanonicalizeColors(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed output: %v vs %v", once, twice)
	}
}
