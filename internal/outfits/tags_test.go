package outfits

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "lowercases and trims", in: "  Smart-Casual ", want: "smart-casual"},
		{name: "allows digits and spaces", in: "90s street", want: "90s street"},
		{name: "rejects empty", in: "   ", wantErr: true},
		{name: "rejects punctuation", in: "tag!", wantErr: true},
		{name: "rejects too long", in: strings.Repeat("a", MaxTagLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTag(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeTag(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("NormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitAndJoinTags(t *testing.T) {
	got := SplitTags(" casual, denim ,,weekend ")
	want := []string{"casual", "denim", "weekend"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitTags = %v, want %v", got, want)
	}
	if joined := JoinTags(got); joined != "casual,denim,weekend" {
		t.Fatalf("JoinTags = %q", joined)
	}
	if empty := SplitTags("   "); len(empty) != 0 {
		t.Fatalf("SplitTags on blank = %v", empty)
	}
}
