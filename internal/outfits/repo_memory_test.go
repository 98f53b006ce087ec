package outfits

import (
	"context"
	"testing"
	"time"

	"wardrobe-backend/internal/analysis"
)

func TestMemorySearchMatchesAnalysisContent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, Outfit{
		ID:        "outfit-1",
		UserID:    "user-1",
		Name:      "evening look",
		Tags:      "formal",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	result := analysis.Result{
		"clothing_items": []any{"velvet blazer", "silk shirt"},
		"styles":         []any{"elegant"},
	}
	if err := repo.UpdateAnalysisStatus(ctx, "outfit-1", analysis.StatusCompleted, result); err != nil {
		t.Fatalf("UpdateAnalysisStatus: %v", err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"evening", 1},
		{"formal", 1},
		{"velvet", 1},
		{"Elegant", 1},
		{"corduroy", 0},
	}
	for _, tt := range tests {
		matches, err := repo.Search(ctx, "user-1", tt.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		if len(matches) != tt.want {
			t.Fatalf("Search(%q) = %d matches, want %d", tt.query, len(matches), tt.want)
		}
	}
}

func TestMemorySearchSkipsPendingResult(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, Outfit{
		ID:        "outfit-1",
		UserID:    "user-1",
		Name:      "plain look",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	matches, err := repo.Search(ctx, "user-1", "velvet")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}
