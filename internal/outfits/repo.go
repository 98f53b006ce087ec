package outfits

import (
	"context"

	"wardrobe-backend/internal/analysis"
)

// Repo defines persistence operations for outfits.
type Repo interface {
	Create(ctx context.Context, outfit Outfit) error
	GetByID(ctx context.Context, outfitID string) (Outfit, error)
	ListByUser(ctx context.Context, userID string) ([]Outfit, error)
	ListCompletedByUser(ctx context.Context, userID string) ([]Outfit, error)
	Search(ctx context.Context, userID, query string) ([]Outfit, error)
	SaveTags(ctx context.Context, outfitID, tags string) error
	Delete(ctx context.Context, outfitID string) error

	// UpdateAnalysisStatus is the driver's single write path. Updating a
	// record that has since been deleted is a no-op, not an error.
	UpdateAnalysisStatus(ctx context.Context, outfitID, status string, result analysis.Result) error
}
