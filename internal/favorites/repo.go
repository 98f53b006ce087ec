package favorites

import (
	"context"
	"errors"

	"wardrobe-backend/internal/outfits"
)

// ErrNotFound indicates the favorite does not exist.
var ErrNotFound = errors.New("favorite not found")

// Repo defines persistence operations for favorites.
type Repo interface {
	// Add marks an outfit as a favorite. Adding an existing favorite is a
	// no-op.
	Add(ctx context.Context, userID, outfitID string) error
	Remove(ctx context.Context, userID, outfitID string) error
	IsFavorite(ctx context.Context, userID, outfitID string) (bool, error)
	ListOutfitsByUser(ctx context.Context, userID string) ([]outfits.Outfit, error)
}
