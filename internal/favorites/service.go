package favorites

import (
	"context"

	"wardrobe-backend/internal/outfits"
)

// Service contains business logic for favorites. Every operation verifies the
// outfit exists and belongs to the caller before touching the favorite.
type Service struct {
	Repo    Repo
	Outfits outfits.Repo
}

// Add favorites an outfit. Favoriting twice is a no-op.
func (s *Service) Add(ctx context.Context, userID, outfitID string) error {
	if err := s.authorize(ctx, userID, outfitID); err != nil {
		return err
	}
	return s.Repo.Add(ctx, userID, outfitID)
}

// Remove unfavorites an outfit.
func (s *Service) Remove(ctx context.Context, userID, outfitID string) error {
	if err := s.authorize(ctx, userID, outfitID); err != nil {
		return err
	}
	return s.Repo.Remove(ctx, userID, outfitID)
}

// IsFavorite reports whether the user has favorited the outfit.
func (s *Service) IsFavorite(ctx context.Context, userID, outfitID string) (bool, error) {
	return s.Repo.IsFavorite(ctx, userID, outfitID)
}

// List returns the user's favorited outfits.
func (s *Service) List(ctx context.Context, userID string) ([]outfits.Outfit, error) {
	if userID == "" {
		return nil, outfits.ErrInvalidInput
	}
	return s.Repo.ListOutfitsByUser(ctx, userID)
}

func (s *Service) authorize(ctx context.Context, userID, outfitID string) error {
	if userID == "" || outfitID == "" {
		return outfits.ErrInvalidInput
	}
	outfit, err := s.Outfits.GetByID(ctx, outfitID)
	if err != nil {
		return err
	}
	if outfit.UserID != userID {
		return outfits.ErrForbidden
	}
	return nil
}
