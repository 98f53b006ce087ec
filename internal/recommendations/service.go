package recommendations

import (
	"context"
	"errors"
	"time"

	"wardrobe-backend/internal/llm"
	"wardrobe-backend/internal/outfits"
)

// ErrNotReady indicates the outfit's analysis has not completed, so there is
// nothing to base suggestions on.
var ErrNotReady = errors.New("outfit analysis not completed")

// ErrBadModelOutput indicates the model response could not be parsed.
var ErrBadModelOutput = errors.New("unparseable model output")

// FavoriteLister exposes the favorites a recommendation prompt can mention.
type FavoriteLister interface {
	ListOutfitsByUser(ctx context.Context, userID string) ([]outfits.Outfit, error)
}

// Service generates styling recommendations from the user's wardrobe and an
// LLM. Now is swappable for tests and defaults to time.Now.
type Service struct {
	Outfits        outfits.Repo
	FavoriteLister FavoriteLister
	LLM            llm.Client
	Now            func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
