package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"wardrobe-backend/internal/outfits"
)

type favoriteKey struct {
	userID   string
	outfitID string
}

// MemoryRepo stores favorites in memory and is safe for concurrent use. It
// joins against an outfit repo to list favorited outfits.
type MemoryRepo struct {
	mu      sync.RWMutex
	marked  map[favoriteKey]time.Time
	Outfits outfits.Repo
}

// NewMemoryRepo constructs a MemoryRepo backed by the given outfit repo.
func NewMemoryRepo(outfitRepo outfits.Repo) *MemoryRepo {
	return &MemoryRepo{
		marked:  make(map[favoriteKey]time.Time),
		Outfits: outfitRepo,
	}
}

// Add marks the outfit as a favorite; re-adding is a no-op.
func (r *MemoryRepo) Add(ctx context.Context, userID, outfitID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoriteKey{userID, outfitID}
	if _, ok := r.marked[key]; !ok {
		r.marked[key] = time.Now().UTC()
	}
	return nil
}

// Remove deletes the favorite.
func (r *MemoryRepo) Remove(ctx context.Context, userID, outfitID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoriteKey{userID, outfitID}
	if _, ok := r.marked[key]; !ok {
		return ErrNotFound
	}
	delete(r.marked, key)
	return nil
}

// IsFavorite reports whether the user has favorited the outfit.
func (r *MemoryRepo) IsFavorite(ctx context.Context, userID, outfitID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.marked[favoriteKey{userID, outfitID}]
	return ok, nil
}

// ListOutfitsByUser returns the user's favorited outfits, most recently
// favorited first. Favorites pointing at deleted outfits are skipped.
func (r *MemoryRepo) ListOutfitsByUser(ctx context.Context, userID string) ([]outfits.Outfit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type entry struct {
		outfitID string
		at       time.Time
	}

	r.mu.RLock()
	var entries []entry
	for key, at := range r.marked {
		if key.userID == userID {
			entries = append(entries, entry{key.outfitID, at})
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})

	var out []outfits.Outfit
	for _, e := range entries {
		outfit, err := r.Outfits.GetByID(ctx, e.outfitID)
		if err != nil {
			continue
		}
		out = append(out, outfit)
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
