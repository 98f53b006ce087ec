package outfits

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"wardrobe-backend/internal/analysis"
)

// MemoryRepo stores outfits in memory and is safe for concurrent use. It backs
// dev mode without a database and the handler/service tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Outfit
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Outfit)}
}

// Create stores the outfit.
func (r *MemoryRepo) Create(ctx context.Context, outfit Outfit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	outfit.AnalysisStatus = analysis.StatusPending
	outfit.AnalysisResult = nil
	outfit.UpdatedAt = outfit.CreatedAt
	r.byID[outfit.ID] = outfit
	return nil
}

// GetByID returns an outfit by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, outfitID string) (Outfit, error) {
	if err := ctx.Err(); err != nil {
		return Outfit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	outfit, ok := r.byID[outfitID]
	if !ok {
		return Outfit{}, ErrNotFound
	}
	return outfit, nil
}

// ListByUser returns all outfits for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Outfit, error) {
	return r.list(ctx, userID, func(Outfit) bool { return true })
}

// ListCompletedByUser returns completed outfits for a user, newest first.
func (r *MemoryRepo) ListCompletedByUser(ctx context.Context, userID string) ([]Outfit, error) {
	return r.list(ctx, userID, func(o Outfit) bool {
		return o.AnalysisStatus == analysis.StatusCompleted
	})
}

// Search matches the query case-insensitively against name, tags, and the
// analysis result payload, mirroring the Postgres text match.
func (r *MemoryRepo) Search(ctx context.Context, userID, query string) ([]Outfit, error) {
	q := strings.ToLower(query)
	return r.list(ctx, userID, func(o Outfit) bool {
		return strings.Contains(strings.ToLower(o.Name), q) ||
			strings.Contains(strings.ToLower(o.Tags), q) ||
			strings.Contains(strings.ToLower(resultText(o.AnalysisResult)), q)
	})
}

func resultText(result analysis.Result) string {
	if result == nil {
		return ""
	}
	data, err := json.Marshal(result)
	if err != nil {
		return ""
	}
	return string(data)
}

// SaveTags overwrites the stored tags.
func (r *MemoryRepo) SaveTags(ctx context.Context, outfitID, tags string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	outfit, ok := r.byID[outfitID]
	if !ok {
		return ErrNotFound
	}
	outfit.Tags = tags
	outfit.UpdatedAt = time.Now().UTC()
	r.byID[outfitID] = outfit
	return nil
}

// Delete removes an outfit.
func (r *MemoryRepo) Delete(ctx context.Context, outfitID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[outfitID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, outfitID)
	return nil
}

// UpdateAnalysisStatus writes the terminal analysis state. A missing record is
// a no-op to mirror the zero-rows-affected behavior of the SQL repo.
func (r *MemoryRepo) UpdateAnalysisStatus(ctx context.Context, outfitID, status string, result analysis.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	outfit, ok := r.byID[outfitID]
	if !ok {
		return nil
	}
	outfit.AnalysisStatus = status
	outfit.AnalysisResult = result
	outfit.UpdatedAt = time.Now().UTC()
	r.byID[outfitID] = outfit
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

func (r *MemoryRepo) list(ctx context.Context, userID string, keep func(Outfit) bool) ([]Outfit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Outfit
	for _, outfit := range r.byID {
		if outfit.UserID == userID && keep(outfit) {
			out = append(out, outfit)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
