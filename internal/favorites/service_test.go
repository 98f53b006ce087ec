package favorites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"wardrobe-backend/internal/outfits"
)

func seedOutfit(t *testing.T, repo outfits.Repo, userID string) outfits.Outfit {
	t.Helper()
	outfit := outfits.Outfit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      "seeded look",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), outfit); err != nil {
		t.Fatalf("seed outfit: %v", err)
	}
	return outfit
}

func newService(t *testing.T) (*Service, outfits.Repo) {
	t.Helper()
	outfitRepo := outfits.NewMemoryRepo()
	svc := &Service{
		Repo:    NewMemoryRepo(outfitRepo),
		Outfits: outfitRepo,
	}
	return svc, outfitRepo
}

func TestAddIsIdempotent(t *testing.T) {
	svc, outfitRepo := newService(t)
	outfit := seedOutfit(t, outfitRepo, "user-1")
	ctx := context.Background()

	if err := svc.Add(ctx, "user-1", outfit.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, "user-1", outfit.ID); err != nil {
		t.Fatalf("second Add should be a no-op, got %v", err)
	}

	fav, err := svc.IsFavorite(ctx, "user-1", outfit.ID)
	if err != nil || !fav {
		t.Fatalf("IsFavorite = %v, %v", fav, err)
	}

	listed, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(listed))
	}
}

func TestAddRejectsForeignOutfit(t *testing.T) {
	svc, outfitRepo := newService(t)
	outfit := seedOutfit(t, outfitRepo, "owner")

	err := svc.Add(context.Background(), "intruder", outfit.ID)
	if !errors.Is(err, outfits.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAddMissingOutfit(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Add(context.Background(), "user-1", "no-such-outfit")
	if !errors.Is(err, outfits.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	svc, outfitRepo := newService(t)
	outfit := seedOutfit(t, outfitRepo, "user-1")
	ctx := context.Background()

	if err := svc.Add(ctx, "user-1", outfit.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(ctx, "user-1", outfit.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(ctx, "user-1", outfit.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSkipsDeletedOutfits(t *testing.T) {
	svc, outfitRepo := newService(t)
	outfit := seedOutfit(t, outfitRepo, "user-1")
	ctx := context.Background()

	if err := svc.Add(ctx, "user-1", outfit.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := outfitRepo.Delete(ctx, outfit.ID); err != nil {
		t.Fatalf("Delete outfit: %v", err)
	}

	listed, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected 0 favorites after outfit delete, got %d", len(listed))
	}
}
