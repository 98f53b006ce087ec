package outfits

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"wardrobe-backend/internal/analysis"
	"wardrobe-backend/internal/queue"
	"wardrobe-backend/internal/shared/storage/object"
	"wardrobe-backend/internal/shared/telemetry"
)

const (
	minUploadBytes = 1 << 10  // reject thumbnails and truncated uploads
	maxUploadBytes = 10 << 20 // 10MB
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Service contains business logic for outfits. Uploads persist a pending
// record and return immediately; the analysis runs detached, either via the
// queue or an in-process goroutine when no queue is configured.
type Service struct {
	Repo          Repo
	Store         object.ObjectStore
	Queue         queue.Client
	Driver        *analysis.Driver
	PublicBaseURL string
}

// Upload stores the image, records the outfit as pending, and schedules the
// analysis. The returned outfit never carries a result.
func (s *Service) Upload(ctx context.Context, userID, name string, tags []string, fileName string, r io.Reader) (Outfit, error) {
	if userID == "" {
		return Outfit{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if fileName == "" {
		return Outfit{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return Outfit{}, fmt.Errorf("%w: file type %q is not supported", ErrInvalidInput, ext)
	}

	normalized, err := normalizeTags(tags)
	if err != nil {
		return Outfit{}, err
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return Outfit{}, err
	}
	if size < minUploadBytes || size > maxUploadBytes {
		s.discardObject(ctx, storageKey)
		return Outfit{}, fmt.Errorf("%w: file size must be between 1KB and 10MB", ErrInvalidInput)
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(fileName), ext)
	}

	now := time.Now().UTC()
	outfit := Outfit{
		ID:             uuid.NewString(),
		UserID:         userID,
		ImageURL:       s.imageURL(storageKey),
		StorageKey:     storageKey,
		Name:           name,
		Tags:           JoinTags(normalized),
		AnalysisStatus: analysis.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(ctx, outfit); err != nil {
		s.discardObject(ctx, storageKey)
		return Outfit{}, err
	}

	s.scheduleAnalysis(ctx, outfit)

	return outfit, nil
}

// Get returns an outfit after checking ownership. The analysis result is only
// exposed once the status is completed.
func (s *Service) Get(ctx context.Context, userID, outfitID string) (Outfit, error) {
	outfit, err := s.authorize(ctx, userID, outfitID)
	if err != nil {
		return Outfit{}, err
	}
	if outfit.AnalysisStatus != analysis.StatusCompleted {
		outfit.AnalysisResult = nil
	}
	return outfit, nil
}

// List returns the user's outfits, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Outfit, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Search matches the query against name, tags, and analysis content.
func (s *Service) Search(ctx context.Context, userID, query string) ([]Outfit, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.Repo.Search(ctx, userID, query)
}

// Delete removes the outfit row and then its stored image. The image delete
// is best-effort; an orphaned object is preferable to a dangling row.
func (s *Service) Delete(ctx context.Context, userID, outfitID string) error {
	outfit, err := s.authorize(ctx, userID, outfitID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, outfitID); err != nil {
		return err
	}
	s.discardObject(ctx, outfit.StorageKey)
	return nil
}

// AddTag appends a normalized tag to the outfit.
func (s *Service) AddTag(ctx context.Context, userID, outfitID, raw string) (Outfit, error) {
	tag, err := NormalizeTag(raw)
	if err != nil {
		return Outfit{}, err
	}
	outfit, err := s.authorize(ctx, userID, outfitID)
	if err != nil {
		return Outfit{}, err
	}

	tags := outfit.TagList()
	if containsTag(tags, tag) {
		return Outfit{}, ErrTagExists
	}
	if len(tags) >= MaxTagsPerOutfit {
		return Outfit{}, ErrTagLimit
	}
	tags = append(tags, tag)

	outfit.Tags = JoinTags(tags)
	if err := s.Repo.SaveTags(ctx, outfitID, outfit.Tags); err != nil {
		return Outfit{}, err
	}
	return outfit, nil
}

// RemoveTag removes a tag from the outfit.
func (s *Service) RemoveTag(ctx context.Context, userID, outfitID, raw string) (Outfit, error) {
	tag, err := NormalizeTag(raw)
	if err != nil {
		return Outfit{}, err
	}
	outfit, err := s.authorize(ctx, userID, outfitID)
	if err != nil {
		return Outfit{}, err
	}

	tags := outfit.TagList()
	if !containsTag(tags, tag) {
		return Outfit{}, ErrTagNotFound
	}
	tags = removeTag(tags, tag)

	outfit.Tags = JoinTags(tags)
	if err := s.Repo.SaveTags(ctx, outfitID, outfit.Tags); err != nil {
		return Outfit{}, err
	}
	return outfit, nil
}

func (s *Service) authorize(ctx context.Context, userID, outfitID string) (Outfit, error) {
	if userID == "" {
		return Outfit{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	outfit, err := s.Repo.GetByID(ctx, outfitID)
	if err != nil {
		return Outfit{}, err
	}
	if outfit.UserID != userID {
		return Outfit{}, ErrForbidden
	}
	return outfit, nil
}

// scheduleAnalysis hands the outfit to the queue, or runs the driver in a
// detached goroutine when no queue is configured. Either way the upload
// request does not wait on the analysis.
func (s *Service) scheduleAnalysis(ctx context.Context, outfit Outfit) {
	// The storage key resolves through the object store on whichever process
	// runs the driver; the public URL is only a fallback for legacy rows.
	imageRef := outfit.StorageKey
	if imageRef == "" {
		imageRef = outfit.ImageURL
	}

	if s.Queue != nil {
		msg := queue.Message{
			OutfitID:   outfit.ID,
			ImageRef:   imageRef,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Error("outfits.enqueue_failed", map[string]any{
			"outfit_id": outfit.ID,
			"error":     err.Error(),
		})
	}

	if s.Driver == nil {
		telemetry.Warn("outfits.analysis_skipped", map[string]any{"outfit_id": outfit.ID})
		return
	}
	go s.Driver.Run(backgroundWithRequestID(ctx), imageRef, outfit.ID)
}

func (s *Service) imageURL(storageKey string) string {
	base := strings.TrimRight(s.PublicBaseURL, "/")
	return base + "/uploads/" + storageKey
}

func (s *Service) discardObject(ctx context.Context, storageKey string) {
	if storageKey == "" {
		return
	}
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Warn("outfits.object_delete_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}

func normalizeTags(raw []string) ([]string, error) {
	if len(raw) > MaxTagsPerOutfit {
		return nil, ErrTagLimit
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		tag, err := NormalizeTag(r)
		if err != nil {
			return nil, err
		}
		if !containsTag(out, tag) {
			out = append(out, tag)
		}
	}
	return out, nil
}
