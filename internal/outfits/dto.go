package outfits

import (
	"time"

	"wardrobe-backend/internal/analysis"
)

// OutfitResponse is the outward-facing representation of an outfit.
type OutfitResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	ImageURL       string          `json:"imageUrl"`
	Name           string          `json:"name"`
	Tags           []string        `json:"tags"`
	AnalysisStatus string          `json:"analysisStatus"`
	Analysis       analysis.Result `json:"analysis,omitempty"`
	IsFavorite     bool            `json:"isFavorite"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToResponse converts an outfit to its response form. The analysis payload is
// only populated for completed records.
func ToResponse(o Outfit) OutfitResponse {
	resp := OutfitResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		ImageURL:       o.ImageURL,
		Name:           o.Name,
		Tags:           o.TagList(),
		AnalysisStatus: o.AnalysisStatus,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.AnalysisStatus == analysis.StatusCompleted {
		resp.Analysis = o.AnalysisResult
	}
	return resp
}

// ToResponses converts a slice of outfits, returning an empty slice rather
// than null for no results.
func ToResponses(outfits []Outfit) []OutfitResponse {
	out := make([]OutfitResponse, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, ToResponse(o))
	}
	return out
}
