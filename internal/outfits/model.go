package outfits

import (
	"strings"
	"time"

	"wardrobe-backend/internal/analysis"
)

// Outfit represents one uploaded wardrobe item and its analysis state.
type Outfit struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	ImageURL       string          `json:"imageUrl"`
	StorageKey     string          `json:"-"`
	Name           string          `json:"name"`
	Tags           string          `json:"-"`
	AnalysisStatus string          `json:"analysisStatus"`
	AnalysisResult analysis.Result `json:"analysis,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TagList splits the comma-joined tags column into a clean slice.
func (o Outfit) TagList() []string {
	return SplitTags(o.Tags)
}

// SplitTags parses a comma-joined tag string, dropping empty entries.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinTags renders a tag slice back into the stored comma-joined form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
