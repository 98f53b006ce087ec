package recommendations

import (
	"context"
	"fmt"
	"strings"

	"wardrobe-backend/internal/analysis"
	"wardrobe-backend/internal/outfits"
)

// MatchingSuggestion is one complementary-piece suggestion for an outfit.
type MatchingSuggestion struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Tip      string `json:"tip,omitempty"`
}

// Matching suggests pieces that pair with a completed outfit, using the
// user's other outfits as style context.
func (s *Service) Matching(ctx context.Context, userID, outfitID string) ([]MatchingSuggestion, error) {
	outfit, err := s.Outfits.GetByID(ctx, outfitID)
	if err != nil {
		return nil, err
	}
	if outfit.UserID != userID {
		return nil, outfits.ErrForbidden
	}
	if outfit.AnalysisStatus != analysis.StatusCompleted || outfit.AnalysisResult == nil {
		return nil, ErrNotReady
	}

	prompt := s.buildMatchingPrompt(ctx, outfit)

	raw, err := s.LLM.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	entries, err := ExtractJSONArray(StripCodeFences(raw))
	if err != nil {
		return nil, err
	}

	suggestions := make([]MatchingSuggestion, 0, len(entries))
	for _, entry := range entries {
		var ms MatchingSuggestion
		ms.Category, _ = entry["category"].(string)
		ms.Title, _ = entry["title"].(string)
		ms.Why, _ = entry["why"].(string)
		ms.Tip, _ = entry["tip"].(string)
		suggestions = append(suggestions, ms)
	}
	return suggestions, nil
}

func (s *Service) buildMatchingPrompt(ctx context.Context, outfit outfits.Outfit) string {
	result := outfit.AnalysisResult

	var others strings.Builder
	completed, err := s.Outfits.ListCompletedByUser(ctx, outfit.UserID)
	if err == nil {
		count := 0
		for _, o := range completed {
			if o.ID == outfit.ID || o.AnalysisResult == nil {
				continue
			}
			if count == 5 {
				break
			}
			items := stringSlice(o.AnalysisResult["clothing_items"])
			colors := stringSlice(o.AnalysisResult["colors"])
			fmt.Fprintf(&others, "- %s: %s | Colors: %s\n",
				o.Name, strings.Join(head(items, 3), ", "), strings.Join(head(colors, 2), ", "))
			count++
		}
	}
	otherContext := ""
	if others.Len() > 0 {
		otherContext = "\nUser's other outfits for reference:\n" + others.String()
	}

	return fmt.Sprintf(`You are a professional fashion stylist and color theory expert. Analyze the following outfit and provide matching suggestions.

CURRENT OUTFIT:
Name: %s
Detected Items: %s
Colors: %s
Style Tags: %s
%s
Based on color theory, style compatibility, and fashion best practices, provide 3-4 matching suggestions.

For each suggestion, provide:
1. Item Category (e.g., "Footwear", "Outerwear", "Accessory", "Bottom", "Top")
2. Recommendation Title (e.g., "White Minimalist Sneakers")
3. Why it works (one concise sentence explaining color/style compatibility)
4. Styling tip (optional, one brief tip)

Format your response as a JSON array with this structure:
[
  {
    "category": "Footwear",
    "title": "White Minimalist Sneakers",
    "why": "Complements the casual vibe and provides contrast with neutral tones",
    "tip": "Keep the style clean and understated"
  }
]

Return ONLY the JSON array, no additional text.`,
		orDefault(outfit.Name, "Unnamed Outfit"),
		strings.Join(stringSlice(result["clothing_items"]), ", "),
		strings.Join(stringSlice(result["colors"]), ", "),
		strings.Join(stringSlice(result["styles"]), ", "),
		otherContext,
	)
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
