package recommendations

import (
	"context"
	"fmt"
	"strings"

	"wardrobe-backend/internal/shared/telemetry"
)

// OutfitSuggestion is one suggested look in seasonal advice.
type OutfitSuggestion struct {
	Title       string   `json:"title"`
	Items       []string `json:"items"`
	Explanation string   `json:"explanation"`
}

// SeasonalAdvice is the seasonal recommendation payload.
type SeasonalAdvice struct {
	Season            string             `json:"season"`
	Advice            string             `json:"advice"`
	StylingTips       []string           `json:"styling_tips"`
	OutfitSuggestions []OutfitSuggestion `json:"outfit_suggestions"`
}

const seasonalAttempts = 2

// Seasonal generates season-appropriate styling advice. Model failures and
// unparseable responses fall back to a static payload so the endpoint always
// answers.
func (s *Service) Seasonal(ctx context.Context, userID string) SeasonalAdvice {
	season := CurrentSeason(s.now())

	var uc UserContext
	if userID != "" {
		uc = s.BuildUserContext(ctx, userID)
	}
	prompt := buildSeasonalPrompt(uc, season)

	var raw string
	for attempt := 1; attempt <= seasonalAttempts; attempt++ {
		text, err := s.LLM.GenerateText(ctx, prompt)
		if err != nil {
			telemetry.Warn("recommendations.seasonal_attempt_failed", map[string]any{
				"attempt": attempt,
				"error":   err.Error(),
			})
			continue
		}
		if strings.TrimSpace(text) != "" {
			raw = text
			break
		}
	}
	if raw == "" {
		return fallbackAdvice(season)
	}

	data, err := ExtractJSONObject(StripCodeFences(raw))
	if err != nil {
		telemetry.Warn("recommendations.seasonal_parse_failed", map[string]any{"error": err.Error()})
		return fallbackAdvice(season)
	}

	advice := SeasonalAdvice{Season: season}
	advice.Advice, _ = data["advice"].(string)
	advice.StylingTips = stringSlice(data["styling_tips"])
	for _, v := range sliceOfAny(data["outfit_suggestions"]) {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		suggestion := OutfitSuggestion{Items: stringSlice(m["items"])}
		suggestion.Title, _ = m["title"].(string)
		suggestion.Explanation, _ = m["explanation"].(string)
		advice.OutfitSuggestions = append(advice.OutfitSuggestions, suggestion)
	}
	return advice
}

func buildSeasonalPrompt(uc UserContext, season string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a fashion stylist.\nCurrent season: %s\n\n", season)
	b.WriteString("Give seasonal fashion advice, styling tips, and outfit ideas.\n\n")

	if len(uc.Outfits) > 0 {
		b.WriteString("User wardrobe summary:\n")
		for i, o := range uc.Outfits {
			if i == 5 {
				break
			}
			name := o.Name
			if name == "" {
				name = "Untitled"
			}
			fmt.Fprintf(&b, "- %s: %s\n", name, strings.Join(o.Tags, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString(`Return JSON in this format:
{
  "advice": "...",
  "styling_tips": ["...", "..."],
  "outfit_suggestions": [{"title": "...", "items": [], "explanation": "..."}]
}
`)
	return b.String()
}

func fallbackAdvice(season string) SeasonalAdvice {
	return SeasonalAdvice{
		Season: season,
		Advice: fmt.Sprintf("Here's some %s style inspiration for you.", season),
		StylingTips: []string{
			"Layer outfits to adapt to changing temperatures.",
			"Stick to neutral tones with one seasonal accent color.",
			"Choose comfortable and breathable fabrics.",
		},
		OutfitSuggestions: []OutfitSuggestion{
			{
				Title:       fmt.Sprintf("Everyday %s Look", titleCase(season)),
				Items:       []string{"Light jacket", "T-shirt", "Jeans"},
				Explanation: "Simple and versatile for daily wear.",
			},
			{
				Title:       fmt.Sprintf("Smart Casual %s", titleCase(season)),
				Items:       []string{"Blazer", "Chinos", "Loafers"},
				Explanation: "Works well for work and casual outings.",
			},
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sliceOfAny(v any) []any {
	out, _ := v.([]any)
	return out
}
