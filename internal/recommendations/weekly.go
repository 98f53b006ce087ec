package recommendations

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DayPlan is one day of the weekly recommendation.
type DayPlan map[string]any

// Weekly generates a seven-day outfit plan from the user's wardrobe. The model
// returns a JSON array; missing dates and day names are backfilled starting
// from today.
func (s *Service) Weekly(ctx context.Context, userID, season string) ([]DayPlan, error) {
	uc := s.BuildUserContext(ctx, userID)
	prompt := buildWeeklyPrompt(uc, season)

	raw, err := s.LLM.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	entries, err := ExtractJSONArray(StripCodeFences(raw))
	if err != nil {
		return nil, err
	}

	today := s.now()
	plans := make([]DayPlan, 0, len(entries))
	for i, entry := range entries {
		plan := DayPlan(entry)
		date, _ := plan["date"].(string)
		if date == "" {
			date = today.AddDate(0, 0, i).Format("2006-01-02")
			plan["date"] = date
		}
		if name, _ := plan["day_name"].(string); name == "" {
			if parsed, err := time.Parse("2006-01-02", date); err == nil {
				plan["day_name"] = parsed.Weekday().String()
			}
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func buildWeeklyPrompt(uc UserContext, season string) string {
	var wardrobe strings.Builder
	for i, o := range uc.Outfits {
		if i == 8 {
			break
		}
		name := o.Name
		if name == "" {
			name = "Unnamed"
		}
		fmt.Fprintf(&wardrobe, "- %s: tags(%s) styles(%s)\n",
			name, strings.Join(o.Tags, ", "), strings.Join(o.Styles, ", "))
	}
	wardrobeStr := wardrobe.String()
	if wardrobeStr == "" {
		wardrobeStr = "User has no items uploaded yet. Suggest common, everyday clothing pieces."
	}

	seasonLine := ""
	if season != "" {
		seasonLine = "Season: " + season + "."
	}

	return fmt.Sprintf(`You are an expert fashion stylist creating a personalized 7-day outfit plan for a user.

CURRENT CONTEXT
%s
Generate recommendations for the upcoming week (Monday to Sunday), starting from the current date.

USER PROFILE
Favorite items: %s
Style preferences: %s
Color palette: %s

AVAILABLE WARDROBE
%s

OBJECTIVE
Create a complete 7-day outfit plan that:
1. Uses items from the user's existing wardrobe whenever possible
2. Feels cohesive across the week while still offering variety
3. Gradually shifts from structured weekday looks to more relaxed weekend styling
4. Is optimized for calendar and card-based UI display (clear, concise, scannable)

OUTPUT FORMAT
Return a JSON array containing EXACTLY 7 objects (one per day).

Each object must follow this structure:

{
  "day_name": "Monday",
  "date": "2024-02-12",
  "occasion": "Work/Casual",
  "recommendation": "A clean, balanced look built around tailored pieces and neutral tones.",
  "suggested_items": ["Black tailored trousers", "White cotton shirt"],
  "tags": ["minimal", "everyday"]
}

CRITICAL CONSTRAINTS
- ALWAYS return exactly 7 days (Monday to Sunday)
- ALWAYS return valid JSON (no markdown, no comments, no extra text)
- Recommendation length: 18-30 words
- Use specific, realistic item names
- Prioritize wardrobe items
- Weekend outfits should feel more relaxed than weekdays

Return ONLY the JSON array.`,
		seasonLine,
		orDefault(strings.Join(uc.Favorites, ", "), "No favorites yet"),
		orDefault(strings.Join(uc.Styles, ", "), "Not specified"),
		orDefault(strings.Join(uc.Colors, ", "), "Not specified"),
		wardrobeStr,
	)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
