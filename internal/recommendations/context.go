package recommendations

import (
	"context"
	"sort"

	"wardrobe-backend/internal/shared/telemetry"
)

// ContextOutfit is one wardrobe item summarized for prompt building.
type ContextOutfit struct {
	ID     string
	Name   string
	Tags   []string
	Styles []string
	Items  []string
	Colors []string
}

// UserContext summarizes a user's wardrobe for prompt building: completed
// outfits, favorite names, and preferences inferred from analysis tallies.
type UserContext struct {
	Outfits   []ContextOutfit
	Favorites []string
	Styles    []string
	Colors    []string
}

// BuildUserContext assembles the wardrobe context. Failures degrade to an
// empty context rather than blocking the recommendation.
func (s *Service) BuildUserContext(ctx context.Context, userID string) UserContext {
	var uc UserContext

	completed, err := s.Outfits.ListCompletedByUser(ctx, userID)
	if err != nil {
		telemetry.Warn("recommendations.context_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return uc
	}

	styleCounts := map[string]int{}
	colorCounts := map[string]int{}

	for _, o := range completed {
		co := ContextOutfit{
			ID:   o.ID,
			Name: o.Name,
			Tags: o.TagList(),
		}
		if o.AnalysisResult != nil {
			co.Styles = stringSlice(o.AnalysisResult["styles"])
			co.Items = stringSlice(o.AnalysisResult["clothing_items"])
			co.Colors = stringSlice(o.AnalysisResult["colors"])
		}
		for _, st := range co.Styles {
			styleCounts[st]++
		}
		for _, cl := range co.Colors {
			colorCounts[cl]++
		}
		uc.Outfits = append(uc.Outfits, co)
	}

	uc.Styles = rankedKeys(styleCounts)
	uc.Colors = rankedKeys(colorCounts)

	if s.FavoriteLister != nil {
		favs, err := s.FavoriteLister.ListOutfitsByUser(ctx, userID)
		if err == nil {
			for _, f := range favs {
				uc.Favorites = append(uc.Favorites, f.Name)
			}
		}
	}

	return uc
}

// stringSlice tolerates both []any (JSON round-trip) and []string (in-memory
// results that never left the process).
func stringSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func rankedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
