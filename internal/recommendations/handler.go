package recommendations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wardrobe-backend/internal/llm"
	"wardrobe-backend/internal/outfits"
	"wardrobe-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations/weekly", h.weekly)
	rg.POST("/recommendations/seasonal", h.seasonal)
	rg.POST("/outfits/:id/matching", h.matching)
	rg.GET("/random-quote", h.randomQuote)
}

type weeklyRequest struct {
	UserID string `json:"user_id"`
	Season string `json:"season"`
}

func (h *Handler) weekly(c *gin.Context) {
	var req weeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}

	plans, err := h.Svc.Weekly(c.Request.Context(), req.UserID, req.Season)
	if err != nil {
		respondError(c, err, "failed to generate weekly recommendations")
		return
	}

	respond.OK(c, gin.H{"success": true, "data": plans})
}

type seasonalRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) seasonal(c *gin.Context) {
	var req seasonalRequest
	// Body is optional; an anonymous request still gets seasonal advice.
	_ = c.ShouldBindJSON(&req)

	advice := h.Svc.Seasonal(c.Request.Context(), strings.TrimSpace(req.UserID))
	respond.OK(c, advice)
}

func (h *Handler) matching(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
		return
	}

	suggestions, err := h.Svc.Matching(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to generate matching suggestions")
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"data": gin.H{
			"suggestions": suggestions,
			"status":      "completed",
		},
	})
}

func (h *Handler) randomQuote(c *gin.Context) {
	quote, err := h.Svc.RandomQuote(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to generate quote")
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"message": "Random quote generated successfully",
		"data":    gin.H{"quote": quote},
	})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, outfits.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "outfit not found", nil)
	case errors.Is(err, outfits.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "outfit belongs to another user", nil)
	case errors.Is(err, ErrNotReady):
		respond.Error(c, http.StatusBadRequest, "analysis_incomplete", "outfit analysis must be completed first", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, "llm_not_configured", "model API key not configured", nil)
	case errors.Is(err, ErrBadModelOutput):
		respond.Error(c, http.StatusInternalServerError, "bad_model_output", "failed to parse model response", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
