package favorites

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches favorite routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/outfits/:id/favorite", h.add)
	rg.DELETE("/outfits/:id/favorite", h.remove)
	rg.GET("/outfits/favorites", h.list)
}

func (h *Handler) add(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	if err := h.Svc.Add(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "failed to add favorite")
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "outfit favorited"})
}

func (h *Handler) remove(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	if err := h.Svc.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "failed to remove favorite")
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "favorite removed"})
}

func (h *Handler) list(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	favs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list favorites")
		return
	}

	resps := outfits.ToResponses(favs)
	for i := range resps {
		resps[i].IsFavorite = true
	}
	respond.OK(c, gin.H{"success": true, "data": resps})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, outfits.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "outfit not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "favorite not found", nil)
	case errors.Is(err, outfits.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "outfit belongs to another user", nil)
	case errors.Is(err, outfits.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func requireUserID(c *gin.Context) string {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
	}
	return userID
}
