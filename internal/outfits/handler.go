package outfits

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wardrobe-backend/internal/shared/server/respond"
)

// FavoriteChecker reports whether an outfit is favorited by a user. The
// favorites package provides implementations; the indirection keeps this
// package free of a dependency on it.
type FavoriteChecker interface {
	IsFavorite(ctx context.Context, userID, outfitID string) (bool, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc       *Service
	Favorites FavoriteChecker
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches outfit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/outfits", h.upload)
	rg.GET("/outfits", h.list)
	rg.GET("/outfits/:id", h.get)
	rg.DELETE("/outfits/:id", h.remove)
	rg.GET("/search", h.search)
	rg.GET("/outfits/:id/tags", h.listTags)
	rg.POST("/outfits/:id/tags", h.addTag)
	rg.DELETE("/outfits/:id/tags/:tag", h.removeTag)
}

func (h *Handler) upload(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	name := strings.TrimSpace(c.PostForm("name"))
	tags := SplitTags(c.PostForm("tags"))

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	outfit, err := h.Svc.Upload(ctx, userID, name, tags, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTagLimit):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload outfit", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, envelope(ToResponse(outfit)))
}

func (h *Handler) list(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	outfits, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "failed to list outfits")
		return
	}

	respond.OK(c, envelope(h.withFavorites(c, userID, ToResponses(outfits))))
}

func (h *Handler) get(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	outfit, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch outfit")
		return
	}

	resp := ToResponse(outfit)
	if h.Favorites != nil {
		fav, err := h.Favorites.IsFavorite(c.Request.Context(), userID, outfit.ID)
		if err == nil {
			resp.IsFavorite = fav
		}
	}
	respond.OK(c, envelope(resp))
}

func (h *Handler) remove(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete outfit")
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "outfit deleted"})
}

func (h *Handler) search(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	outfits, err := h.Svc.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		h.respondError(c, err, "search failed")
		return
	}

	respond.OK(c, envelope(h.withFavorites(c, userID, ToResponses(outfits))))
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func (h *Handler) listTags(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	outfit, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch tags")
		return
	}

	respond.OK(c, envelope(gin.H{"outfit_id": outfit.ID, "tags": outfit.TagList()}))
}

func (h *Handler) addTag(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	outfit, err := h.Svc.AddTag(c.Request.Context(), userID, c.Param("id"), req.Tag)
	if err != nil {
		h.respondError(c, err, "failed to add tag")
		return
	}

	respond.OK(c, envelope(ToResponse(outfit)))
}

func (h *Handler) removeTag(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	outfit, err := h.Svc.RemoveTag(c.Request.Context(), userID, c.Param("id"), c.Param("tag"))
	if err != nil {
		h.respondError(c, err, "failed to remove tag")
		return
	}

	respond.OK(c, envelope(ToResponse(outfit)))
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "outfit not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "outfit belongs to another user", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrTagExists):
		respond.Error(c, http.StatusConflict, "tag_exists", "tag already exists", nil)
	case errors.Is(err, ErrTagNotFound):
		respond.Error(c, http.StatusNotFound, "tag_not_found", "tag not found", nil)
	case errors.Is(err, ErrTagLimit):
		respond.Error(c, http.StatusBadRequest, "tag_limit", "tag limit reached", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func (h *Handler) withFavorites(c *gin.Context, userID string, resps []OutfitResponse) []OutfitResponse {
	if h.Favorites == nil {
		return resps
	}
	for i := range resps {
		fav, err := h.Favorites.IsFavorite(c.Request.Context(), userID, resps[i].ID)
		if err != nil {
			continue
		}
		resps[i].IsFavorite = fav
	}
	return resps
}

func envelope(data interface{}) gin.H {
	return gin.H{"success": true, "data": data}
}

func requireUserID(c *gin.Context) string {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		userID = strings.TrimSpace(c.PostForm("user_id"))
	}
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id is required", nil)
	}
	return userID
}
