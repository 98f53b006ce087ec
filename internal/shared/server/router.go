package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wardrobe-backend/internal/favorites"
	"wardrobe-backend/internal/outfits"
	"wardrobe-backend/internal/recommendations"
	"wardrobe-backend/internal/shared/config"
	"wardrobe-backend/internal/shared/metrics"
	"wardrobe-backend/internal/shared/server/middleware"
	"wardrobe-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers and settings the router wires up.
type RouterDeps struct {
	Config          config.Config
	Outfits         *outfits.Handler
	Favorites       *favorites.Handler
	Recommendations *recommendations.Handler

	// LocalUploadsDir, when set, is served at /uploads so locally stored
	// images are reachable through their public URLs.
	LocalUploadsDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig()),
	)

	if deps.LocalUploadsDir != "" {
		r.Static("/uploads", deps.LocalUploadsDir)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.Outfits != nil {
		deps.Outfits.RegisterRoutes(api)
	}
	if deps.Favorites != nil {
		deps.Favorites.RegisterRoutes(api)
	}
	if deps.Recommendations != nil {
		deps.Recommendations.RegisterRoutes(api)
	}

	return r
}

// rateLimitConfig keeps model-backed endpoints on a tighter budget than plain
// CRUD traffic.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 30},
			"LLM":     {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api/recommendations") ||
				strings.HasSuffix(path, "/matching") ||
				path == "/api/random-quote" {
				return "LLM"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
