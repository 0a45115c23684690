package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"cloudkitchen/internal/domain"   // Domain models
	"cloudkitchen/internal/upstream" // Upstream API client
	"cloudkitchen/internal/utils"    // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// MenuHandler returns the browsable menu: available items only, cached in
// Redis for a short TTL since the catalog is identical for every visitor.
func MenuHandler(api *upstream.Client, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var items []domain.MenuItem // Menu items to return
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, utils.MenuCacheKey, &items)
		if err == nil && found {
			// Return cached menu
			c.JSON(http.StatusOK, gin.H{"items": items, "cached": true})
			return
		}
		// Not cached: fetch from the upstream
		all, err := api.Menus(c.Request.Context(), "")
		if err != nil {
			failUpstream(c, err, "Failed to load menu") // Surface failure, no partial state
			return
		}
		// Keep only available items for the public menu
		items = make([]domain.MenuItem, 0, len(all))
		for _, it := range all {
			if it.IsAvailable {
				items = append(items, it)
			}
		}
		_ = utils.SetCache(ctx, rdb, utils.MenuCacheKey, items, ttl)   // Cache the menu
		c.JSON(http.StatusOK, gin.H{"items": items, "cached": false}) // Return the menu
	}
}

// CategoriesHandler returns active categories in display order, cached like the menu
func CategoriesHandler(api *upstream.Client, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cats []domain.Category  // Categories to return
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, utils.CategoriesCacheKey, &cats)
		if err == nil && found {
			// Return cached categories
			c.JSON(http.StatusOK, gin.H{"categories": cats, "cached": true})
			return
		}
		// Not cached: fetch from the upstream (already sorted by display order)
		all, err := api.Categories(c.Request.Context(), "")
		if err != nil {
			failUpstream(c, err, "Failed to load categories") // Surface failure
			return
		}
		// Keep only active categories for the public listing
		cats = make([]domain.Category, 0, len(all))
		for _, cat := range all {
			if cat.IsActive {
				cats = append(cats, cat)
			}
		}
		_ = utils.SetCache(ctx, rdb, utils.CategoriesCacheKey, cats, ttl) // Cache the categories
		c.JSON(http.StatusOK, gin.H{"categories": cats, "cached": false})
	}
}
