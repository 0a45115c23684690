package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client
	"cloudkitchen/internal/utils"      // Catalog cache invalidation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// AdminListMenusHandler returns every menu item, including unavailable ones,
// for the management screen. Never served from cache.
func AdminListMenusHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := api.Menus(c.Request.Context(), middleware.Token(c)) // Fetch all items
		if err != nil {
			failUpstream(c, err, "Failed to load menus")
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// Request struct for creating a menu item
type MenuItemRequest struct {
	Title       string  `json:"title" binding:"required"`    // Title must be provided
	Description string  `json:"description"`                 // Optional description
	Price       float64 `json:"price" binding:"required,gt=0"` // Price must be positive
	ImageURL    string  `json:"imageUrl"`                    // Optional image
	Category    string  `json:"category"`                    // Optional category label
	IsAvailable *bool   `json:"isAvailable"`                 // Defaults to available
}

// CreateMenuHandler adds a menu item and invalidates the public catalog cache
func CreateMenuHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MenuItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		available := true // Items default to available
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		// Forward the creation to the upstream
		err := api.CreateMenu(c.Request.Context(), middleware.Token(c), upstream.MenuItemInput{
			Title:       req.Title,       // Item title
			Description: req.Description, // Item description
			Price:       req.Price,       // Item price
			ImageURL:    req.ImageURL,    // Item image
			Category:    req.Category,    // Category label
			IsAvailable: available,       // Availability flag
		})
		if err != nil {
			failUpstream(c, err, "Create failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Next public read is authoritative
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"title": req.Title, // Item title
			"price": req.Price, // Item price
		}).Info("Menu item created")
		c.JSON(http.StatusCreated, gin.H{"message": "Menu item created"})
	}
}

// UpdateMenuHandler patches a menu item (price, availability toggle, etc.)
func UpdateMenuHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any // Accept a partial update
		if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Forward the patch to the upstream
		if err := api.UpdateMenu(c.Request.Context(), middleware.Token(c), c.Param("id"), patch); err != nil {
			failUpstream(c, err, "Update failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Drop stale catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Menu item updated"})
	}
}

// DeleteMenuHandler removes a menu item
func DeleteMenuHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Forward the deletion to the upstream
		if err := api.DeleteMenu(c.Request.Context(), middleware.Token(c), c.Param("id")); err != nil {
			failUpstream(c, err, "Delete failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Drop stale catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
