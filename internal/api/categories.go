package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // Name trimming

	"cloudkitchen/internal/domain"     // Reorder computation
	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client
	"cloudkitchen/internal/utils"      // Catalog cache invalidation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// AdminListCategoriesHandler returns every category, active or not, in
// display order for the management screen.
func AdminListCategoriesHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := api.Categories(c.Request.Context(), middleware.Token(c)) // Fetch categories
		if err != nil {
			failUpstream(c, err, "Failed to load categories")
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

// Request struct for creating a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"` // Name must be provided
	IsActive *bool  `json:"isActive"`                // Defaults to active
}

// CreateCategoryHandler adds a category; the upstream assigns slug and order
func CreateCategoryHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		active := true // Categories default to active
		if req.IsActive != nil {
			active = *req.IsActive
		}
		// Forward the creation to the upstream
		if err := api.CreateCategory(c.Request.Context(), middleware.Token(c), strings.TrimSpace(req.Name), active); err != nil {
			failUpstream(c, err, "Create failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Drop stale catalog cache
		c.JSON(http.StatusCreated, gin.H{"message": "Category added"})
	}
}

// UpdateCategoryHandler renames or toggles a category
func UpdateCategoryHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any // Accept a partial update (name, isActive)
		if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Forward the patch to the upstream
		if err := api.UpdateCategory(c.Request.Context(), middleware.Token(c), c.Param("id"), patch); err != nil {
			failUpstream(c, err, "Update failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Drop stale catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
	}
}

// DeleteCategoryHandler removes a category
func DeleteCategoryHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Forward the deletion to the upstream
		if err := api.DeleteCategory(c.Request.Context(), middleware.Token(c), c.Param("id")); err != nil {
			failUpstream(c, err, "Delete failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Drop stale catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

// Request struct for moving a category one position
type MoveCategoryRequest struct {
	Direction string `json:"direction" binding:"required"` // "up" or "down"
}

// MoveCategoryHandler swaps a category with its neighbor and submits the full
// dense ordering. On upstream failure the optimistic permutation is
// discarded and the re-fetched authoritative list is returned instead.
func MoveCategoryHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Map the direction string to a move direction
		var dir domain.MoveDirection
		switch req.Direction {
		case "up":
			dir = domain.MoveUp
		case "down":
			dir = domain.MoveDown
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
			return
		}
		token := middleware.Token(c) // Bearer token for upstream calls
		// Fetch the current ordered list
		current, err := api.Categories(c.Request.Context(), token)
		if err != nil {
			failUpstream(c, err, "Failed to load categories")
			return
		}
		// Compute the swapped permutation with dense 0-based order fields
		reordered, err := domain.MoveCategory(current, c.Param("id"), dir)
		if err != nil {
			// A move off either end or an unknown id is a client error
			if errors.Is(err, domain.ErrMoveOutOfRange) || errors.Is(err, domain.ErrCategoryNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Reorder failed"})
			return
		}
		// Submit the full ordering array; last write wins at the upstream
		if err := api.ReorderCategories(c.Request.Context(), token, domain.OrderingOf(reordered)); err != nil {
			// Discard the optimistic permutation and replay the authoritative state
			authoritative, refErr := api.Categories(c.Request.Context(), token)
			if refErr != nil {
				failUpstream(c, refErr, "Reorder failed")
				return
			}
			logrus.WithFields(logrus.Fields{
				"category_id": c.Param("id"),  // Moved category
				"direction":   req.Direction,  // Move direction
				"error":       err.Error(),    // Upstream rejection
			}).Error("Category reorder rejected") // Log the rollback
			c.JSON(http.StatusConflict, gin.H{"error": "Reorder failed", "categories": authoritative})
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb)        // Drop stale catalog cache
		c.JSON(http.StatusOK, gin.H{"categories": reordered})        // Return the applied permutation
	}
}

// Request struct for submitting a full ordering
type ReorderRequest struct {
	Order []domain.CategoryOrder `json:"order" binding:"required"` // Full {id, order} array
}

// ReorderCategoriesHandler accepts a full ordering array, validates that it
// is a dense 0-based permutation, and submits it upstream.
func ReorderCategoriesHandler(api *upstream.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReorderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Order) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The ordering must be a contiguous 0-based sequence
		if err := domain.ValidateOrdering(req.Order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Submit the ordering upstream
		if err := api.ReorderCategories(c.Request.Context(), middleware.Token(c), req.Order); err != nil {
			failUpstream(c, err, "Reorder failed")
			return
		}
		_ = utils.InvalidateCatalog(context.Background(), rdb) // Drop stale catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Categories reordered"})
	}
}
