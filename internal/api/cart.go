package api

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/domain"     // Pricing and cart types
	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client

	"github.com/gin-gonic/gin" // Gin web framework
)

// GetCartHandler returns the normalized cart lines with an advisory subtotal.
// The figures are display-only; the upstream recomputes at order placement.
func GetCartHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := api.Cart(c.Request.Context(), middleware.Token(c)) // Fetch and normalize the cart
		if err != nil {
			failUpstream(c, err, "Could not load cart") // Surface failure, no partial state
			return
		}
		quote := domain.PriceCart(lines, domain.MethodDelivery) // Default to delivery pricing
		c.JSON(http.StatusOK, gin.H{
			"items":    lines,           // Normalized cart lines
			"subtotal": quote.Subtotal,  // Advisory subtotal at full precision
			"display":  quote.Display(), // Two-decimal rendering for the summary
		})
	}
}

// Request struct for adding a cart item
type AddCartItemRequest struct {
	MenuItemID string `json:"menuItemId" binding:"required"` // Menu item id must be provided
	Qty        int    `json:"qty" binding:"required,gt=0"`   // Quantity must be positive
}

// AddCartItemHandler adds an item to the cart
func AddCartItemHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Forward the add to the upstream
		if err := api.AddCartItem(c.Request.Context(), middleware.Token(c), req.MenuItemID, req.Qty); err != nil {
			failUpstream(c, err, "Could not add item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added"})
	}
}

// Request struct for updating a cart line quantity
type UpdateCartItemRequest struct {
	Qty *int `json:"qty" binding:"required"` // Quantity must be provided; zero removes the line upstream
}

// UpdateCartItemHandler sets the quantity of a cart line
func UpdateCartItemHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || *req.Qty < 0 {
			// Negative quantities are never legal
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		// Forward the quantity update to the upstream
		if err := api.UpdateCartItem(c.Request.Context(), middleware.Token(c), c.Param("id"), *req.Qty); err != nil {
			failUpstream(c, err, "Could not update item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
	}
}

// RemoveCartItemHandler removes a cart line
func RemoveCartItemHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Forward the removal to the upstream
		if err := api.RemoveCartItem(c.Request.Context(), middleware.Token(c), c.Param("id")); err != nil {
			failUpstream(c, err, "Could not remove item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}
