package api

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/domain"     // Pricing calculator
	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// QuoteHandler prices the current cart for a fulfillment method. Switching
// the method only changes the delivery fee; the cart itself is re-fetched so
// the figures always reflect the latest lines.
func QuoteHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := domain.FulfillmentMethod(c.DefaultQuery("method", string(domain.MethodDelivery))) // Fulfillment method
		// Validate the method
		if !method.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method must be delivery or pickup"})
			return
		}
		lines, err := api.Cart(c.Request.Context(), middleware.Token(c)) // Fetch and normalize the cart
		if err != nil {
			failUpstream(c, err, "Could not load cart")
			return
		}
		quote := domain.PriceCart(lines, method) // Price the cart
		c.JSON(http.StatusOK, gin.H{
			"method":        method,           // Echo the method
			"quote":         quote,            // Full-precision figures
			"display":       quote.Display(),  // Two-decimal rendering
			"canPlaceOrder": len(lines) > 0,   // Empty cart disables placement
		})
	}
}

// Request struct for placing an order
type CheckoutRequest struct {
	Method    domain.FulfillmentMethod `json:"method" binding:"required"` // Fulfillment method
	AddressID string                   `json:"addressId"`                 // Required for delivery
}

// CheckoutHandler places the order with the upstream. The advisory client
// quote is never sent; the upstream recomputes and its figures win.
func CheckoutHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || !req.Method.Valid() {
			// If binding fails or the method is unknown, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Delivery needs a selected address before the upstream call
		if req.Method == domain.MethodDelivery && req.AddressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an address"})
			return
		}
		token := middleware.Token(c) // Bearer token for upstream calls
		// An empty cart cannot be placed; check before the upstream call
		lines, err := api.Cart(c.Request.Context(), token)
		if err != nil {
			failUpstream(c, err, "Could not load cart")
			return
		}
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}
		// Place the order upstream
		order, err := api.Checkout(c.Request.Context(), token, req.Method, req.AddressID)
		if err != nil {
			failUpstream(c, err, "Checkout failed")
			return
		}
		// Log the placement
		principal, _ := middleware.Principal(c)
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,    // Placed order id
			"user_id":  principal.ID, // Placing user
			"method":   req.Method,  // Fulfillment method
			"total":    order.Total, // Upstream-authoritative total
		}).Info("Order placed")
		// Return the order; the client navigates to its detail page
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}
