package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing
	"time"     // Date filter parsing

	"cloudkitchen/internal/domain"     // Status machine
	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// OrderView decorates an order with the action gating the client renders:
// the single legal forward transition and whether cancel is still offered.
// Gating is display-only; the upstream enforces the real transition.
type OrderView struct {
	domain.Order
	NextStatus  domain.Status `json:"nextStatus,omitempty"` // Legal forward transition, if any
	Cancellable bool          `json:"cancellable"`          // Whether cancel may be offered
}

// decorate attaches the status-machine projection to an order
func decorate(o domain.Order) OrderView {
	view := OrderView{Order: o, Cancellable: domain.CanCancel(o.Status)}
	if next, ok := domain.NextStatus(o.Status); ok {
		view.NextStatus = next
	}
	return view
}

// ListOrdersHandler returns the order list with status/date filters and pagination
func ListOrdersHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := upstream.OrdersQuery{Page: 1, Limit: 20} // Default pagination
		// Parse page if provided
		if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
			q.Page = v // Set page if valid
		}
		// Parse limit if provided
		if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
			q.Limit = v // Set limit if valid
		}
		// Status filter must be a known status
		if s := c.Query("status"); s != "" {
			known := false
			for _, st := range domain.AllStatuses() {
				if string(st) == s {
					known = true
					break
				}
			}
			if !known {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
				return
			}
			q.Status = s // Set status filter
		}
		// Date range filters
		if from := c.Query("from"); from != "" {
			if t, err := time.Parse(time.RFC3339, from); err == nil {
				q.From = t // Set from filter
			}
		}
		if to := c.Query("to"); to != "" {
			if t, err := time.Parse(time.RFC3339, to); err == nil {
				q.To = t // Set to filter
			}
		}
		// Fetch orders from the upstream
		orders, total, err := api.Orders(c.Request.Context(), middleware.Token(c), q)
		if err != nil {
			failUpstream(c, err, "Failed to load orders") // Surface failure, list stays empty
			return
		}
		// Decorate each order with its action gating
		views := make([]OrderView, len(orders))
		for i, o := range orders {
			views[i] = decorate(o)
		}
		c.JSON(http.StatusOK, gin.H{
			"orders": views,   // Decorated orders
			"page":   q.Page,  // Current page
			"limit":  q.Limit, // Page size
			"total":  total,   // Total matching orders
		})
	}
}

// GetOrderHandler returns a single decorated order
func GetOrderHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := api.OrderByID(c.Request.Context(), middleware.Token(c), c.Param("id")) // Fetch the order
		if err != nil {
			failUpstream(c, err, "Failed to load order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": decorate(order)}) // Return with action gating
	}
}

// Request struct for a status transition
type StatusUpdateRequest struct {
	To domain.Status `json:"to" binding:"required"` // Target status must be provided
}

// UpdateOrderStatusHandler advances an order through its lifecycle. Only the
// single legal forward transition is accepted; an upstream rejection surfaces
// as an error and is never applied locally.
func UpdateOrderStatusHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		token := middleware.Token(c) // Bearer token for upstream calls
		id := c.Param("id")          // Order id
		// Fetch the current order so the transition can be checked against the machine
		order, err := api.OrderByID(c.Request.Context(), token, id)
		if err != nil {
			failUpstream(c, err, "Failed to load order")
			return
		}
		// Only the single legal forward transition is offered
		next, ok := domain.NextStatus(order.Status)
		if !ok || next != req.To {
			c.JSON(http.StatusConflict, gin.H{"error": "Illegal status transition from " + string(order.Status)})
			return
		}
		// Forward the transition; the upstream is authoritative and may still reject it
		if err := api.UpdateOrderStatus(c.Request.Context(), token, id, req.To); err != nil {
			failUpstream(c, err, "Update failed")
			return
		}
		// Log the transition
		principal, _ := middleware.Principal(c)
		logrus.WithFields(logrus.Fields{
			"order_id": id,           // Order id
			"from":     order.Status, // Previous status
			"to":       req.To,       // New status
			"staff_id": principal.ID, // Acting staff member
		}).Info("Order status updated")
		c.JSON(http.StatusOK, gin.H{"message": "Order " + string(req.To), "status": req.To})
	}
}

// CancelOrderHandler cancels an order while it is still cancellable
func CancelOrderHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.Token(c) // Bearer token for upstream calls
		id := c.Param("id")          // Order id
		// Fetch the current order to gate the cancel locally
		order, err := api.OrderByID(c.Request.Context(), token, id)
		if err != nil {
			failUpstream(c, err, "Failed to load order")
			return
		}
		// Cancellation is legal only from pending, placed or accepted
		if !domain.CanCancel(order.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
			return
		}
		// Forward the cancel; the upstream may still reject it
		if err := api.CancelOrder(c.Request.Context(), token, id); err != nil {
			failUpstream(c, err, "Cancel failed")
			return
		}
		// Log the cancellation
		logrus.WithFields(logrus.Fields{
			"order_id": id,           // Order id
			"from":     order.Status, // Status at cancel time
		}).Info("Order cancelled")
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "status": domain.StatusCancelled})
	}
}
