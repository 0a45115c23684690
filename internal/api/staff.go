package api

import (
	"net/http" // HTTP status codes
	"strings"  // Query trimming

	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListUsersHandler returns every account for the owner's staff screen
func ListUsersHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := api.AllUsers(c.Request.Context(), middleware.Token(c)) // Fetch all users
		if err != nil {
			failUpstream(c, err, "Failed to load users") // Surface failure, list stays empty
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// SearchUsersHandler searches accounts by name or email
func SearchUsersHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q")) // Search term
		if q == "" {
			// An empty term is a bad request rather than a full listing
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
			return
		}
		users, err := api.SearchUsers(c.Request.Context(), middleware.Token(c), q) // Forward the search
		if err != nil {
			failUpstream(c, err, "Search failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// Request struct for promoting a user
type PromoteRequest struct {
	UserID string `json:"userId" binding:"required"` // Target user id must be provided
}

// PromoteAdminHandler promotes a user to admin
func PromoteAdminHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PromoteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Forward the promotion; the upstream enforces owner-only access
		if err := api.PromoteAdmin(c.Request.Context(), middleware.Token(c), req.UserID); err != nil {
			failUpstream(c, err, "Promote failed")
			return
		}
		// Log the role change
		principal, _ := middleware.Principal(c)
		logrus.WithFields(logrus.Fields{
			"user_id":  req.UserID,   // Promoted user
			"owner_id": principal.ID, // Acting owner
		}).Info("User promoted to admin")
		c.JSON(http.StatusOK, gin.H{"message": "Promoted to admin"})
	}
}

// DemoteAdminHandler demotes an admin back to user
func DemoteAdminHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id") // Target user id
		// Forward the demotion; the upstream enforces owner-only access
		if err := api.DemoteAdmin(c.Request.Context(), middleware.Token(c), userID); err != nil {
			failUpstream(c, err, "Demote failed")
			return
		}
		// Log the role change
		principal, _ := middleware.Principal(c)
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,       // Demoted user
			"owner_id": principal.ID, // Acting owner
		}).Info("Admin demoted to user")
		c.JSON(http.StatusOK, gin.H{"message": "Demoted to user"})
	}
}
