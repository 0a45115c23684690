package api

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/middleware" // Session context accessors
	"cloudkitchen/internal/upstream"   // Upstream API client

	"github.com/gin-gonic/gin" // Gin web framework
)

// MeHandler returns the principal the session middleware already resolved,
// so a page load costs exactly one upstream "who am I" call.
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.Principal(c) // Get resolved principal
		if !ok {
			// Session middleware did not run; treat as unauthenticated
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": middleware.LoginRedirect})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": principal}) // Return the principal
	}
}

// UpdateMeHandler forwards a profile patch to the upstream
func UpdateMeHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any // Accept a partial profile update
		if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Only profile fields may pass through; role changes go through the owner endpoints
		for _, k := range []string{"role", "id", "_id"} {
			delete(patch, k)
		}
		updated, err := api.UpdateMe(c.Request.Context(), middleware.Token(c), patch)
		if err != nil {
			failUpstream(c, err, "Profile update failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": updated}) // Return the updated principal
	}
}
