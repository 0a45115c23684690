package middleware

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/domain" // Domain roles

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole gates a route group to the given roles, using the principal the
// session middleware resolved. This gating is a UX convenience; the upstream
// enforces real authorization on every forwarded request.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c) // Get resolved principal from context
		// Check if the session middleware ran
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": LoginRedirect})
			return
		}
		// Check if the principal holds any of the allowed roles
		if !principal.Is(roles...) {
			// If not, abort with forbidden status and send the client back to the menu
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role", "redirect": "/menu"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}

// Principal returns the resolved principal from the gin context
func Principal(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(CtxPrincipal) // Get principal from context
	if !exists {
		return domain.Principal{}, false // Session middleware did not run
	}
	p, ok := v.(domain.Principal) // Assert the stored type
	return p, ok                  // Return principal and whether it was valid
}

// Token returns the raw bearer token from the gin context
func Token(c *gin.Context) string {
	v, exists := c.Get(CtxToken) // Get token from context
	if !exists {
		return "" // No token stored
	}
	s, _ := v.(string) // Assert the stored type
	return s           // Return the token
}
