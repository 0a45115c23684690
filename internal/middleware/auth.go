package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"cloudkitchen/internal/upstream" // Upstream API client
	"cloudkitchen/internal/utils"    // Token expiry screen

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the session middleware
const (
	CtxToken     = "token"     // Raw bearer token for upstream calls
	CtxPrincipal = "principal" // Resolved domain.Principal
)

// LoginRedirect is the route the web client should navigate to on auth failure
const LoginRedirect = "/auth/login"

// SessionMiddleware centralizes session resolution: it extracts the bearer
// token, screens out expired tokens locally, then resolves the principal with
// a single upstream "who am I" call per request. No retry; a failed
// resolution is terminal and the client must re-authenticate.
func SessionMiddleware(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status and a login redirect hint
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header", "redirect": LoginRedirect})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		// Reject tokens that are already past their expiry without an upstream round-trip
		if utils.TokenExpired(tokenStr) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired", "redirect": LoginRedirect})
			return
		}
		// Resolve the principal upstream; the upstream is the authority on the credential
		principal, err := api.Me(c.Request.Context(), tokenStr)
		if err != nil {
			// Auth failures and anything else during resolution end the request
			if upstream.IsAuth(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "redirect": LoginRedirect})
				return
			}
			// Upstream unreachable or malformed: surface as a gateway error
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Could not resolve session"})
			return
		}
		c.Set(CtxToken, tokenStr)      // Store raw token for upstream calls
		c.Set(CtxPrincipal, principal) // Store resolved principal
		c.Next()                       // Proceed to the next handler
	}
}
