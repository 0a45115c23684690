package api

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/middleware" // Login redirect route
	"cloudkitchen/internal/upstream"   // Upstream error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// failUpstream classifies an upstream failure and writes the response:
// auth failure (401/403) sends the client back to login; a validation or
// business rejection surfaces the upstream message with its status, with no
// local state mutated; anything else (network, 5xx, bad envelope) becomes a
// generic 502. Nothing is retried; the user repeats the action manually.
func failUpstream(c *gin.Context, err error, fallback string) {
	// Authentication failure: the credential is dead for this view
	if upstream.IsAuth(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in again", "redirect": middleware.LoginRedirect})
		return
	}
	// Validation/business error: pass the upstream message through verbatim
	if ue, ok := upstream.AsClient(err); ok {
		msg := ue.Message // Upstream-provided message
		if msg == "" {
			msg = fallback // Fall back to the operation's generic message
		}
		c.JSON(ue.StatusCode, gin.H{"error": msg})
		return
	}
	// Unexpected failure: log it and return a generic message
	logrus.WithFields(logrus.Fields{
		"path":  c.Request.URL.Path, // Request path
		"error": err.Error(),        // Error message
	}).Error(fallback) // Log the failure
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
