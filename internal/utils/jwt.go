package utils

import (
	"time" // Time for expiry comparison

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// The upstream signs and verifies its own tokens; the gateway never holds the
// secret. PeekExpiry only decodes the claims to screen out obviously expired
// tokens before spending a round-trip on them.

// PeekExpiry returns the expiry claim of a bearer token without verifying the
// signature. ok is false when the token is unparseable or carries no expiry.
func PeekExpiry(tokenStr string) (time.Time, bool) {
	claims := jwt.MapClaims{}                                             // Claims destination
	parser := jwt.NewParser()                                             // Parser without validation options
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil { // Decode without signature check
		return time.Time{}, false // Unparseable token
	}
	exp, err := claims.GetExpirationTime() // Standard exp claim
	if err != nil || exp == nil {
		return time.Time{}, false // No expiry present
	}
	return exp.Time, true // Return the expiry
}

// TokenExpired reports whether a bearer token is past its expiry claim.
// Tokens without a readable expiry are not rejected here; the upstream
// remains the authority on credential validity.
func TokenExpired(tokenStr string) bool {
	exp, ok := PeekExpiry(tokenStr)
	return ok && time.Now().After(exp)
}
