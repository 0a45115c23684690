package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedToken builds a token the way the upstream would; the gateway never
// knows the secret, so any signature works for the expiry peek.
func signedToken(t *testing.T, exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	s, err := tok.SignedString([]byte("some-upstream-secret"))
	require.NoError(t, err)
	return s
}

func TestPeekExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := PeekExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestPeekExpiryUnparseable(t *testing.T) {
	_, ok := PeekExpiry("not-a-jwt")
	assert.False(t, ok)
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, TokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, TokenExpired(signedToken(t, time.Now().Add(time.Minute))))
}

func TestTokenWithoutExpiryIsNotRejected(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	// The upstream stays the authority when no expiry is readable.
	assert.False(t, TokenExpired(s))
}
