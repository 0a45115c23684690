package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBadEnvelope marks a response body whose nesting matched none of the
// envelope shapes the upstream is known to produce. Shape mismatches are a
// contract violation, not something to paper over with an empty list.
var ErrBadEnvelope = errors.New("upstream: unrecognized response envelope")

// Error is a non-2xx upstream response: the HTTP status plus whatever message
// the upstream put in the body.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream: status %d", e.StatusCode)
}

// IsAuth reports whether err is an upstream 401/403, i.e. the credential is
// missing, expired, or insufficient, and the caller must re-authenticate.
func IsAuth(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.StatusCode == http.StatusUnauthorized || ue.StatusCode == http.StatusForbidden
	}
	return false
}

// AsClient returns the upstream error when err is any 4xx other than an auth
// failure: a validation or business rejection whose message should be shown
// to the user verbatim.
func AsClient(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) && ue.StatusCode >= 400 && ue.StatusCode < 500 && !IsAuth(err) {
		return ue, true
	}
	return nil, false
}
