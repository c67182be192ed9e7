package upstream

import (
	"errors"
	"fmt"
)

// ErrMissingAccessToken is returned when the token endpoint answers 2xx
// but the body carries no access_token field.
var ErrMissingAccessToken = errors.New("access_token missing from token response")

// AuthError is a failed token acquisition. Status and Body mirror the
// token endpoint's response when one was received; transport and decode
// failures carry status 500 and a diagnostic body.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed: status %d: %s", e.Status, e.Body)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Mirrored reports whether Status and Body replay an actual
// token-endpoint response. Locally generated diagnostics wrap an
// underlying error instead.
func (e *AuthError) Mirrored() bool {
	return e.Err == nil
}
