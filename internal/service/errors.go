package service

import (
	"errors"
	"fmt"
)

// The message strings below are caller-visible contract: they are
// returned verbatim in the response body.
var (
	// ErrInvalidJSONBody is returned when the inbound booking body is not
	// well-formed JSON.
	ErrInvalidJSONBody = errors.New("Invalid JSON body")

	// ErrAuthenticationFailed is returned when token acquisition fails
	// inside the booking and order-status flows. Unlike the direct /auth
	// endpoint, these flows collapse every auth failure to a flat 500.
	ErrAuthenticationFailed = errors.New("Failed to authenticate")

	// ErrMissingAccessToken is returned when the auth result carries no
	// access token.
	ErrMissingAccessToken = errors.New("Missing access token")
)

// MissingFieldError is returned when a required booking field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// InvalidUpstreamResponseError is returned when the provider answers with
// a body that is not parseable JSON and therefore cannot be relayed.
type InvalidUpstreamResponseError struct {
	Provider string
}

func (e *InvalidUpstreamResponseError) Error() string {
	return fmt.Sprintf("Invalid response from %s", e.Provider)
}
