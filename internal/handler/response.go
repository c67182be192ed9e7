package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hindih/gett-gpt-proxy/internal/service"
	"github.com/hindih/gett-gpt-proxy/internal/upstream"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Auth errors surfaced by the direct /auth path mirror the upstream's exact
// status and body instead of being wrapped; local diagnostics (transport,
// decode) are not upstream JSON and get the standard error shape.
func respondError(c *gin.Context, err error) {
	var authErr *upstream.AuthError
	if errors.As(err, &authErr) {
		if authErr.Mirrored() {
			c.Data(authErr.Status, "application/json", []byte(authErr.Body))
			return
		}
		c.JSON(authErr.Status, ErrorResponse{Error: authErr.Body})
		return
	}

	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// relay writes an upstream response to the caller byte-for-byte.
func relay(c *gin.Context, result *service.ForwardResult) {
	c.Data(result.Status, "application/json", result.Body)
}

// mapErrorToHTTPStatus maps service errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var missingField *service.MissingFieldError
	switch {
	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidJSONBody),
		errors.As(err, &missingField):
		return http.StatusBadRequest

	// Collapsed auth failures and unusable upstream responses keep their
	// fixed 500 surface.
	default:
		return http.StatusInternalServerError
	}
}
