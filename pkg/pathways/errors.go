package pathways

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrMissingJWT         = errors.New("pathways: you must specify a JWT")
	ErrMissingAppToken    = errors.New("pathways: you must specify an appToken")
	ErrMissingAdminClient = errors.New("pathways: you must provide a pathways admin client")
	ErrInvalidJWT         = errors.New("pathways: JWT payload is not decodable")
	ErrNoMorePages        = errors.New("pathways: no more pages")
	ErrMissingPathParam   = errors.New("pathways: path template parameter not supplied")

	// ErrUnexpectedContentType is raised when an endpoint expected to
	// answer JSON declares another content type.
	ErrUnexpectedContentType = errors.New("pathways: expected a JSON response")
)

// APIError represents a non-success HTTP response from the Pathways
// service. It is never retried by this layer; callers inspect the status
// code and body to decide what to do.
type APIError struct {
	Message    string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pathways API error: %s (status %d)", e.Message, e.StatusCode)
	}

	return fmt.Sprintf("pathways API error: status %d", e.StatusCode)
}

// IsNotFound checks if the error is a 404 from the service.
func IsNotFound(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 from the service.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 from the service.
func IsForbidden(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsServerError checks if the error is a 5xx from the service.
func IsServerError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError
}
