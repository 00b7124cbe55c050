// Package apperrors defines the sentinel errors shared by the store, policy
// and handler layers. Callers match them with errors.Is; handlers translate
// them to HTTP status codes with HTTPStatus.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers unique-constraint violations (username/email taken).
	ErrConflict = errors.New("already exists")

	// ErrAuth is the generic bad-credentials error. It deliberately does not
	// distinguish "no such user" from "wrong password".
	ErrAuth = errors.New("invalid credentials")

	// ErrUnauthenticated means no valid session accompanied the request.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the actor is authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means a dependency (the database) is down or timed out.
	ErrUnavailable = errors.New("service unavailable")
)

// HTTPStatus maps a domain error to its transport status code. Unknown errors
// map to 500; the handler layer logs the detail and returns a generic body.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
