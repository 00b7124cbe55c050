// errors_test.go - Tests for the error-to-status mapping

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrConflict, http.StatusBadRequest},
		{ErrAuth, http.StatusUnauthorized},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnavailable, http.StatusServiceUnavailable},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestHTTPStatusSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: password too short", ErrValidation)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}
