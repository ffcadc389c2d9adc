package api

import (
	"errors"
	"net/http"

	service "github.com/okian/ufcradar/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Error codes written in the JSON error body.
const (
	codeInvalidRequest     = "invalid_request"
	codeNotFound           = "not_found"
	codeServiceUnavailable = "service_unavailable"
	codeMethodNotAllowed   = "method_not_allowed"
	codeInternal           = "internal_error"
)

// statusFor maps service errors onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeInvalidRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, codeServiceUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
