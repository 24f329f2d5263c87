package handlers

import (
	"net/http"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// Stable, machine-readable codes carried in ErrorResponse.Code. Clients
// branch on these, never on the message.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// statusFor maps an error kind to its HTTP status and code.
func statusFor(k domain.Kind) (int, string) {
	switch k {
	case domain.KindValidation:
		return http.StatusBadRequest, ErrCodeBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case domain.KindConflict:
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
