// Package handlers implements the tracker's REST endpoints on top of the
// services layer.
//
// Every failure is written as an ErrorResponse with a stable code. Service
// errors are mapped by kind (see statusFor); persistence failures are logged
// with their cause and answered with an opaque message.
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "conflict",
//	  "message": "user has already applied to this job"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/http/middleware"
	"github.com/tbourn/go-jobtracker/internal/utils"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"application not found: 9b2c..."`
}

// CreatedResponse carries the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// ExistsResponse answers the existence probes.
type ExistsResponse struct {
	Exists bool `json:"exists" example:"true"`
}

// Page echoes the paging window used for a list response.
type Page struct {
	Limit  int `json:"limit" example:"20"`
	Offset int `json:"offset" example:"0"`
}

// fail aborts with a structured error. 5xx responses are logged through the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail for router-level responses.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr writes err according to its kind. The cause of a persistence
// failure is logged but never sent.
func failErr(c *gin.Context, err error) {
	status, code := statusFor(domain.KindOf(err))
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().Err(err).Msg("request failed")
	}
	fail(c, status, code, domain.PublicMessage(err))
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// page reads limit/offset, answering 400 when either is not an integer.
// Range checks happen in the services.
func (h *Handlers) page(c *gin.Context) (Page, bool) {
	l, o, err := utils.ParseLimitOffset(c.Query("limit"), c.Query("offset"), h.defaultLimit)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return Page{}, false
	}
	return Page{Limit: l, Offset: o}, true
}

// found writes v as 200, or 404 when the service reported no row.
func found[T any](c *gin.Context, v *T, err error, entity string) {
	switch {
	case err != nil:
		failErr(c, err)
	case v == nil:
		failErr(c, domain.NotFound(entity, c.Param("id")))
	default:
		ok(c, http.StatusOK, v)
	}
}

// exists writes a probe result.
func exists(c *gin.Context, yes bool, err error) {
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ExistsResponse{Exists: yes})
}
