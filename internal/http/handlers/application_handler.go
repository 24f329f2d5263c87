package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// CreateApplicationRequest records that a user applied to a job. AppliedAt
// defaults to now.
type CreateApplicationRequest struct {
	UserID    string     `json:"user_id" example:"5d0c0f43-8f7e-4d8e-9f0e-6b1f1b7f1a10"`
	JobID     string     `json:"job_id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Status    string     `json:"status" enums:"applied,phone_screen,interview,offer,rejected,withdrawn" example:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty" example:"2026-03-01T09:00:00Z"`
	Source    *string    `json:"source,omitempty" example:"LinkedIn"`
	Notes     *string    `json:"notes,omitempty" example:"Referred by Sam"`
}

// StatusRequest moves an application to a new status (case-insensitive).
type StatusRequest struct {
	Status string `json:"status" enums:"applied,phone_screen,interview,offer,rejected,withdrawn" example:"interview"`
}

// NotesRequest replaces an application's notes; null clears them.
type NotesRequest struct {
	Notes *string `json:"notes" example:"Second round on Friday"`
}

// SourceRequest replaces an application's source; null clears it.
type SourceRequest struct {
	Source *string `json:"source" example:"Referral"`
}

// ListApplicationsResponse wraps a page of denormalized applications.
type ListApplicationsResponse struct {
	Applications []domain.ApplicationDetail `json:"applications"`
	Page         Page                       `json:"page"`
}

// TimelineResponse is an application's activity history, oldest first.
type TimelineResponse struct {
	ApplicationID string            `json:"application_id"`
	Activities    []domain.Activity `json:"activities"`
}

// CreateApplication godoc
// @ID          createApplication
// @Summary     Apply to a job
// @Description Creates the application and logs a "created" activity in the same transaction.
// @Tags        Applications
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Makes retries safe"
// @Param       body  body  handlers.CreateApplicationRequest  true  "New application"
// @Success     201  {object}  handlers.CreatedResponse
// @Header      201  {string}  Idempotency-Replayed  "true when answered from a stored key"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "User or job not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already applied"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications [post]
func (h *Handlers) CreateApplication(c *gin.Context) {
	var req CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}
	h.createIdempotent(c, func(ctx context.Context) (string, error) {
		a := &domain.Application{
			UserID: req.UserID,
			JobID:  req.JobID,
			Status: domain.Status(req.Status),
			Source: req.Source,
			Notes:  req.Notes,
		}
		if req.AppliedAt != nil {
			a.AppliedAt = *req.AppliedAt
		}
		return h.apps.Save(ctx, a)
	})
}

// ListApplications godoc
// @ID          listApplications
// @Summary     List applications with user, job and company
// @Description Most recently applied first.
// @Tags        Applications
// @Produce     json
// @Param       user_id  query  string  false  "Only this user's applications"
// @Param       job_id   query  string  false  "Only applications to this job"
// @Param       status   query  string  false  "Only this status"  Enums(applied,phone_screen,interview,offer,rejected,withdrawn)
// @Param       limit    query  int     false  "Page size"  minimum(1)  default(20)
// @Param       offset   query  int     false  "Rows to skip"  minimum(0)  default(0)
// @Success     200  {object}  handlers.ListApplicationsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad paging parameters or status"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications [get]
func (h *Handlers) ListApplications(c *gin.Context) {
	p, good := h.page(c)
	if !good {
		return
	}
	f := domain.ApplicationFilter{
		UserID: c.Query("user_id"),
		JobID:  c.Query("job_id"),
		Status: domain.Status(c.Query("status")),
	}
	items, err := h.apps.List(c.Request.Context(), p.Limit, p.Offset, f)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListApplicationsResponse{Applications: items, Page: p})
}

// GetApplication godoc
// @ID          getApplication
// @Summary     Get an application with user, job and company
// @Tags        Applications
// @Produce     json
// @Param       id  path  string  true  "Application ID"
// @Success     200  {object}  domain.ApplicationDetail
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id} [get]
func (h *Handlers) GetApplication(c *gin.Context) {
	d, err := h.apps.Get(c.Request.Context(), c.Param("id"))
	found(c, d, err, "application")
}

// DeleteApplication godoc
// @ID          deleteApplication
// @Summary     Delete an application and its activity history
// @Tags        Applications
// @Param       id  path  string  true  "Application ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id} [delete]
func (h *Handlers) DeleteApplication(c *gin.Context) {
	if err := h.apps.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// UpdateApplicationStatus godoc
// @ID          updateApplicationStatus
// @Summary     Change an application's status
// @Description Logs a "status_change" activity and returns the refreshed row.
// @Tags        Applications
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Application ID"
// @Param       body  body  handlers.StatusRequest  true  "New status"
// @Success     200  {object}  domain.ApplicationDetail
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid status"
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id}/status [put]
func (h *Handlers) UpdateApplicationStatus(c *gin.Context) {
	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.apps.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// UpdateApplicationNotes godoc
// @ID          updateApplicationNotes
// @Summary     Replace an application's notes
// @Tags        Applications
// @Accept      json
// @Param       id    path  string  true  "Application ID"
// @Param       body  body  handlers.NotesRequest  true  "Notes"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id}/notes [put]
func (h *Handlers) UpdateApplicationNotes(c *gin.Context) {
	var req NotesRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.apps.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// UpdateApplicationSource godoc
// @ID          updateApplicationSource
// @Summary     Replace an application's source
// @Tags        Applications
// @Accept      json
// @Param       id    path  string  true  "Application ID"
// @Param       body  body  handlers.SourceRequest  true  "Source"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id}/source [put]
func (h *Handlers) UpdateApplicationSource(c *gin.Context) {
	var req SourceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.apps.UpdateSource(c.Request.Context(), c.Param("id"), req.Source); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// ApplicationExists godoc
// @ID          applicationExists
// @Summary     Check whether an application exists
// @Tags        Applications
// @Produce     json
// @Param       id  path  string  true  "Application ID"
// @Success     200  {object}  handlers.ExistsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id}/exists [get]
func (h *Handlers) ApplicationExists(c *gin.Context) {
	yes, err := h.apps.Exists(c.Request.Context(), c.Param("id"))
	exists(c, yes, err)
}

// UserJobApplicationExists godoc
// @ID          userJobApplicationExists
// @Summary     Check whether a user already applied to a job
// @Tags        Applications
// @Produce     json
// @Param       user_id  path  string  true  "User ID"
// @Param       job_id   path  string  true  "Job ID"
// @Success     200  {object}  handlers.ExistsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/user/{user_id}/job/{job_id}/exists [get]
func (h *Handlers) UserJobApplicationExists(c *gin.Context) {
	yes, err := h.apps.UserJobExists(c.Request.Context(), c.Param("user_id"), c.Param("job_id"))
	exists(c, yes, err)
}

// ApplicationTimeline godoc
// @ID          applicationTimeline
// @Summary     An application's activity history, oldest first
// @Tags        Applications
// @Produce     json
// @Param       id  path  string  true  "Application ID"
// @Success     200  {object}  handlers.TimelineResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications/{id}/activities [get]
func (h *Handlers) ApplicationTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	items, err := h.activities.ForApplication(ctx, id)
	if err != nil {
		failErr(c, err)
		return
	}
	// Every application has at least its "created" row, so an empty
	// timeline means the application is gone.
	if len(items) == 0 {
		yes, err := h.apps.Exists(ctx, id)
		if err != nil {
			failErr(c, err)
			return
		}
		if !yes {
			failErr(c, domain.NotFound("application", id))
			return
		}
	}
	ok(c, http.StatusOK, TimelineResponse{ApplicationID: id, Activities: items})
}
