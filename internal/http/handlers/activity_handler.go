package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// DetailsRequest replaces an activity's free-text details; null clears them.
type DetailsRequest struct {
	Details *string `json:"details" example:"Recruiter call moved to Monday"`
}

// ListActivitiesResponse wraps a page of the activity feed.
type ListActivitiesResponse struct {
	Activities []domain.Activity `json:"activities"`
	Page       Page              `json:"page"`
}

// ListActivities godoc
// @ID          listActivities
// @Summary     Activity feed, newest first
// @Tags        Activities
// @Produce     json
// @Param       application_id  query  string  false  "Only this application's events"
// @Param       limit           query  int     false  "Page size"  minimum(1)  default(20)
// @Param       offset          query  int     false  "Rows to skip"  minimum(0)  default(0)
// @Success     200  {object}  handlers.ListActivitiesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad paging parameters"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities [get]
func (h *Handlers) ListActivities(c *gin.Context) {
	p, good := h.page(c)
	if !good {
		return
	}
	items, err := h.activities.List(c.Request.Context(), p.Limit, p.Offset, c.Query("application_id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListActivitiesResponse{Activities: items, Page: p})
}

// GetActivity godoc
// @ID          getActivity
// @Summary     Get an activity
// @Tags        Activities
// @Produce     json
// @Param       id  path  string  true  "Activity ID"
// @Success     200  {object}  domain.Activity
// @Failure     404  {object}  handlers.ErrorResponse  "Activity not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities/{id} [get]
func (h *Handlers) GetActivity(c *gin.Context) {
	a, err := h.activities.Get(c.Request.Context(), c.Param("id"))
	found(c, a, err, "activity")
}

// UpdateActivityDetails godoc
// @ID          updateActivityDetails
// @Summary     Replace an activity's details
// @Tags        Activities
// @Accept      json
// @Param       id    path  string  true  "Activity ID"
// @Param       body  body  handlers.DetailsRequest  true  "Details"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Activity not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities/{id}/details [put]
func (h *Handlers) UpdateActivityDetails(c *gin.Context) {
	var req DetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.activities.UpdateDetails(c.Request.Context(), c.Param("id"), req.Details); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// Stats godoc
// @ID          stats
// @Summary     Row counts per table
// @Tags        Stats
// @Produce     json
// @Success     200  {object}  domain.RowCounts
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	counts, err := h.stats.RowCounts(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, counts)
}
