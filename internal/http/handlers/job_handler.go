package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// JobRequest is the payload for creating or replacing a job posting. Blank
// employment and work types default to full_time and remote.
type JobRequest struct {
	CompanyID      string  `json:"company_id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Title          string  `json:"title" example:"Backend Engineer"`
	EmploymentType string  `json:"employment_type,omitempty" enums:"internship,full_time,contract,part_time" example:"full_time"`
	WorkType       string  `json:"work_type,omitempty" enums:"remote,hybrid,on_site" example:"hybrid"`
	JobURL         *string `json:"job_url,omitempty" example:"https://acme.example/jobs/42"`
	SalaryMin      *int    `json:"salary_min,omitempty" example:"120000"`
	SalaryMax      *int    `json:"salary_max,omitempty" example:"150000"`
}

func (r JobRequest) job(id string) *domain.Job {
	return &domain.Job{
		ID:             id,
		CompanyID:      r.CompanyID,
		Title:          r.Title,
		EmploymentType: domain.EmploymentType(r.EmploymentType),
		WorkType:       domain.WorkType(r.WorkType),
		JobURL:         r.JobURL,
		SalaryMin:      r.SalaryMin,
		SalaryMax:      r.SalaryMax,
	}
}

// ListJobsResponse wraps a page of jobs.
type ListJobsResponse struct {
	Jobs []domain.Job `json:"jobs"`
	Page Page         `json:"page"`
}

// CreateJob godoc
// @ID          createJob
// @Summary     Add a job posting
// @Tags        Jobs
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Makes retries safe"
// @Param       body  body  handlers.JobRequest  true  "New job"
// @Success     201  {object}  handlers.CreatedResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Company not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs [post]
func (h *Handlers) CreateJob(c *gin.Context) {
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}
	h.createIdempotent(c, func(ctx context.Context) (string, error) {
		return h.jobs.Save(ctx, req.job(""))
	})
}

// ListJobs godoc
// @ID          listJobs
// @Summary     List jobs (newest first)
// @Tags        Jobs
// @Produce     json
// @Param       company_id  query  string  false  "Only jobs at this company"
// @Param       limit       query  int     false  "Page size"  minimum(1)  default(20)
// @Param       offset      query  int     false  "Rows to skip"  minimum(0)  default(0)
// @Success     200  {object}  handlers.ListJobsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad paging parameters"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs [get]
func (h *Handlers) ListJobs(c *gin.Context) {
	p, good := h.page(c)
	if !good {
		return
	}
	items, err := h.jobs.List(c.Request.Context(), p.Limit, p.Offset, domain.JobFilter{CompanyID: c.Query("company_id")})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListJobsResponse{Jobs: items, Page: p})
}

// GetJob godoc
// @ID          getJob
// @Summary     Get a job
// @Tags        Jobs
// @Produce     json
// @Param       id  path  string  true  "Job ID"
// @Success     200  {object}  domain.Job
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/{id} [get]
func (h *Handlers) GetJob(c *gin.Context) {
	j, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	found(c, j, err, "job")
}

// UpdateJob godoc
// @ID          updateJob
// @Summary     Replace a job's fields
// @Tags        Jobs
// @Accept      json
// @Param       id    path  string  true  "Job ID"
// @Param       body  body  handlers.JobRequest  true  "Replacement fields"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Job or company not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/{id} [put]
func (h *Handlers) UpdateJob(c *gin.Context) {
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.jobs.Save(c.Request.Context(), req.job(c.Param("id"))); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// DeleteJob godoc
// @ID          deleteJob
// @Summary     Delete a job
// @Description Fails with 409 while applications still reference the job.
// @Tags        Jobs
// @Param       id  path  string  true  "Job ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Job has applications"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/{id} [delete]
func (h *Handlers) DeleteJob(c *gin.Context) {
	if err := h.jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// JobExists godoc
// @ID          jobExists
// @Summary     Check whether a job exists
// @Tags        Jobs
// @Produce     json
// @Param       id  path  string  true  "Job ID"
// @Success     200  {object}  handlers.ExistsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/{id}/exists [get]
func (h *Handlers) JobExists(c *gin.Context) {
	yes, err := h.jobs.Exists(c.Request.Context(), c.Param("id"))
	exists(c, yes, err)
}
