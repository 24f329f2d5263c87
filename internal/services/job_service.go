package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// JobService manages job postings.
type JobService struct {
	// DB is the GORM handle passed to every repository call.
	DB *gorm.DB
	// Repo is the job repository used by this service.
	Repo JobRepo

	// MaxListLimit caps List page sizes; zero or less means DefaultMaxListLimit.
	MaxListLimit int
}

// NewJobService constructs a JobService over db and r.
func NewJobService(db *gorm.DB, r JobRepo, maxListLimit int) *JobService {
	return &JobService{DB: db, Repo: r, MaxListLimit: maxListLimit}
}

// normalizeJob validates j in place and applies the employment and work type
// defaults (full_time, remote) when those fields are blank.
func normalizeJob(j *domain.Job) error {
	if j == nil {
		return domain.Validation("job", "is required")
	}
	j.ID = strings.TrimSpace(j.ID)
	j.CompanyID = strings.TrimSpace(j.CompanyID)
	j.Title = strings.TrimSpace(j.Title)
	if j.CompanyID == "" {
		return domain.Validation("company_id", "is required")
	}
	if j.Title == "" {
		return domain.Validation("title", "is required")
	}

	if strings.TrimSpace(string(j.EmploymentType)) == "" {
		j.EmploymentType = domain.EmploymentFullTime
	} else if et, ok := domain.ParseEmploymentType(string(j.EmploymentType)); ok {
		j.EmploymentType = et
	} else {
		return domain.Validation("employment_type", "must be one of internship, full_time, contract, part_time")
	}

	if strings.TrimSpace(string(j.WorkType)) == "" {
		j.WorkType = domain.WorkRemote
	} else if wt, ok := domain.ParseWorkType(string(j.WorkType)); ok {
		j.WorkType = wt
	} else {
		return domain.Validation("work_type", "must be one of remote, hybrid, on_site")
	}

	if j.SalaryMin != nil && *j.SalaryMin < 0 {
		return domain.Validation("salary_min", "must not be negative")
	}
	if j.SalaryMax != nil && *j.SalaryMax < 0 {
		return domain.Validation("salary_max", "must not be negative")
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return domain.Validation("salary_min", "must not exceed salary_max")
	}
	j.JobURL = optional(j.JobURL)
	return nil
}

// Save inserts j when j.ID is blank and updates it otherwise. The owning
// company must exist; a missing company is reported as not found rather
// than as a validation failure.
func (s *JobService) Save(ctx context.Context, j *domain.Job) (id string, err error) {
	if err = normalizeJob(j); err != nil {
		return "", err
	}
	ctx, span := startSpan(ctx, "JobService", "Save",
		attribute.String("job.id", j.ID),
		attribute.String("company.id", j.CompanyID),
	)
	defer func() { endSpan(span, err) }()

	ok, err := s.Repo.CompanyExists(ctx, s.DB, j.CompanyID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.NotFound("company", j.CompanyID)
	}

	if j.ID != "" {
		if err = s.Repo.UpdateJob(ctx, s.DB, j); err != nil {
			return "", err
		}
		return j.ID, nil
	}
	created, err := s.Repo.CreateJob(ctx, s.DB, j)
	if err != nil {
		return "", err
	}
	j.ID, j.CreatedAt = created.ID, created.CreatedAt
	span.SetAttributes(attribute.String("job.id", created.ID))
	return created.ID, nil
}

// Get returns the job, or (nil, nil) when it does not exist.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetJob(ctx, s.DB, id)
}

// List returns a page of jobs, newest first.
func (s *JobService) List(ctx context.Context, limit, offset int, f domain.JobFilter) ([]domain.Job, error) {
	if err := validatePage(limit, offset, s.MaxListLimit); err != nil {
		return nil, err
	}
	f.CompanyID = strings.TrimSpace(f.CompanyID)
	return s.Repo.ListJobs(ctx, s.DB, limit, offset, f)
}

// Delete removes a job that has no applications.
func (s *JobService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "JobService", "Delete", attribute.String("job.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	return s.Repo.DeleteJob(ctx, s.DB, id)
}

// Exists reports whether the job exists.
func (s *JobService) Exists(ctx context.Context, id string) (bool, error) {
	id, err := requireID("id", id)
	if err != nil {
		return false, err
	}
	return s.Repo.JobExists(ctx, s.DB, id)
}
