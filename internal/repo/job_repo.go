package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// CreateJob inserts a job under an existing company.
func CreateJob(ctx context.Context, db *gorm.DB, in *domain.Job) (*domain.Job, error) {
	j := *in
	j.ID = uuid.NewString()
	j.CreatedAt = nowFunc()
	j.Company = domain.Company{}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(&j).Error; err != nil {
		if isForeignKey(err) {
			return nil, domain.NotFound("company", in.CompanyID)
		}
		return nil, wrap("insert job", err)
	}
	return &j, nil
}

// GetJob fetches a job by id, or (nil, nil) when absent.
func GetJob(ctx context.Context, db *gorm.DB, id string) (*domain.Job, error) {
	var j domain.Job
	err := db.WithContext(ctx).Where("id = ?", id).First(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("select job", err)
	}
	return &j, nil
}

// ListJobs returns a page of jobs, newest first, optionally for one company.
func ListJobs(ctx context.Context, db *gorm.DB, limit, offset int, f domain.JobFilter) ([]domain.Job, error) {
	out := make([]domain.Job, 0)
	q := db.WithContext(ctx)
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, wrap("list jobs", err)
}

// UpdateJob overwrites every mutable column of the job j.ID.
func UpdateJob(ctx context.Context, db *gorm.DB, j *domain.Job) error {
	res := db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", j.ID).
		Updates(map[string]any{
			"company_id":      j.CompanyID,
			"title":           j.Title,
			"employment_type": j.EmploymentType,
			"work_type":       j.WorkType,
			"job_url":         j.JobURL,
			"salary_min":      j.SalaryMin,
			"salary_max":      j.SalaryMax,
		})
	if res.Error != nil {
		if isForeignKey(res.Error) {
			return domain.NotFound("company", j.CompanyID)
		}
		return wrap("update job", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("job", j.ID)
	}
	return nil
}

// DeleteJob removes a job that has no applications.
func DeleteJob(ctx context.Context, db *gorm.DB, id string) error {
	const msg = "cannot delete job: job has applications"
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &domain.Job{}, "id = ?", id)
		if err != nil {
			return wrap("probe job", err)
		}
		if !ok {
			return domain.NotFound("job", id)
		}
		has, err := exists(tx, &domain.Application{}, "job_id = ?", id)
		if err != nil {
			return wrap("probe applications", err)
		}
		if has {
			return domain.DependencyConflict("job", msg)
		}
		if err := tx.Delete(&domain.Job{}, "id = ?", id).Error; err != nil {
			if isForeignKey(err) {
				return domain.DependencyConflict("job", msg)
			}
			return wrap("delete job", err)
		}
		return nil
	})
}

// JobExists reports whether a job with id exists.
func JobExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.Job{}, "id = ?", id)
	return ok, wrap("probe job", err)
}
