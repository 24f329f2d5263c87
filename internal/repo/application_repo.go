// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Application model and its denormalized read model.
//
// Applications own the activity audit trail: CreateApplication and
// UpdateApplicationStatus write the application row and its Activity in one
// transaction, so either both land or neither does. Event times are forced
// to be strictly increasing per application, which makes timeline order total.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

const errAlreadyApplied = "user has already applied to this job"

// CreateApplication inserts an application together with its "created"
// activity and returns the new application id. A zero AppliedAt defaults to
// the insert time.
func CreateApplication(ctx context.Context, db *gorm.DB, in *domain.Application) (string, error) {
	now := nowFunc()
	a := &domain.Application{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		JobID:         in.JobID,
		Status:        in.Status,
		AppliedAt:     in.AppliedAt.UTC().Truncate(time.Microsecond),
		Source:        in.Source,
		Notes:         in.Notes,
		LastUpdatedAt: now,
	}
	if in.AppliedAt.IsZero() {
		a.AppliedAt = now
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			switch {
			case isDuplicate(err):
				return domain.Conflict("job_id", errAlreadyApplied)
			case isForeignKey(err):
				return &domain.Error{Kind: domain.KindNotFound, Field: "application", Message: "referenced user or job does not exist", Err: err}
			}
			return wrap("insert application", err)
		}
		act := &domain.Activity{
			ID:            uuid.NewString(),
			ApplicationID: a.ID,
			UserID:        a.UserID,
			EventType:     domain.EventCreated,
			EventTime:     now,
			Details:       domain.DetailsCreated,
		}
		return wrap("insert activity", tx.Omit(clause.Associations).Create(act).Error)
	})
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// GetApplication fetches the raw application row, or (nil, nil) when absent.
func GetApplication(ctx context.Context, db *gorm.DB, id string) (*domain.Application, error) {
	var a domain.Application
	err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("select application", err)
	}
	return &a, nil
}

// UpdateApplicationStatus moves the application to status and appends a
// "status_change" activity carrying the old and new values. It returns the
// inserted activity.
func UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, at time.Time) (*domain.Activity, error) {
	var act *domain.Activity
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Select("id", "user_id", "status")
		if tx.Dialector.Name() == DriverPostgres {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var cur domain.Application
		if err := q.Where("id = ?", id).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("application", id)
			}
			return wrap("select application", err)
		}

		when, err := nextEventTime(tx, id, at)
		if err != nil {
			return err
		}

		res := tx.Model(&domain.Application{}).
			Where("id = ?", id).
			Updates(map[string]any{"status": status, "last_updated_at": when})
		if res.Error != nil {
			return wrap("update application status", res.Error)
		}

		act = &domain.Activity{
			ID:            uuid.NewString(),
			ApplicationID: id,
			UserID:        cur.UserID,
			EventType:     domain.EventStatusChange,
			OldStatus:     cur.Status.Ptr(),
			NewStatus:     status.Ptr(),
			EventTime:     when,
			Details:       domain.DetailsStatusChanged,
		}
		return wrap("insert activity", tx.Omit(clause.Associations).Create(act).Error)
	})
	if err != nil {
		return nil, err
	}
	return act, nil
}

// nextEventTime returns at (UTC, microsecond precision) unless the
// application already has an activity at or after it, in which case it
// returns one microsecond past the latest.
func nextEventTime(tx *gorm.DB, appID string, at time.Time) (time.Time, error) {
	at = at.UTC().Truncate(time.Microsecond)
	var last struct {
		EventTime time.Time
	}
	// Order+Limit instead of MAX(): SQLite returns MAX() of a datetime as TEXT.
	err := tx.Model(&domain.Activity{}).
		Select("event_time").
		Where("application_id = ?", appID).
		Order("event_time DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return time.Time{}, wrap("select last activity", err)
	}
	if !last.EventTime.IsZero() && !at.After(last.EventTime) {
		at = last.EventTime.UTC().Add(time.Microsecond)
	}
	return at, nil
}

// UpdateApplicationNotes replaces the notes column. No activity is written.
func UpdateApplicationNotes(ctx context.Context, db *gorm.DB, id string, notes *string) error {
	return updateApplicationField(ctx, db, id, "notes", notes)
}

// UpdateApplicationSource replaces the source column. No activity is written.
func UpdateApplicationSource(ctx context.Context, db *gorm.DB, id string, source *string) error {
	return updateApplicationField(ctx, db, id, "source", source)
}

func updateApplicationField(ctx context.Context, db *gorm.DB, id, column string, v *string) error {
	res := db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{column: v, "last_updated_at": nowFunc()})
	if res.Error != nil {
		return wrap("update application "+column, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("application", id)
	}
	return nil
}

// DeleteApplication removes an application and its activities.
func DeleteApplication(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &domain.Application{}, "id = ?", id)
		if err != nil {
			return wrap("probe application", err)
		}
		if !ok {
			return domain.NotFound("application", id)
		}
		if err := tx.Delete(&domain.Activity{}, "application_id = ?", id).Error; err != nil {
			return wrap("delete activities", err)
		}
		return wrap("delete application", tx.Delete(&domain.Application{}, "id = ?", id).Error)
	})
}

// ApplicationExists reports whether an application with id exists.
func ApplicationExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.Application{}, "id = ?", id)
	return ok, wrap("probe application", err)
}

// UserJobApplicationExists reports whether userID already applied to jobID.
func UserJobApplicationExists(ctx context.Context, db *gorm.DB, userID, jobID string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.Application{}, "user_id = ? AND job_id = ?", userID, jobID)
	return ok, wrap("probe application", err)
}

func detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("applications AS a").
		Select(`a.id, a.user_id, u.name AS user_name, u.email AS user_email,
			a.job_id, j.title AS job_title, j.company_id, c.name AS company_name,
			a.status, a.applied_at, a.source, a.notes, a.last_updated_at`).
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN companies c ON c.id = j.company_id")
}

// GetApplicationDetail returns the joined read model for id, or (nil, nil)
// when the application (or any of its owners) is missing.
func GetApplicationDetail(ctx context.Context, db *gorm.DB, id string) (*domain.ApplicationDetail, error) {
	var rows []domain.ApplicationDetail
	err := detailQuery(db.WithContext(ctx)).
		Where("a.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("select application detail", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListApplicationDetails returns a page of joined application rows, most
// recently applied first.
func ListApplicationDetails(ctx context.Context, db *gorm.DB, limit, offset int, f domain.ApplicationFilter) ([]domain.ApplicationDetail, error) {
	q := detailQuery(db.WithContext(ctx))
	if f.UserID != "" {
		q = q.Where("a.user_id = ?", f.UserID)
	}
	if f.JobID != "" {
		q = q.Where("a.job_id = ?", f.JobID)
	}
	if f.Status != "" {
		q = q.Where("a.status = ?", f.Status)
	}
	out := make([]domain.ApplicationDetail, 0)
	err := q.Order("a.applied_at DESC").Order("a.id DESC").
		Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, wrap("list application details", err)
}
