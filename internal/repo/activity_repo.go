package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// ListActivityForApplication returns the full timeline of appID, oldest first.
func ListActivityForApplication(ctx context.Context, db *gorm.DB, appID string) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0)
	err := db.WithContext(ctx).
		Where("application_id = ?", appID).
		Order("event_time ASC").Order("id ASC").
		Find(&out).Error
	return out, wrap("list timeline", err)
}

// ListActivities returns a page of the global activity feed, newest first.
// A non-empty appID restricts the feed to one application.
func ListActivities(ctx context.Context, db *gorm.DB, limit, offset int, appID string) ([]domain.Activity, error) {
	q := db.WithContext(ctx)
	if appID != "" {
		q = q.Where("application_id = ?", appID)
	}
	out := make([]domain.Activity, 0)
	err := q.Order("event_time DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, wrap("list activities", err)
}

// GetActivity fetches one activity, or (nil, nil) when absent.
func GetActivity(ctx context.Context, db *gorm.DB, id string) (*domain.Activity, error) {
	var a domain.Activity
	err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("select activity", err)
	}
	return &a, nil
}

// UpdateActivityDetails replaces the free-text details of an activity.
func UpdateActivityDetails(ctx context.Context, db *gorm.DB, id, details string) error {
	res := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("id = ?", id).
		Update("details", details)
	if res.Error != nil {
		return wrap("update activity details", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("activity", id)
	}
	return nil
}
