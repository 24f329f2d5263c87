package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// FindIdempotency returns the live record for (scope, key). Like the entity
// getters it returns (nil, nil) when there is none, including when the record
// has expired or the key is blank.
func FindIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, nil
	}
	var recs []domain.Idempotency
	err := db.WithContext(ctx).
		Where("scope = ? AND key = ? AND expires_at > ?", scope, key, now).
		Limit(1).
		Find(&recs).Error
	if err != nil || len(recs) == 0 {
		return nil, wrap("find idempotency key", err)
	}
	return &recs[0], nil
}

// SaveIdempotency records that (scope, key) produced resourceID. The first
// writer wins: stored is false when a live record for the pair already
// exists. An expired record is taken over in place.
func SaveIdempotency(ctx context.Context, db *gorm.DB, scope, key, resourceID string, status int, ttl time.Duration) (stored bool, err error) {
	now := nowFunc()
	rec := domain.Idempotency{
		ID:         uuid.NewString(),
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"resource_id", "status", "created_at", "expires_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "idempotency.expires_at <= ?", Vars: []any{now}},
			}},
		}).
		Create(&rec)
	if res.Error != nil {
		return false, wrap("save idempotency key", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// PurgeIdempotency deletes records that expired before now and reports how
// many were removed.
func PurgeIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, wrap("purge idempotency keys", res.Error)
}
