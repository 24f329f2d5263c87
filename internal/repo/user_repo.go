// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
//
// Error semantics:
//   - Getters return (nil, nil) when the row does not exist.
//   - Unique violations surface as domain conflicts, missing rows on update
//     or delete as domain not-found errors.
//   - Every other driver error is wrapped as a persistence error.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

const errEmailTaken = "email already registered"

// CreateUser inserts a new user. ID and CreatedAt are assigned here.
func CreateUser(ctx context.Context, db *gorm.DB, in *domain.User) (*domain.User, error) {
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		EmailKey:     domain.FoldKey(in.Email),
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		CreatedAt:    nowFunc(),
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("email", errEmailTaken)
		}
		return nil, wrap("insert user", err)
	}
	return u, nil
}

// GetUser fetches a user by id, or (nil, nil) when absent.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("select user", err)
	}
	return &u, nil
}

// ListUsers returns a page of users, newest first.
func ListUsers(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.User, error) {
	out := make([]domain.User, 0)
	err := db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, wrap("list users", err)
}

// UpdateUser overwrites every mutable column of the user identified by u.ID.
func UpdateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"email":         u.Email,
			"email_key":     domain.FoldKey(u.Email),
			"password_hash": u.PasswordHash,
			"name":          u.Name,
		})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return domain.Conflict("email", errEmailTaken)
		}
		return wrap("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("user", u.ID)
	}
	return nil
}

// DeleteUser removes a user that owns no applications.
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &domain.User{}, "id = ?", id)
		if err != nil {
			return wrap("probe user", err)
		}
		if !ok {
			return domain.NotFound("user", id)
		}
		has, err := exists(tx, &domain.Application{}, "user_id = ?", id)
		if err != nil {
			return wrap("probe applications", err)
		}
		if has {
			return domain.DependencyConflict("user", "cannot delete user: user has applications")
		}
		if err := tx.Delete(&domain.User{}, "id = ?", id).Error; err != nil {
			if isForeignKey(err) {
				return domain.DependencyConflict("user", "cannot delete user: user has applications")
			}
			return wrap("delete user", err)
		}
		return nil
	})
}

// UserExists reports whether a user with id exists.
func UserExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.User{}, "id = ?", id)
	return ok, wrap("probe user", err)
}

// UserEmailExists reports whether email is registered, ignoring case.
func UserEmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.User{}, "email_key = ?", domain.FoldKey(email))
	return ok, wrap("probe email", err)
}

// UserEmailTaken reports whether email belongs to a user other than exceptID.
func UserEmailTaken(ctx context.Context, db *gorm.DB, email, exceptID string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.User{}, "email_key = ? AND id <> ?", domain.FoldKey(email), exceptID)
	return ok, wrap("probe email", err)
}
