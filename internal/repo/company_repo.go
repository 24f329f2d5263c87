package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

const errCompanyNameTaken = "company name already exists"

// CreateCompany inserts a new company. ID and CreatedAt are assigned here.
func CreateCompany(ctx context.Context, db *gorm.DB, in *domain.Company) (*domain.Company, error) {
	c := *in
	c.ID = uuid.NewString()
	c.NameKey = domain.FoldKey(in.Name)
	c.CreatedAt = nowFunc()
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(&c).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("name", errCompanyNameTaken)
		}
		return nil, wrap("insert company", err)
	}
	return &c, nil
}

// GetCompany fetches a company by id, or (nil, nil) when absent.
func GetCompany(ctx context.Context, db *gorm.DB, id string) (*domain.Company, error) {
	var c domain.Company
	err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("select company", err)
	}
	return &c, nil
}

// ListCompanies returns a page of companies, newest first.
func ListCompanies(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Company, error) {
	out := make([]domain.Company, 0)
	err := db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, wrap("list companies", err)
}

// UpdateCompany overwrites every mutable column of the company c.ID.
func UpdateCompany(ctx context.Context, db *gorm.DB, c *domain.Company) error {
	res := db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":           c.Name,
			"name_key":       domain.FoldKey(c.Name),
			"industry":       c.Industry,
			"location_city":  c.LocationCity,
			"location_state": c.LocationState,
			"company_url":    c.CompanyURL,
		})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return domain.Conflict("name", errCompanyNameTaken)
		}
		return wrap("update company", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("company", c.ID)
	}
	return nil
}

// DeleteCompany removes a company that owns no jobs.
func DeleteCompany(ctx context.Context, db *gorm.DB, id string) error {
	const msg = "cannot delete company: company has jobs"
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &domain.Company{}, "id = ?", id)
		if err != nil {
			return wrap("probe company", err)
		}
		if !ok {
			return domain.NotFound("company", id)
		}
		has, err := exists(tx, &domain.Job{}, "company_id = ?", id)
		if err != nil {
			return wrap("probe jobs", err)
		}
		if has {
			return domain.DependencyConflict("company", msg)
		}
		if err := tx.Delete(&domain.Company{}, "id = ?", id).Error; err != nil {
			if isForeignKey(err) {
				return domain.DependencyConflict("company", msg)
			}
			return wrap("delete company", err)
		}
		return nil
	})
}

// CompanyExists reports whether a company with id exists.
func CompanyExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.Company{}, "id = ?", id)
	return ok, wrap("probe company", err)
}

// CompanyNameExists reports whether name is used, ignoring case.
func CompanyNameExists(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.Company{}, "name_key = ?", domain.FoldKey(name))
	return ok, wrap("probe company name", err)
}

// CompanyNameTaken reports whether name belongs to a company other than exceptID.
func CompanyNameTaken(ctx context.Context, db *gorm.DB, name, exceptID string) (bool, error) {
	ok, err := exists(db.WithContext(ctx), &domain.Company{}, "name_key = ? AND id <> ?", domain.FoldKey(name), exceptID)
	return ok, wrap("probe company name", err)
}
