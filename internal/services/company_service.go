package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// CompanyService manages employers.
type CompanyService struct {
	// DB is the GORM handle passed to every repository call.
	DB *gorm.DB
	// Repo is the company repository used by this service.
	Repo CompanyRepo

	// MaxListLimit caps List page sizes; zero or less means DefaultMaxListLimit.
	MaxListLimit int
}

// NewCompanyService constructs a CompanyService over db and r.
func NewCompanyService(db *gorm.DB, r CompanyRepo, maxListLimit int) *CompanyService {
	return &CompanyService{DB: db, Repo: r, MaxListLimit: maxListLimit}
}

// Save inserts c when c.ID is blank and updates it otherwise. Company names
// are unique regardless of case. Blank optional fields are stored as NULL.
func (s *CompanyService) Save(ctx context.Context, c *domain.Company) (id string, err error) {
	if c == nil {
		return "", domain.Validation("company", "is required")
	}
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return "", domain.Validation("name", "is required")
	}
	c.Industry = optional(c.Industry)
	c.LocationCity = optional(c.LocationCity)
	c.LocationState = optional(c.LocationState)
	c.CompanyURL = optional(c.CompanyURL)

	ctx, span := startSpan(ctx, "CompanyService", "Save", attribute.String("company.id", c.ID))
	defer func() { endSpan(span, err) }()

	var taken bool
	if c.ID == "" {
		taken, err = s.Repo.CompanyNameExists(ctx, s.DB, c.Name)
	} else {
		taken, err = s.Repo.CompanyNameTaken(ctx, s.DB, c.Name, c.ID)
	}
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.Conflict("name", "company name already exists")
	}

	if c.ID != "" {
		if err = s.Repo.UpdateCompany(ctx, s.DB, c); err != nil {
			return "", err
		}
		return c.ID, nil
	}
	created, err := s.Repo.CreateCompany(ctx, s.DB, c)
	if err != nil {
		return "", err
	}
	c.ID, c.CreatedAt = created.ID, created.CreatedAt
	span.SetAttributes(attribute.String("company.id", created.ID))
	return created.ID, nil
}

// Get returns the company, or (nil, nil) when it does not exist.
func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetCompany(ctx, s.DB, id)
}

// List returns a page of companies, newest first.
func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]domain.Company, error) {
	if err := validatePage(limit, offset, s.MaxListLimit); err != nil {
		return nil, err
	}
	return s.Repo.ListCompanies(ctx, s.DB, limit, offset)
}

// Delete removes a company that has no jobs.
func (s *CompanyService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "CompanyService", "Delete", attribute.String("company.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	return s.Repo.DeleteCompany(ctx, s.DB, id)
}

// NameExists reports whether a company already uses name, ignoring case.
func (s *CompanyService) NameExists(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, domain.Validation("name", "is required")
	}
	return s.Repo.CompanyNameExists(ctx, s.DB, name)
}
