package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// ActivityService reads the audit trail. Rows are written only by
// ApplicationService; the one mutation offered here is editing details.
type ActivityService struct {
	// DB is the GORM handle passed to every repository call.
	DB *gorm.DB
	// Repo is the activity repository used by this service.
	Repo ActivityRepo

	// MaxListLimit caps List page sizes; zero or less means DefaultMaxListLimit.
	MaxListLimit int
}

// NewActivityService constructs an ActivityService over db and r.
func NewActivityService(db *gorm.DB, r ActivityRepo, maxListLimit int) *ActivityService {
	return &ActivityService{DB: db, Repo: r, MaxListLimit: maxListLimit}
}

// ForApplication returns the full timeline of an application, oldest first.
func (s *ActivityService) ForApplication(ctx context.Context, appID string) (out []domain.Activity, err error) {
	ctx, span := startSpan(ctx, "ActivityService", "ForApplication", attribute.String("application.id", appID))
	defer func() { endSpan(span, err) }()

	if appID, err = requireID("application_id", appID); err != nil {
		return nil, err
	}
	return s.Repo.ListActivityForApplication(ctx, s.DB, appID)
}

// List returns a page of the activity feed, newest first, optionally for
// one application.
func (s *ActivityService) List(ctx context.Context, limit, offset int, appID string) (out []domain.Activity, err error) {
	ctx, span := startSpan(ctx, "ActivityService", "List", attribute.Int("limit", limit), attribute.Int("offset", offset))
	defer func() { endSpan(span, err) }()

	if err = validatePage(limit, offset, s.MaxListLimit); err != nil {
		return nil, err
	}
	return s.Repo.ListActivities(ctx, s.DB, limit, offset, strings.TrimSpace(appID))
}

// Get returns the activity, or (nil, nil) when it does not exist.
func (s *ActivityService) Get(ctx context.Context, id string) (*domain.Activity, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetActivity(ctx, s.DB, id)
}

// UpdateDetails replaces an activity's details; nil stores the empty string.
func (s *ActivityService) UpdateDetails(ctx context.Context, id string, details *string) (err error) {
	ctx, span := startSpan(ctx, "ActivityService", "UpdateDetails", attribute.String("activity.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	var d string
	if details != nil {
		d = *details
	}
	return s.Repo.UpdateActivityDetails(ctx, s.DB, id, d)
}
