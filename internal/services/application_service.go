// Package services – ApplicationService
//
// ApplicationService owns the application lifecycle. Creation and status
// changes are the only writes that touch the audit trail; the gateway writes
// the application row and its Activity in one transaction, and this layer
// adds validation, duplicate and existence pre-checks, metrics, and logging.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include application, user, and job identifiers where applicable.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/observability"
)

// ApplicationService manages applications and their automatic activity log.
type ApplicationService struct {
	// DB is the GORM handle passed to every repository call.
	DB *gorm.DB
	// Repo is the application repository used by this service.
	Repo ApplicationRepo

	// MaxListLimit caps List page sizes; zero or less means DefaultMaxListLimit.
	MaxListLimit int
	// Now stamps status changes; nil means time.Now.
	Now func() time.Time
}

// NewApplicationService constructs an ApplicationService over db and r.
func NewApplicationService(db *gorm.DB, r ApplicationRepo, maxListLimit int) *ApplicationService {
	return &ApplicationService{DB: db, Repo: r, MaxListLimit: maxListLimit}
}

func (s *ApplicationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func parseStatus(field, s string) (domain.Status, error) {
	if strings.TrimSpace(s) == "" {
		return "", domain.Validation(field, "is required")
	}
	st, ok := domain.ParseStatus(s)
	if !ok {
		return "", domain.Validation(field, "must be one of applied, phone_screen, interview, offer, rejected, withdrawn")
	}
	return st, nil
}

// Save creates a new application and its "created" activity and returns the
// new id. Applications are never updated wholesale: a non-blank a.ID is a
// validation error pointing at UpdateStatus, UpdateNotes, and UpdateSource.
func (s *ApplicationService) Save(ctx context.Context, a *domain.Application) (id string, err error) {
	if a == nil {
		return "", domain.Validation("application", "is required")
	}
	ctx, span := startSpan(ctx, "ApplicationService", "Save",
		attribute.String("user.id", a.UserID),
		attribute.String("job.id", a.JobID),
	)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(a.ID) != "" {
		return "", domain.Validation("id", "existing applications cannot be saved; use the status, notes, or source operations")
	}
	if a.UserID, err = requireID("user_id", a.UserID); err != nil {
		return "", err
	}
	if a.JobID, err = requireID("job_id", a.JobID); err != nil {
		return "", err
	}
	if a.Status, err = parseStatus("status", string(a.Status)); err != nil {
		return "", err
	}
	a.Source = optional(a.Source)
	a.Notes = optional(a.Notes)

	ok, err := s.Repo.UserExists(ctx, s.DB, a.UserID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.NotFound("user", a.UserID)
	}
	if ok, err = s.Repo.JobExists(ctx, s.DB, a.JobID); err != nil {
		return "", err
	}
	if !ok {
		return "", domain.NotFound("job", a.JobID)
	}
	if ok, err = s.Repo.UserJobApplicationExists(ctx, s.DB, a.UserID, a.JobID); err != nil {
		return "", err
	}
	if ok {
		return "", domain.Conflict("job_id", "user has already applied to this job")
	}

	id, err = s.Repo.CreateApplication(ctx, s.DB, a)
	if err != nil {
		return "", err
	}
	a.ID = id
	span.SetAttributes(attribute.String("application.id", id))
	observability.ActivityLogged(string(domain.EventCreated))
	zerolog.Ctx(ctx).Info().
		Str("application_id", id).
		Str("event_type", string(domain.EventCreated)).
		Str("status", string(a.Status)).
		Msg("application created")
	return id, nil
}

// UpdateStatus moves an application to status (case-insensitive), logs a
// "status_change" activity, and returns the refreshed denormalized row.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status string) (d *domain.ApplicationDetail, err error) {
	ctx, span := startSpan(ctx, "ApplicationService", "UpdateStatus",
		attribute.String("application.id", id),
		attribute.String("status", status),
	)
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return nil, err
	}
	st, err := parseStatus("status", status)
	if err != nil {
		return nil, err
	}

	act, err := s.Repo.UpdateApplicationStatus(ctx, s.DB, id, st, s.now())
	if err != nil {
		return nil, err
	}
	observability.ActivityLogged(string(act.EventType))
	observability.StatusChanged(string(st))
	zerolog.Ctx(ctx).Info().
		Str("application_id", id).
		Str("event_type", string(act.EventType)).
		Str("old_status", string(*act.OldStatus)).
		Str("new_status", string(st)).
		Msg("application status changed")

	d, err = s.Repo.GetApplicationDetail(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NotFound("application", id)
	}
	return d, nil
}

// UpdateNotes replaces the notes; nil or blank clears them. No activity is logged.
func (s *ApplicationService) UpdateNotes(ctx context.Context, id string, notes *string) (err error) {
	ctx, span := startSpan(ctx, "ApplicationService", "UpdateNotes", attribute.String("application.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	return s.Repo.UpdateApplicationNotes(ctx, s.DB, id, optional(notes))
}

// UpdateSource replaces the source; nil or blank clears it. No activity is logged.
func (s *ApplicationService) UpdateSource(ctx context.Context, id string, source *string) (err error) {
	ctx, span := startSpan(ctx, "ApplicationService", "UpdateSource", attribute.String("application.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	return s.Repo.UpdateApplicationSource(ctx, s.DB, id, optional(source))
}

// Get returns the denormalized application, or (nil, nil) when it does not exist.
func (s *ApplicationService) Get(ctx context.Context, id string) (d *domain.ApplicationDetail, err error) {
	ctx, span := startSpan(ctx, "ApplicationService", "Get", attribute.String("application.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return nil, err
	}
	return s.Repo.GetApplicationDetail(ctx, s.DB, id)
}

// List returns a page of denormalized applications, most recently applied
// first. A non-empty filter status must be a valid status.
func (s *ApplicationService) List(ctx context.Context, limit, offset int, f domain.ApplicationFilter) (out []domain.ApplicationDetail, err error) {
	ctx, span := startSpan(ctx, "ApplicationService", "List",
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)
	defer func() { endSpan(span, err) }()

	if err = validatePage(limit, offset, s.MaxListLimit); err != nil {
		return nil, err
	}
	f.UserID = strings.TrimSpace(f.UserID)
	f.JobID = strings.TrimSpace(f.JobID)
	if strings.TrimSpace(string(f.Status)) != "" {
		if f.Status, err = parseStatus("status", string(f.Status)); err != nil {
			return nil, err
		}
	}
	return s.Repo.ListApplicationDetails(ctx, s.DB, limit, offset, f)
}

// Delete removes the application together with its activities.
func (s *ApplicationService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "ApplicationService", "Delete", attribute.String("application.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	if err = s.Repo.DeleteApplication(ctx, s.DB, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("application_id", id).Msg("application deleted")
	return nil
}

// Exists reports whether the application exists.
func (s *ApplicationService) Exists(ctx context.Context, id string) (bool, error) {
	id, err := requireID("id", id)
	if err != nil {
		return false, err
	}
	return s.Repo.ApplicationExists(ctx, s.DB, id)
}

// UserJobExists reports whether userID already applied to jobID.
func (s *ApplicationService) UserJobExists(ctx context.Context, userID, jobID string) (bool, error) {
	userID, err := requireID("user_id", userID)
	if err != nil {
		return false, err
	}
	if jobID, err = requireID("job_id", jobID); err != nil {
		return false, err
	}
	return s.Repo.UserJobApplicationExists(ctx, s.DB, userID, jobID)
}
