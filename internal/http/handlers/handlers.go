package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/http/middleware"
	"github.com/tbourn/go-jobtracker/internal/repo"
)

//
// Service contracts (context-aware)
//

// UserService manages applicants.
type UserService interface {
	Save(ctx context.Context, u *domain.User) (string, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CompanyService manages employers.
type CompanyService interface {
	Save(ctx context.Context, c *domain.Company) (string, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, limit, offset int) ([]domain.Company, error)
	Delete(ctx context.Context, id string) error
	NameExists(ctx context.Context, name string) (bool, error)
}

// JobService manages postings.
type JobService interface {
	Save(ctx context.Context, j *domain.Job) (string, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, limit, offset int, f domain.JobFilter) ([]domain.Job, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// ApplicationService manages applications; every write is auto-logged as
// an activity by the implementation.
type ApplicationService interface {
	Save(ctx context.Context, a *domain.Application) (string, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.ApplicationDetail, error)
	UpdateNotes(ctx context.Context, id string, notes *string) error
	UpdateSource(ctx context.Context, id string, source *string) error
	Get(ctx context.Context, id string) (*domain.ApplicationDetail, error)
	List(ctx context.Context, limit, offset int, f domain.ApplicationFilter) ([]domain.ApplicationDetail, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	UserJobExists(ctx context.Context, userID, jobID string) (bool, error)
}

// ActivityService reads the activity log.
type ActivityService interface {
	ForApplication(ctx context.Context, appID string) ([]domain.Activity, error)
	List(ctx context.Context, limit, offset int, appID string) ([]domain.Activity, error)
	Get(ctx context.Context, id string) (*domain.Activity, error)
	UpdateDetails(ctx context.Context, id string, details *string) error
}

// StatsService reports table sizes.
type StatsService interface {
	RowCounts(ctx context.Context) (domain.RowCounts, error)
}

// IdempotencyStore remembers which resource a create request produced so a
// retry with the same Idempotency-Key can be answered without a second row.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (resourceID string, found bool, err error)
	Remember(ctx context.Context, scope, key, resourceID string, status int) error
}

// DBIdempotency is the IdempotencyStore backed by the idempotency table.
type DBIdempotency struct {
	DB  *gorm.DB
	TTL time.Duration
}

func (s DBIdempotency) Lookup(ctx context.Context, scope, key string) (string, bool, error) {
	rec, err := repo.FindIdempotency(ctx, s.DB, scope, key, time.Now().UTC())
	if err != nil || rec == nil {
		return "", false, err
	}
	return rec.ResourceID, true, nil
}

// Remember keeps the first resource stored for the key. A concurrent retry
// that lost the race is not an error.
func (s DBIdempotency) Remember(ctx context.Context, scope, key, resourceID string, status int) error {
	_, err := repo.SaveIdempotency(ctx, s.DB, scope, key, resourceID, status, s.TTL)
	return err
}

// Exists adapts the store to middleware.IdempotencyLookup.
func (s DBIdempotency) Exists(ctx context.Context, scope, key string, _ time.Time) (bool, error) {
	_, found, err := s.Lookup(ctx, scope, key)
	return found, err
}

//
// Handler wiring
//

// Services bundles the dependencies of Handlers.
type Services struct {
	Users        UserService
	Companies    CompanyService
	Jobs         JobService
	Applications ApplicationService
	Activities   ActivityService
	Stats        StatsService

	// Idempotency is optional; without it Idempotency-Key is accepted but
	// not remembered.
	Idempotency IdempotencyStore
	// DefaultListLimit applies when a list request has no limit parameter.
	DefaultListLimit int
}

// Handlers groups the REST endpoints. It depends only on the service
// interfaces above.
type Handlers struct {
	users        UserService
	companies    CompanyService
	jobs         JobService
	apps         ApplicationService
	activities   ActivityService
	stats        StatsService
	idem         IdempotencyStore
	defaultLimit int
}

// New constructs Handlers from s. A non-positive default limit becomes 20.
func New(s Services) *Handlers {
	limit := s.DefaultListLimit
	if limit <= 0 {
		limit = 20
	}
	return &Handlers{
		users:        s.Users,
		companies:    s.Companies,
		jobs:         s.Jobs,
		apps:         s.Applications,
		activities:   s.Activities,
		stats:        s.Stats,
		idem:         s.Idempotency,
		defaultLimit: limit,
	}
}

// createIdempotent runs create and answers 201 {id}. When the request
// carries an Idempotency-Key already stored for this route, the stored id is
// returned with Idempotency-Replayed: true and create is not called.
func (h *Handlers) createIdempotent(c *gin.Context, create func(ctx context.Context) (string, error)) {
	ctx := c.Request.Context()
	key, hasKey := middleware.GetIdempotencyKey(c)
	scope := middleware.IdempotencyScope(c)

	if hasKey && h.idem != nil {
		id, found, err := h.idem.Lookup(ctx, scope, key)
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		}
		if found {
			c.Header(middleware.HeaderReplayed, "true")
			ok(c, http.StatusCreated, CreatedResponse{ID: id})
			return
		}
	}

	id, err := create(ctx)
	if err != nil {
		failErr(c, err)
		return
	}

	if hasKey && h.idem != nil {
		if err := h.idem.Remember(ctx, scope, key, id, http.StatusCreated); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency store failed")
		}
	}
	ok(c, http.StatusCreated, CreatedResponse{ID: id})
}
