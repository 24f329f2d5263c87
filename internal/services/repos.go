package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	CreateUser(ctx context.Context, db *gorm.DB, in *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
	ListUsers(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, u *domain.User) error
	DeleteUser(ctx context.Context, db *gorm.DB, id string) error

	// UserEmailExists and UserEmailTaken compare emails case-insensitively;
	// UserEmailTaken ignores the row with exceptID.
	UserEmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error)
	UserEmailTaken(ctx context.Context, db *gorm.DB, email, exceptID string) (bool, error)
}

// CompanyRepo defines the repository contract required by CompanyService.
type CompanyRepo interface {
	CreateCompany(ctx context.Context, db *gorm.DB, in *domain.Company) (*domain.Company, error)
	GetCompany(ctx context.Context, db *gorm.DB, id string) (*domain.Company, error)
	ListCompanies(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, db *gorm.DB, c *domain.Company) error
	DeleteCompany(ctx context.Context, db *gorm.DB, id string) error
	CompanyNameExists(ctx context.Context, db *gorm.DB, name string) (bool, error)
	CompanyNameTaken(ctx context.Context, db *gorm.DB, name, exceptID string) (bool, error)
}

// JobRepo defines the repository contract required by JobService. It
// includes CompanyExists because a job's company is checked before saving.
type JobRepo interface {
	CreateJob(ctx context.Context, db *gorm.DB, in *domain.Job) (*domain.Job, error)
	GetJob(ctx context.Context, db *gorm.DB, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, db *gorm.DB, limit, offset int, f domain.JobFilter) ([]domain.Job, error)
	UpdateJob(ctx context.Context, db *gorm.DB, j *domain.Job) error
	DeleteJob(ctx context.Context, db *gorm.DB, id string) error
	JobExists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	CompanyExists(ctx context.Context, db *gorm.DB, id string) (bool, error)
}

// ApplicationRepo defines the repository contract required by
// ApplicationService. CreateApplication and UpdateApplicationStatus write the
// matching Activity in the same transaction.
type ApplicationRepo interface {
	CreateApplication(ctx context.Context, db *gorm.DB, in *domain.Application) (string, error)
	UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, at time.Time) (*domain.Activity, error)
	UpdateApplicationNotes(ctx context.Context, db *gorm.DB, id string, notes *string) error
	UpdateApplicationSource(ctx context.Context, db *gorm.DB, id string, source *string) error
	DeleteApplication(ctx context.Context, db *gorm.DB, id string) error
	GetApplicationDetail(ctx context.Context, db *gorm.DB, id string) (*domain.ApplicationDetail, error)
	ListApplicationDetails(ctx context.Context, db *gorm.DB, limit, offset int, f domain.ApplicationFilter) ([]domain.ApplicationDetail, error)

	ApplicationExists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	UserJobApplicationExists(ctx context.Context, db *gorm.DB, userID, jobID string) (bool, error)
	UserExists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	JobExists(ctx context.Context, db *gorm.DB, id string) (bool, error)
}

// ActivityRepo defines the repository contract required by ActivityService.
type ActivityRepo interface {
	ListActivityForApplication(ctx context.Context, db *gorm.DB, appID string) ([]domain.Activity, error)
	ListActivities(ctx context.Context, db *gorm.DB, limit, offset int, appID string) ([]domain.Activity, error)
	GetActivity(ctx context.Context, db *gorm.DB, id string) (*domain.Activity, error)
	UpdateActivityDetails(ctx context.Context, db *gorm.DB, id, details string) error
}

// StatsRepo defines the repository contract required by StatsService.
type StatsRepo interface {
	RowCounts(ctx context.Context, db *gorm.DB) (domain.RowCounts, error)
}

// Gateway is the whole storage contract. repo.Gateway implements it.
type Gateway interface {
	UserRepo
	CompanyRepo
	JobRepo
	ApplicationRepo
	ActivityRepo
	StatsRepo
}

// Managers bundles one service per entity over a shared handle and gateway.
type Managers struct {
	Users        *UserService
	Companies    *CompanyService
	Jobs         *JobService
	Applications *ApplicationService
	Activities   *ActivityService
	Stats        *StatsService
}

// NewManagers builds every service over db and g. maxListLimit caps page
// sizes; zero or less means DefaultMaxListLimit.
func NewManagers(db *gorm.DB, g Gateway, maxListLimit int) Managers {
	return Managers{
		Users:        NewUserService(db, g, maxListLimit),
		Companies:    NewCompanyService(db, g, maxListLimit),
		Jobs:         NewJobService(db, g, maxListLimit),
		Applications: NewApplicationService(db, g, maxListLimit),
		Activities:   NewActivityService(db, g, maxListLimit),
		Stats:        NewStatsService(db, g),
	}
}
