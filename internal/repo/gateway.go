package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// Gateway adapts the package's free functions to the repository interfaces
// the services depend on. It is stateless; the handle travels with each call
// so the same functions serve plain handles and transactions.
type Gateway struct{}

func (Gateway) CreateUser(ctx context.Context, db *gorm.DB, in *domain.User) (*domain.User, error) {
	return CreateUser(ctx, db, in)
}

func (Gateway) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return GetUser(ctx, db, id)
}

func (Gateway) ListUsers(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.User, error) {
	return ListUsers(ctx, db, limit, offset)
}

func (Gateway) UpdateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return UpdateUser(ctx, db, u)
}

func (Gateway) DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	return DeleteUser(ctx, db, id)
}

func (Gateway) UserExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return UserExists(ctx, db, id)
}

func (Gateway) UserEmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	return UserEmailExists(ctx, db, email)
}

func (Gateway) UserEmailTaken(ctx context.Context, db *gorm.DB, email, exceptID string) (bool, error) {
	return UserEmailTaken(ctx, db, email, exceptID)
}

func (Gateway) CreateCompany(ctx context.Context, db *gorm.DB, in *domain.Company) (*domain.Company, error) {
	return CreateCompany(ctx, db, in)
}

func (Gateway) GetCompany(ctx context.Context, db *gorm.DB, id string) (*domain.Company, error) {
	return GetCompany(ctx, db, id)
}

func (Gateway) ListCompanies(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Company, error) {
	return ListCompanies(ctx, db, limit, offset)
}

func (Gateway) UpdateCompany(ctx context.Context, db *gorm.DB, c *domain.Company) error {
	return UpdateCompany(ctx, db, c)
}

func (Gateway) DeleteCompany(ctx context.Context, db *gorm.DB, id string) error {
	return DeleteCompany(ctx, db, id)
}

func (Gateway) CompanyExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return CompanyExists(ctx, db, id)
}

func (Gateway) CompanyNameExists(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	return CompanyNameExists(ctx, db, name)
}

func (Gateway) CompanyNameTaken(ctx context.Context, db *gorm.DB, name, exceptID string) (bool, error) {
	return CompanyNameTaken(ctx, db, name, exceptID)
}

func (Gateway) CreateJob(ctx context.Context, db *gorm.DB, in *domain.Job) (*domain.Job, error) {
	return CreateJob(ctx, db, in)
}

func (Gateway) GetJob(ctx context.Context, db *gorm.DB, id string) (*domain.Job, error) {
	return GetJob(ctx, db, id)
}

func (Gateway) ListJobs(ctx context.Context, db *gorm.DB, limit, offset int, f domain.JobFilter) ([]domain.Job, error) {
	return ListJobs(ctx, db, limit, offset, f)
}

func (Gateway) UpdateJob(ctx context.Context, db *gorm.DB, j *domain.Job) error {
	return UpdateJob(ctx, db, j)
}

func (Gateway) DeleteJob(ctx context.Context, db *gorm.DB, id string) error {
	return DeleteJob(ctx, db, id)
}

func (Gateway) JobExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return JobExists(ctx, db, id)
}

func (Gateway) CreateApplication(ctx context.Context, db *gorm.DB, in *domain.Application) (string, error) {
	return CreateApplication(ctx, db, in)
}

func (Gateway) UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, at time.Time) (*domain.Activity, error) {
	return UpdateApplicationStatus(ctx, db, id, status, at)
}

func (Gateway) UpdateApplicationNotes(ctx context.Context, db *gorm.DB, id string, notes *string) error {
	return UpdateApplicationNotes(ctx, db, id, notes)
}

func (Gateway) UpdateApplicationSource(ctx context.Context, db *gorm.DB, id string, source *string) error {
	return UpdateApplicationSource(ctx, db, id, source)
}

func (Gateway) DeleteApplication(ctx context.Context, db *gorm.DB, id string) error {
	return DeleteApplication(ctx, db, id)
}

func (Gateway) GetApplicationDetail(ctx context.Context, db *gorm.DB, id string) (*domain.ApplicationDetail, error) {
	return GetApplicationDetail(ctx, db, id)
}

func (Gateway) ListApplicationDetails(ctx context.Context, db *gorm.DB, limit, offset int, f domain.ApplicationFilter) ([]domain.ApplicationDetail, error) {
	return ListApplicationDetails(ctx, db, limit, offset, f)
}

func (Gateway) ApplicationExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return ApplicationExists(ctx, db, id)
}

func (Gateway) UserJobApplicationExists(ctx context.Context, db *gorm.DB, userID, jobID string) (bool, error) {
	return UserJobApplicationExists(ctx, db, userID, jobID)
}

func (Gateway) ListActivityForApplication(ctx context.Context, db *gorm.DB, appID string) ([]domain.Activity, error) {
	return ListActivityForApplication(ctx, db, appID)
}

func (Gateway) ListActivities(ctx context.Context, db *gorm.DB, limit, offset int, appID string) ([]domain.Activity, error) {
	return ListActivities(ctx, db, limit, offset, appID)
}

func (Gateway) GetActivity(ctx context.Context, db *gorm.DB, id string) (*domain.Activity, error) {
	return GetActivity(ctx, db, id)
}

func (Gateway) UpdateActivityDetails(ctx context.Context, db *gorm.DB, id, details string) error {
	return UpdateActivityDetails(ctx, db, id, details)
}

func (Gateway) RowCounts(ctx context.Context, db *gorm.DB) (domain.RowCounts, error) {
	return RowCounts(ctx, db)
}
