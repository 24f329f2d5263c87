package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// newTestDB opens a migrated in-memory database unique to the test.
// newTestDB opens a private in-memory database named after the test. Pass a
// suffix to get a second, independent database in the same test.
func newTestDB(t *testing.T, suffix ...string) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + strings.Join(suffix, "_")
	db, err := OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fixture struct {
	UserID, CompanyID, JobID string
}

// seed creates one user, one company, and one job under it.
func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	u, err := CreateUser(ctx, db, &domain.User{Email: "ann@example.com", PasswordHash: "hash", Name: "Ann"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	c, err := CreateCompany(ctx, db, &domain.Company{Name: "Acme"})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	j, err := CreateJob(ctx, db, &domain.Job{CompanyID: c.ID, Title: "SWE", EmploymentType: domain.EmploymentFullTime, WorkType: domain.WorkRemote})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return fixture{UserID: u.ID, CompanyID: c.ID, JobID: j.ID}
}

func mustKind(t *testing.T, err error, want domain.Kind) {
	t.Helper()
	if got := domain.KindOf(err); got != want {
		t.Fatalf("expected %v error, got %v (%v)", want, got, err)
	}
}

func strptr(s string) *string { return &s }
