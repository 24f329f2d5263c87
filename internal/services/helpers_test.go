package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.OpenSQLite(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newManagers(t *testing.T) Managers {
	return NewManagers(newTestDB(t), repo.Gateway{}, 0)
}

// seedAcme creates Ann, Acme, and a backend job at Acme.
func seedAcme(t *testing.T, m Managers) (userID, companyID, jobID string) {
	t.Helper()
	ctx := context.Background()
	var err error
	if userID, err = m.Users.Save(ctx, &domain.User{Email: "ann@example.com", PasswordHash: "h", Name: "Ann"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if companyID, err = m.Companies.Save(ctx, &domain.Company{Name: "Acme"}); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if jobID, err = m.Jobs.Save(ctx, &domain.Job{CompanyID: companyID, Title: "Backend Engineer"}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return userID, companyID, jobID
}

func mustKind(t *testing.T, err error, want domain.Kind) {
	t.Helper()
	if got := domain.KindOf(err); got != want {
		t.Fatalf("expected %v error, got %v (%v)", want, got, err)
	}
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
