package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so the pragma below applies to every statement.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(User{}).TableName():        "users",
		(Company{}).TableName():     "companies",
		(Job{}).TableName():         "jobs",
		(Application{}).TableName(): "applications",
		(Activity{}).TableName():    "activities",
		(Idempotency{}).TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func seedGraph(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now().UTC()
	rows := []any{
		&User{ID: "u1", Email: "a@x.com", EmailKey: "a@x.com", PasswordHash: "h", Name: "Ann", CreatedAt: now},
		&Company{ID: "c1", Name: "Acme", NameKey: "acme", CreatedAt: now},
		&Job{ID: "j1", CompanyID: "c1", Title: "SWE", EmploymentType: EmploymentFullTime, WorkType: WorkRemote, CreatedAt: now},
		&Application{ID: "a1", UserID: "u1", JobID: "j1", Status: StatusApplied, AppliedAt: now, LastUpdatedAt: now},
		&Activity{ID: "e1", ApplicationID: "a1", UserID: "u1", EventType: EventCreated, NewStatus: StatusApplied.Ptr(), EventTime: now, Details: DetailsCreated},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("insert %T: %v", r, err)
		}
	}
}

func TestMigrations_IndexesAndConstraints(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&User{}, &Company{}, &Job{}, &Application{}, &Activity{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tc := range []struct {
		model any
		index string
	}{
		{&User{}, "ux_users_email_key"},
		{&Company{}, "ux_companies_name_key"},
		{&Application{}, "ux_applications_user_job"},
		{&Activity{}, "idx_activity_app_time"},
	} {
		if !m.HasIndex(tc.model, tc.index) {
			t.Fatalf("expected index %s on %T", tc.index, tc.model)
		}
	}

	seedGraph(t, db)
	now := time.Now().UTC()

	// Folded keys collide.
	if err := db.Create(&User{ID: "u2", Email: "A@X.com", EmailKey: "a@x.com", PasswordHash: "h", Name: "Dup", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected unique violation on email_key")
	}
	// One application per (user, job).
	if err := db.Create(&Application{ID: "a2", UserID: "u1", JobID: "j1", Status: StatusApplied, AppliedAt: now, LastUpdatedAt: now}).Error; err == nil {
		t.Fatalf("expected unique violation on (user_id, job_id)")
	}
	// CHECK rejects unknown statuses.
	if err := db.Exec(`UPDATE applications SET status = 'ghosted' WHERE id = 'a1'`).Error; err == nil {
		t.Fatalf("expected check violation on status")
	}

	// RESTRICT: a job with applications cannot be deleted.
	if err := db.Delete(&Job{}, "id = ?", "j1").Error; err == nil {
		t.Fatalf("expected FK violation deleting referenced job")
	}

	// CASCADE: deleting the application removes its activities.
	if err := db.Delete(&Application{}, "id = ?", "a1").Error; err != nil {
		t.Fatalf("delete application: %v", err)
	}
	var cnt int64
	if err := db.Model(&Activity{}).Where("application_id = ?", "a1").Count(&cnt).Error; err != nil {
		t.Fatalf("count activities: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected activities to cascade-delete, got %d", cnt)
	}
}
