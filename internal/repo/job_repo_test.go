package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

func TestJob_CRUDAndFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	other, _ := CreateCompany(ctx, db, &domain.Company{Name: "Globex"})
	lo, hi := 100, 200
	j, err := CreateJob(ctx, db, &domain.Job{CompanyID: other.ID, Title: "SRE", EmploymentType: domain.EmploymentContract, WorkType: domain.WorkHybrid, SalaryMin: &lo, SalaryMax: &hi})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	got, err := GetJob(ctx, db, j.ID)
	if err != nil || got == nil || got.Title != "SRE" || got.WorkType != domain.WorkHybrid || *got.SalaryMax != 200 {
		t.Fatalf("GetJob: %+v %v", got, err)
	}

	list, _ := ListJobs(ctx, db, 10, 0, domain.JobFilter{CompanyID: f.CompanyID})
	if len(list) != 1 || list[0].ID != f.JobID {
		t.Fatalf("filter by company: %+v", list)
	}
	list, _ = ListJobs(ctx, db, 10, 0, domain.JobFilter{})
	if len(list) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(list))
	}

	j.Title = "Senior SRE"
	j.SalaryMin = nil
	if err := UpdateJob(ctx, db, j); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	got, _ = GetJob(ctx, db, j.ID)
	if got.Title != "Senior SRE" || got.SalaryMin != nil {
		t.Fatalf("update not applied: %+v", got)
	}
	mustKind(t, UpdateJob(ctx, db, &domain.Job{ID: "ghost", CompanyID: f.CompanyID, Title: "x", EmploymentType: domain.EmploymentFullTime, WorkType: domain.WorkRemote}), domain.KindNotFound)

	if err := DeleteJob(ctx, db, j.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	mustKind(t, DeleteJob(ctx, db, j.ID), domain.KindNotFound)
}

func TestCreateJob_UnknownCompanyIsNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := CreateJob(context.Background(), db, &domain.Job{CompanyID: "ghost", Title: "x", EmploymentType: domain.EmploymentFullTime, WorkType: domain.WorkRemote})
	mustKind(t, err, domain.KindNotFound)
}

func TestDeleteJob_BlockedByApplications(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)
	appID, err := CreateApplication(ctx, db, &domain.Application{UserID: f.UserID, JobID: f.JobID, Status: domain.StatusApplied})
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}

	err = DeleteJob(ctx, db, f.JobID)
	if !errors.Is(err, domain.ErrHasDependents) {
		t.Fatalf("expected dependency conflict, got %v", err)
	}
	if ok, _ := JobExists(ctx, db, f.JobID); !ok {
		t.Fatalf("job must survive")
	}
	if ok, _ := ApplicationExists(ctx, db, appID); !ok {
		t.Fatalf("application must survive")
	}
}

// A failure inside the delete transaction surfaces as a persistence error.
func TestDeleteJob_DriverErrorIsPersistence(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	if err := db.Callback().Delete().Before("gorm:delete").Register("force_err_on_jobs", func(tx *gorm.DB) {
		if tx.Statement != nil && strings.Contains(tx.Statement.Table, "jobs") {
			tx.AddError(errors.New("forced-delete-error"))
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	err := DeleteJob(ctx, db, f.JobID)
	mustKind(t, err, domain.KindPersistence)
	if ok, _ := JobExists(ctx, db, f.JobID); !ok {
		t.Fatalf("job must survive a failed delete")
	}
}
