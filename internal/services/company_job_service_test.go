package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

func TestCompanyService_SaveAndDuplicates(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()

	_, err := m.Companies.Save(ctx, &domain.Company{Name: "   "})
	mustKind(t, err, domain.KindValidation)

	c := &domain.Company{Name: "Acme", Industry: strptr("  "), LocationCity: strptr("Austin ")}
	id, err := m.Companies.Save(ctx, c)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := m.Companies.Get(ctx, id)
	if got.Industry != nil || got.LocationCity == nil || *got.LocationCity != "Austin" {
		t.Fatalf("optional fields not normalized: %+v", got)
	}

	_, err = m.Companies.Save(ctx, &domain.Company{Name: "ACME"})
	mustKind(t, err, domain.KindConflict)

	otherID, _ := m.Companies.Save(ctx, &domain.Company{Name: "Globex"})
	_, err = m.Companies.Save(ctx, &domain.Company{ID: otherID, Name: "acme"})
	mustKind(t, err, domain.KindConflict)

	if ok, _ := m.Companies.NameExists(ctx, "globex"); !ok {
		t.Fatalf("NameExists should ignore case")
	}

	list, err := m.Companies.List(ctx, 1, 1)
	if err != nil || len(list) != 1 {
		t.Fatalf("paged list: %v %v", list, err)
	}
}

func TestJobService_ValidationAndDefaults(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()
	companyID, _ := m.Companies.Save(ctx, &domain.Company{Name: "Acme"})

	bad := []struct {
		name  string
		job   *domain.Job
		field string
	}{
		{"no company", &domain.Job{Title: "x"}, "company_id"},
		{"no title", &domain.Job{CompanyID: companyID}, "title"},
		{"bad employment", &domain.Job{CompanyID: companyID, Title: "x", EmploymentType: "gig"}, "employment_type"},
		{"bad work", &domain.Job{CompanyID: companyID, Title: "x", WorkType: "moon"}, "work_type"},
		{"negative salary", &domain.Job{CompanyID: companyID, Title: "x", SalaryMin: intptr(-1)}, "salary_min"},
		{"min over max", &domain.Job{CompanyID: companyID, Title: "x", SalaryMin: intptr(10), SalaryMax: intptr(5)}, "salary_min"},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Jobs.Save(ctx, tc.job)
			var de *domain.Error
			if !errors.As(err, &de) || de.Kind != domain.KindValidation || de.Field != tc.field {
				t.Fatalf("expected validation on %q, got %v", tc.field, err)
			}
		})
	}

	_, err := m.Jobs.Save(ctx, &domain.Job{CompanyID: "ghost", Title: "x"})
	mustKind(t, err, domain.KindNotFound)

	// "Intern" in the title does not change the employment type.
	id, err := m.Jobs.Save(ctx, &domain.Job{CompanyID: companyID, Title: "Software Intern"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	j, _ := m.Jobs.Get(ctx, id)
	if j.EmploymentType != domain.EmploymentFullTime || j.WorkType != domain.WorkRemote {
		t.Fatalf("defaults not applied: %+v", j)
	}

	j.EmploymentType = "Internship"
	j.WorkType = "ON_SITE"
	if _, err := m.Jobs.Save(ctx, j); err != nil {
		t.Fatalf("update: %v", err)
	}
	j, _ = m.Jobs.Get(ctx, id)
	if j.EmploymentType != domain.EmploymentInternship || j.WorkType != domain.WorkOnSite {
		t.Fatalf("enum update not applied: %+v", j)
	}

	if ok, _ := m.Jobs.Exists(ctx, id); !ok {
		t.Fatalf("Exists should be true")
	}
	list, _ := m.Jobs.List(ctx, 10, 0, domain.JobFilter{CompanyID: companyID})
	if len(list) != 1 {
		t.Fatalf("filtered list: %+v", list)
	}
}

func TestDeletes_BlockedByDependents(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()
	userID, companyID, jobID := seedAcme(t, m)
	if _, err := m.Applications.Save(ctx, &domain.Application{UserID: userID, JobID: jobID, Status: "applied"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	for name, err := range map[string]error{
		"company": m.Companies.Delete(ctx, companyID),
		"job":     m.Jobs.Delete(ctx, jobID),
		"user":    m.Users.Delete(ctx, userID),
	} {
		if domain.KindOf(err) != domain.KindConflict || !errors.Is(err, domain.ErrHasDependents) {
			t.Fatalf("%s delete: expected dependency conflict, got %v", name, err)
		}
	}

	rc, _ := m.Stats.RowCounts(ctx)
	if rc.Users != 1 || rc.Companies != 1 || rc.Jobs != 1 || rc.Applications != 1 {
		t.Fatalf("rows must be intact: %+v", rc)
	}
}
