package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

func TestCompany_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := CreateCompany(ctx, db, &domain.Company{Name: "Acme", Industry: strptr("Tech"), LocationCity: strptr("Austin")})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	got, err := GetCompany(ctx, db, c.ID)
	if err != nil || got == nil || got.Name != "Acme" || *got.Industry != "Tech" || got.LocationState != nil {
		t.Fatalf("GetCompany: %+v %v", got, err)
	}

	_, err = CreateCompany(ctx, db, &domain.Company{Name: "ACME"})
	mustKind(t, err, domain.KindConflict)
	if ok, _ := CompanyNameExists(ctx, db, "acme"); !ok {
		t.Fatalf("expected name to exist")
	}

	c.Name = "Acme Corp"
	c.Industry = nil
	if err := UpdateCompany(ctx, db, c); err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	got, _ = GetCompany(ctx, db, c.ID)
	if got.Name != "Acme Corp" || got.Industry != nil {
		t.Fatalf("update not applied: %+v", got)
	}
	if taken, _ := CompanyNameTaken(ctx, db, "acme corp", c.ID); taken {
		t.Fatalf("own name must not count as taken")
	}

	mustKind(t, UpdateCompany(ctx, db, &domain.Company{ID: "ghost", Name: "G"}), domain.KindNotFound)

	if err := DeleteCompany(ctx, db, c.ID); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}
	if got, _ := GetCompany(ctx, db, c.ID); got != nil {
		t.Fatalf("company should be gone")
	}
	mustKind(t, DeleteCompany(ctx, db, c.ID), domain.KindNotFound)
}

func TestDeleteCompany_BlockedByJobs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	err := DeleteCompany(ctx, db, f.CompanyID)
	mustKind(t, err, domain.KindConflict)
	if !errors.Is(err, domain.ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}
	if ok, _ := CompanyExists(ctx, db, f.CompanyID); !ok {
		t.Fatalf("company must survive")
	}
	if ok, _ := JobExists(ctx, db, f.JobID); !ok {
		t.Fatalf("job must survive")
	}
}
