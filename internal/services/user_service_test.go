package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

func TestUserService_SaveValidation(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		user  *domain.User
		field string
	}{
		{"nil", nil, "user"},
		{"no email", &domain.User{PasswordHash: "h", Name: "A"}, "email"},
		{"no at", &domain.User{Email: "ann.example.com", PasswordHash: "h", Name: "A"}, "email"},
		{"no hash", &domain.User{Email: "a@x.com", Name: "A"}, "password_hash"},
		{"no name", &domain.User{Email: "a@x.com", PasswordHash: "h", Name: "  "}, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Users.Save(ctx, tc.user)
			var de *domain.Error
			if !errors.As(err, &de) || de.Kind != domain.KindValidation || de.Field != tc.field {
				t.Fatalf("expected validation on %q, got %v", tc.field, err)
			}
		})
	}
}

func TestUserService_SmartSave(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()

	u := &domain.User{Email: " ann@example.com ", PasswordHash: "h", Name: "Ann"}
	id, err := m.Users.Save(ctx, u)
	if err != nil || id == "" || u.ID != id {
		t.Fatalf("insert: id=%q err=%v", id, err)
	}

	got, err := m.Users.Get(ctx, id)
	if err != nil || got == nil || got.Email != "ann@example.com" || got.Name != "Ann" {
		t.Fatalf("round trip: %+v %v", got, err)
	}

	got.Name = "Ann Lee"
	if id2, err := m.Users.Save(ctx, got); err != nil || id2 != id {
		t.Fatalf("update: id=%q err=%v", id2, err)
	}
	again, _ := m.Users.Get(ctx, id)
	if again.Name != "Ann Lee" {
		t.Fatalf("update not applied: %+v", again)
	}

	_, err = m.Users.Save(ctx, &domain.User{ID: "ghost", Email: "g@x.com", PasswordHash: "h", Name: "G"})
	mustKind(t, err, domain.KindNotFound)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()
	aID, _ := m.Users.Save(ctx, &domain.User{Email: "a@x.com", PasswordHash: "h", Name: "A"})
	bID, _ := m.Users.Save(ctx, &domain.User{Email: "b@x.com", PasswordHash: "h", Name: "B"})

	_, err := m.Users.Save(ctx, &domain.User{Email: "A@X.com", PasswordHash: "h", Name: "C"})
	mustKind(t, err, domain.KindConflict)

	_, err = m.Users.Save(ctx, &domain.User{ID: bID, Email: "a@x.com", PasswordHash: "h", Name: "B"})
	mustKind(t, err, domain.KindConflict)

	// Keeping one's own email is not a conflict.
	if _, err := m.Users.Save(ctx, &domain.User{ID: aID, Email: "A@x.com", PasswordHash: "h", Name: "A"}); err != nil {
		t.Fatalf("self update: %v", err)
	}

	ok, err := m.Users.EmailExists(ctx, "B@X.COM")
	if err != nil || !ok {
		t.Fatalf("EmailExists: %v %v", ok, err)
	}
	_, err = m.Users.EmailExists(ctx, " ")
	mustKind(t, err, domain.KindValidation)
}

func TestUserService_ListAndDelete(t *testing.T) {
	m := newManagers(t)
	ctx := context.Background()
	id, _ := m.Users.Save(ctx, &domain.User{Email: "a@x.com", PasswordHash: "h", Name: "A"})

	_, err := m.Users.List(ctx, 0, 0)
	mustKind(t, err, domain.KindValidation)
	_, err = m.Users.List(ctx, 10, -1)
	mustKind(t, err, domain.KindValidation)

	list, err := m.Users.List(ctx, 10, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v %v", list, err)
	}

	if err := m.Users.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mustKind(t, m.Users.Delete(ctx, id), domain.KindNotFound)
	mustKind(t, m.Users.Delete(ctx, ""), domain.KindValidation)

	if got, err := m.Users.Get(ctx, id); got != nil || err != nil {
		t.Fatalf("expected (nil, nil) after delete, got (%v, %v)", got, err)
	}
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("s3cret")
	if err != nil || h == "" || h == "s3cret" {
		t.Fatalf("HashPassword: %q %v", h, err)
	}
	if !CheckPassword(h, "s3cret") || CheckPassword(h, "nope") {
		t.Fatalf("CheckPassword mismatch")
	}
	_, err = HashPassword("")
	mustKind(t, err, domain.KindValidation)
}
