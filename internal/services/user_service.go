package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// UserService manages user accounts. Emails are unique regardless of case.
type UserService struct {
	// DB is the GORM handle passed to every repository call.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo

	// MaxListLimit caps List page sizes; zero or less means DefaultMaxListLimit.
	MaxListLimit int
}

// NewUserService constructs a UserService over db and r.
func NewUserService(db *gorm.DB, r UserRepo, maxListLimit int) *UserService {
	return &UserService{DB: db, Repo: r, MaxListLimit: maxListLimit}
}

// HashPassword derives the stored credential hash for a plain password.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", domain.Validation("password", "is required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Validation("password", err.Error())
	}
	return string(h), nil
}

// CheckPassword reports whether plain matches a hash produced by HashPassword.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func validateUser(u *domain.User) error {
	if u == nil {
		return domain.Validation("user", "is required")
	}
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if u.Email == "" {
		return domain.Validation("email", "is required")
	}
	if !strings.Contains(u.Email, "@") {
		return domain.Validation("email", "must contain @")
	}
	if u.PasswordHash == "" {
		return domain.Validation("password_hash", "is required")
	}
	if u.Name == "" {
		return domain.Validation("name", "is required")
	}
	return nil
}

// Save inserts u when u.ID is blank and updates it otherwise. It returns the
// user id.
func (s *UserService) Save(ctx context.Context, u *domain.User) (id string, err error) {
	if err = validateUser(u); err != nil {
		return "", err
	}
	u.ID = strings.TrimSpace(u.ID)
	ctx, span := startSpan(ctx, "UserService", "Save", attribute.String("user.id", u.ID))
	defer func() { endSpan(span, err) }()

	var taken bool
	if u.ID == "" {
		taken, err = s.Repo.UserEmailExists(ctx, s.DB, u.Email)
	} else {
		taken, err = s.Repo.UserEmailTaken(ctx, s.DB, u.Email, u.ID)
	}
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.Conflict("email", "email already registered")
	}

	if u.ID != "" {
		if err = s.Repo.UpdateUser(ctx, s.DB, u); err != nil {
			return "", err
		}
		return u.ID, nil
	}
	created, err := s.Repo.CreateUser(ctx, s.DB, u)
	if err != nil {
		return "", err
	}
	u.ID, u.CreatedAt = created.ID, created.CreatedAt
	span.SetAttributes(attribute.String("user.id", created.ID))
	return created.ID, nil
}

// Get returns the user, or (nil, nil) when it does not exist.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetUser(ctx, s.DB, id)
}

// List returns a page of users, newest first.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if err := validatePage(limit, offset, s.MaxListLimit); err != nil {
		return nil, err
	}
	return s.Repo.ListUsers(ctx, s.DB, limit, offset)
}

// Delete removes a user with no applications.
func (s *UserService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "UserService", "Delete", attribute.String("user.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	return s.Repo.DeleteUser(ctx, s.DB, id)
}

// EmailExists reports whether email is registered, ignoring case.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, domain.Validation("email", "is required")
	}
	return s.Repo.UserEmailExists(ctx, s.DB, email)
}
