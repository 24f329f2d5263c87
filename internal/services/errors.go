// Package services defines the business rules for users, companies, jobs,
// applications, and their activity trail. Managers validate input, apply
// defaults, run duplicate and existence pre-checks, and delegate storage to
// an injected repository contract (repo.Gateway in production). Every
// failure carries a domain.Kind so the HTTP and console boundaries can
// translate it without inspecting error text.
package services

import (
	"fmt"
	"strings"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// DefaultMaxListLimit caps page sizes when a manager is built without an
// explicit MaxListLimit.
const DefaultMaxListLimit = 100

// validatePage rejects out-of-range pagination. Values are never clamped.
func validatePage(limit, offset, maxLimit int) error {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxListLimit
	}
	if limit < 1 {
		return domain.Validation("limit", "must be at least 1")
	}
	if limit > maxLimit {
		return domain.Validation("limit", fmt.Sprintf("must be at most %d", maxLimit))
	}
	if offset < 0 {
		return domain.Validation("offset", "must not be negative")
	}
	return nil
}

// requireID trims id and fails when it is blank.
func requireID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.Validation(field, "is required")
	}
	return id, nil
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
