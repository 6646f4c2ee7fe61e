// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onboarding/internal/errors"
)

// Role identifies what a user may do in the platform.
type Role string

const (
	// RoleInvestor is a regular investor completing onboarding.
	RoleInvestor Role = "investor"
	// RoleAdvisor reviews investor profiles on behalf of clients.
	RoleAdvisor Role = "advisor"
	// RoleAdmin operates the platform.
	RoleAdmin Role = "admin"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleInvestor, RoleAdvisor, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// User represents a user in the system
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidRole indicates the role is not one of the known roles.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
