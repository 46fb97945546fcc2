package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role determines what a user may do across the back office.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleDriver   Role = "DRIVER"
	RoleCustomer Role = "CUSTOMER"
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmptyUsername = errors.New("username is required")
)

var roles = map[Role]struct{}{
	RoleAdmin:    {},
	RoleManager:  {},
	RoleDriver:   {},
	RoleCustomer: {},
}

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := roles[role]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return role, nil
}

// User is an account in the back office. Deactivated accounts keep their
// history but stop passing assignment preconditions.
type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	FullName string
	Phone    string
	Role     Role
	Active   bool
}

// NewUser creates an active account with the given role.
func NewUser(id uuid.UUID, username, email, fullName, phone string, role Role) (*User, error) {
	if _, ok := roles[role]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	user := &User{
		ID:       id,
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
		Phone:    strings.TrimSpace(phone),
		Role:     role,
		Active:   true,
	}
	if user.Username == "" {
		return nil, ErrEmptyUsername
	}
	return user, nil
}

// Deactivate disables the account without deleting its history.
func (u *User) Deactivate() { u.Active = false }

// Activate re-enables the account.
func (u *User) Activate() { u.Active = true }
